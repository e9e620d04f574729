// Package chart renders deep-sky star charts: it projects catalog
// positions onto a millimetre map plane, draws per-type symbols, and
// places labels greedily against a repulsion field so they avoid
// already-drawn ink.
package chart

import "math"

// SymbolFootprint is a drawn symbol's position and radius in map
// millimetres, used to seed the repulsion field.
type SymbolFootprint struct {
	X, Y   float64
	Radius float64
}

type potentialSource struct {
	x, y     float64
	strength float64
}

// LabelPotential is the scalar repulsion field label candidates are
// scored against. Symbols seed it up front; every committed label adds
// its footprint. The field only grows during a render pass and is
// discarded with it.
type LabelPotential struct {
	fieldRadius float64
	sources     []potentialSource
}

// NewLabelPotential builds the field for a map of the given radius and
// seeds one source per symbol, with strength growing as the square of
// the symbol radius. All symbols must be seeded before any scoring so
// labels also avoid symbols drawn later in the pass.
func NewLabelPotential(fieldRadiusMM float64, symbols []SymbolFootprint) *LabelPotential {
	p := &LabelPotential{
		fieldRadius: fieldRadiusMM,
		sources:     make([]potentialSource, 0, len(symbols)),
	}
	for _, s := range symbols {
		p.sources = append(p.sources, potentialSource{s.X, s.Y, s.Radius * s.Radius})
	}
	return p
}

// AddPosition commits a label footprint anchored at (x, y) with the
// given horizontal extent in millimetres.
func (p *LabelPotential) AddPosition(x, y, lengthMM float64) {
	p.sources = append(p.sources, potentialSource{x, y, lengthMM * lengthMM})
}

// Potential returns the crowdedness estimate at (x, y): the sum over
// all sources of strength over distance, with distance clamped to a
// millimetre so the query is total. Monotonically decreasing with
// distance from every source, near zero far from all of them.
func (p *LabelPotential) Potential(x, y float64) float64 {
	return p.PotentialExcept(-1, x, y)
}

// PotentialExcept is Potential with the seeded symbol at index skip
// left out. A symbol's own label candidates already clear its ink, so
// its own seed must not bias the choice between them.
func (p *LabelPotential) PotentialExcept(skip int, x, y float64) float64 {
	value := 0.0
	for i, s := range p.sources {
		if i == skip {
			continue
		}
		dx := x - s.x
		dy := y - s.y
		d := math.Sqrt(dx*dx + dy*dy)
		if d < 1 {
			d = 1
		}
		value += s.strength / d
	}
	return value
}
