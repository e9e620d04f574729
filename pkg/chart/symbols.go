package chart

import (
	"math"

	"github.com/ha1tch/skychart/pkg/graphics"
)

// MagnitudeToRadius converts a star magnitude to its drawn radius in
// millimetres: brighter stars get strictly larger dots.
func MagnitudeToRadius(limitingMag, mag float64) float64 {
	return 0.15 * math.Pow(1.33, float64(int(limitingMag))-mag)
}

// round2 rounds to two decimals; star geometry is snapped so output is
// stable across drawing backends.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (e *Engine) defaultRadius() float64 { return e.cfg.Width / 40 }

// star draws a filled circle with a pen-colored border. Pen and fill
// colors are expected to be set by the caller.
func (e *Engine) star(x, y, radius float64) {
	xx := round2(x)
	yy := round2(y)
	r := round2(radius + e.mg.LineWidth()/2)
	e.mg.Circle(xx, yy, r, graphics.FillStroke)
}

func (e *Engine) openCluster(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.defaultRadius()
	}
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.OpenClusterLinewidth)
	e.mg.SetDashedLine(0.6, 0.4)
	e.mg.Circle(x, y, r, graphics.Stroke)
	e.drawCircularLabel(x, y, r, label, labelpos)
	e.mg.Restore()
}

func (e *Engine) globularCluster(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.defaultRadius()
	}
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	e.mg.Circle(x, y, r, graphics.Stroke)
	e.mg.Line(x-r, y, x+r, y)
	e.mg.Line(x, y-r, x, y+r)
	e.drawCircularLabel(x, y, r, label, labelpos)
	e.mg.Restore()
}

func (e *Engine) planetaryNebula(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.cfg.Width / 60
	}
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	e.mg.Circle(x, y, 0.75*r, graphics.Stroke)
	e.mg.Line(x-0.75*r, y, x-1.5*r, y)
	e.mg.Line(x+0.75*r, y, x+1.5*r, y)
	e.mg.Line(x, y+0.75*r, x, y+1.5*r)
	e.mg.Line(x, y-0.75*r, x, y-1.5*r)
	e.drawCircularLabel(x, y, r, label, labelpos)
	e.mg.Restore()
}

func (e *Engine) supernovaRemnant(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.defaultRadius()
	}
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	e.mg.Circle(x, y, r-e.mg.LineWidth()/2, graphics.Stroke)
	e.drawCircularLabel(x, y, r, label, labelpos)
	e.mg.Restore()
}

// drawCircularLabel places a label against a circle's curvature at the
// slot picked by the placement selector; -1 falls back to slot 0.
func (e *Engine) drawCircularLabel(x, y, r float64, label string, labelpos int) {
	if label == "" {
		return
	}
	fh := e.mg.FontSize()
	xoff := circularLabelOffset(r, fh) + fh/6
	switch labelpos {
	case posAbove:
		e.mg.TextRight(x+xoff, y+r-fh/3, label)
	case posLeft:
		e.mg.TextLeft(x-xoff, y-r+fh/3, label)
	case posRight:
		e.mg.TextLeft(x-xoff, y+r-fh/3, label)
	default:
		e.mg.TextRight(x+xoff, y-r+fh/3, label)
	}
}

func (e *Engine) galaxy(x, y, rlong, rshort, posangle float64, label string, labelpos int) {
	rl := rlong
	rs := rshort
	if rlong <= 0 {
		rl = e.defaultRadius()
		rs = rl / 2
	} else if rshort <= 0 {
		rs = rl / 2
	}
	p := normalizePosangle(posangle)

	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	e.mg.Ellipse(x, y, rl, rs, p)
	if label != "" {
		fh := e.mg.FontSize()
		sp, cp := math.Sin(p), math.Cos(p)
		rot := func(u, v float64) (float64, float64) {
			return x + u*cp - v*sp, y + u*sp + v*cp
		}
		switch labelpos {
		case posAbove:
			lx, ly := rot(0, rs+0.5*fh)
			e.mg.TextCentred(lx, ly, label)
		case posLeft:
			lx, ly := rot(-rl-fh/6, -fh/3)
			e.mg.TextLeft(lx, ly, label)
		case posRight:
			lx, ly := rot(rl+fh/6, -fh/3)
			e.mg.TextRight(lx, ly, label)
		default:
			lx, ly := rot(0, -rs-0.5*fh)
			e.mg.TextCentred(lx, ly, label)
		}
	}
	e.mg.Restore()
}

func (e *Engine) diffuseNebula(x, y, width float64, label string, labelpos int) {
	d := width / 2
	if width <= 0 {
		d = e.defaultRadius()
	}
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	// Horizontal edges extend half a line width so corners close.
	d1 := d + e.mg.LineWidth()/2
	e.mg.Line(x-d1, y+d, x+d1, y+d)
	e.mg.Line(x+d, y+d, x+d, y-d)
	e.mg.Line(x+d1, y-d, x-d1, y-d)
	e.mg.Line(x-d, y-d, x-d, y+d)
	if label != "" {
		fh := e.mg.FontSize()
		switch labelpos {
		case posAbove:
			e.mg.TextCentred(x, y+d+fh/2, label)
		case posLeft:
			e.mg.TextLeft(x-d-fh/6, y-fh/3, label)
		case posRight:
			e.mg.TextRight(x+d+fh/6, y-fh/3, label)
		default:
			e.mg.TextCentred(x, y-d-fh/2, label)
		}
	}
	e.mg.Restore()
}

func (e *Engine) asterism(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.defaultRadius()
	}
	d := r / 2 * math.Sqrt2

	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.OpenClusterLinewidth)
	e.mg.SetDashedLine(0.6, 0.4)
	// Edge endpoints overshoot by half a line width projected on the
	// diagonal so the dashed corners meet.
	diff := e.mg.LineWidth() / 2 / math.Sqrt2
	e.mg.Line(x-diff, y+d+diff, x+d+diff, y-diff)
	e.mg.Line(x+d, y, x, y-d)
	e.mg.Line(x+diff, y-d-diff, x-d-diff, y+diff)
	e.mg.Line(x-d, y, x, y+d)
	if label != "" {
		fh := e.mg.FontSize()
		switch labelpos {
		case posAbove:
			e.mg.TextCentred(x, y+d+fh/3, label)
		case posLeft:
			e.mg.TextLeft(x-d-fh/6, y-fh/3, label)
		case posRight:
			e.mg.TextRight(x+d+fh/6, y-fh/3, label)
		default:
			e.mg.TextCentred(x, y-d-2*fh/3, label)
		}
	}
	e.mg.Restore()
}

func (e *Engine) unknownObject(x, y, radius float64, label string, labelpos int) {
	r := radius
	if radius <= 0 {
		r = e.defaultRadius()
	}
	r /= math.Sqrt2

	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.DSOLinewidth)
	e.mg.Line(x-r, y+r, x+r, y-r)
	e.mg.Line(x+r, y+r, x-r, y-r)
	if label != "" {
		fh := e.mg.FontSize()
		switch labelpos {
		case posAbove:
			e.mg.TextCentred(x, y+r+fh/2, label)
		case posLeft:
			e.mg.TextLeft(x-r-fh/6, y-fh/3, label)
		case posRight:
			e.mg.TextRight(x+r+fh/6, y-fh/3, label)
		default:
			e.mg.TextCentred(x, y-r-fh/2, label)
		}
	}
	e.mg.Restore()
}
