package chart

import (
	"fmt"
	"math"
	"sort"

	"github.com/ha1tch/skychart/pkg/astro"
	"github.com/ha1tch/skychart/pkg/catalog"
	"github.com/ha1tch/skychart/pkg/graphics"
)

// Language maps legend keys (object-type codes and the h/m/s unit
// letters) to display text.
type Language map[string]string

var (
	EN = Language{
		"h": "h", "m": "m", "s": "s",
		"G":   "Galaxy",
		"OCL": "Open cluster",
		"GCL": "Globular cluster",
		"AST": "Asterism",
		"PN":  "Planetary nebula",
		"N":   "Diffuse nebula",
		"SNR": "Supernova remnant",
		"PG":  "Part of external galaxy",
	}

	NL = Language{
		"h": "u", "m": "m", "s": "s",
		"G":   "Sterrenstelsel",
		"OCL": "Open sterrenhoop",
		"GCL": "Bolhoop",
		"AST": "Groepje sterren",
		"PN":  "Planetaire nevel",
		"N":   "Diffuse emissienevel",
		"SNR": "Supernovarest",
		"PG":  "Deel van sterrenstelsel",
	}
)

// greekLetters maps Bayer abbreviations to the Greek letter drawn next
// to bright constellation stars.
var greekLetters = map[string]string{
	"alp": "α", "bet": "β", "gam": "γ", "del": "δ",
	"eps": "ε", "zet": "ζ", "eta": "η", "the": "θ",
	"iot": "ι", "kap": "κ", "lam": "λ", "mu": "μ",
	"nu": "ν", "xi": "ξ", "omi": "ο", "pi": "π",
	"rho": "ρ", "sig": "σ/ς", "tau": "τ", "ups": "υ",
	"phi": "φ", "chi": "χ", "psi": "ψ", "ome": "ω",
}

const (
	starsInScale    = 7
	legendMargin    = 0.47
	baseScale       = 0.98
	defaultFontSize = 2.6 // mm
	minSymbolRadius = 1.0 // mm
)

// Default line widths in millimetres per symbol class.
const (
	DefaultStarBorderLinewidth    = 0.06
	DefaultOpenClusterLinewidth   = 0.3
	DefaultDSOLinewidth           = 0.2
	DefaultLegendLinewidth        = 0.2
	DefaultConstellationLinewidth = 0.5
)

// Config is the read-only configuration of a render pass: the field of
// view, style options and limits. Zero values take defaults.
type Config struct {
	Width       float64 // map width in mm, default 200
	RACentre    float64 // radians
	DecCentre   float64 // radians
	FieldRadius float64 // radians, required

	LimitingMag       float64 // faintest star drawn, default 13.8
	DeepskyLabelLimit float64 // faintest deep-sky object labelled, default 15

	Caption       string
	MirrorX       bool
	MirrorY       bool
	ShowDSOLegend bool
	Language      Language

	StarBorderLinewidth    float64
	OpenClusterLinewidth   float64
	DSOLinewidth           float64
	LegendLinewidth        float64
	ConstellationLinewidth float64
}

func (c *Config) applyDefaults() {
	if c.Width <= 0 {
		c.Width = 200
	}
	if c.LimitingMag == 0 {
		c.LimitingMag = 13.8
	}
	if c.DeepskyLabelLimit == 0 {
		c.DeepskyLabelLimit = 15
	}
	if c.Language == nil {
		c.Language = EN
	}
	if c.StarBorderLinewidth == 0 {
		c.StarBorderLinewidth = DefaultStarBorderLinewidth
	}
	if c.OpenClusterLinewidth == 0 {
		c.OpenClusterLinewidth = DefaultOpenClusterLinewidth
	}
	if c.DSOLinewidth == 0 {
		c.DSOLinewidth = DefaultDSOLinewidth
	}
	if c.LegendLinewidth == 0 {
		c.LegendLinewidth = DefaultLegendLinewidth
	}
	if c.ConstellationLinewidth == 0 {
		c.ConstellationLinewidth = DefaultConstellationLinewidth
	}
}

// DrawingScale returns the linear map scale in millimetres per radian.
func (c *Config) DrawingScale() float64 {
	return baseScale * c.Width / 2 / math.Sin(c.FieldRadius)
}

// FieldRadiusMM returns the radius of the drawn field in millimetres.
func (c *Config) FieldRadiusMM() float64 {
	return c.DrawingScale() * math.Sin(c.FieldRadius)
}

// LegendFontSize returns the font size used for legend text, scaled to
// the drawing width.
func (c *Config) LegendFontSize() float64 {
	return defaultFontSize * c.Width / 100
}

// CanvasHeight returns the required canvas height: square, plus a
// caption strip when a caption is set.
func (c *Config) CanvasHeight() float64 {
	w := c.Width
	if w <= 0 {
		w = 200
	}
	if c.Caption == "" {
		return w
	}
	return w + 2*defaultFontSize*w/100
}

// ExtraObject is a position outside the catalogs marked on the chart
// with the unknown-object symbol and a fixed label slot.
type ExtraObject struct {
	RA, Dec  float64
	Label    string
	LabelPos int
}

// Engine renders one field of view onto a drawing surface. The
// configuration is fixed at construction; all per-pass mutable state
// (the repulsion field, the mirrored surface) lives inside MakeMap.
type Engine struct {
	cfg   Config
	g     graphics.Graphics
	mg    graphics.Graphics
	scale float64
}

// New creates an engine drawing on g. The surface should have been
// created with cfg.Width and cfg.CanvasHeight dimensions.
func New(g graphics.Graphics, cfg Config) (*Engine, error) {
	cfg.applyDefaults()
	if cfg.FieldRadius <= 0 {
		return nil, fmt.Errorf("chart: field radius must be positive, got %g", cfg.FieldRadius)
	}
	e := &Engine{
		cfg:   cfg,
		g:     g,
		scale: cfg.DrawingScale(),
	}
	e.mg = g
	if cfg.MirrorX || cfg.MirrorY {
		e.mg = graphics.NewMirror(g, cfg.MirrorX, cfg.MirrorY)
	}
	return e, nil
}

func (e *Engine) fieldRadiusMM() float64 { return e.cfg.FieldRadiusMM() }

// project maps an equatorial position to map millimetres. RA grows to
// the left, as on a chart seen from inside the celestial sphere.
func (e *Engine) project(ra, dec float64) (x, y float64) {
	l, m := astro.RadecToLM(ra, dec, e.cfg.RACentre, e.cfg.DecCentre)
	return -l * e.scale, m * e.scale
}

// MakeMap runs one full render pass: constellations, then deep-sky
// objects, extra positions and stars inside the clipped map area,
// followed by caption and legend. Any nil catalog is skipped. Errors
// from the drawing surface are fatal to the pass.
func (e *Engine) MakeMap(stars *catalog.StarCatalog, deepsky *catalog.DeepSkyCatalog,
	constell *catalog.ConstellationCatalog, extra []ExtraObject) error {

	g := e.g
	g.SetPenRGB(0, 0, 0)
	g.SetFillRGB(0, 0, 0)
	g.SetFont(defaultFontSize)
	g.SetLinewidth(e.cfg.LegendLinewidth)

	r := e.fieldRadiusMM()

	magScale := NewMagScale(e.cfg.LimitingMag, starsInScale, e.cfg.LegendFontSize(),
		e.cfg.StarBorderLinewidth, e.cfg.LegendLinewidth)
	mapScale := NewMapScale(e.scale, e.cfg.Width/3, e.cfg.LegendFontSize(), e.cfg.LegendLinewidth)

	magW, magH := magScale.Size()
	mapW, mapH := mapScale.Size()

	// Clip the map to the field square minus the two widget boxes in
	// the bottom corners.
	g.ClipPath([]graphics.Point{
		{X: r, Y: r},
		{X: r, Y: -r + mapH},
		{X: r - mapW, Y: -r + mapH},
		{X: r - mapW, Y: -r},
		{X: -r + magW, Y: -r},
		{X: -r + magW, Y: -r + magH},
		{X: -r, Y: -r + magH},
		{X: -r, Y: r},
	})

	if constell != nil {
		e.drawConstellations(constell)
	}
	if deepsky != nil {
		e.drawDeepSkyObjects(deepsky)
	}
	if len(extra) > 0 {
		e.drawExtraObjects(extra)
	}
	if stars != nil {
		e.drawStars(stars)
	}

	g.ResetClip()

	e.drawCaption()
	e.drawLegend(magScale, mapScale)
	if e.cfg.ShowDSOLegend {
		e.drawDSOLegend()
	}

	return g.Finish()
}

// SelectLabelPos picks the candidate whose centre sees the lowest field
// potential, ignoring the seeded symbol at index own (-1 for none); the
// first minimal index wins ties, so results are deterministic for a
// fixed catalog order.
func SelectLabelPos(p *LabelPotential, own int, cands []LabelCandidate) int {
	best := 0
	bestPot := math.Inf(1)
	for i, c := range cands {
		if v := p.PotentialExcept(own, c.Centre.X, c.Centre.Y); v < bestPot {
			bestPot = v
			best = i
		}
	}
	return best
}

func (e *Engine) drawDeepSkyObjects(cat *catalog.DeepSkyCatalog) {
	objects := cat.Select(e.cfg.RACentre, e.cfg.DecCentre, e.cfg.FieldRadius)
	sort.SliceStable(objects, func(i, j int) bool { return objects[i].Mag < objects[j].Mag })

	// First full pass: project and seed every symbol before any label
	// is scored, so labels avoid symbols drawn later too.
	seeds := make([]SymbolFootprint, len(objects))
	for i, o := range objects {
		x, y := e.project(o.RA, o.Dec)
		rlong := o.RLong * e.scale
		if o.Type == catalog.TypeGalaxyCluster {
			rlong = minSymbolRadius
		}
		if rlong < minSymbolRadius {
			rlong = minSymbolRadius
		}
		seeds[i] = SymbolFootprint{X: x, Y: y, Radius: rlong}
	}
	pot := NewLabelPotential(e.fieldRadiusMM(), seeds)

	for i, o := range objects {
		x, y := seeds[i].X, seeds[i].Y
		rlong := o.RLong * e.scale
		rshort := o.RShort * e.scale
		posangle := o.PosAngle +
			astro.DirectionDDec(o.RA, o.Dec, e.cfg.RACentre, e.cfg.DecCentre) + 0.5*math.Pi

		if rlong <= minSymbolRadius {
			if rlong > 0 {
				rshort *= minSymbolRadius / rlong
			}
			rlong = minSymbolRadius
		}
		if o.Type == catalog.TypeGalaxyCluster {
			rlong = minSymbolRadius / 3
		}

		label := o.Label()
		if o.Messier == 0 && o.Mag > e.cfg.DeepskyLabelLimit {
			label = ""
		}

		// Objects without a label bypass the placement pipeline
		// entirely; the field is not touched.
		labelpos := -1
		if label != "" {
			width := e.g.TextWidth(label)
			cands := e.labelCandidates(o.Type, x, y, rlong, rshort, posangle, width)
			labelpos = SelectLabelPos(pot, i, cands)
			centre := cands[labelpos].Centre
			pot.AddPosition(centre.X, centre.Y, width)
		}

		e.drawObject(o.Type, x, y, rlong, rshort, posangle, label, labelpos)
	}
}

func (e *Engine) labelCandidates(t catalog.ObjectType, x, y, rlong, rshort, posangle, width float64) []LabelCandidate {
	fh := e.g.FontSize()
	switch t {
	case catalog.TypeGalaxy:
		return GalaxyLabelPos(x, y, rlong, rshort, posangle, fh, width)
	case catalog.TypeDiffuseNebula:
		return DiffuseNebulaLabelPos(x, y, 2*rlong, fh, width)
	case catalog.TypePlanetaryNebula, catalog.TypeOpenCluster,
		catalog.TypeGlobularCluster, catalog.TypeSupernovaRemnant:
		return CircularLabelPos(x, y, rlong, fh, width)
	case catalog.TypeAsterism:
		return AsterismLabelPos(x, y, rlong, fh, width)
	case catalog.TypeGalaxyCluster, catalog.TypeUnknown:
		return UnknownLabelPos(x, y, rlong, fh, width)
	}
	return UnknownLabelPos(x, y, rlong, fh, width)
}

func (e *Engine) drawObject(t catalog.ObjectType, x, y, rlong, rshort, posangle float64, label string, labelpos int) {
	switch t {
	case catalog.TypeGalaxy:
		e.galaxy(x, y, rlong, rshort, posangle, label, labelpos)
	case catalog.TypeDiffuseNebula:
		e.diffuseNebula(x, y, 2*rlong, label, labelpos)
	case catalog.TypePlanetaryNebula:
		e.planetaryNebula(x, y, rlong, label, labelpos)
	case catalog.TypeOpenCluster:
		e.openCluster(x, y, rlong, label, labelpos)
	case catalog.TypeGlobularCluster:
		e.globularCluster(x, y, rlong, label, labelpos)
	case catalog.TypeAsterism:
		e.asterism(x, y, rlong, label, labelpos)
	case catalog.TypeSupernovaRemnant:
		e.supernovaRemnant(x, y, rlong, label, labelpos)
	case catalog.TypeGalaxyCluster, catalog.TypeUnknown:
		e.unknownObject(x, y, rlong, label, labelpos)
	default:
		e.unknownObject(x, y, rlong, label, labelpos)
	}
}

func (e *Engine) drawExtraObjects(extra []ExtraObject) {
	for _, o := range extra {
		if astro.AngularDistance(o.RA, o.Dec, e.cfg.RACentre, e.cfg.DecCentre) < e.cfg.FieldRadius {
			x, y := e.project(o.RA, o.Dec)
			e.unknownObject(x, y, minSymbolRadius, o.Label, o.LabelPos)
		}
	}
}

func (e *Engine) drawStars(cat *catalog.StarCatalog) {
	selection := cat.Select(e.cfg.RACentre, e.cfg.DecCentre, e.cfg.FieldRadius, e.cfg.LimitingMag)
	sort.SliceStable(selection, func(i, j int) bool { return selection[i].Mag < selection[j].Mag })

	e.mg.SetLinewidth(e.cfg.StarBorderLinewidth)
	e.mg.SetPenRGB(1, 1, 1)
	e.mg.SetFillRGB(0, 0, 0)
	for _, s := range selection {
		x, y := e.project(s.RA, s.Dec)
		e.star(x, y, MagnitudeToRadius(e.cfg.LimitingMag, s.Mag))
	}
	e.mg.SetPenRGB(0, 0, 0)
}

func (e *Engine) drawConstellations(cat *catalog.ConstellationCatalog) {
	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.ConstellationLinewidth)
	e.mg.SetFont(1.3 * e.mg.FontSize())

	// One Greek letter per constellation and designation.
	printed := map[string]map[string]bool{}
	for _, s := range cat.BrightStars {
		if s.Greek == "" || math.Abs(s.RA-e.cfg.RACentre) > math.Pi/2 {
			continue
		}
		set := printed[s.Constellation]
		if set == nil {
			set = map[string]bool{}
			printed[s.Constellation] = set
		}
		if set[s.Greek] {
			continue
		}
		set[s.Greek] = true

		letter, ok := greekLetters[s.Greek]
		if !ok {
			continue
		}
		x, y := e.project(s.RA, s.Dec)
		r := MagnitudeToRadius(e.cfg.LimitingMag, s.Mag)
		e.drawCircularLabel(x, y, r, letter, posBelow)
	}
	e.mg.Restore()

	e.mg.Save()
	e.mg.SetLinewidth(e.cfg.ConstellationLinewidth)
	e.mg.SetPenRGB(0.2, 0.7, 1.0)
	for _, c := range cat.Constellations {
		for _, line := range c.Lines {
			s1 := cat.BrightStars[line[0]-1]
			s2 := cat.BrightStars[line[1]-1]
			// The sin projection folds the far hemisphere onto the
			// near one; skip segments reaching across.
			if math.Abs(s1.RA-e.cfg.RACentre) > math.Pi/2 || math.Abs(s2.RA-e.cfg.RACentre) > math.Pi/2 {
				continue
			}
			x1, y1 := e.project(s1.RA, s1.Dec)
			x2, y2 := e.project(s2.RA, s2.Dec)
			e.mg.Line(x1, y1, x2, y2)
		}
	}
	e.mg.Restore()
}

func (e *Engine) drawCaption() {
	if e.cfg.Caption == "" {
		return
	}
	g := e.g
	g.Save()
	fs := e.cfg.LegendFontSize()
	g.SetFont(2 * fs)
	g.TextCentred(0, e.cfg.Width/2*baseScale+fs, e.cfg.Caption)
	g.Restore()
}

func (e *Engine) drawFieldBorder() {
	g := e.g
	g.SetLinewidth(e.cfg.LegendLinewidth)
	r := e.fieldRadiusMM()
	g.Line(-r, -r, -r, r)
	g.Line(-r, r, r, r)
	g.Line(r, r, r, -r)
	g.Line(r, -r, -r, -r)
}

func (e *Engine) drawLegend(magScale *MagScale, mapScale *MapScale) {
	g := e.g
	fs := e.cfg.LegendFontSize()
	g.SetFont(fs)

	r := e.fieldRadiusMM()
	magScale.Draw(g, -r, -r)
	mapScale.Draw(g, r, -r)

	e.drawFieldBorder()

	// Orientation cross in the upper left corner.
	dl := 0.02 * e.cfg.Width
	x := -r + dl + 0.2*fs
	y := r - dl - fs*1.3
	yCaption := "N"
	if e.cfg.MirrorY {
		yCaption = "S"
	}
	g.TextCentred(x, y+dl+0.65*fs, yCaption)
	xCaption := "W"
	if e.cfg.MirrorX {
		xCaption = "E"
	}
	g.TextRight(x+dl+fs/6, y-fs/3, xCaption)
	g.Line(x-dl, y, x+dl, y)
	g.Line(x, y-dl, x, y+dl)

	e.drawCoordinates(r-fs/2, r-fs)
}

// drawCoordinates writes the field centre position in the upper right
// corner, in h/m/s and degree notation.
func (e *Engine) drawCoordinates(x, y float64) {
	lang := e.cfg.Language
	h, m, s := astro.RAToHMS(e.cfg.RACentre)
	neg, dd, dm, ds := astro.DecToDMS(e.cfg.DecCentre)
	sign := "+"
	if neg {
		sign = "-"
	}
	text := fmt.Sprintf("%2d%s%d%s%d%s %s%d°%d'%d\"",
		h, lang["h"], m, lang["m"], s, lang["s"], sign, dd, dm, ds)
	e.g.TextLeft(x, y, text)
}

// drawDSOLegend lists the deep-sky symbol types with their translated
// names, longest names first, split over the two right corners.
func (e *Engine) drawDSOLegend() {
	// Legend corners are fixed on the page; draw the sample symbols
	// past the mirror.
	saved := e.mg
	e.mg = e.g
	defer func() { e.mg = saved }()

	g := e.g
	fh := g.FontSize()
	legendX := 0.48 * e.cfg.Width
	legendY := 0.49 * e.cfg.Width
	r := fh / 3
	textOffset := -2.5 * r

	name := func(t catalog.ObjectType) string { return e.cfg.Language[t.String()] }

	byNameLen := func(types []catalog.ObjectType) []catalog.ObjectType {
		out := append([]catalog.ObjectType(nil), types...)
		sort.SliceStable(out, func(i, j int) bool {
			return len(name(out[i])) > len(name(out[j]))
		})
		return out
	}

	top := byNameLen([]catalog.ObjectType{
		catalog.TypeOpenCluster, catalog.TypeAsterism,
		catalog.TypeGalaxy, catalog.TypeGlobularCluster,
	})
	for i, t := range top {
		y := legendY - float64(i+1)*fh
		e.drawLegendSymbol(t, legendX, y, r)
		g.TextLeft(legendX+textOffset, y-fh/3, name(t))
	}

	bottom := byNameLen([]catalog.ObjectType{
		catalog.TypeSupernovaRemnant, catalog.TypeDiffuseNebula,
		catalog.TypePlanetaryNebula, catalog.TypeUnknown,
	})
	baseY := legendMargin * e.cfg.Width
	for i, t := range bottom {
		// Longest names end up furthest from the corner.
		y := -baseY + float64(len(bottom)-1-i)*fh
		e.drawLegendSymbol(t, legendX, y, r)
		g.TextLeft(legendX+textOffset, y-fh/3, name(t))
	}
}

func (e *Engine) drawLegendSymbol(t catalog.ObjectType, x, y, r float64) {
	switch t {
	case catalog.TypeGalaxy:
		e.galaxy(x, y, r, r/2, 0, "", -1)
	case catalog.TypeDiffuseNebula:
		e.diffuseNebula(x, y, 2*r, "", -1)
	case catalog.TypePlanetaryNebula:
		e.planetaryNebula(x, y, r, "", -1)
	case catalog.TypeOpenCluster:
		e.openCluster(x, y, r, "", -1)
	case catalog.TypeGlobularCluster:
		e.globularCluster(x, y, r, "", -1)
	case catalog.TypeAsterism:
		e.asterism(x, y, r, "", -1)
	case catalog.TypeSupernovaRemnant:
		e.supernovaRemnant(x, y, r, "", -1)
	default:
		e.unknownObject(x, y, r, "", -1)
	}
}
