package chart

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/ha1tch/skychart/pkg/catalog"
	"github.com/ha1tch/skychart/pkg/graphics"
)

type canvasOp struct {
	kind string
	args []float64
	text string
}

// fakeCanvas records every drawing call so tests can assert on the
// emitted primitives without a real backend.
type fakeCanvas struct {
	ops      []canvasOp
	fontSize float64
	lw       float64
	stack    []float64
	finished bool
}

func newFakeCanvas() *fakeCanvas { return &fakeCanvas{fontSize: defaultFontSize} }

func (f *fakeCanvas) record(kind string, args ...float64) {
	f.ops = append(f.ops, canvasOp{kind: kind, args: args})
}

func (f *fakeCanvas) Width() float64 { return 200 }

func (f *fakeCanvas) Height() float64 { return 200 }

func (f *fakeCanvas) FontSize() float64 { return f.fontSize }

func (f *fakeCanvas) LineWidth() float64 { return f.lw }

func (f *fakeCanvas) SetFont(size float64) { f.fontSize = size }

func (f *fakeCanvas) SetLinewidth(width float64) { f.lw = width }

func (f *fakeCanvas) SetSolidLine() {}

func (f *fakeCanvas) SetDashedLine(on, off float64) { f.record("dash", on, off) }

func (f *fakeCanvas) SetPenRGB(r, g, b float64) {}

func (f *fakeCanvas) SetFillRGB(r, g, b float64) {}

func (f *fakeCanvas) Line(x1, y1, x2, y2 float64) { f.record("line", x1, y1, x2, y2) }
func (f *fakeCanvas) Circle(x, y, r float64, mode graphics.DrawMode) {
	f.record("circle", x, y, r, float64(mode))
}
func (f *fakeCanvas) Ellipse(x, y, rlong, rshort, posangle float64) {
	f.record("ellipse", x, y, rlong, rshort, posangle)
}
func (f *fakeCanvas) Rectangle(x, y, w, h float64, mode graphics.DrawMode) {
	f.record("rect", x, y, w, h, float64(mode))
}

func (f *fakeCanvas) text(kind string, x, y float64, s string) {
	f.ops = append(f.ops, canvasOp{kind: kind, args: []float64{x, y}, text: s})
}

func (f *fakeCanvas) TextRight(x, y float64, s string) { f.text("textright", x, y, s) }

func (f *fakeCanvas) TextLeft(x, y float64, s string) { f.text("textleft", x, y, s) }

func (f *fakeCanvas) TextCentred(x, y float64, s string) { f.text("textcentred", x, y, s) }

func (f *fakeCanvas) TextWidth(s string) float64 {
	return 0.6 * f.fontSize * float64(len([]rune(s)))
}

func (f *fakeCanvas) Save() { f.stack = append(f.stack, f.fontSize, f.lw) }

func (f *fakeCanvas) Restore() {
	n := len(f.stack)
	f.fontSize, f.lw = f.stack[n-2], f.stack[n-1]
	f.stack = f.stack[:n-2]
}

func (f *fakeCanvas) ClipPath(pts []graphics.Point) { f.record("clip", float64(len(pts))) }

func (f *fakeCanvas) ResetClip() { f.record("resetclip") }

func (f *fakeCanvas) Finish() error { f.finished = true; return nil }

func (f *fakeCanvas) findText(substr string) *canvasOp {
	for i := range f.ops {
		if f.ops[i].text != "" && strings.Contains(f.ops[i].text, substr) {
			return &f.ops[i]
		}
	}
	return nil
}

func testConfig() Config {
	return Config{
		Width:       200,
		RACentre:    0.1866, // roughly 0h42.7m
		DecCentre:   0.7202, // roughly +41°16'
		FieldRadius: 7 * math.Pi / 180,
	}
}

func TestMakeMapGalaxyAtCentre(t *testing.T) {
	cfg := testConfig()
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	// Position angles pick up a +pi/2 map-frame rotation; -pi/2 in the
	// catalog cancels it, so the ellipse and its slot-0 anchor stay
	// axis-aligned and the label geometry can be asserted directly.
	dso := &catalog.DeepSkyCatalog{Objects: []catalog.DeepSkyObject{{
		RA: cfg.RACentre, Dec: cfg.DecCentre,
		Type:  catalog.TypeGalaxy,
		RLong: 0.01, RShort: 0.005,
		PosAngle: -math.Pi / 2,
		Mag:      3.4, Messier: 31,
	}}}

	if err := e.MakeMap(nil, dso, nil, nil); err != nil {
		t.Fatal(err)
	}
	if !f.finished {
		t.Error("Finish was not called")
	}

	var ell *canvasOp
	for i := range f.ops {
		if f.ops[i].kind == "ellipse" {
			ell = &f.ops[i]
			break
		}
	}
	if ell == nil {
		t.Fatal("no ellipse drawn for a galaxy")
	}
	if math.Abs(ell.args[0]) > 1e-9 || math.Abs(ell.args[1]) > 1e-9 {
		t.Errorf("galaxy at the field centre drawn at (%g,%g), want (0,0)", ell.args[0], ell.args[1])
	}
	if want := 0.01 * cfg.DrawingScale(); math.Abs(ell.args[2]-want) > 1e-6 {
		t.Errorf("galaxy semi-major axis = %g mm, want %g", ell.args[2], want)
	}
	if math.Abs(ell.args[4]) > 1e-9 {
		t.Errorf("galaxy position angle = %g rad, want 0", ell.args[4])
	}

	// The field holds nothing but the galaxy itself, so its label sees
	// a uniformly zero potential and slot 0 (below) wins the tie.
	label := f.findText("M 31")
	if label == nil {
		t.Fatal("label M 31 was not drawn")
	}
	if label.kind != "textcentred" {
		t.Errorf("label drawn as %s, want textcentred", label.kind)
	}
	if math.Abs(label.args[0]) > 1e-9 || label.args[1] >= 0 {
		t.Errorf("label at (%g,%g), want centred below the symbol", label.args[0], label.args[1])
	}
}

func TestMakeMapSkipsFaintUnlabelledObjects(t *testing.T) {
	cfg := testConfig()
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	dso := &catalog.DeepSkyCatalog{Objects: []catalog.DeepSkyObject{{
		RA: cfg.RACentre, Dec: cfg.DecCentre,
		Type:  catalog.TypeGalaxy,
		RLong: 0.001, RShort: 0.0005,
		Mag: 16.5,
		Cat: "NGC", Names: []string{"7331"},
	}}}

	if err := e.MakeMap(nil, dso, nil, nil); err != nil {
		t.Fatal(err)
	}
	if f.findText("7331") != nil {
		t.Error("object fainter than the label limit should stay unlabelled")
	}
	found := false
	for _, op := range f.ops {
		if op.kind == "ellipse" {
			found = true
		}
	}
	if !found {
		t.Error("unlabelled object should still be drawn")
	}
}

func TestMakeMapDeterministic(t *testing.T) {
	cfg := testConfig()
	dso := &catalog.DeepSkyCatalog{Objects: []catalog.DeepSkyObject{
		{RA: cfg.RACentre + 0.01, Dec: cfg.DecCentre, Type: catalog.TypeOpenCluster,
			RLong: 0.004, Mag: 6.1, Cat: "NGC", Names: []string{"752"}},
		{RA: cfg.RACentre, Dec: cfg.DecCentre, Type: catalog.TypeGalaxy,
			RLong: 0.01, RShort: 0.005, Mag: 3.4, Messier: 31},
		{RA: cfg.RACentre - 0.02, Dec: cfg.DecCentre + 0.01, Type: catalog.TypeGlobularCluster,
			RLong: 0.002, Mag: 8.2, Cat: "NGC", Names: []string{"404"}},
	}}
	stars := &catalog.StarCatalog{Stars: []catalog.Star{
		{RA: cfg.RACentre + 0.005, Dec: cfg.DecCentre - 0.003, Mag: 4.5},
		{RA: cfg.RACentre - 0.004, Dec: cfg.DecCentre + 0.006, Mag: 7.1},
	}}

	render := func() []canvasOp {
		f := newFakeCanvas()
		e, err := New(f, cfg)
		if err != nil {
			t.Fatal(err)
		}
		if err := e.MakeMap(stars, dso, nil, nil); err != nil {
			t.Fatal(err)
		}
		return f.ops
	}

	first := render()
	second := render()
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different drawing sequences")
	}
}

func TestMakeMapCaption(t *testing.T) {
	cfg := testConfig()
	cfg.Caption = "Andromeda"
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.MakeMap(nil, nil, nil, nil); err != nil {
		t.Fatal(err)
	}

	op := f.findText("Andromeda")
	if op == nil {
		t.Fatal("caption was not drawn")
	}
	if op.kind != "textcentred" || op.args[0] != 0 {
		t.Errorf("caption should be centred on x=0, got %s at x=%g", op.kind, op.args[0])
	}
	if op.args[1] <= cfg.FieldRadiusMM() {
		t.Errorf("caption y = %g, want above the field border %g", op.args[1], cfg.FieldRadiusMM())
	}
}

func TestMakeMapExtraObjects(t *testing.T) {
	cfg := testConfig()
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	extra := []ExtraObject{
		{RA: cfg.RACentre, Dec: cfg.DecCentre, Label: "SN 2026x", LabelPos: posBelow},
		{RA: cfg.RACentre + math.Pi, Dec: -cfg.DecCentre, Label: "far away"},
	}
	if err := e.MakeMap(nil, nil, nil, extra); err != nil {
		t.Fatal(err)
	}

	if f.findText("SN 2026x") == nil {
		t.Error("extra object inside the field was not labelled")
	}
	if f.findText("far away") != nil {
		t.Error("extra object outside the field should be skipped")
	}
}

func TestMakeMapConstellations(t *testing.T) {
	cfg := testConfig()
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}

	constell := &catalog.ConstellationCatalog{
		BrightStars: []catalog.Star{
			{RA: cfg.RACentre + 0.01, Dec: cfg.DecCentre, Mag: 2.1, Greek: "alp", Constellation: "And"},
			{RA: cfg.RACentre - 0.01, Dec: cfg.DecCentre + 0.01, Mag: 3.0, Greek: "bet", Constellation: "And"},
			{RA: cfg.RACentre + math.Pi, Dec: -cfg.DecCentre, Mag: 2.5, Greek: "gam", Constellation: "Oct"},
		},
		Constellations: []catalog.Constellation{
			{Name: "And", Lines: [][2]int{{1, 2}}},
			{Name: "Oct", Lines: [][2]int{{2, 3}}},
		},
	}
	if err := e.MakeMap(nil, nil, constell, nil); err != nil {
		t.Fatal(err)
	}

	if f.findText("α") == nil || f.findText("β") == nil {
		t.Error("Greek letters for bright stars in the field were not drawn")
	}
	if f.findText("γ") != nil {
		t.Error("star in the far hemisphere should not be lettered")
	}
}

func TestSelectLabelPosAvoidsCrowdedSlots(t *testing.T) {
	cands := CircularLabelPos(0, 0, 4, 2.6, 8)

	// Pin a source on the centres of slots 1..3; the untouched slot 0
	// must win.
	p := NewLabelPotential(100, nil)
	for _, i := range []int{posAbove, posLeft, posRight} {
		p.AddPosition(cands[i].Centre.X, cands[i].Centre.Y, 10)
	}
	if got := SelectLabelPos(p, -1, cands); got != posBelow {
		t.Errorf("selected slot %d, want %d", got, posBelow)
	}
}

func TestSelectLabelPosTieBreaksToFirst(t *testing.T) {
	cands := CircularLabelPos(0, 0, 4, 2.6, 8)
	p := NewLabelPotential(100, nil)
	if got := SelectLabelPos(p, -1, cands); got != 0 {
		t.Errorf("empty field should pick slot 0, got %d", got)
	}
}

func TestSelectLabelPosIgnoresOwnSeed(t *testing.T) {
	// A lone symbol sees a uniformly zero field once its own seed is
	// excluded, so slot 0 wins the tie.
	p := NewLabelPotential(100, []SymbolFootprint{{X: 0, Y: 0, Radius: 4}})
	cands := CircularLabelPos(0, 0, 4, 2.6, 8)
	if got := SelectLabelPos(p, 0, cands); got != posBelow {
		t.Errorf("selected slot %d, want %d", got, posBelow)
	}
}

func TestMagnitudeToRadius(t *testing.T) {
	if got, want := MagnitudeToRadius(10, 8), 0.15*1.33*1.33; math.Abs(got-want) > 1e-9 {
		t.Errorf("MagnitudeToRadius(10, 8) = %g, want %g", got, want)
	}
	prev := 0.0
	for mag := 13.0; mag >= 0; mag-- {
		r := MagnitudeToRadius(13.8, mag)
		if r <= prev {
			t.Errorf("radius at mag %g is %g, want greater than %g", mag, r, prev)
		}
		prev = r
	}
}

func TestStarRoundsGeometry(t *testing.T) {
	cfg := testConfig()
	f := newFakeCanvas()
	e, err := New(f, cfg)
	if err != nil {
		t.Fatal(err)
	}
	e.mg.SetLinewidth(0.06)

	// Coordinates and the border-padded radius snap to two decimals.
	e.star(1.234567, 2.345678, 0.15*1.33*1.33)
	var circ *canvasOp
	for i := range f.ops {
		if f.ops[i].kind == "circle" {
			circ = &f.ops[i]
			break
		}
	}
	if circ == nil {
		t.Fatal("no circle drawn")
	}
	want := []float64{1.23, 2.35, 0.3}
	for i, w := range want {
		if math.Abs(circ.args[i]-w) > 1e-9 {
			t.Errorf("circle arg %d = %g, want %g", i, circ.args[i], w)
		}
	}
}

func TestConfigDerived(t *testing.T) {
	cfg := testConfig()
	wantScale := baseScale * cfg.Width / 2 / math.Sin(cfg.FieldRadius)
	if got := cfg.DrawingScale(); math.Abs(got-wantScale) > 1e-9 {
		t.Errorf("DrawingScale = %g, want %g", got, wantScale)
	}
	if got := cfg.LegendFontSize(); math.Abs(got-5.2) > 1e-9 {
		t.Errorf("LegendFontSize = %g, want 5.2", got)
	}
	if got := cfg.CanvasHeight(); got != cfg.Width {
		t.Errorf("CanvasHeight without caption = %g, want %g", got, cfg.Width)
	}
	cfg.Caption = "x"
	if got := cfg.CanvasHeight(); math.Abs(got-(cfg.Width+2*5.2)) > 1e-9 {
		t.Errorf("CanvasHeight with caption = %g, want %g", got, cfg.Width+2*5.2)
	}
}

func TestNewRejectsBadField(t *testing.T) {
	if _, err := New(newFakeCanvas(), Config{Width: 200}); err == nil {
		t.Error("expected an error for a zero field radius")
	}
}
