package graphics

import (
	"bytes"
	"strings"
	"testing"
)

// recorder captures primitive calls for assertions.
type recorder struct {
	lines   [][4]float64
	circles [][3]float64
	texts   []struct {
		x, y   float64
		s      string
		anchor string
	}
	fontSize float64
	lw       float64
}

func (r *recorder) Width() float64             { return 200 }
func (r *recorder) Height() float64            { return 200 }
func (r *recorder) FontSize() float64          { return r.fontSize }
func (r *recorder) LineWidth() float64         { return r.lw }
func (r *recorder) SetFont(s float64)          { r.fontSize = s }
func (r *recorder) SetLinewidth(w float64)     { r.lw = w }
func (r *recorder) SetSolidLine()              {}
func (r *recorder) SetDashedLine(a, b float64) {}
func (r *recorder) SetPenRGB(a, b, c float64)  {}
func (r *recorder) SetFillRGB(a, b, c float64) {}

func (r *recorder) Line(x1, y1, x2, y2 float64) {
	r.lines = append(r.lines, [4]float64{x1, y1, x2, y2})
}

func (r *recorder) Circle(x, y, rad float64, mode DrawMode) {
	r.circles = append(r.circles, [3]float64{x, y, rad})
}

func (r *recorder) Ellipse(x, y, rl, rs, pa float64) {}

func (r *recorder) Rectangle(x, y, w, h float64, m DrawMode) {}

func (r *recorder) text(x, y float64, s, anchor string) {
	r.texts = append(r.texts, struct {
		x, y   float64
		s      string
		anchor string
	}{x, y, s, anchor})
}

func (r *recorder) TextRight(x, y float64, s string)   { r.text(x, y, s, "right") }
func (r *recorder) TextLeft(x, y float64, s string)    { r.text(x, y, s, "left") }
func (r *recorder) TextCentred(x, y float64, s string) { r.text(x, y, s, "centre") }
func (r *recorder) TextWidth(s string) float64         { return float64(len(s)) }
func (r *recorder) Save()                              {}
func (r *recorder) Restore()                           {}
func (r *recorder) ClipPath(pts []Point)               {}
func (r *recorder) ResetClip()                         {}
func (r *recorder) Finish() error                      { return nil }

func TestMirrorFlipsCoordinates(t *testing.T) {
	rec := &recorder{}
	m := NewMirror(rec, true, false)

	m.Line(1, 2, 3, 4)
	if got := rec.lines[0]; got != [4]float64{-1, 2, -3, 4} {
		t.Errorf("mirror-x line: got %v", got)
	}

	m.Circle(5, -6, 2, Stroke)
	if got := rec.circles[0]; got != [3]float64{-5, -6, 2} {
		t.Errorf("mirror-x circle: got %v", got)
	}
}

func TestMirrorSwapsTextAlignment(t *testing.T) {
	rec := &recorder{}
	m := NewMirror(rec, true, false)

	m.TextRight(10, 0, "abc")
	m.TextLeft(10, 0, "def")
	m.TextCentred(10, 0, "ghi")

	if rec.texts[0].anchor != "left" || rec.texts[0].x != -10 {
		t.Errorf("TextRight under mirror-x: got %+v", rec.texts[0])
	}
	if rec.texts[1].anchor != "right" {
		t.Errorf("TextLeft under mirror-x: got %+v", rec.texts[1])
	}
	if rec.texts[2].anchor != "centre" {
		t.Errorf("TextCentred must keep its anchor: got %+v", rec.texts[2])
	}
}

func TestMirrorNoFlipIsIdentity(t *testing.T) {
	rec := &recorder{}
	m := NewMirror(rec, false, false)
	m.Line(1, 2, 3, 4)
	if got := rec.lines[0]; got != [4]float64{1, 2, 3, 4} {
		t.Errorf("identity mirror altered a line: %v", got)
	}
}

func TestSVGOutput(t *testing.T) {
	var buf bytes.Buffer
	c := NewSVG(&buf, 200, 200, 8)

	c.SetLinewidth(0.3)
	c.Line(-10, 0, 10, 0)
	c.Circle(0, 0, 5, Stroke)
	c.TextCentred(0, -10, "M 31")
	if err := c.Finish(); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"<svg", "<line", "<circle", "M 31", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestSVGSaveRestore(t *testing.T) {
	var buf bytes.Buffer
	c := NewSVG(&buf, 200, 200, 8)

	c.SetLinewidth(0.5)
	c.Save()
	c.SetLinewidth(1.5)
	c.SetFont(4.0)
	c.Restore()

	if c.LineWidth() != 0.5 {
		t.Errorf("line width not restored: %g", c.LineWidth())
	}
	if c.FontSize() == 4.0 {
		t.Errorf("font size not restored: %g", c.FontSize())
	}
}
