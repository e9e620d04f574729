package graphics

// Mirror decorates a Graphics with independent horizontal and vertical
// flips about the map origin. The flip is applied once, at the
// primitive-emission boundary, so geometry and label-candidate math
// never needs to be mirror-aware. Text alignment swaps under a
// horizontal flip so labels still extend away from their symbols.
type Mirror struct {
	g      Graphics
	sx, sy float64
}

// NewMirror wraps g. When neither flip is requested callers may use g
// directly; wrapping with both flags false is valid and a no-op.
func NewMirror(g Graphics, mirrorX, mirrorY bool) *Mirror {
	m := &Mirror{g: g, sx: 1, sy: 1}
	if mirrorX {
		m.sx = -1
	}
	if mirrorY {
		m.sy = -1
	}
	return m
}

func (m *Mirror) Width() float64     { return m.g.Width() }
func (m *Mirror) Height() float64    { return m.g.Height() }
func (m *Mirror) FontSize() float64  { return m.g.FontSize() }
func (m *Mirror) LineWidth() float64 { return m.g.LineWidth() }

func (m *Mirror) SetFont(size float64)          { m.g.SetFont(size) }
func (m *Mirror) SetLinewidth(w float64)        { m.g.SetLinewidth(w) }
func (m *Mirror) SetSolidLine()                 { m.g.SetSolidLine() }
func (m *Mirror) SetDashedLine(on, off float64) { m.g.SetDashedLine(on, off) }
func (m *Mirror) SetPenRGB(r, g, b float64)     { m.g.SetPenRGB(r, g, b) }
func (m *Mirror) SetFillRGB(r, g, b float64)    { m.g.SetFillRGB(r, g, b) }

func (m *Mirror) Line(x1, y1, x2, y2 float64) {
	m.g.Line(m.sx*x1, m.sy*y1, m.sx*x2, m.sy*y2)
}

func (m *Mirror) Circle(x, y, r float64, mode DrawMode) {
	m.g.Circle(m.sx*x, m.sy*y, r, mode)
}

func (m *Mirror) Ellipse(x, y, rlong, rshort, posangle float64) {
	// A single flip reverses the sense of rotation.
	m.g.Ellipse(m.sx*x, m.sy*y, rlong, rshort, m.sx*m.sy*posangle)
}

func (m *Mirror) Rectangle(x, y, w, h float64, mode DrawMode) {
	nx, ny := m.sx*x, m.sy*y
	if m.sx < 0 {
		nx -= w
	}
	if m.sy < 0 {
		ny -= h
	}
	m.g.Rectangle(nx, ny, w, h, mode)
}

func (m *Mirror) TextRight(x, y float64, s string) {
	if m.sx < 0 {
		m.g.TextLeft(m.sx*x, m.sy*y, s)
		return
	}
	m.g.TextRight(m.sx*x, m.sy*y, s)
}

func (m *Mirror) TextLeft(x, y float64, s string) {
	if m.sx < 0 {
		m.g.TextRight(m.sx*x, m.sy*y, s)
		return
	}
	m.g.TextLeft(m.sx*x, m.sy*y, s)
}

func (m *Mirror) TextCentred(x, y float64, s string) {
	m.g.TextCentred(m.sx*x, m.sy*y, s)
}

func (m *Mirror) TextWidth(s string) float64 { return m.g.TextWidth(s) }

func (m *Mirror) Save()    { m.g.Save() }
func (m *Mirror) Restore() { m.g.Restore() }

func (m *Mirror) ClipPath(pts []Point) {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = Point{m.sx * p.X, m.sy * p.Y}
	}
	m.g.ClipPath(out)
}

func (m *Mirror) ResetClip() { m.g.ResetClip() }

func (m *Mirror) Finish() error { return m.g.Finish() }
