package graphics

import (
	"bufio"
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// DefaultPixelsPerMM is the device resolution used when none is given.
const DefaultPixelsPerMM = 8.0

type svgState struct {
	pen      [3]float64
	fill     [3]float64
	lw       float64
	dashed   bool
	dashOn   float64
	dashOff  float64
	fontSize float64
}

// SVG renders the drawing surface to an SVG document. Styling state is
// tracked client side; Save and Restore push and pop it. Any extra
// canvas height beyond the square map width is allotted to the caption
// strip above the map.
type SVG struct {
	canvas   *svg.SVG
	buf      *bufio.Writer
	widthMM  float64
	heightMM float64
	scale    float64

	state svgState
	stack []svgState
	clips int
}

// NewSVG creates an SVG surface of the given size in millimetres,
// rendered at pxPerMM device pixels per millimetre (DefaultPixelsPerMM
// when <= 0).
func NewSVG(w io.Writer, widthMM, heightMM, pxPerMM float64) *SVG {
	if pxPerMM <= 0 {
		pxPerMM = DefaultPixelsPerMM
	}
	buf := bufio.NewWriter(w)
	c := &SVG{
		canvas:   svg.New(buf),
		buf:      buf,
		widthMM:  widthMM,
		heightMM: heightMM,
		scale:    pxPerMM,
		state: svgState{
			lw:       0.2,
			fontSize: 2.6,
		},
	}
	c.canvas.Start(c.px(widthMM), c.px(heightMM))
	c.canvas.Rect(0, 0, c.px(widthMM), c.px(heightMM), `fill="white"`)
	return c
}

func (c *SVG) px(mm float64) int { return int(math.Round(mm * c.scale)) }

// devX and devY map map-space millimetres to device pixels. The map
// origin is centred horizontally, half the map width above the bottom
// edge.
func (c *SVG) devX(x float64) int { return c.px(c.widthMM/2 + x) }
func (c *SVG) devY(y float64) int { return c.px(c.heightMM - c.widthMM/2 - y) }

func (c *SVG) Width() float64     { return c.widthMM }
func (c *SVG) Height() float64    { return c.heightMM }
func (c *SVG) FontSize() float64  { return c.state.fontSize }
func (c *SVG) LineWidth() float64 { return c.state.lw }

func (c *SVG) SetFont(size float64)   { c.state.fontSize = size }
func (c *SVG) SetLinewidth(w float64) { c.state.lw = w }
func (c *SVG) SetSolidLine()          { c.state.dashed = false }

func (c *SVG) SetDashedLine(on, off float64) {
	c.state.dashed = true
	c.state.dashOn = on
	c.state.dashOff = off
}

func (c *SVG) SetPenRGB(r, g, b float64)  { c.state.pen = [3]float64{r, g, b} }
func (c *SVG) SetFillRGB(r, g, b float64) { c.state.fill = [3]float64{r, g, b} }

func rgb(v [3]float64) string {
	return fmt.Sprintf("rgb(%d,%d,%d)",
		int(math.Round(v[0]*255)), int(math.Round(v[1]*255)), int(math.Round(v[2]*255)))
}

func (c *SVG) strokeStyle() string {
	s := fmt.Sprintf(`fill="none" stroke="%s" stroke-width="%.2f"`, rgb(c.state.pen), c.state.lw*c.scale)
	if c.state.dashed {
		s += fmt.Sprintf(` stroke-dasharray="%.2f,%.2f"`, c.state.dashOn*c.scale, c.state.dashOff*c.scale)
	}
	return s
}

func (c *SVG) paintStyle(mode DrawMode) string {
	switch mode {
	case Fill:
		return fmt.Sprintf(`fill="%s" stroke="none"`, rgb(c.state.fill))
	case FillStroke:
		return fmt.Sprintf(`fill="%s" stroke="%s" stroke-width="%.2f"`,
			rgb(c.state.fill), rgb(c.state.pen), c.state.lw*c.scale)
	default:
		return c.strokeStyle()
	}
}

func (c *SVG) textStyle(anchor string) string {
	return fmt.Sprintf(`font-family="sans-serif" font-size="%.2f" text-anchor="%s" fill="%s" stroke="none"`,
		c.state.fontSize*c.scale, anchor, rgb(c.state.pen))
}

func (c *SVG) Line(x1, y1, x2, y2 float64) {
	c.canvas.Line(c.devX(x1), c.devY(y1), c.devX(x2), c.devY(y2), c.strokeStyle())
}

func (c *SVG) Circle(x, y, r float64, mode DrawMode) {
	c.canvas.Circle(c.devX(x), c.devY(y), c.px(r), c.paintStyle(mode))
}

func (c *SVG) Ellipse(x, y, rlong, rshort, posangle float64) {
	// SVG rotates clockwise in device space, which matches a
	// counter-clockwise map rotation after the y flip.
	c.canvas.Gtransform(fmt.Sprintf("translate(%d,%d) rotate(%.3f)",
		c.devX(x), c.devY(y), -posangle*180/math.Pi))
	c.canvas.Ellipse(0, 0, c.px(rlong), c.px(rshort), c.strokeStyle())
	c.canvas.Gend()
}

func (c *SVG) Rectangle(x, y, w, h float64, mode DrawMode) {
	c.canvas.Rect(c.devX(x), c.devY(y+h), c.px(w), c.px(h), c.paintStyle(mode))
}

func (c *SVG) TextRight(x, y float64, s string) {
	c.canvas.Text(c.devX(x), c.devY(y), s, c.textStyle("start"))
}

func (c *SVG) TextLeft(x, y float64, s string) {
	c.canvas.Text(c.devX(x), c.devY(y), s, c.textStyle("end"))
}

func (c *SVG) TextCentred(x, y float64, s string) {
	c.canvas.Text(c.devX(x), c.devY(y), s, c.textStyle("middle"))
}

// TextWidth estimates rendered width from the average glyph aspect of
// the sans-serif face; SVG has no text metrics of its own.
func (c *SVG) TextWidth(s string) float64 {
	return 0.6 * c.state.fontSize * float64(len([]rune(s)))
}

func (c *SVG) Save() { c.stack = append(c.stack, c.state) }

func (c *SVG) Restore() {
	if n := len(c.stack); n > 0 {
		c.state = c.stack[n-1]
		c.stack = c.stack[:n-1]
	}
}

func (c *SVG) ClipPath(pts []Point) {
	id := fmt.Sprintf("clip-%d", c.clips)
	c.clips++
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = c.devX(p.X)
		ys[i] = c.devY(p.Y)
	}
	c.canvas.ClipPath(fmt.Sprintf(`id="%s"`, id))
	c.canvas.Polygon(xs, ys)
	c.canvas.ClipEnd()
	c.canvas.Group(fmt.Sprintf(`clip-path="url(#%s)"`, id))
}

func (c *SVG) ResetClip() { c.canvas.Gend() }

func (c *SVG) Finish() error {
	c.canvas.End()
	return c.buf.Flush()
}
