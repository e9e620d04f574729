package graphics

import (
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// PNG renders the drawing surface to a raster image via a gg context.
// Text uses the embedded Go Regular face, sized per the current font
// state.
type PNG struct {
	dc       *gg.Context
	out      io.Writer
	widthMM  float64
	heightMM float64
	scale    float64

	fnt   *opentype.Font
	faces map[int]font.Face

	state svgState
	stack []svgState
}

// NewPNG creates a raster surface of the given size in millimetres at
// pxPerMM pixels per millimetre (DefaultPixelsPerMM when <= 0).
func NewPNG(w io.Writer, widthMM, heightMM, pxPerMM float64) (*PNG, error) {
	if pxPerMM <= 0 {
		pxPerMM = DefaultPixelsPerMM
	}
	fnt, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded font: %w", err)
	}
	p := &PNG{
		dc:       gg.NewContext(int(math.Round(widthMM*pxPerMM)), int(math.Round(heightMM*pxPerMM))),
		out:      w,
		widthMM:  widthMM,
		heightMM: heightMM,
		scale:    pxPerMM,
		fnt:      fnt,
		faces:    map[int]font.Face{},
		state: svgState{
			lw:       0.2,
			fontSize: 2.6,
		},
	}
	p.dc.SetRGB(1, 1, 1)
	p.dc.Clear()
	return p, nil
}

func (p *PNG) devX(x float64) float64 { return (p.widthMM/2 + x) * p.scale }
func (p *PNG) devY(y float64) float64 { return (p.heightMM - p.widthMM/2 - y) * p.scale }

func (p *PNG) Width() float64     { return p.widthMM }
func (p *PNG) Height() float64    { return p.heightMM }
func (p *PNG) FontSize() float64  { return p.state.fontSize }
func (p *PNG) LineWidth() float64 { return p.state.lw }

func (p *PNG) SetFont(size float64)   { p.state.fontSize = size }
func (p *PNG) SetLinewidth(w float64) { p.state.lw = w }
func (p *PNG) SetSolidLine()          { p.state.dashed = false }

func (p *PNG) SetDashedLine(on, off float64) {
	p.state.dashed = true
	p.state.dashOn = on
	p.state.dashOff = off
}

func (p *PNG) SetPenRGB(r, g, b float64)  { p.state.pen = [3]float64{r, g, b} }
func (p *PNG) SetFillRGB(r, g, b float64) { p.state.fill = [3]float64{r, g, b} }

// applyStroke moves the tracked pen state onto the gg context.
func (p *PNG) applyStroke() {
	p.dc.SetRGB(p.state.pen[0], p.state.pen[1], p.state.pen[2])
	p.dc.SetLineWidth(p.state.lw * p.scale)
	if p.state.dashed {
		p.dc.SetDash(p.state.dashOn*p.scale, p.state.dashOff*p.scale)
	} else {
		p.dc.SetDash()
	}
}

func (p *PNG) Line(x1, y1, x2, y2 float64) {
	p.applyStroke()
	p.dc.DrawLine(p.devX(x1), p.devY(y1), p.devX(x2), p.devY(y2))
	p.dc.Stroke()
}

func (p *PNG) paint(mode DrawMode) {
	switch mode {
	case Fill:
		p.dc.SetRGB(p.state.fill[0], p.state.fill[1], p.state.fill[2])
		p.dc.Fill()
	case FillStroke:
		p.dc.SetRGB(p.state.fill[0], p.state.fill[1], p.state.fill[2])
		p.dc.FillPreserve()
		p.applyStroke()
		p.dc.Stroke()
	default:
		p.applyStroke()
		p.dc.Stroke()
	}
}

func (p *PNG) Circle(x, y, r float64, mode DrawMode) {
	p.dc.DrawCircle(p.devX(x), p.devY(y), r*p.scale)
	p.paint(mode)
}

func (p *PNG) Ellipse(x, y, rlong, rshort, posangle float64) {
	p.dc.Push()
	p.dc.Translate(p.devX(x), p.devY(y))
	// Device y points down, so a counter-clockwise map rotation is
	// clockwise here.
	p.dc.Rotate(-posangle)
	p.dc.DrawEllipse(0, 0, rlong*p.scale, rshort*p.scale)
	p.applyStroke()
	p.dc.Stroke()
	p.dc.Pop()
}

func (p *PNG) Rectangle(x, y, w, h float64, mode DrawMode) {
	p.dc.DrawRectangle(p.devX(x), p.devY(y+h), w*p.scale, h*p.scale)
	p.paint(mode)
}

func (p *PNG) face() font.Face {
	sizePx := int(math.Round(p.state.fontSize * p.scale))
	if sizePx < 1 {
		sizePx = 1
	}
	if f, ok := p.faces[sizePx]; ok {
		return f
	}
	f, err := opentype.NewFace(p.fnt, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err) // embedded font, sizes are sane
	}
	p.faces[sizePx] = f
	return f
}

func (p *PNG) drawText(x, y float64, s string, anchor float64) {
	p.dc.SetFontFace(p.face())
	p.dc.SetRGB(p.state.pen[0], p.state.pen[1], p.state.pen[2])
	w, _ := p.dc.MeasureString(s)
	p.dc.DrawString(s, p.devX(x)-anchor*w, p.devY(y))
}

func (p *PNG) TextRight(x, y float64, s string)   { p.drawText(x, y, s, 0) }
func (p *PNG) TextLeft(x, y float64, s string)    { p.drawText(x, y, s, 1) }
func (p *PNG) TextCentred(x, y float64, s string) { p.drawText(x, y, s, 0.5) }

func (p *PNG) TextWidth(s string) float64 {
	p.dc.SetFontFace(p.face())
	w, _ := p.dc.MeasureString(s)
	return w / p.scale
}

func (p *PNG) Save() { p.stack = append(p.stack, p.state) }

func (p *PNG) Restore() {
	if n := len(p.stack); n > 0 {
		p.state = p.stack[n-1]
		p.stack = p.stack[:n-1]
	}
}

func (p *PNG) ClipPath(pts []Point) {
	if len(pts) == 0 {
		return
	}
	p.dc.MoveTo(p.devX(pts[0].X), p.devY(pts[0].Y))
	for _, pt := range pts[1:] {
		p.dc.LineTo(p.devX(pt.X), p.devY(pt.Y))
	}
	p.dc.ClosePath()
	p.dc.Clip()
}

func (p *PNG) ResetClip() { p.dc.ResetClip() }

func (p *PNG) Finish() error {
	return p.dc.EncodePNG(p.out)
}
