// Package graphics defines the vector drawing surface charts are drawn
// on, with SVG and PNG backends and a mirroring decorator.
//
// Coordinates are millimetres on an abstract canvas. The origin sits at
// the centre of the square map area with y growing upwards; backends map
// this to their own device space.
package graphics

// Point is a 2D map coordinate in millimetres.
type Point struct {
	X, Y float64
}

// DrawMode selects how closed shapes are painted.
type DrawMode int

const (
	Stroke DrawMode = iota
	Fill
	FillStroke
)

// Graphics is the drawing surface consumed by the chart engine. Pen and
// fill colors, line width, dash pattern and font size are stateful and
// scoped by Save/Restore.
type Graphics interface {
	// Width and Height report the canvas dimensions in millimetres.
	Width() float64
	Height() float64

	FontSize() float64
	LineWidth() float64

	SetFont(size float64)
	SetLinewidth(width float64)
	SetSolidLine()
	SetDashedLine(on, off float64)
	SetPenRGB(r, g, b float64)
	SetFillRGB(r, g, b float64)

	Line(x1, y1, x2, y2 float64)
	Circle(x, y, r float64, mode DrawMode)
	// Ellipse draws an outline with semi-axes rlong, rshort rotated by
	// posangle radians counter-clockwise.
	Ellipse(x, y, rlong, rshort, posangle float64)
	// Rectangle draws an axis-aligned rectangle from its lower-left
	// corner.
	Rectangle(x, y, w, h float64, mode DrawMode)

	// TextRight draws text extending right from (x, y); TextLeft draws
	// text ending at (x, y); TextCentred centres it on x. The y
	// coordinate is the text baseline.
	TextRight(x, y float64, s string)
	TextLeft(x, y float64, s string)
	TextCentred(x, y float64, s string)
	TextWidth(s string) float64

	Save()
	Restore()

	ClipPath(pts []Point)
	ResetClip()

	Finish() error
}
