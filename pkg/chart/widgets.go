package chart

import (
	"math"
	"strconv"

	"github.com/ha1tch/skychart/pkg/graphics"
)

// rulerTable is the fixed set of "nice" ruler lengths, ascending, in
// arcminutes, with their display labels.
var rulerTable = []struct {
	arcmin float64
	label  string
}{
	{1, "1'"},
	{5, "5'"},
	{10, "10'"},
	{30, "30'"},
	{60, "1°"},
	{120, "2°"},
	{300, "5°"},
	{600, "10°"},
	{1200, "20°"},
}

// MapScale is the distance-ruler widget in the lower right corner of
// the chart. On construction it picks the largest table entry whose
// projected length still fits the allowed maximum.
type MapScale struct {
	legendFontSize  float64
	legendLinewidth float64

	RulerLength float64 // mm
	RulerLabel  string

	width, height float64
}

// NewMapScale selects the ruler for a map drawn at drawingScale
// millimetres per radian, limited to maxLength millimetres. When even
// the smallest entry does not fit, it is used anyway: the widget
// always shows something.
func NewMapScale(drawingScale, maxLength, legendFontSize, legendLinewidth float64) *MapScale {
	w := &MapScale{
		legendFontSize:  legendFontSize,
		legendLinewidth: legendLinewidth,
	}

	for i := len(rulerTable) - 1; i >= 0; i-- {
		mm := rulerTable[i].arcmin * math.Pi / (180 * 60) * drawingScale
		if mm <= maxLength || i == 0 {
			w.RulerLength = mm
			w.RulerLabel = rulerTable[i].label
			break
		}
	}

	fh := 0.66 * legendFontSize
	w.width = w.RulerLength + 2*fh
	w.height = 3 * fh
	return w
}

// Size reports the widget's bounding box; the caller reserves this much
// clip-region space in the map corner.
func (w *MapScale) Size() (width, height float64) {
	return w.width, w.height
}

// Draw renders the ruler with its end bars and label. right and bottom
// are the map-space coordinates of the widget's lower right corner.
func (w *MapScale) Draw(g graphics.Graphics, right, bottom float64) {
	fh := 0.66 * w.legendFontSize

	x := right - fh
	y := bottom + fh + fh/2

	g.SetLinewidth(w.legendLinewidth)
	lw := g.LineWidth()

	g.Line(x, y, x-w.RulerLength, y)
	g.Line(x-lw/2, y-0.5*fh, x-lw/2, y+0.5*fh)
	g.Line(x-w.RulerLength+lw/2, y-0.5*fh, x-w.RulerLength+lw/2, y+0.5*fh)

	g.Save()
	g.SetFont(fh)
	g.TextCentred(x-w.RulerLength/2, y+fh*2/3, w.RulerLabel)
	g.Restore()

	// Widget border towards the map interior.
	g.Line(right-w.width, bottom+w.height, right, bottom+w.height)
	g.Line(right-w.width, bottom+w.height, right-w.width, bottom)
}

// MagScale is the magnitude-legend widget in the lower left corner: a
// short column of star dots, one per whole magnitude, labelled with the
// magnitude value.
type MagScale struct {
	limitingMag     float64
	stars           int
	legendFontSize  float64
	starLinewidth   float64
	legendLinewidth float64

	width, height float64
}

// NewMagScale builds a scale of the given number of star sizes ending
// at the limiting magnitude.
func NewMagScale(limitingMag float64, stars int, legendFontSize, starLinewidth, legendLinewidth float64) *MagScale {
	w := &MagScale{
		limitingMag:     limitingMag,
		stars:           stars,
		legendFontSize:  legendFontSize,
		starLinewidth:   starLinewidth,
		legendLinewidth: legendLinewidth,
	}
	w.width = 4 * legendFontSize
	w.height = (float64(stars) + 1) * legendFontSize
	return w
}

// Size reports the widget's bounding box.
func (w *MagScale) Size() (width, height float64) {
	return w.width, w.height
}

// Draw renders the column of reference stars. left and bottom are the
// map-space coordinates of the widget's lower left corner.
func (w *MagScale) Draw(g graphics.Graphics, left, bottom float64) {
	fh := w.legendFontSize

	g.Save()
	g.SetLinewidth(w.starLinewidth)
	g.SetPenRGB(1, 1, 1)
	g.SetFillRGB(0, 0, 0)
	for i := 0; i < w.stars; i++ {
		mag := float64(int(w.limitingMag)) - float64(w.stars-1-i)
		r := round2(MagnitudeToRadius(w.limitingMag, mag) + w.starLinewidth/2)
		cy := bottom + fh*(float64(i)+1)
		g.Circle(left+fh, cy, r, graphics.FillStroke)
		g.SetPenRGB(0, 0, 0)
		g.TextRight(left+2*fh, cy-fh/3, strconv.Itoa(int(mag)))
		g.SetPenRGB(1, 1, 1)
	}
	g.Restore()

	g.SetLinewidth(w.legendLinewidth)
	g.Line(left, bottom+w.height, left+w.width, bottom+w.height)
	g.Line(left+w.width, bottom+w.height, left+w.width, bottom)
}
