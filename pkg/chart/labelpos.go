package chart

import (
	"math"

	"github.com/ha1tch/skychart/pkg/graphics"
)

// LabelCandidate is one proposed label placement: the start, midpoint
// and end of the text baseline if the label were drawn there. The
// centre point is scored against the repulsion field; start and end
// delimit the committed footprint.
type LabelCandidate struct {
	Start, Centre, End graphics.Point
}

// Candidate slots share a fixed order across all shapes; ties in the
// field score resolve to the lowest slot.
const (
	posBelow = 0
	posAbove = 1
	posLeft  = 2
	posRight = 3
)

func span(xs, y, length float64) LabelCandidate {
	return LabelCandidate{
		Start:  graphics.Point{X: xs, Y: y},
		Centre: graphics.Point{X: xs + length/2, Y: y},
		End:    graphics.Point{X: xs + length, Y: y},
	}
}

// normalizePosangle folds a position angle into [-pi/2, pi/2); an
// ellipse is symmetric under a half turn.
func normalizePosangle(p float64) float64 {
	if p >= 0.5*math.Pi {
		p -= math.Pi
	}
	if p < -0.5*math.Pi {
		p += math.Pi
	}
	return p
}

// GalaxyLabelPos returns the four label candidates for an ellipse of
// semi-axes rlong, rshort rotated by posangle. Candidates are laid out
// in the ellipse's own frame, then rotated into map space.
func GalaxyLabelPos(x, y, rlong, rshort, posangle, fh, length float64) []LabelCandidate {
	p := normalizePosangle(posangle)
	sp, cp := math.Sin(p), math.Cos(p)
	hl := length / 2

	// rot maps a point in the rotated ellipse frame to map space.
	rot := func(u, v float64) graphics.Point {
		return graphics.Point{X: x + u*cp - v*sp, Y: y + u*sp + v*cp}
	}
	along := func(u, v float64) LabelCandidate {
		return LabelCandidate{Start: rot(u-hl, v), Centre: rot(u, v), End: rot(u+hl, v)}
	}

	return []LabelCandidate{
		posBelow: along(0, -rshort-0.5*fh),
		posAbove: along(0, rshort+0.5*fh),
		posLeft:  along(-rlong-fh/6-hl, -fh/3),
		posRight: along(rlong+fh/6+hl, -fh/3),
	}
}

// DiffuseNebulaLabelPos returns the four candidates around an
// axis-aligned rectangle of the given full width.
func DiffuseNebulaLabelPos(x, y, width, fh, length float64) []LabelCandidate {
	d := width / 2
	hl := length / 2
	return []LabelCandidate{
		posBelow: span(x-hl, y-d-fh/2, length),
		posAbove: span(x-hl, y+d+fh/2, length),
		posLeft:  span(x-d-fh/6-length, y-fh/3, length),
		posRight: span(x+d+fh/6, y-fh/3, length),
	}
}

// circularLabelOffset returns the horizontal offset from a circle's
// centre at which a label tucks against the circle's curvature one
// third of a font height inside the vertical extremes. The arccos
// argument is clamped; oversized fonts fall back to the full radius.
func circularLabelOffset(r, fh float64) float64 {
	arg := 1 - 2*fh/(3*r)
	a := 0.5 * math.Pi
	if arg > -1 && arg < 1 {
		a = math.Acos(arg)
	}
	return math.Sin(a) * r
}

// CircularLabelPos returns the four candidates for circle-shaped
// symbols. The slots keep the shared order; geometrically they anchor
// at the lower-right, upper-right, lower-left and upper-left tangents.
func CircularLabelPos(x, y, r, fh, length float64) []LabelCandidate {
	xoff := circularLabelOffset(r, fh) + fh/6
	yb := y - r + fh/3
	yt := y + r - fh/3
	return []LabelCandidate{
		posBelow: span(x+xoff, yb, length),
		posAbove: span(x+xoff, yt, length),
		posLeft:  span(x-xoff-length, yb, length),
		posRight: span(x-xoff-length, yt, length),
	}
}

// AsterismLabelPos returns the four candidates around a diamond of the
// given circumradius.
func AsterismLabelPos(x, y, r, fh, length float64) []LabelCandidate {
	d := r / 2 * math.Sqrt2
	hl := length / 2
	return []LabelCandidate{
		posBelow: span(x-hl, y-d-2*fh/3, length),
		posAbove: span(x-hl, y+d+fh/3, length),
		posLeft:  span(x-d-fh/6-length, y-fh/3, length),
		posRight: span(x+d+fh/6, y-fh/3, length),
	}
}

// UnknownLabelPos returns the four candidates around the 45-degree
// cross used for unclassified objects; the cross's half-diagonal is
// radius over root two.
func UnknownLabelPos(x, y, r, fh, length float64) []LabelCandidate {
	d := r / math.Sqrt2
	hl := length / 2
	return []LabelCandidate{
		posBelow: span(x-hl, y-d-fh/2, length),
		posAbove: span(x-hl, y+d+fh/2, length),
		posLeft:  span(x-d-fh/6-length, y-fh/3, length),
		posRight: span(x+d+fh/6, y-fh/3, length),
	}
}
