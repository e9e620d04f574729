package chart

import (
	"math"
	"testing"
)

const eps = 1e-9

func checkCandidates(t *testing.T, name string, cands []LabelCandidate, length float64) {
	t.Helper()
	if len(cands) != 4 {
		t.Fatalf("%s: got %d candidates, want 4", name, len(cands))
	}
	for i, c := range cands {
		dx := c.End.X - c.Start.X
		dy := c.End.Y - c.Start.Y
		if got := math.Hypot(dx, dy); math.Abs(got-length) > eps {
			t.Errorf("%s[%d]: baseline length = %g, want %g", name, i, got, length)
		}
		mx := (c.Start.X + c.End.X) / 2
		my := (c.Start.Y + c.End.Y) / 2
		if math.Abs(c.Centre.X-mx) > eps || math.Abs(c.Centre.Y-my) > eps {
			t.Errorf("%s[%d]: centre (%g,%g) is not the baseline midpoint (%g,%g)",
				name, i, c.Centre.X, c.Centre.Y, mx, my)
		}
	}
}

func TestLabelCandidateGeometry(t *testing.T) {
	const fh, length = 2.6, 9.5

	checkCandidates(t, "galaxy", GalaxyLabelPos(3, -2, 5, 2.5, 0.7, fh, length), length)
	checkCandidates(t, "nebula", DiffuseNebulaLabelPos(3, -2, 6, fh, length), length)
	checkCandidates(t, "circular", CircularLabelPos(3, -2, 4, fh, length), length)
	checkCandidates(t, "asterism", AsterismLabelPos(3, -2, 4, fh, length), length)
	checkCandidates(t, "unknown", UnknownLabelPos(3, -2, 4, fh, length), length)
}

func TestGalaxyCandidatesAxisAligned(t *testing.T) {
	const fh, length = 2.6, 8.0
	cands := GalaxyLabelPos(0, 0, 5, 2.5, 0, fh, length)

	below := cands[0].Centre
	if math.Abs(below.X) > eps || math.Abs(below.Y-(-2.5-fh/2)) > eps {
		t.Errorf("below centre = (%g,%g), want (0,%g)", below.X, below.Y, -2.5-fh/2)
	}
	above := cands[1].Centre
	if math.Abs(above.Y-(2.5+fh/2)) > eps {
		t.Errorf("above centre y = %g, want %g", above.Y, 2.5+fh/2)
	}
	if cands[2].Centre.X >= 0 || cands[3].Centre.X <= 0 {
		t.Errorf("left/right centres on wrong sides: %g and %g",
			cands[2].Centre.X, cands[3].Centre.X)
	}
}

func TestGalaxyCandidatesRotate(t *testing.T) {
	const fh, length = 2.6, 8.0
	// A quarter turn swaps the axes: below moves to the +x side.
	cands := GalaxyLabelPos(0, 0, 5, 2.5, math.Pi/2-1e-12, fh, length)
	below := cands[0].Centre
	if math.Abs(below.Y) > 1e-6 {
		t.Errorf("below centre y = %g, want about 0 after a quarter turn", below.Y)
	}
	if math.Abs(math.Abs(below.X)-(2.5+fh/2)) > 1e-6 {
		t.Errorf("below centre |x| = %g, want %g", math.Abs(below.X), 2.5+fh/2)
	}
}

func TestNormalizePosangle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, 0},
		{0.6 * math.Pi, -0.4 * math.Pi},
		{-0.6 * math.Pi, 0.4 * math.Pi},
		{0.5 * math.Pi, -0.5 * math.Pi},
	}
	for _, c := range cases {
		if got := normalizePosangle(c.in); math.Abs(got-c.want) > eps {
			t.Errorf("normalizePosangle(%g) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestCircularLabelOffset(t *testing.T) {
	// Normal case: the label tucks inside the circle's horizontal extent.
	if off := circularLabelOffset(5, 2.6); off <= 0 || off >= 5 {
		t.Errorf("offset = %g, want in (0, 5)", off)
	}
	// Oversized font: the arccos argument leaves [-1, 1] and the offset
	// falls back to the full radius.
	if off := circularLabelOffset(0.5, 10); math.Abs(off-0.5) > eps {
		t.Errorf("clamped offset = %g, want 0.5", off)
	}
}

func TestCircularCandidatesMirrorInX(t *testing.T) {
	const fh, length = 2.6, 8.0
	cands := CircularLabelPos(0, 0, 4, fh, length)

	if math.Abs(cands[0].Start.X+cands[2].End.X) > eps {
		t.Errorf("lower-right start %g and lower-left end %g are not mirrored",
			cands[0].Start.X, cands[2].End.X)
	}
	if cands[0].Start.Y != cands[2].Start.Y || cands[1].Start.Y != cands[3].Start.Y {
		t.Error("tangent rows should pair up in y")
	}
}
