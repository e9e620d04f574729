// Package catalog holds the read-only star, deep-sky and constellation
// catalogs a chart is rendered from, with spatial selection over the
// field of view.
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ha1tch/skychart/pkg/astro"
)

// ObjectType classifies a deep-sky object. The set is closed: renderers
// and label generators switch exhaustively over it.
type ObjectType int

const (
	TypeGalaxy ObjectType = iota
	TypeDiffuseNebula
	TypePlanetaryNebula
	TypeOpenCluster
	TypeGlobularCluster
	TypeSupernovaRemnant
	TypeAsterism
	TypeGalaxyCluster
	TypeUnknown
)

var typeNames = map[ObjectType]string{
	TypeGalaxy:           "G",
	TypeDiffuseNebula:    "N",
	TypePlanetaryNebula:  "PN",
	TypeOpenCluster:      "OCL",
	TypeGlobularCluster:  "GCL",
	TypeSupernovaRemnant: "SNR",
	TypeAsterism:         "AST",
	TypeGalaxyCluster:    "GALCL",
	TypeUnknown:          "PG",
}

func (t ObjectType) String() string { return typeNames[t] }

// DeepSkyObject is one immutable catalog record. Angular sizes are
// semi-axes in radians with RLong >= RShort >= 0.
type DeepSkyObject struct {
	RA, Dec  float64
	Type     ObjectType
	RLong    float64
	RShort   float64
	PosAngle float64
	Mag      float64
	Messier  int // 0 when the object has no Messier number
	Cat      string
	Names    []string
}

// Label returns the human label for the object: the Messier designation
// when one exists, the joined NGC numbers for NGC objects, otherwise the
// catalog code followed by the joined names.
func (o *DeepSkyObject) Label() string {
	if o.Messier > 0 {
		return "M " + strconv.Itoa(o.Messier)
	}
	names := append([]string(nil), o.Names...)
	sort.Strings(names)
	if o.Cat == "NGC" {
		return strings.Join(names, "-")
	}
	return o.Cat + " " + strings.Join(names, "-")
}

// Star is one star record. Greek holds the three-letter Bayer
// abbreviation ("alp", "bet", ...) when known.
type Star struct {
	RA, Dec       float64
	Mag           float64
	Greek         string
	Constellation string
}

// Constellation is an ordered set of line segments between bright stars,
// referenced by 1-based index into the bright-star list.
type Constellation struct {
	Name  string
	Lines [][2]int
}

// DeepSkyCatalog answers spatial queries over deep-sky objects.
type DeepSkyCatalog struct {
	Objects []DeepSkyObject
}

// Select returns the objects within radius of the given field centre.
// Order is catalog order; callers re-sort by magnitude as needed.
func (c *DeepSkyCatalog) Select(ra, dec, radius float64) []DeepSkyObject {
	var out []DeepSkyObject
	for _, o := range c.Objects {
		if astro.AngularDistance(o.RA, o.Dec, ra, dec) < radius {
			out = append(out, o)
		}
	}
	return out
}

// StarCatalog answers spatial queries over stars.
type StarCatalog struct {
	Stars []Star
}

// Select returns the stars within radius of the field centre that are at
// least as bright as the limiting magnitude.
func (c *StarCatalog) Select(ra, dec, radius, limitingMag float64) []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Mag > limitingMag {
			continue
		}
		if astro.AngularDistance(s.RA, s.Dec, ra, dec) < radius {
			out = append(out, s)
		}
	}
	return out
}

// ConstellationCatalog pairs the bright-star list with the constellation
// line figures drawn between them.
type ConstellationCatalog struct {
	BrightStars    []Star
	Constellations []Constellation
}
