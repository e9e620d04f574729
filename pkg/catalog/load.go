package catalog

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

const (
	degToRad    = math.Pi / 180
	arcminToRad = math.Pi / (180 * 60)
)

var typeCodes = map[string]ObjectType{
	"G":     TypeGalaxy,
	"N":     TypeDiffuseNebula,
	"PN":    TypePlanetaryNebula,
	"OCL":   TypeOpenCluster,
	"GCL":   TypeGlobularCluster,
	"SNR":   TypeSupernovaRemnant,
	"AST":   TypeAsterism,
	"GALCL": TypeGalaxyCluster,
}

// LoadDeepSky reads a deep-sky catalog from a CSV file with columns
//
//	cat, names, type, ra_deg, dec_deg, mag, rlong_arcmin, rshort_arcmin,
//	posangle_deg, messier
//
// where names is a semicolon-separated list and messier may be empty.
// Angular columns are converted to radians. Lines starting with '#' and
// the optional header row are skipped.
func LoadDeepSky(path string) (*DeepSkyCatalog, error) {
	rows, err := readCSV(path, 3)
	if err != nil {
		return nil, err
	}
	cat := &DeepSkyCatalog{}
	for i, row := range rows {
		if len(row) < 9 {
			return nil, fmt.Errorf("%s: record %d: expected 9+ fields, got %d", path, i+1, len(row))
		}
		typ, ok := typeCodes[strings.ToUpper(row[2])]
		if !ok {
			typ = TypeUnknown
		}
		ra, err := parseFloat(row[3])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: ra: %w", path, i+1, err)
		}
		dec, err := parseFloat(row[4])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: dec: %w", path, i+1, err)
		}
		mag, err := parseFloat(row[5])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: mag: %w", path, i+1, err)
		}
		rlong, err := parseFloat(row[6])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: rlong: %w", path, i+1, err)
		}
		rshort, err := parseFloat(row[7])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: rshort: %w", path, i+1, err)
		}
		pa, err := parseFloat(row[8])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: posangle: %w", path, i+1, err)
		}
		messier := 0
		if len(row) > 9 && strings.TrimSpace(row[9]) != "" {
			messier, err = strconv.Atoi(strings.TrimSpace(row[9]))
			if err != nil {
				return nil, fmt.Errorf("%s: record %d: messier: %w", path, i+1, err)
			}
		}
		var names []string
		for _, n := range strings.Split(row[1], ";") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		cat.Objects = append(cat.Objects, DeepSkyObject{
			RA:       ra * degToRad,
			Dec:      dec * degToRad,
			Type:     typ,
			RLong:    rlong * arcminToRad,
			RShort:   rshort * arcminToRad,
			PosAngle: pa * degToRad,
			Mag:      mag,
			Messier:  messier,
			Cat:      strings.TrimSpace(row[0]),
			Names:    names,
		})
	}
	return cat, nil
}

// LoadStars reads a star catalog from a CSV file with columns
//
//	ra_deg, dec_deg, mag, greek, constellation
//
// where greek and constellation may be empty.
func LoadStars(path string) (*StarCatalog, error) {
	rows, err := readCSV(path, 0)
	if err != nil {
		return nil, err
	}
	cat := &StarCatalog{}
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%s: record %d: expected 3+ fields, got %d", path, i+1, len(row))
		}
		ra, err := parseFloat(row[0])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: ra: %w", path, i+1, err)
		}
		dec, err := parseFloat(row[1])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: dec: %w", path, i+1, err)
		}
		mag, err := parseFloat(row[2])
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: mag: %w", path, i+1, err)
		}
		star := Star{RA: ra * degToRad, Dec: dec * degToRad, Mag: mag}
		if len(row) > 3 {
			star.Greek = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			star.Constellation = strings.TrimSpace(row[4])
		}
		cat.Stars = append(cat.Stars, star)
	}
	return cat, nil
}

// LoadConstellations reads the bright-star list from starsPath (same
// format as LoadStars) and the line figures from linesPath, a CSV with
// columns
//
//	constellation, from, to
//
// where from and to are 1-based indices into the bright-star list.
func LoadConstellations(starsPath, linesPath string) (*ConstellationCatalog, error) {
	stars, err := LoadStars(starsPath)
	if err != nil {
		return nil, err
	}
	rows, err := readCSV(linesPath, 1)
	if err != nil {
		return nil, err
	}
	cat := &ConstellationCatalog{BrightStars: stars.Stars}
	byName := map[string]int{}
	for i, row := range rows {
		if len(row) < 3 {
			return nil, fmt.Errorf("%s: record %d: expected 3 fields, got %d", linesPath, i+1, len(row))
		}
		name := strings.TrimSpace(row[0])
		from, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: from: %w", linesPath, i+1, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(row[2]))
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: to: %w", linesPath, i+1, err)
		}
		if from < 1 || from > len(cat.BrightStars) || to < 1 || to > len(cat.BrightStars) {
			return nil, fmt.Errorf("%s: record %d: star index out of range", linesPath, i+1)
		}
		idx, ok := byName[name]
		if !ok {
			idx = len(cat.Constellations)
			byName[name] = idx
			cat.Constellations = append(cat.Constellations, Constellation{Name: name})
		}
		cat.Constellations[idx].Lines = append(cat.Constellations[idx].Lines, [2]int{from, to})
	}
	return cat, nil
}

func readCSV(path string, probeCol int) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comment = '#'
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1 // trailing optional columns
	all, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	// Drop a header row if the probed numeric column fails to parse.
	if len(all) > 0 && probeCol < len(all[0]) {
		if _, err := parseFloat(all[0][probeCol]); err != nil {
			all = all[1:]
		}
	}
	return all, nil
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
