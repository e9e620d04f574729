// Command skychart renders deep-sky star charts to SVG or PNG.
package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ha1tch/skychart/pkg/catalog"
	"github.com/ha1tch/skychart/pkg/chart"
	"github.com/ha1tch/skychart/pkg/graphics"
)

const usage = `skychart - deep-sky star chart renderer

Usage:
  skychart -ra <hours> -dec <degrees> [options]

Field:
  -ra HOURS         right ascension of the field centre (required)
  -dec DEGREES      declination of the field centre (required)
  -fov DEGREES      field of view diameter (default 14)
  -width MM         map width in millimetres (default 200)

Catalogs:
  -deepsky FILE     deep-sky object catalog (CSV)
  -stars FILE       star catalog (CSV)
  -constell STARS LINES
                    constellation bright stars and line figures (CSV)
  -extra RA,DEC,LABEL
                    mark an extra position (hours, degrees; repeatable)

Style:
  -o FILE           output file, .svg or .png (default chart.svg)
  -limmag MAG       stellar limiting magnitude (default 13.8)
  -labellimit MAG   faintest deep-sky object labelled (default 15)
  -caption TEXT     caption above the map
  -mirror-x         mirror east-west (for refractor views)
  -mirror-y         mirror north-south
  -dso-legend       list the deep-sky symbols in the corners
  -lang CODE        legend language, en or nl (default en)
  -px-per-mm N      PNG resolution (default 8)

Examples:
  skychart -ra 0.712 -dec 41.27 -fov 7 -deepsky dso.csv -stars tycho.csv -o m31.svg
  skychart -ra 5.58 -dec -5.39 -caption "Orion Nebula" -o m42.png
`

func fatal(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

type options struct {
	ra, dec     float64
	fov         float64
	width       float64
	limmag      float64
	labelLimit  float64
	caption     string
	mirrorX     bool
	mirrorY     bool
	dsoLegend   bool
	lang        string
	output      string
	pxPerMM     float64
	deepskyPath string
	starsPath   string
	constStars  string
	constLines  string
	extra       []chart.ExtraObject
	haveRA      bool
	haveDec     bool
}

func parseArgs(args []string) options {
	opt := options{
		fov:        14,
		width:      200,
		lang:       "en",
		output:     "chart.svg",
		pxPerMM:    graphics.DefaultPixelsPerMM,
		limmag:     13.8,
		labelLimit: 15,
	}

	next := func(i *int, name string) string {
		*i++
		if *i >= len(args) {
			fatal("%s needs a value", name)
		}
		return args[*i]
	}
	nextFloat := func(i *int, name string) float64 {
		s := next(i, name)
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fatal("%s: bad number %q", name, s)
		}
		return v
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-ra":
			opt.ra = nextFloat(&i, "-ra")
			opt.haveRA = true
		case "-dec":
			opt.dec = nextFloat(&i, "-dec")
			opt.haveDec = true
		case "-fov":
			opt.fov = nextFloat(&i, "-fov")
		case "-width":
			opt.width = nextFloat(&i, "-width")
		case "-limmag":
			opt.limmag = nextFloat(&i, "-limmag")
		case "-labellimit":
			opt.labelLimit = nextFloat(&i, "-labellimit")
		case "-caption":
			opt.caption = next(&i, "-caption")
		case "-mirror-x":
			opt.mirrorX = true
		case "-mirror-y":
			opt.mirrorY = true
		case "-dso-legend":
			opt.dsoLegend = true
		case "-lang":
			opt.lang = next(&i, "-lang")
		case "-o", "--output":
			opt.output = next(&i, "-o")
		case "-px-per-mm":
			opt.pxPerMM = nextFloat(&i, "-px-per-mm")
		case "-deepsky":
			opt.deepskyPath = next(&i, "-deepsky")
		case "-stars":
			opt.starsPath = next(&i, "-stars")
		case "-constell":
			opt.constStars = next(&i, "-constell")
			opt.constLines = next(&i, "-constell")
		case "-extra":
			opt.extra = append(opt.extra, parseExtra(next(&i, "-extra")))
		case "-h", "--help", "help":
			fmt.Print(usage)
			os.Exit(0)
		default:
			fatal("unknown option %s", args[i])
		}
	}

	if !opt.haveRA || !opt.haveDec {
		fmt.Print(usage)
		os.Exit(1)
	}
	return opt
}

func parseExtra(s string) chart.ExtraObject {
	parts := strings.SplitN(s, ",", 3)
	if len(parts) != 3 {
		fatal("-extra: want RA,DEC,LABEL, got %q", s)
	}
	ra, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		fatal("-extra: bad RA %q", parts[0])
	}
	dec, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		fatal("-extra: bad Dec %q", parts[1])
	}
	return chart.ExtraObject{
		RA:    ra * math.Pi / 12,
		Dec:   dec * math.Pi / 180,
		Label: parts[2],
	}
}

func main() {
	opt := parseArgs(os.Args[1:])

	lang := chart.EN
	switch opt.lang {
	case "en":
	case "nl":
		lang = chart.NL
	default:
		fatal("unknown language %q, want en or nl", opt.lang)
	}

	cfg := chart.Config{
		Width:             opt.width,
		RACentre:          opt.ra * math.Pi / 12,
		DecCentre:         opt.dec * math.Pi / 180,
		FieldRadius:       opt.fov / 2 * math.Pi / 180,
		LimitingMag:       opt.limmag,
		DeepskyLabelLimit: opt.labelLimit,
		Caption:           opt.caption,
		MirrorX:           opt.mirrorX,
		MirrorY:           opt.mirrorY,
		ShowDSOLegend:     opt.dsoLegend,
		Language:          lang,
	}

	var deepsky *catalog.DeepSkyCatalog
	if opt.deepskyPath != "" {
		var err error
		deepsky, err = catalog.LoadDeepSky(opt.deepskyPath)
		if err != nil {
			fatal("loading %s: %v", opt.deepskyPath, err)
		}
	}
	var stars *catalog.StarCatalog
	if opt.starsPath != "" {
		var err error
		stars, err = catalog.LoadStars(opt.starsPath)
		if err != nil {
			fatal("loading %s: %v", opt.starsPath, err)
		}
	}
	var constell *catalog.ConstellationCatalog
	if opt.constStars != "" {
		var err error
		constell, err = catalog.LoadConstellations(opt.constStars, opt.constLines)
		if err != nil {
			fatal("loading constellations: %v", err)
		}
	}

	out, err := os.Create(opt.output)
	if err != nil {
		fatal("%v", err)
	}
	defer out.Close()
	buf := bufio.NewWriter(out)

	var g graphics.Graphics
	switch ext := filepath.Ext(opt.output); ext {
	case ".svg":
		g = graphics.NewSVG(buf, opt.width, cfg.CanvasHeight(), opt.pxPerMM)
	case ".png":
		g, err = graphics.NewPNG(buf, opt.width, cfg.CanvasHeight(), opt.pxPerMM)
		if err != nil {
			fatal("%v", err)
		}
	default:
		fatal("unsupported output format %q, want .svg or .png", ext)
	}

	engine, err := chart.New(g, cfg)
	if err != nil {
		fatal("%v", err)
	}
	if err := engine.MakeMap(stars, deepsky, constell, opt.extra); err != nil {
		fatal("rendering: %v", err)
	}
	if err := buf.Flush(); err != nil {
		fatal("writing %s: %v", opt.output, err)
	}

	fmt.Printf("Wrote %s\n", opt.output)
}
