// Command skyview is a TUI previewer for star fields: it pans and zooms
// the same catalogs the chart renderer draws, using terminal cells
// instead of millimetres.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/ha1tch/skychart/pkg/astro"
	"github.com/ha1tch/skychart/pkg/catalog"
)

const usage = `skyview - interactive star field previewer

Usage:
  skyview [options]

Options:
  -stars FILE     star catalog (CSV)
  -deepsky FILE   deep-sky object catalog (CSV)
  -ra HOURS       initial field centre right ascension
  -dec DEGREES    initial field centre declination
  -fov DEGREES    initial field of view (default 14)

Keys:
  arrows, hjkl    pan
  + -             zoom in / out
  m M             lower / raise the limiting magnitude
  n               toggle deep-sky labels
  ?               help
  q               quit
`

// Config holds persistent viewer settings
type Config struct {
	RA  float64 // hours
	Dec float64 // degrees
	FOV float64 // degrees
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{RA: 0, Dec: 0, FOV: 14}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skyview"
	}
	return filepath.Join(home, ".skyview")
}

// LoadConfig loads the last viewed field from the config file
func LoadConfig() Config {
	cfg := DefaultConfig()
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		return cfg
	}

	for _, line := range strings.Split(string(data), "\n") {
		parts := strings.SplitN(strings.TrimSpace(line), "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			continue
		}
		switch key {
		case "ra":
			cfg.RA = val
		case "dec":
			cfg.Dec = val
		case "fov":
			if val > 0 {
				cfg.FOV = val
			}
		}
	}
	return cfg
}

// SaveConfig saves the current field to the config file
func SaveConfig(cfg Config) error {
	content := fmt.Sprintf("# skyview configuration\nra = %g\ndec = %g\nfov = %g\n",
		cfg.RA, cfg.Dec, cfg.FOV)
	return os.WriteFile(ConfigPath(), []byte(content), 0644)
}

// Viewer holds all viewer state
type Viewer struct {
	screen  tcell.Screen
	stars   *catalog.StarCatalog
	deepsky *catalog.DeepSkyCatalog

	// Field of view
	raCentre    float64 // radians
	decCentre   float64 // radians
	fieldRadius float64 // radians
	limitingMag float64

	showLabels bool
	showHelp   bool
	message    string
}

// starRune picks a glyph by brightness relative to the limiting
// magnitude, brighter stars getting heavier marks.
func (v *Viewer) starRune(mag float64) rune {
	switch d := v.limitingMag - mag; {
	case d > 9:
		return '@'
	case d > 6:
		return 'O'
	case d > 4:
		return '*'
	case d > 2:
		return '+'
	default:
		return '·'
	}
}

func dsoRune(t catalog.ObjectType) rune {
	switch t {
	case catalog.TypeGalaxy, catalog.TypeGalaxyCluster:
		return '0'
	case catalog.TypeOpenCluster, catalog.TypeAsterism:
		return 'o'
	case catalog.TypeGlobularCluster:
		return '#'
	case catalog.TypePlanetaryNebula:
		return '%'
	case catalog.TypeDiffuseNebula, catalog.TypeSupernovaRemnant:
		return '~'
	default:
		return 'x'
	}
}

// cell projects an equatorial position into screen cells. Terminal
// cells are about twice as tall as wide, so y is compressed.
func (v *Viewer) cell(ra, dec float64) (x, y int, ok bool) {
	w, h := v.screen.Size()
	h-- // status bar
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	l, m := astro.RadecToLM(ra, dec, v.raCentre, v.decCentre)
	scale := float64(w) / 2 / math.Sin(v.fieldRadius)
	x = w/2 - int(math.Round(l*scale))
	y = h/2 - int(math.Round(m*scale/2))
	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}
	return x, y, true
}

func (v *Viewer) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()

	if v.deepsky != nil {
		style := tcell.StyleDefault.Foreground(tcell.ColorYellow)
		for _, o := range v.deepsky.Select(v.raCentre, v.decCentre, v.fieldRadius) {
			x, y, ok := v.cell(o.RA, o.Dec)
			if !ok {
				continue
			}
			v.screen.SetContent(x, y, dsoRune(o.Type), nil, style)
			if v.showLabels {
				label := o.Label()
				for i, r := range label {
					if x+2+i >= w {
						break
					}
					v.screen.SetContent(x+2+i, y, r, nil, tcell.StyleDefault.Foreground(tcell.ColorOlive))
				}
			}
		}
	}

	if v.stars != nil {
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		for _, s := range v.stars.Select(v.raCentre, v.decCentre, v.fieldRadius, v.limitingMag) {
			x, y, ok := v.cell(s.RA, s.Dec)
			if !ok {
				continue
			}
			v.screen.SetContent(x, y, v.starRune(s.Mag), nil, style)
		}
	}

	if v.showHelp {
		v.drawHelp()
	}
	v.drawStatus(w, h)
}

func (v *Viewer) drawHelp() {
	lines := []string{
		"arrows/hjkl pan    +/- zoom",
		"m/M limiting mag   n labels",
		"q quit             ? close help",
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorNavy)
	for row, line := range lines {
		for col, r := range line {
			v.screen.SetContent(2+col, 1+row, r, nil, style)
		}
	}
}

func (v *Viewer) drawStatus(w, h int) {
	hh, mm, ss := astro.RAToHMS(v.raCentre)
	neg, dd, dm, ds := astro.DecToDMS(v.decCentre)
	sign := "+"
	if neg {
		sign = "-"
	}
	status := fmt.Sprintf(" %02dh%02dm%02ds %s%02d°%02d'%02d\"  fov %.1f°  mag %.1f",
		hh, mm, ss, sign, dd, dm, ds, 2*v.fieldRadius*180/math.Pi, v.limitingMag)
	if v.message != "" {
		status += "  " + v.message
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, h-1, ' ', nil, style)
	}
	for i, r := range status {
		if i >= w {
			break
		}
		v.screen.SetContent(i, h-1, r, nil, style)
	}
}

// pan moves the field centre by a fraction of the field radius; RA
// steps widen towards the poles so panning feels uniform on screen.
func (v *Viewer) pan(dxField, dyField float64) {
	step := v.fieldRadius / 4
	cosDec := math.Cos(v.decCentre)
	if cosDec < 0.05 {
		cosDec = 0.05
	}
	v.raCentre += dxField * step / cosDec
	for v.raCentre < 0 {
		v.raCentre += 2 * math.Pi
	}
	for v.raCentre >= 2*math.Pi {
		v.raCentre -= 2 * math.Pi
	}
	v.decCentre += dyField * step
	limit := math.Pi/2 - 0.001
	if v.decCentre > limit {
		v.decCentre = limit
	}
	if v.decCentre < -limit {
		v.decCentre = -limit
	}
}

func (v *Viewer) zoom(factor float64) {
	v.fieldRadius *= factor
	if v.fieldRadius < 0.1*math.Pi/180 {
		v.fieldRadius = 0.1 * math.Pi / 180
	}
	if v.fieldRadius > 60*math.Pi/180 {
		v.fieldRadius = 60 * math.Pi / 180
	}
}

// handleKey processes one key event; it returns true to quit.
func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	v.message = ""
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		v.pan(-1, 0)
	case tcell.KeyRight:
		v.pan(1, 0)
	case tcell.KeyUp:
		v.pan(0, 1)
	case tcell.KeyDown:
		v.pan(0, -1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'h':
			v.pan(-1, 0)
		case 'l':
			v.pan(1, 0)
		case 'k':
			v.pan(0, 1)
		case 'j':
			v.pan(0, -1)
		case '+', '=':
			v.zoom(1 / 1.4)
		case '-':
			v.zoom(1.4)
		case 'm':
			if v.limitingMag > 0 {
				v.limitingMag--
			}
		case 'M':
			if v.limitingMag < 20 {
				v.limitingMag++
			}
		case 'n':
			v.showLabels = !v.showLabels
		case '?':
			v.showHelp = !v.showHelp
		}
	}
	return false
}

func (v *Viewer) run() {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ev) {
				return
			}
		}
	}
}

func main() {
	cfg := LoadConfig()
	var starsPath, deepskyPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		needValue := func() string {
			i++
			if i >= len(args) {
				fmt.Fprintf(os.Stderr, "%s needs a value\n", args[i-1])
				os.Exit(1)
			}
			return args[i]
		}
		switch args[i] {
		case "-stars":
			starsPath = needValue()
		case "-deepsky":
			deepskyPath = needValue()
		case "-ra":
			cfg.RA, _ = strconv.ParseFloat(needValue(), 64)
		case "-dec":
			cfg.Dec, _ = strconv.ParseFloat(needValue(), 64)
		case "-fov":
			cfg.FOV, _ = strconv.ParseFloat(needValue(), 64)
		case "-h", "--help", "help":
			fmt.Print(usage)
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown option: %s\n%s", args[i], usage)
			os.Exit(1)
		}
	}

	v := &Viewer{
		raCentre:    cfg.RA * math.Pi / 12,
		decCentre:   cfg.Dec * math.Pi / 180,
		fieldRadius: cfg.FOV / 2 * math.Pi / 180,
		limitingMag: 13.8,
		showLabels:  true,
	}

	if starsPath != "" {
		stars, err := catalog.LoadStars(starsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", starsPath, err)
			os.Exit(1)
		}
		v.stars = stars
	}
	if deepskyPath != "" {
		deepsky, err := catalog.LoadDeepSky(deepskyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", deepskyPath, err)
			os.Exit(1)
		}
		v.deepsky = deepsky
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing screen: %v\n", err)
		os.Exit(1)
	}
	v.screen = screen

	v.run()
	screen.Fini()

	cfg.RA = v.raCentre * 12 / math.Pi
	cfg.Dec = v.decCentre * 180 / math.Pi
	cfg.FOV = 2 * v.fieldRadius * 180 / math.Pi
	if err := SaveConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save config: %v\n", err)
	}
}
