package imagery

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// PatternScheme prefixes procedural image references.
const PatternScheme = "pattern:"

type patternFunc func(img *image.RGBA, size int, p patternParams)

var patterns = map[string]patternFunc{
	"gradient":    gradient,
	"rings":       rings,
	"plasma":      plasma,
	"stripes":     stripes,
	"checker":     checker,
	"placeholder": nil,
}

// Patterns returns the names accepted after "pattern:".
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type patternParams struct {
	seed  int64
	angle float64
	count int
	text  string
}

// ParsePattern renders a "pattern:<name>?k=v" reference at size x size.
// Recognised parameters: seed, angle (stripes, degrees), size (checker
// squares per side), text (placeholder). Unknown parameters are ignored.
func ParsePattern(ref string, size int) (*image.RGBA, error) {
	rest, ok := strings.CutPrefix(ref, PatternScheme)
	if !ok {
		return nil, fmt.Errorf("imagery: not a pattern reference: %q", ref)
	}
	name, rawQuery, _ := strings.Cut(rest, "?")

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("imagery: pattern %q: %w", name, err)
	}

	params := patternParams{seed: 1, count: 6, text: "no image"}
	if v := q.Get("seed"); v != "" {
		if params.seed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("imagery: pattern %q: bad seed %q", name, v)
		}
	}
	if v := q.Get("angle"); v != "" {
		if params.angle, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("imagery: pattern %q: bad angle %q", name, v)
		}
	}
	if v := q.Get("size"); v != "" {
		if params.count, err = strconv.Atoi(v); err != nil || params.count <= 0 {
			return nil, fmt.Errorf("imagery: pattern %q: bad size %q", name, v)
		}
	}
	if v := q.Get("text"); v != "" {
		params.text = v
	}

	return renderPattern(name, size, params)
}

// renderPattern draws a named procedural image.
func renderPattern(name string, size int, params patternParams) (*image.RGBA, error) {
	fn, ok := patterns[name]
	if !ok {
		return nil, fmt.Errorf("imagery: unknown pattern %q", name)
	}
	if size <= 0 {
		size = DefaultSize
	}
	if fn == nil {
		return Placeholder(size, params.text), nil
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fn(img, size, params)
	return img, nil
}

func gradient(img *image.RGBA, size int, _ patternParams) {
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx := float64(x) / float64(size)
			fy := float64(y) / float64(size)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * fx),
				G: uint8(255 * fy),
				B: uint8(255 * (1 - (fx+fy)/2)),
				A: 255,
			})
		}
	}
}

func rings(img *image.RGBA, size int, p patternParams) {
	rng := rand.New(rand.NewSource(p.seed))
	cx := float64(size) * (0.35 + 0.3*rng.Float64())
	cy := float64(size) * (0.35 + 0.3*rng.Float64())
	hue0 := rng.Float64() * 360
	band := float64(size) / 10

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			angle := math.Atan2(float64(y)-cy, float64(x)-cx)
			hue := hue0 + d/band*36 + angle*180/math.Pi/6
			light := 0.45 + 0.15*math.Sin(d/band*math.Pi)
			img.SetRGBA(x, y, hsl(hue, 0.7, light))
		}
	}
}

func plasma(img *image.RGBA, size int, p patternParams) {
	rng := rand.New(rand.NewSource(p.seed))
	var phase [4]float64
	for i := range phase {
		phase[i] = rng.Float64() * 2 * math.Pi
	}
	scale := 6.0 / float64(size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx, fy := float64(x)*scale, float64(y)*scale
			v := math.Sin(fx+phase[0]) +
				math.Sin(fy*1.3+phase[1]) +
				math.Sin((fx+fy)*0.7+phase[2]) +
				math.Sin(math.Hypot(fx-3, fy-3)*1.5+phase[3])
			hue := (v + 4) / 8 * 360
			light := 0.3 + 0.4*float64(y)/float64(size)
			img.SetRGBA(x, y, hsl(hue, 0.8, light))
		}
	}
}

func stripes(img *image.RGBA, size int, p patternParams) {
	rad := p.angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	width := float64(size) / 12

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			t := float64(x)*cos + float64(y)*sin
			band := int(math.Floor(t / width))
			hue := float64(((band%12)+12)%12) * 30
			// Shade across the stripe so neighbouring tiles differ.
			light := 0.35 + 0.3*float64(x+y)/float64(2*size)
			img.SetRGBA(x, y, hsl(hue, 0.75, light))
		}
	}
}

func checker(img *image.RGBA, size int, p patternParams) {
	cell := size / p.count
	if cell <= 0 {
		cell = 1
	}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			cx, cy := x/cell, y/cell
			hue := float64(cx*360/p.count) + float64(cy*15)
			light := 0.3
			if (cx+cy)%2 == 0 {
				light = 0.65
			}
			img.SetRGBA(x, y, hsl(hue, 0.6, light))
		}
	}
}

// hsl converts hue (degrees), saturation and lightness to RGBA.
func hsl(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := (1 - math.Abs(2*l-1)) * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := l - c/2

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
