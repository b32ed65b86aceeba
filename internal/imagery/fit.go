package imagery

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/vovakirdan/tileswap/internal/core"
)

// Fit scales img to a size x size canvas, ignoring aspect ratio.
func Fit(img image.Image, size int) *image.RGBA {
	if size <= 0 {
		size = DefaultSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Placeholder returns a grey canvas with msg centred on it.
func Placeholder(size int, msg string) *image.RGBA {
	if size <= 0 {
		size = DefaultSize
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.RGBA{200, 200, 200, 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.RGBA{80, 80, 80, 255}),
		Face: face,
	}
	width := d.MeasureString(msg).Ceil()
	d.Dot = fixed.P((size-width)/2, size/2+face.Ascent/2)
	d.DrawString(msg)
	return dst
}

type rasterKey struct {
	src  core.Rect
	w, h int
}

// Raster caches scaled regions of one level canvas. Tiles are requested at
// display resolution; a terminal resize simply produces new keys.
type Raster struct {
	src   image.Image
	cache map[rasterKey]*image.RGBA
}

// NewRaster wraps a level canvas.
func NewRaster(src image.Image) *Raster {
	return &Raster{src: src, cache: make(map[rasterKey]*image.RGBA)}
}

// Image returns the wrapped canvas.
func (r *Raster) Image() image.Image {
	return r.src
}

// Region returns the part of the canvas under src scaled to w x h pixels.
func (r *Raster) Region(src core.Rect, w, h int) *image.RGBA {
	if r == nil || r.src == nil || w <= 0 || h <= 0 {
		return nil
	}

	key := rasterKey{src: src, w: w, h: h}
	if img, ok := r.cache[key]; ok {
		return img
	}

	b := r.src.Bounds()
	sr := image.Rect(b.Min.X+src.X, b.Min.Y+src.Y, b.Min.X+src.Right(), b.Min.Y+src.Bottom()).Intersect(b)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if !sr.Empty() {
		draw.CatmullRom.Scale(dst, dst.Bounds(), r.src, sr, draw.Src, nil)
	}

	if len(r.cache) > maxRasterEntries {
		r.cache = make(map[rasterKey]*image.RGBA)
	}
	r.cache[key] = dst
	return dst
}

// maxRasterEntries bounds the cache across repeated resizes.
const maxRasterEntries = 512

// RGBAt returns the pixel at (x, y) of img as a core.RGB.
func RGBAt(img *image.RGBA, x, y int) core.RGB {
	c := img.RGBAAt(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return core.RGB{R: c.R, G: c.G, B: c.B}
}
