package render

import (
	"image"
	"image/color"
	"math"
)

// fillRGBA clears buf to a single color.
func fillRGBA(buf []byte, bg color.Color) {
	r, g, b, a := bg.RGBA()
	for base := 0; base+3 < len(buf); base += 4 {
		buf[base+0] = uint8(r >> 8)
		buf[base+1] = uint8(g >> 8)
		buf[base+2] = uint8(b >> 8)
		buf[base+3] = uint8(a >> 8)
	}
}

// splatRGBA adds every point into buf, a w×h RGBA image. Brightness follows
// intensity; points with a size hint above one half cover a plus-shaped
// footprint instead of a single pixel.
func splatRGBA(buf []byte, w, h int, points []Point, tint color.RGBA) {
	for _, p := range points {
		px := int(math.Floor(p.X))
		py := int(math.Floor(p.Y))
		k := clamp01(p.Intensity)
		addPixel(buf, w, h, px, py, tint, k)
		if p.Size <= 0.5 {
			continue
		}
		half := k * 0.5
		addPixel(buf, w, h, px-1, py, tint, half)
		addPixel(buf, w, h, px+1, py, tint, half)
		addPixel(buf, w, h, px, py-1, tint, half)
		addPixel(buf, w, h, px, py+1, tint, half)
	}
}

func addPixel(buf []byte, w, h, x, y int, tint color.RGBA, k float64) {
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	base := (y*w + x) * 4
	buf[base+0] = addChannel(buf[base+0], tint.R, k)
	buf[base+1] = addChannel(buf[base+1], tint.G, k)
	buf[base+2] = addChannel(buf[base+2], tint.B, k)
	buf[base+3] = 255
}

func addChannel(dst, src uint8, k float64) uint8 {
	v := float64(dst) + float64(src)*k
	if v > 255 {
		return 255
	}
	return uint8(math.Round(v))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Rasterize clears img to bg and splats points onto it.
func Rasterize(img *image.RGBA, points []Point, bg color.Color, tint color.RGBA) {
	b := img.Bounds()
	fillRGBA(img.Pix, bg)
	splatRGBA(img.Pix, b.Dx(), b.Dy(), points, tint)
}
