//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// PointPainter uploads projected points into a single RGBA image.
type PointPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewPointPainter allocates a painter for a w×h view.
func NewPointPainter(w, h int) *PointPainter {
	pp := &PointPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	pp.img = ebiten.NewImage(w, h)
	return pp
}

// Blit rasterizes points and draws the result at the top-left of dst.
func (pp *PointPainter) Blit(dst *ebiten.Image, points []Point, bg color.Color, tint color.RGBA) {
	fillRGBA(pp.buf, bg)
	splatRGBA(pp.buf, pp.w, pp.h, points, tint)
	pp.img.WritePixels(pp.buf)
	dst.DrawImage(pp.img, &ebiten.DrawImageOptions{})
}

// Size returns the dimensions of the underlying image.
func (pp *PointPainter) Size() (int, int) { return pp.w, pp.h }
