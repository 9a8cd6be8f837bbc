package render

import (
	"flockfx/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective view of the scene.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // degrees
	Near   float64
	Far    float64
}

// DefaultCamera looks at the default flock box from slightly above.
func DefaultCamera() Camera {
	return Camera{
		Eye:    mgl64.Vec3{2.5, 6, 20},
		Target: mgl64.Vec3{2.5, 2.5, 2.5},
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   45,
		Near:   0.1,
		Far:    200,
	}
}

// Matrix returns the combined projection-view transform for a w×h target.
func (c Camera) Matrix(w, h int) mgl64.Mat4 {
	aspect := 1.0
	if w > 0 && h > 0 {
		aspect = float64(w) / float64(h)
	}
	proj := mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
	view := mgl64.LookAtV(c.Eye, c.Target, c.Up)
	return proj.Mul4(view)
}

// Point is a projected entity in pixel space.
type Point struct {
	X, Y      float64
	Intensity float64
	Size      float64
}

// Project maps p to pixel coordinates. ok is false when p lies outside the
// view volume.
func Project(m mgl64.Mat4, p mgl64.Vec3, w, h int) (x, y float64, ok bool) {
	clip := m.Mul4x1(p.Vec4(1))
	if clip[3] <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, false
	}
	x = (ndc[0] + 1) * 0.5 * float64(w)
	y = (1 - ndc[1]) * 0.5 * float64(h)
	return x, y, true
}

// ProjectFigure appends the visible entities of f to dst.
func ProjectFigure(dst []Point, f core.Figure, m mgl64.Mat4, w, h int) []Point {
	for i := 0; i < f.Len(); i++ {
		e := f.At(i)
		if e.Intensity() <= 0 {
			continue
		}
		x, y, ok := Project(m, e.Position(), w, h)
		if !ok {
			continue
		}
		dst = append(dst, Point{X: x, Y: y, Intensity: e.Intensity(), Size: e.Size()})
	}
	return dst
}

// ProjectAll projects every figure into a single point list.
func ProjectAll(dst []Point, figures []core.Figure, cam Camera, w, h int) []Point {
	m := cam.Matrix(w, h)
	for _, f := range figures {
		dst = ProjectFigure(dst, f, m, w, h)
	}
	return dst
}
