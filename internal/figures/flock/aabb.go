package flock

import "github.com/go-gl/mathgl/mgl64"

// Fixed extents of the box reserved around each entity during placement.
const (
	boxWidth  = 1.0
	boxHeight = 0.2
	boxDepth  = 1.0
)

// AABB is an axis-aligned box anchored at its minimum corner.
type AABB struct {
	Min  mgl64.Vec3
	Size mgl64.Vec3
}

// BoxAt returns the placement box of an entity at p.
func BoxAt(p mgl64.Vec3) AABB {
	return AABB{Min: p, Size: mgl64.Vec3{boxWidth, boxHeight, boxDepth}}
}

// Collide reports whether two boxes overlap. Boxes that merely touch on a face
// are separated.
func Collide(a, b AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if b.Min[axis] >= a.Min[axis]+a.Size[axis] || b.Min[axis]+b.Size[axis] <= a.Min[axis] {
			return false
		}
	}
	return true
}
