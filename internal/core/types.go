package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind tags the closed set of figure variants.
type Kind uint8

const (
	KindFlock Kind = iota
	KindExplosion
	KindMeshSequence
)

// String returns the scene-file name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFlock:
		return "flock"
	case KindExplosion:
		return "explosion"
	case KindMeshSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Figure is the contract every animated entity group implements. It can only
// be satisfied by types embedding Group.
type Figure interface {
	Kind() Kind
	Name() string
	SetName(name string)
	Len() int
	At(i int) Entity
	IsNeeded() bool
	Move()

	base() *Group
}

// Group owns the ordered entity set shared by all figure variants.
type Group struct {
	entities []Entity
	name     string
}

// NewGroup wraps the provided entities. The slice is retained.
func NewGroup(entities []Entity) Group {
	return Group{entities: entities}
}

// Name returns the display name.
func (g *Group) Name() string { return g.name }

// SetName sets the display name.
func (g *Group) SetName(name string) { g.name = name }

// Len returns the number of live entities.
func (g *Group) Len() int { return len(g.entities) }

// At returns a copy of entity i.
func (g *Group) At(i int) Entity { return g.entities[i] }

// IsNeeded reports whether the figure still has entities to animate.
func (g *Group) IsNeeded() bool { return len(g.entities) > 0 }

// Entities exposes the backing slice so variants can mutate entities in place.
func (g *Group) Entities() []Entity { return g.entities }

// SetEntities replaces the backing slice.
func (g *Group) SetEntities(entities []Entity) { g.entities = entities }

func (g *Group) base() *Group { return g }

// Take consumes src: it returns new entities carrying the source positions
// and intensities with ids reassigned densely from 0, and leaves src empty.
func Take(src Figure, rng *rand.Rand) []Entity {
	if src == nil {
		return nil
	}
	g := src.base()
	out := make([]Entity, len(g.entities))
	for i, old := range g.entities {
		e := NewEntity(i, rng)
		e.SetPosition(old.Position())
		e.SetIntensity(old.Intensity())
		out[i] = e
	}
	g.entities = nil
	return out
}

// Centroid returns the arithmetic mean of the entity positions.
func Centroid(entities []Entity) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(entities) == 0 {
		return sum
	}
	for _, e := range entities {
		sum = sum.Add(e.Position())
	}
	return sum.Mul(1 / float64(len(entities)))
}

// Track is a recorded leader path, one position per animation frame.
type Track []mgl64.Vec3

// Frame is a single point-cloud snapshot. Points holds unique positions in
// first-seen order; Raw keeps the emission order with duplicates.
type Frame struct {
	Points []mgl64.Vec3
	Raw    []mgl64.Vec3
}

// FrameSet is an ordered sequence of snapshots, one per animation frame.
type FrameSet []Frame
