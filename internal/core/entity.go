package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// LeaderWeight is the leadership weight carried by entity 0 of a flock.
	LeaderWeight = 1000
	// FollowerWeight is the leadership weight of every other entity.
	FollowerWeight = 1
)

// Entity is a single point-mass animated by a figure.
type Entity struct {
	id         int
	pos        mgl64.Vec3
	vel        mgl64.Vec3
	leadership int
	intensity  float64
	size       float64
}

// NewEntity returns an entity at the origin with full intensity. Entity 0 is
// the leader. The size hint is drawn from rng; a nil rng leaves it at zero.
func NewEntity(id int, rng *rand.Rand) Entity {
	e := Entity{id: id, intensity: 1, leadership: FollowerWeight}
	if id == 0 {
		e.leadership = LeaderWeight
	}
	if rng != nil {
		e.size = rng.Float64()
	}
	return e
}

// ID returns the identity assigned at creation.
func (e Entity) ID() int { return e.id }

// Position returns the current position.
func (e Entity) Position() mgl64.Vec3 { return e.pos }

// SetPosition replaces the current position.
func (e *Entity) SetPosition(p mgl64.Vec3) { e.pos = p }

// Pos returns the position component on the given axis (0, 1 or 2).
func (e Entity) Pos(axis int) float64 { return e.pos[axis] }

// SetPos sets the position component on the given axis.
func (e *Entity) SetPos(axis int, v float64) { e.pos[axis] = v }

// Velocity returns the current velocity.
func (e Entity) Velocity() mgl64.Vec3 { return e.vel }

// SetVelocity replaces the current velocity.
func (e *Entity) SetVelocity(v mgl64.Vec3) { e.vel = v }

// Vel returns the velocity component on the given axis.
func (e Entity) Vel(axis int) float64 { return e.vel[axis] }

// SetVel sets the velocity component on the given axis.
func (e *Entity) SetVel(axis int, v float64) { e.vel[axis] = v }

// Move writes a new position and velocity together.
func (e *Entity) Move(pos, vel mgl64.Vec3) {
	e.pos = pos
	e.vel = vel
}

// Leadership returns the averaging weight used by flocking.
func (e Entity) Leadership() int { return e.leadership }

// SetLeadership overrides the averaging weight.
func (e *Entity) SetLeadership(w int) { e.leadership = w }

// Intensity returns the fade level, 1 when fully formed.
func (e Entity) Intensity() float64 { return e.intensity }

// SetIntensity sets the fade level.
func (e *Entity) SetIntensity(v float64) { e.intensity = v }

// Size returns the rendering size hint in [0,1).
func (e Entity) Size() float64 { return e.size }
