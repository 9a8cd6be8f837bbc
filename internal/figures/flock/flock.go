package flock

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"flockfx/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrTooFewEntities is returned for flocks smaller than two entities, where
	// the cohesion and alignment averages are undefined.
	ErrTooFewEntities = errors.New("flock: at least two entities are required")
	// ErrInvalidBox is returned when the placement box side is not positive.
	ErrInvalidBox = errors.New("flock: placement box side must be positive")
	// ErrPlacement is returned when rejection sampling runs out of attempts.
	ErrPlacement = errors.New("flock: no overlap-free placement found")
	// ErrEmptyTrack is returned when a leader track has no positions.
	ErrEmptyTrack = errors.New("flock: leader track is empty")
)

// Flock animates entities with cohesion, alignment, separation and boundary
// rules. Entity 0 is the leader and is never stepped by the rules.
type Flock struct {
	core.Group

	cfg   Config
	track core.Track
	frame int
	rng   *rand.Rand
	err   error

	snapshot []core.Entity
}

// New builds a flock from nothing, placing cfg.Count entities in the box.
func New(cfg Config, rng *rand.Rand) (*Flock, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}
	cfg = withDefaults(cfg)
	rng = ensureRNG(rng)
	entities, err := place(cfg, rng)
	if err != nil {
		return nil, err
	}
	return &Flock{Group: core.NewGroup(entities), cfg: cfg, rng: rng}, nil
}

// NewWithTrack builds a flock whose leader follows track. The first track
// position becomes the placement origin.
func NewWithTrack(cfg Config, track core.Track, rng *rand.Rand) (*Flock, error) {
	if len(track) == 0 {
		return nil, ErrEmptyTrack
	}
	cfg.Origin = track[0]
	f, err := New(cfg, rng)
	if err != nil {
		return nil, err
	}
	f.track = track
	return f, nil
}

// FromFigure turns the entities of src into a flock. Positions and
// intensities are copied, ids are reassigned from 0 and src is left empty.
// On error src is untouched.
func FromFigure(src core.Figure, cfg Config, rng *rand.Rand) (*Flock, error) {
	if src == nil || src.Len() < 2 {
		return nil, ErrTooFewEntities
	}
	cfg = withDefaults(cfg)
	rng = ensureRNG(rng)
	entities := core.Take(src, rng)
	cfg.Count = len(entities)
	return &Flock{Group: core.NewGroup(entities), cfg: cfg, rng: rng}, nil
}

// Kind identifies the variant.
func (f *Flock) Kind() core.Kind { return core.KindFlock }

// Config returns the active configuration.
func (f *Flock) Config() Config { return f.cfg }

// Track returns the recorded leader path, if any.
func (f *Flock) Track() core.Track { return f.track }

// Frame returns the index of the next leader track position.
func (f *Flock) Frame() int { return f.frame }

// Err reports the last regeneration failure, or nil.
func (f *Flock) Err() error { return f.err }

// Center returns the centre of the placement box.
func (f *Flock) Center() mgl64.Vec3 {
	h := f.cfg.SizeBox / 2
	return f.cfg.Origin.Add(mgl64.Vec3{h, h, h})
}

// Move advances the flock by one tick. With a leader track the leader takes
// the next recorded position; once the track is exhausted the frame index
// wraps and the flock is placed again from scratch.
func (f *Flock) Move() {
	if len(f.track) == 0 {
		f.step()
		return
	}
	if entities := f.Entities(); len(entities) > 0 {
		entities[0].SetPosition(f.track[f.frame])
	}
	f.step()
	f.frame++
	if f.frame >= len(f.track) {
		f.frame = 0
		f.regenerate()
	}
}

func (f *Flock) regenerate() {
	entities, err := place(f.cfg, f.rng)
	if err != nil {
		f.err = fmt.Errorf("regenerate: %w", err)
		return
	}
	f.err = nil
	f.SetEntities(entities)
}

// step updates every follower from the same start-of-tick snapshot.
func (f *Flock) step() {
	entities := f.Entities()
	if len(entities) < 2 {
		return
	}
	f.snapshot = append(f.snapshot[:0], entities...)
	prev := f.snapshot
	p := f.cfg.Params

	var total int
	var posSum, velSum mgl64.Vec3
	for _, e := range prev {
		w := float64(e.Leadership())
		total += e.Leadership()
		posSum = posSum.Add(e.Position().Mul(w))
		velSum = velSum.Add(e.Velocity().Mul(w))
	}
	// Subtracting one assumes the stepped entity carries follower weight.
	div := float64(total - 1)
	center := f.Center()

	for i := 1; i < len(prev); i++ {
		me := prev[i]
		pos, vel := me.Position(), me.Velocity()
		w := float64(me.Leadership())

		var cohesion, alignment mgl64.Vec3
		if div > 0 {
			avgPos := posSum.Sub(pos.Mul(w)).Mul(1 / div)
			avgVel := velSum.Sub(vel.Mul(w)).Mul(1 / div)
			cohesion = avgPos.Sub(pos).Mul(1 / p.Cohesion)
			alignment = avgVel.Sub(vel).Mul(1 / p.Alignment)
		}
		separation := separate(prev, i, p.Separation)
		limit := bound(pos, vel, center, p.Radius)

		next := cohesion.Add(alignment).Add(separation).Add(limit)
		entities[i].Move(pos.Add(next), next)
	}
}

// separate pushes entity i away from neighbours closer than threshold on
// each axis independently.
func separate(prev []core.Entity, i int, threshold float64) mgl64.Vec3 {
	var out mgl64.Vec3
	me := prev[i].Position()
	for j := range prev {
		if j == i {
			continue
		}
		other := prev[j].Position()
		for axis := 0; axis < 3; axis++ {
			d := other[axis] - me[axis]
			if math.Abs(d) < threshold {
				out[axis] -= d
			}
		}
	}
	return out
}

// bound damps velocity on every axis where pos strays further than radius
// from center.
func bound(pos, vel, center mgl64.Vec3, radius float64) mgl64.Vec3 {
	var out mgl64.Vec3
	for axis := 0; axis < 3; axis++ {
		if math.Abs(pos[axis]-center[axis]) > radius {
			out[axis] = -2 * vel[axis]
		}
	}
	return out
}

// place rejection-samples cfg.Count entities so no two placement boxes overlap.
func place(cfg Config, rng *rand.Rand) ([]core.Entity, error) {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	entities := make([]core.Entity, 0, cfg.Count)
	for id := 0; id < cfg.Count; id++ {
		e := core.NewEntity(id, rng)
		placed := false
		for try := 0; try < attempts; try++ {
			e.SetPosition(core.InBox(rng, cfg.Origin, cfg.SizeBox))
			if !overlapsAny(e.Position(), entities) {
				placed = true
				break
			}
		}
		if !placed {
			return nil, fmt.Errorf("%w: entity %d of %d after %d attempts in box %.3g",
				ErrPlacement, id, cfg.Count, attempts, cfg.SizeBox)
		}
		entities = append(entities, e)
	}
	entities[0].SetLeadership(core.LeaderWeight)
	return entities, nil
}

func overlapsAny(p mgl64.Vec3, placed []core.Entity) bool {
	box := BoxAt(p)
	for _, other := range placed {
		if Collide(box, BoxAt(other.Position())) {
			return true
		}
	}
	return false
}

func validate(cfg Config) error {
	if cfg.Count < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewEntities, cfg.Count)
	}
	if !(cfg.SizeBox > 0) {
		return fmt.Errorf("%w: got %g", ErrInvalidBox, cfg.SizeBox)
	}
	return nil
}

func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return core.NewRNG(0).Source()
}

func init() {
	core.Register(core.KindFlock.String(), func(cfg map[string]string, env core.Env) (core.Figure, error) {
		c := FromMap(cfg)
		if c.TrackPath == "" {
			f, err := New(c, env.RNG)
			if err != nil {
				return nil, err
			}
			return f, nil
		}
		if env.Resources == nil {
			return nil, fmt.Errorf("flock: track %q needs a resource loader", c.TrackPath)
		}
		track, err := env.Resources.Track(c.TrackPath, c.TrackStart, c.TrackEnd)
		if err != nil {
			return nil, fmt.Errorf("flock: load track %q: %w", c.TrackPath, err)
		}
		f, err := NewWithTrack(c, track, env.RNG)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
	core.RegisterMorph(core.KindFlock.String(), func(src core.Figure, cfg map[string]string, env core.Env) (core.Figure, error) {
		f, err := FromFigure(src, FromMap(cfg), env.RNG)
		if err != nil {
			return nil, err
		}
		return f, nil
	})
}
