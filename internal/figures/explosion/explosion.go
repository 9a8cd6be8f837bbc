package explosion

import (
	"errors"
	"math/rand/v2"
	"strconv"

	"flockfx/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// DefaultStepScale scales every outward step.
	DefaultStepScale = 0.007
	// DefaultDecay scales the intensity lost per tick.
	DefaultDecay = 0.001

	maxSpread = 0.99
)

// ErrNoSource is returned when there is no figure to explode.
var ErrNoSource = errors.New("explosion: source figure is nil")

// Config tunes the debris motion.
type Config struct {
	StepScale float64
	Decay     float64
	// Spread randomizes each step by a factor in [1-Spread, 1+Spread).
	// Zero keeps the step scale fixed.
	Spread float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{StepScale: DefaultStepScale, Decay: DefaultDecay}
}

// FromMap populates the config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["step_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.StepScale = parsed
		}
	}
	if v, ok := cfg["decay"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Decay = parsed
		}
	}
	if v, ok := cfg["spread"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Spread = min(parsed, maxSpread)
		}
	}
	return c
}

// Explosion turns a figure into debris moving away from its centroid while
// fading out. Fully faded entities are dropped.
type Explosion struct {
	core.Group

	cfg    Config
	origin mgl64.Vec3
	source core.Kind
	rng    *rand.Rand
}

// New consumes src and returns an explosion centred on the centroid of its
// entities.
func New(src core.Figure, cfg Config, rng *rand.Rand) (*Explosion, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if rng == nil {
		rng = core.NewRNG(0).Source()
	}
	if cfg.StepScale <= 0 {
		cfg.StepScale = DefaultStepScale
	}
	if cfg.Decay <= 0 {
		cfg.Decay = DefaultDecay
	}
	cfg.Spread = max(0, min(cfg.Spread, maxSpread))

	kind := src.Kind()
	entities := core.Take(src, rng)
	return &Explosion{
		Group:  core.NewGroup(entities),
		cfg:    cfg,
		origin: core.Centroid(entities),
		source: kind,
		rng:    rng,
	}, nil
}

// Kind identifies the variant.
func (x *Explosion) Kind() core.Kind { return core.KindExplosion }

// Source returns the kind of the figure that was exploded.
func (x *Explosion) Source() core.Kind { return x.source }

// Origin returns the centre of the explosion.
func (x *Explosion) Origin() mgl64.Vec3 { return x.origin }

// Config returns the active configuration.
func (x *Explosion) Config() Config { return x.cfg }

// Factor returns the outward step multiplier for an entity at distance d from
// the origin, before the step scale is applied.
func Factor(d float64) float64 {
	pct := d / 100
	switch {
	case pct < 0.2:
		return 5.0
	case pct < 0.6:
		return 2.0
	default:
		return 0.5
	}
}

// Move pushes every entity outwards and fades it. Entities whose intensity is
// not positive, before or after the push, are removed in the same tick.
func (x *Explosion) Move() {
	entities := x.Entities()
	n := 0
	for _, e := range entities {
		if e.Intensity() <= 0 {
			continue
		}
		x.push(&e)
		if e.Intensity() <= 0 {
			continue
		}
		entities[n] = e
		n++
	}
	clear(entities[n:])
	x.SetEntities(entities[:n])
}

func (x *Explosion) push(e *core.Entity) {
	dir := e.Position().Sub(x.origin)
	d := dir.Len()
	factor := Factor(d) * x.cfg.StepScale * x.jitter()
	// an entity sitting on the origin has no direction and only fades
	if d > 0 {
		e.SetPosition(e.Position().Add(dir.Mul(factor / d)))
	}
	e.SetIntensity(e.Intensity() - x.cfg.Decay/factor)
}

func (x *Explosion) jitter() float64 {
	if x.cfg.Spread == 0 {
		return 1
	}
	return 1 + x.cfg.Spread*core.Signed(x.rng)
}

// Parameters reports the active configuration for HUDs and run logs.
func (x *Explosion) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Explosion",
			Params: []core.Parameter{
				core.StringParam("source", "Source", x.source.String()),
				core.FloatParam("origin_x", "Origin X", x.origin[0]),
				core.FloatParam("origin_y", "Origin Y", x.origin[1]),
				core.FloatParam("origin_z", "Origin Z", x.origin[2]),
				core.FloatParam("step_scale", "Step scale", x.cfg.StepScale),
				core.FloatParam("decay", "Decay", x.cfg.Decay),
				core.FloatParam("spread", "Spread", x.cfg.Spread),
			},
		},
	}}
}

func init() {
	core.RegisterMorph(core.KindExplosion.String(), func(src core.Figure, cfg map[string]string, env core.Env) (core.Figure, error) {
		x, err := New(src, FromMap(cfg), env.RNG)
		if err != nil {
			return nil, err
		}
		return x, nil
	})
}
