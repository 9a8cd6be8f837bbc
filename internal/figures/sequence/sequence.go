package sequence

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strconv"

	"flockfx/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrNoFrames is returned for an empty frame set.
	ErrNoFrames = errors.New("sequence: no frames")
	// ErrEmptyFrame is returned when the first frame has no points.
	ErrEmptyFrame = errors.New("sequence: first frame has no points")
	// ErrFrameMismatch is returned when frames disagree on their point count.
	ErrFrameMismatch = errors.New("sequence: frames have different point counts")
	// ErrDensity is returned for a density outside (0, 1].
	ErrDensity = errors.New("sequence: density must be in (0, 1]")
)

// Config names the frame files and the optional density reduction.
type Config struct {
	Path  string
	Start int
	End   int

	// Density is the fraction of points kept; 1 keeps every point.
	Density float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{Density: 1}
}

// FromMap populates the config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["path"]; ok {
		c.Path = v
	}
	if v, ok := cfg["start"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Start = parsed
		}
	}
	if v, ok := cfg["end"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.End = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Density = parsed
		}
	}
	return c
}

// Player replays baked point-cloud frames. Entities keep their identity across
// frames; only positions are rewritten.
type Player struct {
	core.Group

	frames core.FrameSet
	cursor int
	cfg    Config
}

// New builds a player from frames. Entities are created from the unique
// points of frame 0. When cfg.Density is below 1 the frames are thinned first.
func New(frames core.FrameSet, cfg Config, rng *rand.Rand) (*Player, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	if len(frames[0].Points) == 0 {
		return nil, ErrEmptyFrame
	}
	for i, f := range frames {
		if len(f.Points) != len(frames[0].Points) {
			return nil, fmt.Errorf("%w: frame %d has %d, frame 0 has %d",
				ErrFrameMismatch, i, len(f.Points), len(frames[0].Points))
		}
	}
	if cfg.Density == 0 {
		cfg.Density = 1
	}
	if !(cfg.Density > 0 && cfg.Density <= 1) {
		return nil, fmt.Errorf("%w: got %g", ErrDensity, cfg.Density)
	}
	if rng == nil {
		rng = core.NewRNG(0).Source()
	}
	if cfg.Density < 1 {
		frames = Reduce(frames, cfg.Density, rng)
	}

	entities := make([]core.Entity, len(frames[0].Points))
	for i, p := range frames[0].Points {
		entities[i] = core.NewEntity(i, rng)
		entities[i].SetPosition(p)
	}
	return &Player{Group: core.NewGroup(entities), frames: frames, cfg: cfg}, nil
}

// Reduce returns a copy of frames keeping round(n*density) points (at least
// one). Every removal index is applied to all frames so point i refers to the
// same vertex in each of them. Raw keeps only the emissions of surviving
// points, in their original order.
func Reduce(frames core.FrameSet, density float64, rng *rand.Rand) core.FrameSet {
	out := make(core.FrameSet, len(frames))
	for i, f := range frames {
		out[i] = core.Frame{Points: slices.Clone(f.Points), Raw: f.Raw}
	}
	if len(out) == 0 {
		return out
	}
	n := len(out[0].Points)
	keep := max(1, int(math.Round(float64(n)*density)))
	for n > keep {
		idx := rng.IntN(n)
		for i := range out {
			out[i].Points = slices.Delete(out[i].Points, idx, idx+1)
		}
		n--
	}
	thinRaw(out)
	return out
}

// thinRaw drops raw emissions whose point no longer belongs to the frame.
func thinRaw(frames core.FrameSet) {
	for i, f := range frames {
		kept := make(map[mgl64.Vec3]struct{}, len(f.Points))
		for _, p := range f.Points {
			kept[p] = struct{}{}
		}
		raw := make([]mgl64.Vec3, 0, len(f.Raw))
		for _, p := range f.Raw {
			if _, ok := kept[p]; ok {
				raw = append(raw, p)
			}
		}
		frames[i].Raw = raw
	}
}

// Kind identifies the variant.
func (p *Player) Kind() core.Kind { return core.KindMeshSequence }

// Cursor returns the index of the frame currently shown.
func (p *Player) Cursor() int { return p.cursor }

// Frames returns the number of frames.
func (p *Player) Frames() int { return len(p.frames) }

// Frame returns frame i after any density reduction.
func (p *Player) Frame(i int) core.Frame { return p.frames[i] }

// Done reports whether the last frame has been reached.
func (p *Player) Done() bool { return p.cursor+1 >= len(p.frames) }

// Move shows the next frame. Once the last frame is reached the player stays
// there and further moves change nothing.
func (p *Player) Move() {
	if p.Done() {
		return
	}
	p.cursor++
	points := p.frames[p.cursor].Points
	entities := p.Entities()
	for i := range entities {
		if i >= len(points) {
			break
		}
		entities[i].SetPosition(points[i])
	}
}

// Parameters reports the playback state for HUDs and run logs.
func (p *Player) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Playback",
			Params: []core.Parameter{
				core.StringParam("path", "Path", p.cfg.Path),
				core.IntParam("frames", "Frames", len(p.frames)),
				core.IntParam("cursor", "Cursor", p.cursor),
				core.IntParam("points", "Points", p.Len()),
				core.FloatParam("density", "Density", p.cfg.Density),
			},
		},
	}}
}

func init() {
	core.Register(core.KindMeshSequence.String(), func(cfg map[string]string, env core.Env) (core.Figure, error) {
		c := FromMap(cfg)
		if c.Path == "" {
			return nil, errors.New("sequence: path is required")
		}
		if env.Resources == nil {
			return nil, fmt.Errorf("sequence: %q needs a resource loader", c.Path)
		}
		frames, err := env.Resources.Frames(c.Path, c.Start, c.End)
		if err != nil {
			return nil, fmt.Errorf("sequence: load %q: %w", c.Path, err)
		}
		p, err := New(frames, c, env.RNG)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
}
