// Package scene describes which figures to animate and builds them into a
// registry through the registered factories.
package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"flockfx/internal/core"
	"flockfx/internal/registry"

	"github.com/BurntSushi/toml"
)

// ErrUnknownKind is returned for a figure or morph kind nobody registered.
var ErrUnknownKind = errors.New("scene: unknown figure kind")

// File is the decoded form of a scene file.
type File struct {
	Seed       int64        `toml:"seed"`
	TPS        int          `toml:"tps"`
	PurgeEvery int          `toml:"purge_every"`
	Root       string       `toml:"root"`
	ZUp        bool         `toml:"z_up"`
	Figures    []FigureSpec `toml:"figure"`
}

// FigureSpec declares one figure.
type FigureSpec struct {
	Kind   string         `toml:"kind"`
	Name   string         `toml:"name"`
	Seed   int64          `toml:"seed"`
	Params map[string]any `toml:"params"`
	Morphs []MorphSpec    `toml:"morph"`
}

// MorphSpec schedules a conversion of its figure once the registry has
// completed At ticks.
type MorphSpec struct {
	At     uint64         `toml:"at"`
	Into   string         `toml:"into"`
	Params map[string]any `toml:"params"`
}

// Default returns the scene used when no file is given: a single free flock.
func Default() File {
	f := File{Figures: []FigureSpec{{Kind: core.KindFlock.String(), Name: "flock"}}}
	f.fill()
	return f
}

// Parse reads a scene file from disk.
func Parse(path string) (File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, fmt.Errorf("scene: decode %s: %w", path, err)
	}
	f.fill()
	return f, nil
}

// Decode reads a scene from TOML text.
func Decode(text string) (File, error) {
	var f File
	if _, err := toml.Decode(text, &f); err != nil {
		return File{}, fmt.Errorf("scene: decode: %w", err)
	}
	f.fill()
	return f, nil
}

func (f *File) fill() {
	if f.TPS <= 0 {
		f.TPS = core.DefaultTPS
	}
	if f.PurgeEvery <= 0 {
		f.PurgeEvery = core.DefaultPurgeEvery
	}
	for i := range f.Figures {
		if f.Figures[i].Name == "" {
			f.Figures[i].Name = fmt.Sprintf("%s#%d", f.Figures[i].Kind, i)
		}
	}
}

// Stringify flattens decoded TOML values into the string form factories read.
func Stringify(params map[string]any) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// Build constructs every figure of the scene and schedules its morphs. The
// returned registry is ready to tick.
func (f File) Build(res core.Resources) (*registry.Registry, error) {
	reg := registry.New(registry.Options{PurgeEvery: f.PurgeEvery})
	rng := core.NewRNG(f.Seed)
	factories := core.Factories()

	var errs []error
	stream := len(f.Figures)
	for i, spec := range f.Figures {
		factory, ok := factories[spec.Kind]
		if !ok {
			errs = append(errs, fmt.Errorf("%w %q (figure %s, have %s)", ErrUnknownKind, spec.Kind, spec.Name, strings.Join(core.FactoryNames(), ", ")))
			continue
		}
		env := core.Env{RNG: rng.Derive(i), Resources: res}
		if spec.Seed != 0 {
			env.RNG = core.NewRNG(spec.Seed).Source()
		}
		fig, err := factory(Stringify(spec.Params), env)
		if err != nil {
			errs = append(errs, fmt.Errorf("scene: figure %s: %w", spec.Name, err))
			continue
		}
		fig.SetName(spec.Name)
		reg.Add(fig)

		morphs := append([]MorphSpec(nil), spec.Morphs...)
		sort.SliceStable(morphs, func(a, b int) bool { return morphs[a].At < morphs[b].At })
		for _, m := range morphs {
			menv := core.Env{RNG: rng.Derive(stream), Resources: res}
			stream++
			convert, err := MorphTo(m.Into, Stringify(m.Params), menv)
			if err != nil {
				errs = append(errs, fmt.Errorf("scene: figure %s: %w", spec.Name, err))
				continue
			}
			reg.Schedule(m.At, fig, convert)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

// MorphTo returns a registry converter for the named target kind.
func MorphTo(kind string, params map[string]string, env core.Env) (registry.Converter, error) {
	morph, ok := core.Morphs()[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	return func(src core.Figure) (core.Figure, error) {
		return morph(src, params, env)
	}, nil
}
