package core

import (
	"math/rand/v2"
	"sort"
)

// Resources resolves external frame sequences for factories.
type Resources interface {
	Track(pattern string, start, end int) (Track, error)
	Frames(pattern string, start, end int) (FrameSet, error)
}

// Env carries what a factory needs besides its string configuration.
type Env struct {
	RNG       *rand.Rand
	Resources Resources
}

// Factory constructs a Figure using an optional configuration map.
type Factory func(cfg map[string]string, env Env) (Figure, error)

var factories = map[string]Factory{}

// Register adds a figure factory under the provided kind name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	factories[name] = f
}

// Factories exposes the registry of available figure factories.
func Factories() map[string]Factory {
	return factories
}

// FactoryNames returns the registered kind names in sorted order.
func FactoryNames() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Morph converts a source figure into a new variant, consuming the source.
type Morph func(src Figure, cfg map[string]string, env Env) (Figure, error)

var morphs = map[string]Morph{}

// RegisterMorph adds a conversion under the provided target kind name.
func RegisterMorph(name string, m Morph) {
	if name == "" || m == nil {
		return
	}
	morphs[name] = m
}

// Morphs exposes the registry of available conversions.
func Morphs() map[string]Morph {
	return morphs
}
