package core

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Derive returns an independent stream for the n-th consumer of this seed.
// Streams for different n never share state.
func (r *RNG) Derive(n int) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(r.seed), uint64(n)+1))
}

// InBox returns a point uniformly distributed in [origin, origin+side)^3.
func InBox(r *rand.Rand, origin mgl64.Vec3, side float64) mgl64.Vec3 {
	return mgl64.Vec3{
		origin[0] + r.Float64()*side,
		origin[1] + r.Float64()*side,
		origin[2] + r.Float64()*side,
	}
}

// Signed returns a value uniformly distributed in [-1, 1).
func Signed(r *rand.Rand) float64 {
	return r.Float64()*2 - 1
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
