package flock

import (
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DefaultCount       = 200
	DefaultSizeBox     = 5.0
	DefaultCohesion    = 40.0
	DefaultAlignment   = 10.0
	DefaultSeparation  = 0.02
	DefaultRadius      = 7.5
	DefaultMaxAttempts = 10000
)

// Params holds the flocking divisors and thresholds.
type Params struct {
	Cohesion   float64 // divisor applied to the pull towards the weighted centre
	Alignment  float64 // divisor applied to the velocity-matching term
	Separation float64 // axial distance below which neighbours push apart
	Radius     float64 // per-axis distance from the box centre before damping
}

// Config controls flock placement and motion.
type Config struct {
	Count   int
	SizeBox float64
	Origin  mgl64.Vec3

	// MaxAttempts bounds rejection sampling per entity during placement.
	MaxAttempts int

	// Track* name a recorded leader path; empty TrackPath means no leader track.
	TrackPath  string
	TrackStart int
	TrackEnd   int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Count:       DefaultCount,
		SizeBox:     DefaultSizeBox,
		MaxAttempts: DefaultMaxAttempts,
		Params: Params{
			Cohesion:   DefaultCohesion,
			Alignment:  DefaultAlignment,
			Separation: DefaultSeparation,
			Radius:     DefaultRadius,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Count = parsed
		}
	}
	if v, ok := cfg["size_box"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.SizeBox = parsed
		}
	}
	for axis, key := range []string{"origin_x", "origin_y", "origin_z"} {
		if v, ok := cfg[key]; ok {
			if parsed, err := strconv.ParseFloat(v, 64); err == nil {
				c.Origin[axis] = parsed
			}
		}
	}
	if v, ok := cfg["max_attempts"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.MaxAttempts = parsed
		}
	}
	if v, ok := cfg["track"]; ok {
		c.TrackPath = v
	}
	if v, ok := cfg["start"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.TrackStart = parsed
		}
	}
	if v, ok := cfg["end"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.TrackEnd = parsed
		}
	}
	if v, ok := cfg["cohesion"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Cohesion = parsed
		}
	}
	if v, ok := cfg["alignment"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Alignment = parsed
		}
	}
	if v, ok := cfg["separation"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Separation = parsed
		}
	}
	if v, ok := cfg["radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Radius = parsed
		}
	}
	return c
}

// withDefaults replaces rule divisors that would divide by zero with their
// defaults.
func withDefaults(cfg Config) Config {
	if !(cfg.Params.Cohesion > 0) {
		cfg.Params.Cohesion = DefaultCohesion
	}
	if !(cfg.Params.Alignment > 0) {
		cfg.Params.Alignment = DefaultAlignment
	}
	return cfg
}
