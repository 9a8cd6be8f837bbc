// Package registry owns the live figures of a scene and advances them once
// per tick.
package registry

import (
	"errors"
	"fmt"

	"flockfx/internal/core"
)

// ErrIndex is returned for a figure index outside the registry.
var ErrIndex = errors.New("registry: figure index out of range")

// ErrNoFigure is returned when a conversion yields no figure.
var ErrNoFigure = errors.New("registry: conversion returned no figure")

// Converter turns a figure into a new variant, consuming the source. On error
// the source must be left usable.
type Converter func(core.Figure) (core.Figure, error)

// Options configures a Registry.
type Options struct {
	// PurgeEvery is the number of ticks between removals of empty figures.
	// Zero or less disables automatic purging.
	PurgeEvery int
}

// Stats summarizes the registry contents.
type Stats struct {
	Moves    uint64
	Figures  int
	Entities int
	ByKind   map[core.Kind]int
}

type scheduled struct {
	at      uint64
	figure  core.Figure
	convert Converter
}

// Registry holds the live figures. It is driven from a single goroutine and is
// not safe for concurrent use.
type Registry struct {
	figures    []core.Figure
	moves      uint64
	purgeEvery int
	pending    []scheduled
	errs       []error
}

// New returns an empty registry.
func New(opts Options) *Registry {
	return &Registry{purgeEvery: opts.PurgeEvery}
}

// Add appends a figure. Nil figures are ignored.
func (r *Registry) Add(f core.Figure) {
	if f == nil {
		return
	}
	r.figures = append(r.figures, f)
}

// Len returns the number of figures held, including empty ones not yet purged.
func (r *Registry) Len() int { return len(r.figures) }

// At returns figure i.
func (r *Registry) At(i int) core.Figure { return r.figures[i] }

// Figures returns a copy of the figure list for drawing or export.
func (r *Registry) Figures() []core.Figure {
	out := make([]core.Figure, len(r.figures))
	copy(out, r.figures)
	return out
}

// Moves returns the number of completed ticks.
func (r *Registry) Moves() uint64 { return r.moves }

// Tick applies due scheduled conversions, moves every figure exactly once and
// purges empty figures on the configured cadence.
func (r *Registry) Tick() {
	r.applyDue()
	for _, f := range r.figures {
		f.Move()
	}
	r.moves++
	if r.purgeEvery > 0 && r.moves%uint64(r.purgeEvery) == 0 {
		r.Purge()
	}
}

// Purge removes figures that no longer need animating and returns how many
// were removed. Order of the remaining figures is preserved.
func (r *Registry) Purge() int {
	n := 0
	for _, f := range r.figures {
		if f.IsNeeded() {
			r.figures[n] = f
			n++
		}
	}
	removed := len(r.figures) - n
	clear(r.figures[n:])
	r.figures = r.figures[:n]
	return removed
}

// Replace converts figure i and swaps the result into the same slot.
func (r *Registry) Replace(i int, convert Converter) error {
	if i < 0 || i >= len(r.figures) {
		return fmt.Errorf("%w: %d of %d", ErrIndex, i, len(r.figures))
	}
	next, err := convert(r.figures[i])
	if err != nil {
		return fmt.Errorf("registry: convert %s %q: %w", r.figures[i].Kind(), r.figures[i].Name(), err)
	}
	if next == nil {
		return fmt.Errorf("%w: %s %q", ErrNoFigure, r.figures[i].Kind(), r.figures[i].Name())
	}
	if next.Name() == "" {
		next.SetName(r.figures[i].Name())
	}
	r.retarget(r.figures[i], next)
	r.figures[i] = next
	return nil
}

// MorphAll converts every figure. Figures whose conversion fails keep their
// current variant; the failures are joined into the returned error.
func (r *Registry) MorphAll(convert Converter) error {
	var errs []error
	for i := range r.figures {
		if err := r.Replace(i, convert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Schedule converts f at the start of the tick whose move counter equals at.
// Scheduling for a tick already passed converts on the next tick.
func (r *Registry) Schedule(at uint64, f core.Figure, convert Converter) {
	if f == nil || convert == nil {
		return
	}
	r.pending = append(r.pending, scheduled{at: at, figure: f, convert: convert})
}

// Pending returns the number of scheduled conversions not yet applied.
func (r *Registry) Pending() int { return len(r.pending) }

// Errors returns and clears the failures of scheduled conversions.
func (r *Registry) Errors() []error {
	errs := r.errs
	r.errs = nil
	return errs
}

func (r *Registry) applyDue() {
	if len(r.pending) == 0 {
		return
	}
	keep := r.pending[:0]
	for _, s := range r.pending {
		if s.at > r.moves {
			keep = append(keep, s)
			continue
		}
		i := r.indexOf(s.figure)
		if i < 0 {
			// purged or already converted away
			continue
		}
		if err := r.Replace(i, s.convert); err != nil {
			r.errs = append(r.errs, err)
		}
	}
	clear(r.pending[len(keep):])
	r.pending = keep
}

// retarget points pending conversions of old at its replacement so chained
// morphs follow the figure.
func (r *Registry) retarget(old, next core.Figure) {
	for i := range r.pending {
		if r.pending[i].figure == old {
			r.pending[i].figure = next
		}
	}
}

func (r *Registry) indexOf(f core.Figure) int {
	for i, g := range r.figures {
		if g == f {
			return i
		}
	}
	return -1
}

// Stats returns a summary of the live figures.
func (r *Registry) Stats() Stats {
	s := Stats{Moves: r.moves, Figures: len(r.figures), ByKind: map[core.Kind]int{}}
	for _, f := range r.figures {
		s.Entities += f.Len()
		s.ByKind[f.Kind()]++
	}
	return s
}
