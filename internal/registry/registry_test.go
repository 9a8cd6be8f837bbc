package registry

import (
	"errors"
	"testing"

	"flockfx/internal/core"
	"flockfx/internal/figures/explosion"

	"github.com/go-gl/mathgl/mgl64"
)

// counter is a figure that records its moves and empties itself after a set
// number of them.
type counter struct {
	core.Group
	moves    int
	lifetime int
}

func (c *counter) Kind() core.Kind { return core.KindFlock }

func (c *counter) Move() {
	c.moves++
	if c.lifetime > 0 && c.moves >= c.lifetime {
		c.SetEntities(nil)
	}
}

func newCounter(n, lifetime int) *counter {
	entities := make([]core.Entity, n)
	for i := range entities {
		entities[i] = core.NewEntity(i, nil)
		entities[i].SetPosition(mgl64.Vec3{float64(i), 0, 0})
	}
	return &counter{Group: core.NewGroup(entities), lifetime: lifetime}
}

func TestTickMovesEachFigureOnce(t *testing.T) {
	r := New(Options{})
	a, b := newCounter(2, 0), newCounter(3, 0)
	r.Add(a)
	r.Add(nil)
	r.Add(b)
	if r.Len() != 2 {
		t.Fatalf("nil figure must be ignored, len=%d", r.Len())
	}
	for i := 0; i < 5; i++ {
		r.Tick()
	}
	if a.moves != 5 || b.moves != 5 {
		t.Fatalf("moves a=%d b=%d, want 5 each", a.moves, b.moves)
	}
	if r.Moves() != 5 {
		t.Fatalf("move counter %d, want 5", r.Moves())
	}
}

func TestPurgeRunsOnCadence(t *testing.T) {
	r := New(Options{PurgeEvery: 10})
	short, long := newCounter(1, 3), newCounter(1, 0)
	r.Add(short)
	r.Add(long)

	for i := 0; i < 9; i++ {
		r.Tick()
	}
	if r.Len() != 2 {
		t.Fatalf("empty figure purged before the cadence: len=%d", r.Len())
	}
	if short.IsNeeded() {
		t.Fatal("short-lived figure should be empty by now")
	}
	r.Tick()
	if r.Len() != 1 || r.At(0) != core.Figure(long) {
		t.Fatalf("expected only the long-lived figure after purge, len=%d", r.Len())
	}
}

func TestPurgeKeepsOrder(t *testing.T) {
	r := New(Options{})
	figs := []*counter{newCounter(1, 0), newCounter(0, 0), newCounter(2, 0), newCounter(0, 0), newCounter(1, 0)}
	for _, f := range figs {
		r.Add(f)
	}
	if removed := r.Purge(); removed != 2 {
		t.Fatalf("removed %d, want 2", removed)
	}
	want := []core.Figure{figs[0], figs[2], figs[4]}
	for i, f := range r.Figures() {
		if f != want[i] {
			t.Fatalf("figure %d out of order", i)
		}
	}
}

func TestReplaceSwapsInPlace(t *testing.T) {
	r := New(Options{})
	src := newCounter(4, 0)
	src.SetName("cube")
	r.Add(newCounter(1, 0))
	r.Add(src)

	err := r.Replace(1, func(f core.Figure) (core.Figure, error) {
		x, err := explosion.New(f, explosion.DefaultConfig(), nil)
		if err != nil {
			return nil, err
		}
		return x, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	got := r.At(1)
	if got.Kind() != core.KindExplosion {
		t.Fatalf("slot 1 holds %v, want explosion", got.Kind())
	}
	if got.Name() != "cube" {
		t.Fatalf("name %q not carried over", got.Name())
	}
	if got.Len() != 4 || src.IsNeeded() {
		t.Fatalf("conversion must move all entities: new=%d old needed=%v", got.Len(), src.IsNeeded())
	}
	if r.Len() != 2 {
		t.Fatalf("registry must hold one reference per figure, len=%d", r.Len())
	}
	if err := r.Replace(7, nil); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestMorphAllKeepsFailedFigures(t *testing.T) {
	r := New(Options{})
	a, b := newCounter(1, 0), newCounter(2, 0)
	r.Add(a)
	r.Add(b)
	boom := errors.New("boom")
	err := r.MorphAll(func(f core.Figure) (core.Figure, error) {
		if f.Len() < 2 {
			return nil, boom
		}
		x, err := explosion.New(f, explosion.DefaultConfig(), nil)
		if err != nil {
			return nil, err
		}
		return x, nil
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined error, got %v", err)
	}
	if r.At(0) != core.Figure(a) {
		t.Fatal("failed conversion must leave the figure in place")
	}
	if r.At(1).Kind() != core.KindExplosion {
		t.Fatal("successful conversion must be applied")
	}
}

func TestScheduledConversionAppliesAtTick(t *testing.T) {
	r := New(Options{})
	src := newCounter(3, 0)
	r.Add(src)
	calls := 0
	r.Schedule(2, src, func(f core.Figure) (core.Figure, error) {
		calls++
		x, err := explosion.New(f, explosion.DefaultConfig(), nil)
		if err != nil {
			return nil, err
		}
		return x, nil
	})

	r.Tick()
	r.Tick()
	if r.At(0).Kind() != core.KindFlock || r.Pending() != 1 {
		t.Fatal("conversion applied too early")
	}
	r.Tick()
	if r.At(0).Kind() != core.KindExplosion {
		t.Fatalf("expected explosion after tick 3, got %v", r.At(0).Kind())
	}
	if calls != 1 || r.Pending() != 0 {
		t.Fatalf("calls=%d pending=%d", calls, r.Pending())
	}
	if src.moves != 2 {
		t.Fatalf("source moved %d times, want 2", src.moves)
	}
}

func TestScheduledConversionErrorsAreReported(t *testing.T) {
	r := New(Options{})
	src := newCounter(1, 0)
	r.Add(src)
	r.Schedule(0, src, func(core.Figure) (core.Figure, error) { return nil, errors.New("nope") })
	r.Tick()
	errs := r.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %v", errs)
	}
	if r.At(0) != core.Figure(src) {
		t.Fatal("figure must stay after a failed conversion")
	}
	if len(r.Errors()) != 0 {
		t.Fatal("Errors must clear the list")
	}
}

func TestStats(t *testing.T) {
	r := New(Options{})
	r.Add(newCounter(2, 0))
	r.Add(newCounter(5, 0))
	s := r.Stats()
	if s.Figures != 2 || s.Entities != 7 || s.ByKind[core.KindFlock] != 2 {
		t.Fatalf("unexpected stats %+v", s)
	}
}

func TestReplaceRejectsMissingResult(t *testing.T) {
	r := New(Options{})
	src := newCounter(2, 0)
	r.Add(src)
	err := r.Replace(0, func(core.Figure) (core.Figure, error) { return nil, nil })
	if !errors.Is(err, ErrNoFigure) {
		t.Fatalf("expected ErrNoFigure, got %v", err)
	}
	if r.At(0) != core.Figure(src) {
		t.Fatal("slot must keep the original figure")
	}
}
