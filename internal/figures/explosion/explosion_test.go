package explosion

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"flockfx/internal/core"

	"github.com/go-gl/mathgl/mgl64"
)

type pointCloud struct{ core.Group }

func (p *pointCloud) Kind() core.Kind { return core.KindFlock }
func (p *pointCloud) Move()           {}

func cloud(positions ...mgl64.Vec3) *pointCloud {
	entities := make([]core.Entity, len(positions))
	for i, pos := range positions {
		entities[i] = core.NewEntity(i, nil)
		entities[i].SetPosition(pos)
	}
	return &pointCloud{Group: core.NewGroup(entities)}
}

func TestScenarioFourPointBurst(t *testing.T) {
	positions := []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}}
	x, err := New(cloud(positions...), DefaultConfig(), rand.New(rand.NewPCG(1, 0)))
	if err != nil {
		t.Fatal(err)
	}
	if x.Origin() != (mgl64.Vec3{}) {
		t.Fatalf("origin %v, want (0,0,0)", x.Origin())
	}

	x.Move()
	if x.Len() != 4 {
		t.Fatalf("expected 4 entities after one tick, got %d", x.Len())
	}
	for i, start := range positions {
		e := x.At(i)
		if e.Intensity() >= 1 {
			t.Fatalf("entity %d intensity %f did not decrease", i, e.Intensity())
		}
		got := e.Position()
		if got.Len() <= start.Len() {
			t.Fatalf("entity %d did not move away: %v -> %v", i, start, got)
		}
		// still on the same ray from the origin
		if cross := got.Cross(start); cross.Len() > 1e-12 || got.Dot(start) <= 0 {
			t.Fatalf("entity %d left its radial direction: %v -> %v", i, start, got)
		}
		wantStep := 5.0 * DefaultStepScale
		if math.Abs(got.Len()-start.Len()-wantStep) > 1e-12 {
			t.Fatalf("entity %d moved %f, want %f", i, got.Len()-start.Len(), wantStep)
		}
	}
}

func TestOriginIsCentroidOfSource(t *testing.T) {
	positions := []mgl64.Vec3{{2, 4, 6}, {-1, 0, 3}, {5, -2, 0}}
	x, err := New(cloud(positions...), DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	want := mgl64.Vec3{2, 2.0 / 3.0, 3}
	if !x.Origin().ApproxEqualThreshold(want, 1e-12) {
		t.Fatalf("origin %v, want %v", x.Origin(), want)
	}
	for i, p := range positions {
		if x.At(i).Position() != p {
			t.Fatalf("entity %d moved during construction", i)
		}
	}
}

func TestIntensityFallsUntilRemoval(t *testing.T) {
	src := cloud(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0})
	src.Entities()[0].SetIntensity(0.05)
	x, err := New(src, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}

	last := x.At(0).Intensity()
	ticks := 0
	for x.Len() == 2 {
		x.Move()
		ticks++
		if ticks > 10 {
			t.Fatal("faint entity never removed")
		}
		if x.Len() == 2 {
			now := x.At(0).Intensity()
			if now > last {
				t.Fatalf("intensity rose from %f to %f", last, now)
			}
			if now <= 0 {
				t.Fatalf("entity with intensity %f kept after the tick", now)
			}
			last = now
		}
	}
	// 0.05 loses 0.001/0.035 per tick and crosses zero on the second tick
	if ticks != 2 {
		t.Fatalf("removed after %d ticks, want 2", ticks)
	}
	if x.At(0).Position()[0] >= 0 {
		t.Fatalf("remaining entity should be the one on the negative side, got %v", x.At(0).Position())
	}
}

func TestDeadEntitiesDroppedAndFigureEmpties(t *testing.T) {
	src := cloud(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0})
	src.Entities()[0].SetIntensity(0)
	src.Entities()[1].SetIntensity(-1)
	x, err := New(src, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !x.IsNeeded() {
		t.Fatal("figure should still report entities before the first tick")
	}
	x.Move()
	if x.IsNeeded() || x.Len() != 0 {
		t.Fatalf("expected empty figure, got %d entities", x.Len())
	}
}

func TestFactorTiers(t *testing.T) {
	cases := []struct {
		d    float64
		want float64
	}{
		{0, 5}, {19.9, 5}, {20, 2}, {59.9, 2}, {60, 0.5}, {500, 0.5},
	}
	for _, c := range cases {
		if got := Factor(c.d); got != c.want {
			t.Fatalf("Factor(%g) = %g, want %g", c.d, got, c.want)
		}
	}
}

func TestFarDebrisDriftsSlowlyAndFadesFast(t *testing.T) {
	src := cloud(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{200, 0, 0}, mgl64.Vec3{-200, 0, 0})
	x, err := New(src, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	x.Move()
	near, far := x.At(0), x.At(2)
	nearStep := near.Position()[0] - 1
	farStep := far.Position()[0] - 200
	if farStep >= nearStep {
		t.Fatalf("far step %f should be smaller than near step %f", farStep, nearStep)
	}
	if 1-far.Intensity() <= 1-near.Intensity() {
		t.Fatalf("far fade %f should exceed near fade %f", 1-far.Intensity(), 1-near.Intensity())
	}
}

func TestEntityOnOriginOnlyFades(t *testing.T) {
	x, err := New(cloud(mgl64.Vec3{3, 3, 3}), DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	x.Move()
	e := x.At(0)
	if e.Position() != (mgl64.Vec3{3, 3, 3}) {
		t.Fatalf("entity on the origin moved to %v", e.Position())
	}
	if e.Intensity() >= 1 {
		t.Fatal("entity on the origin should still fade")
	}
}

func TestNewConsumesSource(t *testing.T) {
	src := cloud(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	x, err := New(src, DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if src.IsNeeded() {
		t.Fatal("source must be emptied")
	}
	if x.Source() != core.KindFlock {
		t.Fatalf("source kind %v, want flock", x.Source())
	}
	if _, err := New(nil, DefaultConfig(), nil); !errors.Is(err, ErrNoSource) {
		t.Fatalf("expected ErrNoSource, got %v", err)
	}
}

func TestSpreadKeepsStepWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spread = 0.5
	x, err := New(cloud(mgl64.Vec3{1, 0, 0}, mgl64.Vec3{-1, 0, 0}), cfg, rand.New(rand.NewPCG(9, 0)))
	if err != nil {
		t.Fatal(err)
	}
	x.Move()
	step := x.At(0).Position()[0] - 1
	base := 5 * DefaultStepScale
	if step < base*0.5-1e-12 || step >= base*1.5 {
		t.Fatalf("step %f outside [%f, %f)", step, base*0.5, base*1.5)
	}
}

func TestFromMapClampsSpread(t *testing.T) {
	c := FromMap(map[string]string{"spread": "4", "decay": "-1", "step_scale": "0.01"})
	if c.Spread != maxSpread {
		t.Fatalf("spread %f, want %f", c.Spread, maxSpread)
	}
	if c.Decay != DefaultDecay || c.StepScale != 0.01 {
		t.Fatalf("unexpected config %+v", c)
	}
}
