package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

type stub struct{ Group }

func (s *stub) Kind() Kind { return KindMeshSequence }
func (s *stub) Move()      {}

func TestTakeConsumesSource(t *testing.T) {
	entities := make([]Entity, 3)
	for i := range entities {
		entities[i] = NewEntity(i+7, nil)
		entities[i].SetPosition(mgl64.Vec3{float64(i), 0, 0})
		entities[i].SetVelocity(mgl64.Vec3{1, 1, 1})
	}
	entities[2].SetIntensity(0.25)
	src := &stub{Group: NewGroup(entities)}

	got := Take(src, nil)
	if src.IsNeeded() || src.Len() != 0 {
		t.Fatalf("source still holds %d entities", src.Len())
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 entities, got %d", len(got))
	}
	for i, e := range got {
		if e.ID() != i {
			t.Fatalf("entity %d has id %d", i, e.ID())
		}
		if e.Position() != (mgl64.Vec3{float64(i), 0, 0}) {
			t.Fatalf("entity %d position %v", i, e.Position())
		}
		if e.Velocity() != (mgl64.Vec3{}) {
			t.Fatalf("entity %d kept velocity %v", i, e.Velocity())
		}
	}
	if got[2].Intensity() != 0.25 {
		t.Fatalf("intensity not copied: %v", got[2].Intensity())
	}
	if got[0].Leadership() != LeaderWeight {
		t.Fatalf("entity 0 should lead")
	}
}

func TestTakeNil(t *testing.T) {
	if got := Take(nil, nil); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestCentroid(t *testing.T) {
	if c := Centroid(nil); c != (mgl64.Vec3{}) {
		t.Fatalf("empty centroid = %v", c)
	}
	es := []Entity{NewEntity(0, nil), NewEntity(1, nil)}
	es[0].SetPosition(mgl64.Vec3{0, 0, 0})
	es[1].SetPosition(mgl64.Vec3{2, 4, -2})
	if c := Centroid(es); c != (mgl64.Vec3{1, 2, -1}) {
		t.Fatalf("centroid = %v", c)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindFlock:        "flock",
		KindExplosion:    "explosion",
		KindMeshSequence: "sequence",
		Kind(99):         "unknown",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
