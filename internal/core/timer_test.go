package core

import (
	"testing"
	"time"
)

func TestFixedStepFirstTickIsImmediate(t *testing.T) {
	fs := NewFixedStep(24)
	base := time.Unix(100, 0)
	fs.now = func() time.Time { return base }
	if !fs.ShouldStep() {
		t.Fatalf("expected first call to step")
	}
	if fs.ShouldStep() {
		t.Fatalf("expected no step without elapsed time")
	}
}

func TestFixedStepAccumulates(t *testing.T) {
	fs := NewFixedStep(10)
	clock := time.Unix(0, 0)
	fs.now = func() time.Time { return clock }
	fs.ShouldStep()

	clock = clock.Add(50 * time.Millisecond)
	if fs.ShouldStep() {
		t.Fatalf("stepped after half a tick")
	}
	clock = clock.Add(50 * time.Millisecond)
	if !fs.ShouldStep() {
		t.Fatalf("expected a step after a full tick")
	}
}

func TestFixedStepDefaultsInvalidRate(t *testing.T) {
	fs := NewFixedStep(0)
	if fs.Step() != time.Second/DefaultTPS {
		t.Fatalf("step = %v, want %v", fs.Step(), time.Second/DefaultTPS)
	}
	fs.SetTPS(-3)
	if fs.Step() != time.Second/DefaultTPS {
		t.Fatalf("SetTPS(-3) changed step to %v", fs.Step())
	}
}
