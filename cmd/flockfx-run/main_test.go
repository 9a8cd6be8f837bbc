package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flockfx/internal/scene"
)

func TestRunSceneWritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	r, err := runScene(scene.Default(), nil, options{ticks: 5, snapshot: path, width: 32, height: 24})
	if err != nil {
		t.Fatalf("runScene: %v", err)
	}
	if r.stats.Moves != 5 || r.stats.Figures != 1 {
		t.Fatalf("unexpected stats %+v", r.stats)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("snapshot missing: %v", err)
	}
}

func TestSweepOrdersBySeed(t *testing.T) {
	file, err := scene.Decode("seed = 3\n[[figure]]\nkind = \"flock\"\n[figure.params]\ncount = 6\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	results := sweep(file, nil, options{ticks: 3}, 4, 2)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.seed != int64(3+i) {
			t.Fatalf("result %d has seed %d", i, r.seed)
		}
		if len(r.errs) != 0 || r.stats.Entities != 6 {
			t.Fatalf("seed %d: %+v", r.seed, r)
		}
	}
}

func TestFormatStatsSortsKinds(t *testing.T) {
	file, err := scene.Decode("[[figure]]\nkind = \"flock\"\n[figure.params]\ncount = 3\n")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	r, err := runScene(file, nil, options{ticks: 1})
	if err != nil {
		t.Fatalf("runScene: %v", err)
	}
	if got := formatStats(r.stats); !strings.Contains(got, "flock=1") || !strings.Contains(got, "entities=3") {
		t.Fatalf("formatStats = %q", got)
	}
}

func TestRunReturnsErrorsInsteadOfExiting(t *testing.T) {
	if err := run(options{profile: "trace", runs: 1}); err == nil || !strings.Contains(err.Error(), "trace") {
		t.Fatalf("expected an unknown profile error, got %v", err)
	}
	missing := filepath.Join(t.TempDir(), "missing.toml")
	if err := run(options{scene: missing, runs: 1, ticks: 1}); err == nil {
		t.Fatalf("expected an error for a missing scene file")
	}
}

func TestRunDefaultScene(t *testing.T) {
	if err := run(options{runs: 1, ticks: 2}); err != nil {
		t.Fatalf("run: %v", err)
	}
}
