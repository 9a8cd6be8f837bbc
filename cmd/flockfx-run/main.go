// Command flockfx-run animates a scene without a window and reports figure
// statistics, optionally writing the final frame as a PNG.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"

	"flockfx/internal/core"
	_ "flockfx/internal/figures/explosion"
	_ "flockfx/internal/figures/flock"
	_ "flockfx/internal/figures/sequence"
	"flockfx/internal/loader"
	"flockfx/internal/registry"
	"flockfx/internal/render"
	"flockfx/internal/scene"

	"github.com/pkg/profile"
)

type options struct {
	scene   string
	root    string
	seed    int64
	runs    int
	workers int
	profile string

	ticks    int
	every    int
	realtime bool
	snapshot string
	width    int
	height   int
}

type result struct {
	seed  int64
	stats registry.Stats
	errs  []error
}

func main() {
	var opts options
	flag.StringVar(&opts.scene, "scene", "", "scene file (default: a single flock)")
	flag.StringVar(&opts.root, "root", "", "directory relative frame patterns resolve against")
	flag.Int64Var(&opts.seed, "seed", 0, "override the scene seed when non-zero")
	flag.IntVar(&opts.runs, "runs", 1, "number of consecutive seeds to run")
	flag.IntVar(&opts.workers, "workers", runtime.NumCPU(), "number of worker goroutines for -runs > 1")
	flag.StringVar(&opts.profile, "profile", "", "profile mode: cpu or mem")
	flag.IntVar(&opts.ticks, "ticks", 240, "ticks to animate")
	flag.IntVar(&opts.every, "every", 24, "log stats every n ticks, 0 to disable")
	flag.BoolVar(&opts.realtime, "realtime", false, "pace ticks at the scene rate")
	flag.StringVar(&opts.snapshot, "png", "", "write the final frame to this PNG file")
	flag.IntVar(&opts.width, "width", 640, "snapshot width")
	flag.IntVar(&opts.height, "height", 480, "snapshot height")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

// run loads the scene and animates it. Any profile is flushed before it
// returns, including on error.
func run(opts options) error {
	var stop interface{ Stop() }
	switch strings.ToLower(opts.profile) {
	case "":
	case "cpu":
		stop = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	case "mem":
		stop = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	default:
		return fmt.Errorf("unknown profile mode %q", opts.profile)
	}
	if stop != nil {
		defer stop.Stop()
	}

	file := scene.Default()
	if opts.scene != "" {
		parsed, err := scene.Parse(opts.scene)
		if err != nil {
			return err
		}
		file = parsed
	}
	if opts.seed != 0 {
		file.Seed = opts.seed
	}
	root := opts.root
	if root == "" {
		root = file.Root
	}
	res := loader.New(loader.Options{Root: root, ZUp: file.ZUp})

	if opts.runs <= 1 {
		r, err := runScene(file, res, opts)
		if err != nil {
			return err
		}
		report(r)
		return nil
	}

	opts.every = 0
	opts.realtime = false
	opts.snapshot = ""
	for _, r := range sweep(file, res, opts, opts.runs, opts.workers) {
		report(r)
	}
	return nil
}

// sweep runs the scene once per seed on a pool of workers.
func sweep(file scene.File, res core.Resources, opts options, runs, workers int) []result {
	if workers <= 0 {
		workers = 1
	}
	fmt.Printf("Running %d seeds from %d (%d workers, %d ticks)\n", runs, file.Seed, workers, opts.ticks)

	jobs := make(chan int64)
	out := make(chan result)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				f := file
				f.Seed = s
				r, err := runScene(f, res, opts)
				if err != nil {
					r = result{seed: s, errs: []error{err}}
				}
				out <- r
			}
		}()
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	go func() {
		for i := 0; i < runs; i++ {
			jobs <- file.Seed + int64(i)
		}
		close(jobs)
	}()

	var all []result
	for r := range out {
		all = append(all, r)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seed < all[j].seed })
	return all
}

func runScene(file scene.File, res core.Resources, opts options) (result, error) {
	reg, err := file.Build(res)
	if err != nil {
		return result{}, err
	}
	r := result{seed: file.Seed}
	var clock *core.FixedStep
	if opts.realtime {
		clock = core.NewFixedStep(file.TPS)
	}
	for t := 1; t <= opts.ticks; t++ {
		if clock != nil {
			clock.Wait()
		}
		reg.Tick()
		r.errs = append(r.errs, reg.Errors()...)
		if opts.every > 0 && t%opts.every == 0 {
			log.Printf("tick %d: %s", t, formatStats(reg.Stats()))
		}
	}
	r.stats = reg.Stats()
	if opts.snapshot != "" {
		if err := writeSnapshot(opts.snapshot, reg.Figures(), opts.width, opts.height); err != nil {
			return r, err
		}
	}
	return r, nil
}

func writeSnapshot(path string, figures []core.Figure, w, h int) error {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	points := render.ProjectAll(nil, figures, render.DefaultCamera(), w, h)
	render.Rasterize(img, points, color.Black, color.RGBA{R: 255, G: 236, B: 200, A: 255})
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return f.Close()
}

func formatStats(s registry.Stats) string {
	kinds := make([]string, 0, len(s.ByKind))
	for k, n := range s.ByKind {
		kinds = append(kinds, fmt.Sprintf("%s=%d", k, n))
	}
	sort.Strings(kinds)
	return fmt.Sprintf("figures=%d entities=%d %s", s.Figures, s.Entities, strings.Join(kinds, " "))
}

func report(r result) {
	fmt.Printf("seed %d after %d ticks: %s\n", r.seed, r.stats.Moves, formatStats(r.stats))
	for _, err := range r.errs {
		fmt.Printf("  error: %v\n", err)
	}
}
