//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"flockfx/internal/app"
	_ "flockfx/internal/figures/explosion"
	_ "flockfx/internal/figures/flock"
	_ "flockfx/internal/figures/sequence"
	"flockfx/internal/loader"
	"flockfx/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	file := scene.Default()
	if cfg.Scene != "" {
		parsed, err := scene.Parse(cfg.Scene)
		if err != nil {
			log.Fatal(err)
		}
		file = parsed
	}
	if cfg.Seed != 0 {
		file.Seed = cfg.Seed
	}
	tps := file.TPS
	if cfg.TPS > 0 {
		tps = cfg.TPS
	}
	root := cfg.Root
	if root == "" {
		root = file.Root
	}
	res := loader.New(loader.Options{Root: root, ZUp: file.ZUp})

	game, err := app.New(file, res, cfg)
	if err != nil {
		log.Fatalf("build scene: %v", err)
	}

	ebiten.SetWindowTitle("flockfx")
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(cfg.Width+cfg.HUDWidth, cfg.Height)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
