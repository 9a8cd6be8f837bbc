package app

import (
	"flag"

	"flockfx/internal/core"
)

// Config represents the command-line parameters of the viewer.
type Config struct {
	Scene    string
	Root     string
	Width    int
	Height   int
	HUDWidth int
	TPS      int
	Seed     int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Width: 800, Height: 600, HUDWidth: 260, TPS: core.DefaultTPS}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene file (default: a single flock)")
	fs.StringVar(&c.Root, "root", c.Root, "directory relative frame patterns resolve against")
	fs.IntVar(&c.Width, "width", c.Width, "view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "view height in pixels")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "HUD panel width in pixels, 0 to hide")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second, 0 to use the scene's rate")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "override the scene seed when non-zero")
}
