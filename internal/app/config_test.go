package app

import (
	"flag"
	"testing"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("flockfx", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-scene", "walk.toml", "-width", "320", "-seed", "9", "-hud", "0"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Scene != "walk.toml" || cfg.Width != 320 || cfg.Seed != 9 || cfg.HUDWidth != 0 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Height != 600 {
		t.Fatalf("unset flag changed default: %d", cfg.Height)
	}
}
