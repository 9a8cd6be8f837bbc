//go:build ebiten

package app

import (
	"image/color"
	"log"

	"flockfx/internal/core"
	"flockfx/internal/registry"
	"flockfx/internal/render"
	"flockfx/internal/scene"
	"flockfx/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a figure registry to the ebiten.Game interface.
type Game struct {
	scene  scene.File
	res    core.Resources
	reg    *registry.Registry
	rng    *core.RNG
	morphs int

	camera  render.Camera
	painter *render.PointPainter
	hud     *ui.HUD
	points  []render.Point

	bg   color.Color
	tint color.RGBA

	width, height int
	hudWidth      int
	paused        bool
	tickOnce      bool
}

// New builds the scene and wraps it in a Game.
func New(file scene.File, res core.Resources, cfg *Config) (*Game, error) {
	reg, err := file.Build(res)
	if err != nil {
		return nil, err
	}
	g := &Game{
		scene:    file,
		res:      res,
		reg:      reg,
		rng:      core.NewRNG(file.Seed),
		camera:   render.DefaultCamera(),
		painter:  render.NewPointPainter(cfg.Width, cfg.Height),
		bg:       color.Black,
		tint:     color.RGBA{R: 255, G: 236, B: 200, A: 255},
		width:    cfg.Width,
		height:   cfg.Height,
		hudWidth: cfg.HUDWidth,
	}
	g.hud = ui.NewHUD(reg, cfg.HUDWidth)
	return g, nil
}

// Reset rebuilds every figure from the scene.
func (g *Game) Reset() {
	reg, err := g.scene.Build(g.res)
	if err != nil {
		log.Printf("rebuild scene: %v", err)
		return
	}
	g.reg = reg
	g.morphs = 0
	g.hud.SetRegistry(reg)
	g.tickOnce = false
}

// morphAll converts every live figure into kind.
func (g *Game) morphAll(kind string) {
	env := core.Env{RNG: g.rng.Derive(len(g.scene.Figures) + 1000 + g.morphs), Resources: g.res}
	g.morphs++
	convert, err := scene.MorphTo(kind, nil, env)
	if err != nil {
		log.Print(err)
		return
	}
	if err := g.reg.MorphAll(convert); err != nil {
		log.Printf("morph into %s: %v", kind, err)
	}
}

// Update handles per-frame logic and advances the figures.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.morphAll(core.KindExplosion.String())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.morphAll(core.KindFlock.String())
	}

	g.hud.Update(g.width)

	if !g.paused || g.tickOnce {
		g.reg.Tick()
		for _, err := range g.reg.Errors() {
			log.Print(err)
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current figures.
func (g *Game) Draw(screen *ebiten.Image) {
	g.points = render.ProjectAll(g.points[:0], g.reg.Figures(), g.camera, g.width, g.height)
	g.painter.Blit(screen, g.points, g.bg, g.tint)
	g.hud.Draw(screen, g.width, g.height)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width + g.hudWidth, g.height
}
