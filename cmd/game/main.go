package main

import (
	"flag"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/stagekit/engine/internal/application/compositor"
	"github.com/stagekit/engine/internal/application/director"
	"github.com/stagekit/engine/internal/application/preload"
	"github.com/stagekit/engine/internal/application/registry"
	"github.com/stagekit/engine/internal/application/transition"
	"github.com/stagekit/engine/internal/domain/scene"
	"github.com/stagekit/engine/internal/infrastructure/config"
)

const framerate = 60

// Game implements ebiten.Game and forwards the frame loop to the director.
type Game struct {
	cfg      *config.EngineConfig
	director *director.Director
	dt       float64

	batchStarted bool
	batchStatus  string
}

// NewGame wires the scene-lifecycle core and registers the demo scenes.
func NewGame(cfg *config.EngineConfig) *Game {
	reg := registry.New()
	pre := preload.New(reg)
	comp := compositor.New(compositor.FromConfig(cfg.Layers))
	d := director.New(reg, comp, pre)

	d.On(director.EventSceneLoaded, func(name string, _ scene.Scene) {
		log.Printf("event: scene_loaded %q", name)
	})

	reg.Register("menu", newDemoScene("menu", color.RGBA{26, 26, 46, 255}, 0))
	reg.Register("level1", newDemoScene("level1", color.RGBA{30, 60, 36, 255}, 50*time.Millisecond))
	reg.Register("pause", newPauseScene())

	d.Load("menu", nil)

	return &Game{
		cfg:      cfg,
		director: d,
		dt:       1.0 / framerate,
	}
}

// fade builds a fade transition from the configured defaults.
func (g *Game) fade() *transition.Effect {
	return transition.New(transition.Fade, g.cfg.Transitions.DefaultDuration).
		WithColor(g.cfg.Transitions.FadeColor.RGBA())
}

// Update handles input and ticks the director. Implements ebiten.Game.
func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.director.Load("level1", g.fade())
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		g.director.Load("menu", g.fade())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.director.Push("pause", transition.New(transition.SlideUp, 0.3))
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.director.Pop(transition.New(transition.SlideDown, 0.3))
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		g.startBatch()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		// Debug layer toggles off and on with repeated presses.
		order := g.director.Compositor().DrawOrder()
		visible := false
		for _, name := range order {
			if name == "debug" {
				visible = true
			}
		}
		g.director.Compositor().SetVisibility("debug", !visible)
	}

	g.director.Update(g.dt)
	return nil
}

// startBatch preloads extra levels in the background once.
func (g *Game) startBatch() {
	if g.batchStarted {
		return
	}
	g.batchStarted = true
	batch := map[string]scene.Scene{
		"level2": newDemoScene("level2", color.RGBA{60, 36, 30, 255}, 80*time.Millisecond),
		"level3": newDemoScene("level3", color.RGBA{36, 30, 60, 255}, 80*time.Millisecond),
	}
	g.director.Preloader().PreloadBatchAsync(batch,
		func(completed, total int) {
			g.batchStatus = "preloading"
			log.Printf("batch: %d/%d", completed, total)
		},
		func(completed, total int, errs []error) {
			g.batchStatus = "ready"
			log.Printf("batch: done %d/%d, %d errors", completed, total, len(errs))
		})
}

// Draw renders the current scene and transition overlay, plus a tiny HUD.
// Implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.director.Draw(screen)

	if g.batchStatus != "" {
		c := color.RGBA{255, 215, 0, 255}
		if g.batchStatus == "ready" {
			c = color.RGBA{100, 200, 100, 255}
		}
		ebitenutil.DrawRect(screen, float64(g.cfg.Display.ScreenWidth-20), 4, 16, 16, c)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Display.ScreenWidth, g.cfg.Display.ScreenHeight
}

func main() {
	configDir := flag.String("config", "configs", "Directory containing engine.yaml")
	flag.Parse()

	loader := config.NewLoader(*configDir)
	cfg, err := loader.LoadEngine()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	game := NewGame(cfg)

	ebiten.SetWindowSize(cfg.Display.ScreenWidth*2, cfg.Display.ScreenHeight*2)
	ebiten.SetWindowTitle("Scene Lifecycle Demo")
	ebiten.SetTPS(framerate)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
