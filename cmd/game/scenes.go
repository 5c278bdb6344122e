package main

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/stagekit/engine/internal/domain/scene"
)

// rectObject is a flat-color demo object with full layer capabilities.
type rectObject struct {
	x, y, w, h float64
	color      color.RGBA
	layer      string
	z          int
	visible    bool
}

func (r *rectObject) Draw(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, r.x, r.y, r.w, r.h, r.color)
}

func (r *rectObject) Layer() string { return r.layer }

func (r *rectObject) ZOrder() int { return r.z }

func (r *rectObject) Visible() bool { return r.visible }

// demoScene is a colored screen built from layered rectangles.
type demoScene struct {
	*scene.Base
	loadDelay time.Duration
	elapsed   float64
}

func newDemoScene(name string, bg color.RGBA, loadDelay time.Duration) *demoScene {
	s := &demoScene{Base: scene.NewBase(name), loadDelay: loadDelay}
	s.Add(&rectObject{x: 0, y: 0, w: 640, h: 360, color: bg, layer: "background", visible: true})
	s.Add(&rectObject{x: 40, y: 280, w: 560, h: 40, color: color.RGBA{60, 60, 80, 255}, layer: "world", visible: true})
	s.Add(&rectObject{x: 300, y: 240, w: 24, h: 40, color: color.RGBA{220, 220, 220, 255}, layer: "entities", visible: true})
	s.Add(&rectObject{x: 10, y: 10, w: 160, h: 24, color: color.RGBA{0, 0, 0, 160}, layer: "ui", z: 5, visible: true})
	return s
}

// Load simulates heavy content loading so preload timing is observable.
func (s *demoScene) Load() error {
	if s.loadDelay > 0 {
		time.Sleep(s.loadDelay)
	}
	return nil
}

func (s *demoScene) OnEnter() {
	log.Printf("scene %q: enter", s.Name())
}

func (s *demoScene) OnExit() {
	log.Printf("scene %q: exit", s.Name())
}

func (s *demoScene) OnPause() {
	log.Printf("scene %q: pause", s.Name())
}

func (s *demoScene) OnResume() {
	log.Printf("scene %q: resume", s.Name())
}

func (s *demoScene) Update(dt float64) {
	s.elapsed += dt
}

// pauseScene dims the screen and waits for Escape.
type pauseScene struct {
	*scene.Base
}

func newPauseScene() *pauseScene {
	s := &pauseScene{Base: scene.NewBase("pause")}
	s.Add(&rectObject{x: 0, y: 0, w: 640, h: 360, color: color.RGBA{0, 0, 0, 180}, layer: "ui", visible: true})
	s.Add(&rectObject{x: 270, y: 160, w: 100, h: 40, color: color.RGBA{240, 240, 240, 255}, layer: "ui", z: 1, visible: true})
	return s
}
