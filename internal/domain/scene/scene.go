// Package scene defines the Scene contract consumed by the lifecycle core.
//
// A Scene is a self-contained game screen (title, level, pause menu, etc.)
// owning a collection of game objects. The navigation controller drives its
// lifecycle hooks; the compositor renders its objects by layer.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents a game screen with full lifecycle hooks.
//
// OnEnter/OnExit bracket the time a scene is current. OnPause/OnResume
// bracket the time a scene sits suspended on the navigation stack.
type Scene interface {
	// OnEnter is called when this scene becomes the current scene.
	OnEnter()

	// OnExit is called when this scene stops being the current scene.
	// Use this for cleanup, saving state, or resource release.
	OnExit()

	// OnPause is called when this scene is suspended onto the
	// navigation stack by a push.
	OnPause()

	// OnResume is called when this scene is reactivated by a pop.
	OnResume()

	// Update updates the scene state.
	// dt is the delta time in seconds (typically 1/60).
	Update(dt float64)

	// Draw renders the scene directly to the screen. The compositor may
	// bypass this in favor of per-layer object rendering.
	Draw(screen *ebiten.Image)

	// Objects returns the scene's live game objects in insertion order.
	Objects() []Object
}

// Object is anything a scene owns and can draw.
type Object interface {
	Draw(screen *ebiten.Image)
}

// Loader is an optional capability for scenes with heavy one-time content.
// The registry and preloader call Load before first activation and record
// its duration. Scenes without it are considered ready at registration.
type Loader interface {
	Load() error
}

// Unloader is an optional capability letting a scene release loaded
// content when evicted by registry cleanup.
type Unloader interface {
	Unload()
}

// Layered objects declare the named render layer they belong to.
// Objects without this capability belong to no managed layer and are
// skipped by layer-filtered render passes.
type Layered interface {
	Layer() string
}

// Ordered objects declare a z-order within their layer.
type Ordered interface {
	ZOrder() int
}

// Hideable objects can be excluded from rendering.
type Hideable interface {
	Visible() bool
}

// LayerOf returns the object's layer and whether it declares one.
func LayerOf(o Object) (string, bool) {
	if l, ok := o.(Layered); ok {
		return l.Layer(), true
	}
	return "", false
}

// ZOrderOf returns the object's z-order, defaulting to 0.
func ZOrderOf(o Object) int {
	if z, ok := o.(Ordered); ok {
		return z.ZOrder()
	}
	return 0
}

// IsVisible reports whether the object should be drawn, defaulting to true.
func IsVisible(o Object) bool {
	if h, ok := o.(Hideable); ok {
		return h.Visible()
	}
	return true
}
