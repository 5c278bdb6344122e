// Package director implements the navigation controller: the state
// machine deciding which scene is current, the stack of suspended scenes,
// and the sequencing of transition effects around scene changes.
//
// All Director methods must be called from the main update loop. The only
// background concurrency is the preloader, whose results the director
// pumps at the start of every frame.
package director

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stagekit/engine/internal/application/compositor"
	"github.com/stagekit/engine/internal/application/preload"
	"github.com/stagekit/engine/internal/application/registry"
	"github.com/stagekit/engine/internal/application/transition"
	"github.com/stagekit/engine/internal/domain/scene"
)

// EventSceneLoaded fires after a scene swap completes, carrying the new
// scene's name and instance.
const EventSceneLoaded = "scene_loaded"

// EventCallback observes a named director event.
type EventCallback func(name string, s scene.Scene)

// Director orchestrates scene changes.
type Director struct {
	reg        *registry.Registry
	comp       *compositor.Compositor
	pre        *preload.Preloader
	current    string
	stack      []string
	fx         *transition.Effect
	callbacks  map[string][]EventCallback
	sinceStats float64
}

// New creates a director over its collaborators. comp may be nil when the
// caller renders scenes directly.
func New(reg *registry.Registry, comp *compositor.Compositor, pre *preload.Preloader) *Director {
	return &Director{
		reg:       reg,
		comp:      comp,
		pre:       pre,
		callbacks: make(map[string][]EventCallback),
	}
}

// Registry returns the scene registry.
func (d *Director) Registry() *registry.Registry { return d.reg }

// Compositor returns the layered compositor, or nil.
func (d *Director) Compositor() *compositor.Compositor { return d.comp }

// Preloader returns the background preloader.
func (d *Director) Preloader() *preload.Preloader { return d.pre }

// CurrentName returns the current scene's name, or "" when no scene is
// current.
func (d *Director) CurrentName() string { return d.current }

// Current returns the current scene instance, or nil.
func (d *Director) Current() scene.Scene {
	if d.current == "" {
		return nil
	}
	return d.reg.Get(d.current)
}

// StackDepth returns the number of suspended scenes on the navigation
// stack.
func (d *Director) StackDepth() int { return len(d.stack) }

// Transition returns the active transition effect, or nil.
func (d *Director) Transition() *transition.Effect {
	if d.fx != nil && d.fx.Active() {
		return d.fx
	}
	return nil
}

// On registers a callback for a named event. Callbacks fire in
// registration order; a panicking callback is logged and does not stop
// the rest.
func (d *Director) On(event string, cb EventCallback) {
	d.callbacks[event] = append(d.callbacks[event], cb)
}

func (d *Director) emit(event, name string, s scene.Scene) {
	for _, cb := range d.callbacks[event] {
		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("director: %s callback panicked: %v", event, r)
				}
			}()
			cb(name, s)
		}()
	}
}

// Load makes the named scene current. With fx nil the swap is immediate;
// otherwise fx starts now and the swap runs exactly once when it
// completes. Loading the current scene again performs the full
// teardown/rebuild. Returns false for unregistered names.
func (d *Director) Load(name string, fx *transition.Effect) bool {
	if d.reg.Get(name) == nil {
		log.Printf("director: load: scene %q not registered", name)
		return false
	}
	d.run(fx, func() { d.swap(name, exitCurrent) })
	return true
}

// Push suspends the current scene onto the navigation stack and makes the
// named scene current. Returns false for unregistered names.
func (d *Director) Push(name string, fx *transition.Effect) bool {
	if d.reg.Get(name) == nil {
		log.Printf("director: push: scene %q not registered", name)
		return false
	}
	d.run(fx, func() { d.swap(name, pauseCurrent) })
	return true
}

// Pop exits the current scene and reactivates the top of the navigation
// stack. Returns false when the stack is empty; the check happens at call
// time, before any transition starts.
func (d *Director) Pop(fx *transition.Effect) bool {
	if len(d.stack) == 0 {
		log.Printf("director: pop: navigation stack is empty")
		return false
	}
	d.run(fx, d.popSwap)
	return true
}

// run executes op now, or defers it behind fx. A new transition overwrites
// any active one: last request wins, the overwritten swap never runs.
func (d *Director) run(fx *transition.Effect, op func()) {
	if fx == nil {
		op()
		return
	}
	d.fx = fx
	fx.Start(op)
}

// outgoing selects how the current scene leaves during a swap.
type outgoing int

const (
	exitCurrent outgoing = iota
	pauseCurrent
)

// swap is the single place the current-scene pointer changes forward.
// The old scene exits or pauses, the target loads if needed and enters,
// and the scene_loaded event fires.
func (d *Director) swap(name string, out outgoing) {
	if cur := d.Current(); cur != nil {
		switch out {
		case exitCurrent:
			d.reg.SetState(d.current, registry.StateTransitioning)
			cur.OnExit()
			d.reg.SetState(d.current, registry.StateInactive)
		case pauseCurrent:
			cur.OnPause()
			d.reg.SetState(d.current, registry.StatePaused)
			d.stack = append(d.stack, d.current)
		}
	}

	d.reg.SetState(name, registry.StateLoading)
	if err := d.pre.Preload(name); err != nil {
		// The scene stays registered; entering an unloaded scene is
		// still preferable to losing the navigation request.
		log.Printf("director: load content for %q: %v", name, err)
	}

	target := d.reg.Get(name)
	if target == nil {
		log.Printf("director: scene %q disappeared before swap", name)
		return
	}
	target.OnEnter()
	d.reg.SetState(name, registry.StateActive)
	d.current = name
	d.reg.RefreshMetrics(name, len(target.Objects()))
	d.sinceStats = 0
	d.emit(EventSceneLoaded, name, target)
}

// popSwap reactivates the top of the stack; resumed scenes get OnResume,
// not OnEnter, and no scene_loaded event fires.
func (d *Director) popSwap() {
	if len(d.stack) == 0 {
		return
	}
	if cur := d.Current(); cur != nil {
		d.reg.SetState(d.current, registry.StateTransitioning)
		cur.OnExit()
		d.reg.SetState(d.current, registry.StateInactive)
	}
	top := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]

	resumed := d.reg.Get(top)
	if resumed == nil {
		log.Printf("director: stacked scene %q disappeared before pop", top)
		return
	}
	resumed.OnResume()
	d.reg.SetState(top, registry.StateActive)
	d.current = top
	d.reg.Touch(top)
	d.sinceStats = 0
}

// CleanupUnused evicts preloaded scenes idle longer than maxIdle. The
// current scene is never evicted regardless of idle time.
func (d *Director) CleanupUnused(maxIdle time.Duration) []string {
	return d.reg.CleanupUnused(maxIdle, d.current)
}

// Update drives one frame: pump preload results, advance the active
// transition, then update the current scene if it is active. Scene
// updates are never blocked by a running transition.
func (d *Director) Update(dt float64) {
	d.pre.Pump()

	// The completion callback may itself start a new transition; only
	// clear the slot if it still holds the one just finished.
	if fx := d.fx; fx != nil && fx.Advance(dt) && d.fx == fx {
		d.fx = nil
	}

	if d.current == "" || d.reg.State(d.current) != registry.StateActive {
		return
	}
	cur := d.reg.Get(d.current)
	cur.Update(dt)

	d.sinceStats += dt
	if d.sinceStats >= registry.MetricsInterval.Seconds() {
		d.sinceStats = 0
		d.reg.RefreshMetrics(d.current, len(cur.Objects()))
	}
}

// Draw renders the current scene through the compositor (or directly when
// no compositor is attached), then the transition overlay on top.
func (d *Director) Draw(screen *ebiten.Image) {
	if cur := d.Current(); cur != nil {
		if d.comp != nil {
			d.comp.Render(screen, cur)
		} else {
			cur.Draw(screen)
		}
	}
	if d.fx != nil {
		d.fx.Draw(screen)
	}
}

// Shutdown tears the director down: the current scene exits, the stack
// and transition are dropped, and the registry is cleared.
func (d *Director) Shutdown() {
	if cur := d.Current(); cur != nil {
		cur.OnExit()
		d.reg.SetState(d.current, registry.StateInactive)
	}
	d.current = ""
	d.stack = nil
	d.fx = nil
	d.reg.Clear()
}
