// Package preload warms scene content off the main update path.
//
// Workers only ever touch not-yet-current registry entries; their outcomes
// cross back to the main thread through a buffered channel drained once
// per frame by Pump, so user callbacks always run on the caller's thread
// and Update/Draw never race a worker.
package preload

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/stagekit/engine/internal/application/registry"
	"github.com/stagekit/engine/internal/domain/scene"
)

// interItemPause yields scheduling time between batch items so a batch
// does not starve the main loop.
const interItemPause = 10 * time.Millisecond

// resultQueueSize bounds outstanding undelivered outcomes. A full queue
// blocks only the worker that produced the overflow.
const resultQueueSize = 64

// Callback reports a single async preload outcome.
type Callback func(name string, ok bool, err error)

// ProgressCallback reports batch progress after each item, counting
// failed items as completed attempts.
type ProgressCallback func(completed, total int)

// CompletionCallback reports the final batch outcome with all collected
// per-item errors.
type CompletionCallback func(completed, total int, errs []error)

// result is a queued callback invocation awaiting the main thread.
type result struct {
	deliver func()
}

// Preloader loads scene content eagerly or on background workers.
type Preloader struct {
	reg     *registry.Registry
	results chan result
}

// New creates a preloader over the given registry.
func New(reg *registry.Registry) *Preloader {
	return &Preloader{
		reg:     reg,
		results: make(chan result, resultQueueSize),
	}
}

// Register adds a scene to the registry, optionally warming its content
// right away on the calling thread. Returns false when the name is taken.
func (p *Preloader) Register(name string, s scene.Scene, preloadNow bool) bool {
	if !p.reg.Register(name, s) {
		return false
	}
	if preloadNow {
		if err := p.Preload(name); err != nil {
			log.Printf("preload: eager load of %q failed: %v", name, err)
		}
	}
	return true
}

// Preload synchronously loads a registered scene's content on the calling
// thread, leaving it Inactive but ready. Already-preloaded scenes are just
// touched. Unknown names are an error.
func (p *Preloader) Preload(name string) error {
	s := p.reg.Get(name)
	if s == nil {
		return fmt.Errorf("preload: scene %q not registered", name)
	}
	if p.reg.IsPreloaded(name) {
		p.reg.Touch(name)
		return nil
	}

	p.reg.SetState(name, registry.StateLoading)
	start := time.Now()
	err := runLoad(s)
	if err != nil {
		p.reg.SetState(name, registry.StateInactive)
		return fmt.Errorf("preload: scene %q: %w", name, err)
	}
	p.reg.RecordLoad(name, time.Since(start))
	p.reg.SetState(name, registry.StateInactive)
	p.reg.MarkPreloaded(name)
	return nil
}

// runLoad invokes the scene's Load capability, converting a panic into an
// error so a bad scene cannot take down its worker.
func runLoad(s scene.Scene) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load panicked: %v", r)
		}
	}()
	if l, ok := s.(scene.Loader); ok {
		return l.Load()
	}
	return nil
}

// PreloadAsync registers and preloads a scene on a background worker
// without blocking the caller. The callback, if any, is delivered by the
// next Pump on the caller's thread as cb(name, ok, err).
func (p *Preloader) PreloadAsync(name string, s scene.Scene, cb Callback) {
	go func() {
		var err error
		if !p.reg.Register(name, s) {
			err = fmt.Errorf("preload: scene %q already registered", name)
		} else {
			err = p.Preload(name)
		}
		ok := err == nil
		if err != nil {
			log.Printf("preload: async %q failed: %v", name, err)
		}
		p.results <- result{deliver: func() {
			if cb != nil {
				cb(name, ok, err)
			}
		}}
	}()
}

// PreloadBatchAsync registers and preloads a set of scenes sequentially on
// one background worker, in sorted name order for determinism. Progress is
// reported after every item; per-item errors are collected, never aborting
// the batch. Both callbacks are delivered via Pump.
func (p *Preloader) PreloadBatchAsync(scenes map[string]scene.Scene, progress ProgressCallback, done CompletionCallback) {
	names := make([]string, 0, len(scenes))
	for name := range scenes {
		names = append(names, name)
	}
	sort.Strings(names)

	go func() {
		total := len(names)
		completed := 0
		var errs []error
		for _, name := range names {
			var err error
			if !p.reg.Register(name, scenes[name]) {
				err = fmt.Errorf("scene %q already registered", name)
			} else {
				err = p.Preload(name)
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
				log.Printf("preload: batch item %q failed: %v", name, err)
			}
			completed++
			n := completed
			p.results <- result{deliver: func() {
				if progress != nil {
					progress(n, total)
				}
			}}
			time.Sleep(interItemPause)
		}
		p.results <- result{deliver: func() {
			if done != nil {
				done(completed, total, errs)
			}
		}}
	}()
}

// Pump drains queued worker outcomes, running their callbacks on the
// calling thread. The director calls this once per frame before Update.
// Returns the number of outcomes delivered.
func (p *Preloader) Pump() int {
	delivered := 0
	for {
		select {
		case r := <-p.results:
			safeDeliver(r.deliver)
			delivered++
		default:
			return delivered
		}
	}
}

// safeDeliver isolates a panicking user callback from the frame loop.
func safeDeliver(f func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("preload: callback panicked: %v", r)
		}
	}()
	f()
}
