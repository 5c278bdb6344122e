// Package registry tracks every known scene: its instance, lifecycle state,
// and performance metrics.
//
// The registry is shared between the main update loop and preload workers,
// so all access goes through a mutex. Only the navigation controller ever
// changes which scene is current; workers touch not-yet-current entries.
package registry

import (
	"log"
	"sync"
	"time"

	"github.com/stagekit/engine/internal/domain/scene"
)

// memoryPerObject is the rough per-object estimate used for the memory
// metric. Real measurement belongs to the asset subsystem.
const memoryPerObject = 1024

// MetricsInterval is the minimum time between live-metrics refreshes for
// the active scene.
const MetricsInterval = time.Second

// Metrics holds per-scene performance numbers.
type Metrics struct {
	// LoadTime is how long the scene's last content load took.
	LoadTime time.Duration
	// ObjectCount is the live count of owned objects at the last refresh.
	ObjectCount int
	// MemoryEstimate is a rough byte estimate derived from ObjectCount.
	MemoryEstimate int64
	// LastAccessed is when the scene was last loaded, activated, or
	// refreshed while active.
	LastAccessed time.Time
}

type entry struct {
	scene     scene.Scene
	state     State
	metrics   Metrics
	preloaded bool
}

// Registry holds all registered scenes keyed by unique name.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*entry)}
}

// Register stores a scene under a unique name with state Inactive and
// zeroed metrics. Registering an already-used name fails so a live entry
// cannot be swapped out from under the navigation stack.
func (r *Registry) Register(name string, s scene.Scene) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		log.Printf("registry: scene %q already registered", name)
		return false
	}
	r.entries[name] = &entry{scene: s, state: StateInactive}
	return true
}

// Get returns the scene registered under name, or nil.
func (r *Registry) Get(name string) scene.Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.scene
	}
	return nil
}

// State returns the lifecycle state for name. Unknown names report
// StateInactive and are never created by the lookup.
func (r *Registry) State(name string) State {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.state
	}
	return StateInactive
}

// MetricsFor returns a copy of the metrics for name, zero for unknown names.
func (r *Registry) MetricsFor(name string) Metrics {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.metrics
	}
	return Metrics{}
}

// SetState updates the lifecycle state for a known name.
func (r *Registry) SetState(name string, s State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.state = s
	}
}

// Touch stamps the entry's last-accessed time.
func (r *Registry) Touch(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.metrics.LastAccessed = time.Now()
	}
}

// RecordLoad stores the duration of a completed content load and stamps
// the access time.
func (r *Registry) RecordLoad(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.metrics.LoadTime = d
		e.metrics.LastAccessed = time.Now()
	}
}

// RefreshMetrics updates the live object count and derived memory
// estimate. Callers throttle this to MetricsInterval.
func (r *Registry) RefreshMetrics(name string, objectCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.metrics.ObjectCount = objectCount
		e.metrics.MemoryEstimate = int64(objectCount) * memoryPerObject
		e.metrics.LastAccessed = time.Now()
	}
}

// MarkPreloaded records that a scene's content is loaded and ready.
func (r *Registry) MarkPreloaded(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.preloaded = true
	}
}

// IsPreloaded reports whether the scene's content is loaded and ready.
func (r *Registry) IsPreloaded(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		return e.preloaded
	}
	return false
}

// CleanupUnused evicts preloaded scenes idle longer than maxIdle, except
// the scene named by current. Evicted scenes pass through Unloading, get
// their Unload hook if they have one, and return to Inactive with the
// preloaded flag dropped. Returns the evicted names.
func (r *Registry) CleanupUnused(maxIdle time.Duration, current string) []string {
	r.mu.Lock()
	var evict []string
	now := time.Now()
	for name, e := range r.entries {
		if !e.preloaded || name == current {
			continue
		}
		if now.Sub(e.metrics.LastAccessed) <= maxIdle {
			continue
		}
		evict = append(evict, name)
	}
	r.mu.Unlock()

	// Unload hooks run outside the lock; they may be slow.
	for _, name := range evict {
		r.SetState(name, StateUnloading)
		if u, ok := r.Get(name).(scene.Unloader); ok {
			u.Unload()
		}
		r.mu.Lock()
		if e, ok := r.entries[name]; ok {
			e.preloaded = false
			e.state = StateInactive
		}
		r.mu.Unlock()
		log.Printf("registry: evicted idle scene %q", name)
	}
	return evict
}

// Names returns all registered scene names, in no particular order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	return names
}

// Clear drops every entry. Teardown only; callers must also reset their
// current-scene pointer and navigation stack.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*entry)
}
