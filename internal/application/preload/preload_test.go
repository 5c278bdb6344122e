package preload

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stagekit/engine/internal/application/registry"
	"github.com/stagekit/engine/internal/domain/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockScene optionally fails or panics during Load.
type mockScene struct {
	loadErr   error
	loadPanic bool
	loadDelay time.Duration
	loads     int
}

func (m *mockScene) OnEnter() {}
func (m *mockScene) OnExit() {}
func (m *mockScene) OnPause() {}
func (m *mockScene) OnResume() {}

func (m *mockScene) Update(dt float64) {}

func (m *mockScene) Draw(screen *ebiten.Image) {}

func (m *mockScene) Objects() []scene.Object { return nil }
func (m *mockScene) Load() error {
	m.loads++
	if m.loadPanic {
		panic("corrupt scene data")
	}
	time.Sleep(m.loadDelay)
	return m.loadErr
}

// pumpUntil pumps until want callbacks were delivered or the test times
// out.
func pumpUntil(t *testing.T, p *Preloader, want int) {
	t.Helper()
	delivered := 0
	deadline := time.Now().Add(5 * time.Second)
	for delivered < want {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d callbacks, got %d", want, delivered)
		}
		delivered += p.Pump()
		time.Sleep(time.Millisecond)
	}
}

func TestRegister_EagerPreload(t *testing.T) {
	reg := registry.New()
	p := New(reg)
	s := &mockScene{}

	assert.True(t, p.Register("menu", s, true))
	assert.True(t, reg.IsPreloaded("menu"))
	assert.Equal(t, 1, s.loads)

	assert.False(t, p.Register("menu", s, true), "duplicate name is rejected")
	assert.Equal(t, 1, s.loads)
}

func TestPreload_Sync(t *testing.T) {
	reg := registry.New()
	p := New(reg)
	s := &mockScene{loadDelay: time.Millisecond}
	reg.Register("level1", s)

	require.NoError(t, p.Preload("level1"))

	assert.True(t, reg.IsPreloaded("level1"))
	assert.Equal(t, registry.StateInactive, reg.State("level1"))
	assert.Greater(t, reg.MetricsFor("level1").LoadTime, time.Duration(0))
	assert.Equal(t, 1, s.loads)
}

func TestPreload_SecondCallIsNoop(t *testing.T) {
	reg := registry.New()
	p := New(reg)
	s := &mockScene{}
	reg.Register("level1", s)
	require.NoError(t, p.Preload("level1"))

	require.NoError(t, p.Preload("level1"))

	assert.Equal(t, 1, s.loads, "already-preloaded scenes are not reloaded")
}

func TestPreload_UnregisteredFails(t *testing.T) {
	p := New(registry.New())

	assert.Error(t, p.Preload("ghost"))
}

func TestPreload_LoadErrorResetsState(t *testing.T) {
	reg := registry.New()
	p := New(reg)
	reg.Register("broken", &mockScene{loadErr: errors.New("missing atlas")})

	err := p.Preload("broken")

	assert.ErrorContains(t, err, "missing atlas")
	assert.False(t, reg.IsPreloaded("broken"))
	assert.Equal(t, registry.StateInactive, reg.State("broken"))
}

func TestPreloadAsync_Success(t *testing.T) {
	reg := registry.New()
	p := New(reg)

	var gotName string
	var gotOK bool
	var gotErr error
	p.PreloadAsync("level1", &mockScene{loadDelay: time.Millisecond}, func(name string, ok bool, err error) {
		gotName, gotOK, gotErr = name, ok, err
	})

	pumpUntil(t, p, 1)

	assert.Equal(t, "level1", gotName)
	assert.True(t, gotOK)
	assert.NoError(t, gotErr)
	assert.True(t, reg.IsPreloaded("level1"))
	assert.Greater(t, reg.MetricsFor("level1").LoadTime, time.Duration(0))
}

func TestPreloadAsync_Failure(t *testing.T) {
	reg := registry.New()
	p := New(reg)

	var gotOK bool
	var gotErr error
	p.PreloadAsync("broken", &mockScene{loadErr: errors.New("boom")}, func(name string, ok bool, err error) {
		gotOK, gotErr = ok, err
	})

	pumpUntil(t, p, 1)

	assert.False(t, gotOK)
	assert.ErrorContains(t, gotErr, "boom")
}

// A panicking Load is captured as an error instead of killing the worker.
func TestPreloadAsync_PanicBecomesError(t *testing.T) {
	p := New(registry.New())

	var gotOK bool
	var gotErr error
	p.PreloadAsync("cursed", &mockScene{loadPanic: true}, func(name string, ok bool, err error) {
		gotOK, gotErr = ok, err
	})

	pumpUntil(t, p, 1)

	assert.False(t, gotOK)
	assert.ErrorContains(t, gotErr, "panicked")
}

// Scenario: a batch of three where one fails reports progress for every
// item and exactly one collected error naming the failed scene.
func TestPreloadBatchAsync_CollectsErrors(t *testing.T) {
	reg := registry.New()
	p := New(reg)

	var progress [][2]int
	var doneCompleted, doneTotal int
	var doneErrs []error
	finished := false

	p.PreloadBatchAsync(map[string]scene.Scene{
		"a": &mockScene{},
		"b": &mockScene{loadErr: errors.New("no such level")},
		"c": &mockScene{},
	}, func(completed, total int) {
		progress = append(progress, [2]int{completed, total})
	}, func(completed, total int, errs []error) {
		doneCompleted, doneTotal, doneErrs = completed, total, errs
		finished = true
	})

	pumpUntil(t, p, 4) // 3 progress + 1 completion

	require.True(t, finished)
	assert.Equal(t, [][2]int{{1, 3}, {2, 3}, {3, 3}}, progress,
		"failed items still count as completed attempts")
	assert.Equal(t, 3, doneCompleted)
	assert.Equal(t, 3, doneTotal)
	require.Len(t, doneErrs, 1)
	assert.ErrorContains(t, doneErrs[0], "b")
	assert.True(t, reg.IsPreloaded("a"))
	assert.False(t, reg.IsPreloaded("b"))
	assert.True(t, reg.IsPreloaded("c"))
}

// A panicking user callback is logged, not propagated.
func TestPump_CallbackPanicIsolated(t *testing.T) {
	p := New(registry.New())

	p.PreloadAsync("level1", &mockScene{}, func(name string, ok bool, err error) {
		panic("listener bug")
	})

	assert.NotPanics(t, func() { pumpUntil(t, p, 1) })
}
