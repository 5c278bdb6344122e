// Package transition implements timed visual effects bridging two scene
// states: fades, directional slides, zoom frames, and a custom variant.
//
// An Effect is pure animation state driven by Advance; it never blocks
// game-object updates. Rendering draws a flat-color overlay on top of
// whatever the compositor produced for the frame.
package transition

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Kind selects the overlay animation.
type Kind int

const (
	Fade Kind = iota
	SlideLeft
	SlideRight
	SlideUp
	SlideDown
	ZoomIn
	ZoomOut
	// Custom delegates rendering to a user-supplied draw function.
	Custom
)

// String returns the string representation of the transition kind
func (k Kind) String() string {
	switch k {
	case Fade:
		return "Fade"
	case SlideLeft:
		return "SlideLeft"
	case SlideRight:
		return "SlideRight"
	case SlideUp:
		return "SlideUp"
	case SlideDown:
		return "SlideDown"
	case ZoomIn:
		return "ZoomIn"
	case ZoomOut:
		return "ZoomOut"
	case Custom:
		return "Custom"
	default:
		return "Unknown"
	}
}

// DrawFunc renders a custom overlay for the given progress in [0,1].
type DrawFunc func(screen *ebiten.Image, progress float64)

// Effect is a time-bounded overlay animation.
//
// Progress grows monotonically from 0 to 1 while active; once it reaches 1
// the effect deactivates and fires its callback exactly once.
type Effect struct {
	kind     Kind
	duration float64 // seconds, > 0
	progress float64
	active   bool
	callback func()
	color    color.RGBA
	custom   DrawFunc
}

// New creates an inactive effect of the given kind and duration in
// seconds. Non-positive durations are clamped to a single 60 Hz frame so
// Advance always terminates.
func New(kind Kind, duration float64) *Effect {
	if duration <= 0 {
		duration = 1.0 / 60.0
	}
	return &Effect{
		kind:     kind,
		duration: duration,
		color:    color.RGBA{0, 0, 0, 255},
	}
}

// NewCustom creates an effect that renders through draw.
func NewCustom(duration float64, draw DrawFunc) *Effect {
	e := New(Custom, duration)
	e.custom = draw
	return e
}

// WithColor sets the overlay color used by fade and slide kinds.
func (e *Effect) WithColor(c color.RGBA) *Effect {
	e.color = c
	return e
}

// Kind returns the effect's kind.
func (e *Effect) Kind() Kind { return e.kind }

// Duration returns the effect's duration in seconds.
func (e *Effect) Duration() float64 { return e.duration }

// Progress returns the current progress in [0,1].
func (e *Effect) Progress() float64 { return e.progress }

// Active reports whether the effect is running.
func (e *Effect) Active() bool { return e.active }

// Start activates the effect, resets progress to zero, and stores the
// completion callback. Restarting a finished effect re-arms the callback.
func (e *Effect) Start(callback func()) {
	e.active = true
	e.progress = 0
	e.callback = callback
}

// Advance moves progress forward by dt seconds and reports completion.
// On reaching full progress the effect deactivates and the completion
// callback fires exactly once.
func (e *Effect) Advance(dt float64) bool {
	if !e.active {
		return false
	}
	e.progress += dt / e.duration
	if e.progress < 1.0 {
		return false
	}
	e.progress = 1.0
	e.active = false
	if cb := e.callback; cb != nil {
		e.callback = nil
		cb()
	}
	return true
}

// FadeAlpha returns the fade overlay alpha for a given progress: a
// triangular curve peaking at full opacity when progress is 0.5, so the
// screen darkens in and lightens out around the scene swap.
func FadeAlpha(progress float64) uint8 {
	a := 255 * (1 - abs(2*progress-1))
	if a < 0 {
		a = 0
	}
	if a > 255 {
		a = 255
	}
	return uint8(a)
}

// Draw renders the overlay for the current progress. Inactive effects
// draw nothing.
func (e *Effect) Draw(screen *ebiten.Image) {
	if !e.active {
		return
	}
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	switch e.kind {
	case Fade:
		c := e.color
		c.A = FadeAlpha(e.progress)
		ebitenutil.DrawRect(screen, 0, 0, w, h, c)
	case SlideLeft:
		// Panel grows in from the right edge, sweeping leftwards.
		ebitenutil.DrawRect(screen, w*(1-e.progress), 0, w*e.progress, h, e.color)
	case SlideRight:
		ebitenutil.DrawRect(screen, 0, 0, w*e.progress, h, e.color)
	case SlideUp:
		ebitenutil.DrawRect(screen, 0, h*(1-e.progress), w, h*e.progress, e.color)
	case SlideDown:
		ebitenutil.DrawRect(screen, 0, 0, w, h*e.progress, e.color)
	case ZoomIn, ZoomOut:
		e.drawFrame(screen, w, h)
	case Custom:
		if e.custom != nil {
			e.custom(screen, e.progress)
		}
	}
}

// drawFrame draws four border bands forming a closing (ZoomIn) or opening
// (ZoomOut) frame around the screen center.
func (e *Effect) drawFrame(screen *ebiten.Image, w, h float64) {
	p := e.progress
	if e.kind == ZoomOut {
		p = 1 - p
	}
	// Band thickness shrinks as the frame opens.
	tx := w / 2 * (1 - p)
	ty := h / 2 * (1 - p)
	// Top, bottom, left, right bands.
	ebitenutil.DrawRect(screen, 0, 0, w, ty, e.color)
	ebitenutil.DrawRect(screen, 0, h-ty, w, ty, e.color)
	ebitenutil.DrawRect(screen, 0, 0, tx, h, e.color)
	ebitenutil.DrawRect(screen, w-tx, 0, tx, h, e.color)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
