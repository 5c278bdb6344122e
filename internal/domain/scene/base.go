package scene

import "github.com/hajimehoshi/ebiten/v2"

// Base is an embeddable default Scene implementation managing an object
// list. Concrete scenes embed it and override the hooks they care about.
type Base struct {
	name    string
	objects []Object
}

// NewBase creates an empty scene with the given name.
func NewBase(name string) *Base {
	return &Base{name: name}
}

// Name returns the scene's name.
func (b *Base) Name() string { return b.name }

// OnEnter is a no-op; override in concrete scenes.
func (b *Base) OnEnter() {}

// OnExit is a no-op; override in concrete scenes.
func (b *Base) OnExit() {}

// OnPause is a no-op; override in concrete scenes.
func (b *Base) OnPause() {}

// OnResume is a no-op; override in concrete scenes.
func (b *Base) OnResume() {}

// Update is a no-op. Scenes with per-frame object logic override this.
func (b *Base) Update(dt float64) {}

// Draw renders every visible object in insertion order.
func (b *Base) Draw(screen *ebiten.Image) {
	for _, o := range b.objects {
		if IsVisible(o) {
			o.Draw(screen)
		}
	}
}

// Objects returns the live object list in insertion order.
func (b *Base) Objects() []Object { return b.objects }

// Add appends an object unless it is already present.
func (b *Base) Add(o Object) {
	for _, existing := range b.objects {
		if existing == o {
			return
		}
	}
	b.objects = append(b.objects, o)
}

// Remove drops an object, preserving the order of the rest.
func (b *Base) Remove(o Object) {
	for i, existing := range b.objects {
		if existing == o {
			b.objects = append(b.objects[:i], b.objects[i+1:]...)
			return
		}
	}
}

// Clear drops all objects.
func (b *Base) Clear() {
	b.objects = nil
}

// ObjectCount returns the number of live objects.
func (b *Base) ObjectCount() int { return len(b.objects) }
