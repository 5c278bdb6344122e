// Package compositor renders a scene's objects bucketed into named layers
// with configurable z-order and visibility.
package compositor

import (
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stagekit/engine/internal/domain/scene"
	"github.com/stagekit/engine/internal/infrastructure/config"
)

// Layer is a named render bucket.
type Layer struct {
	Name    string
	Z       int
	Visible bool
}

// DefaultLayers returns the built-in layer table, back to front.
func DefaultLayers() []Layer {
	return []Layer{
		{Name: "background", Z: 0, Visible: true},
		{Name: "world", Z: 10, Visible: true},
		{Name: "entities", Z: 20, Visible: true},
		{Name: "effects", Z: 30, Visible: true},
		{Name: "ui", Z: 40, Visible: true},
		{Name: "debug", Z: 50, Visible: true},
	}
}

// FromConfig builds a layer table from engine config entries. A nil
// Visible field means visible.
func FromConfig(layers []config.LayerConfig) []Layer {
	out := make([]Layer, 0, len(layers))
	for _, l := range layers {
		visible := l.Visible == nil || *l.Visible
		out = append(out, Layer{Name: l.Name, Z: l.Z, Visible: visible})
	}
	return out
}

// Compositor orders and filters object rendering by layer.
//
// FallbackSceneDraw controls what happens when the current scene declares
// no layered objects at all: when set, the scene's own Draw runs once
// instead of the per-layer passes.
type Compositor struct {
	layers            []Layer
	FallbackSceneDraw bool
}

// New creates a compositor over the given layer table, or DefaultLayers
// when layers is nil. The table is kept sorted by z ascending.
func New(layers []Layer) *Compositor {
	if layers == nil {
		layers = DefaultLayers()
	}
	c := &Compositor{layers: layers, FallbackSceneDraw: true}
	c.resort()
	return c
}

func (c *Compositor) resort() {
	sort.SliceStable(c.layers, func(i, j int) bool {
		return c.layers[i].Z < c.layers[j].Z
	})
}

// SetVisibility toggles a layer. Unknown layer names are ignored.
func (c *Compositor) SetVisibility(name string, visible bool) {
	for i := range c.layers {
		if c.layers[i].Name == name {
			c.layers[i].Visible = visible
			return
		}
	}
}

// SetZOrder changes a layer's z and re-sorts the draw order immediately.
// Unknown layer names are ignored.
func (c *Compositor) SetZOrder(name string, z int) {
	for i := range c.layers {
		if c.layers[i].Name == name {
			c.layers[i].Z = z
			c.resort()
			return
		}
	}
}

// DrawOrder returns the names of visible layers in ascending z.
func (c *Compositor) DrawOrder() []string {
	order := make([]string, 0, len(c.layers))
	for _, l := range c.layers {
		if l.Visible {
			order = append(order, l.Name)
		}
	}
	return order
}

// ObjectsInLayer returns s's objects declaring the given layer, in
// insertion order. A nil scene yields nil.
func (c *Compositor) ObjectsInLayer(s scene.Scene, layer string) []scene.Object {
	if s == nil {
		return nil
	}
	var out []scene.Object
	for _, o := range s.Objects() {
		if l, ok := scene.LayerOf(o); ok && l == layer {
			out = append(out, o)
		}
	}
	return out
}

// Render draws s's objects layer by layer: visible layers in ascending z,
// objects within a layer stable-sorted by their own z-order (insertion
// order breaks ties), skipping invisible objects.
func (c *Compositor) Render(screen *ebiten.Image, s scene.Scene) {
	if s == nil {
		return
	}
	if c.FallbackSceneDraw && !hasLayeredObjects(s) {
		s.Draw(screen)
		return
	}
	for _, l := range c.layers {
		if !l.Visible {
			continue
		}
		objs := c.ObjectsInLayer(s, l.Name)
		sort.SliceStable(objs, func(i, j int) bool {
			return scene.ZOrderOf(objs[i]) < scene.ZOrderOf(objs[j])
		})
		for _, o := range objs {
			if scene.IsVisible(o) {
				o.Draw(screen)
			}
		}
	}
}

func hasLayeredObjects(s scene.Scene) bool {
	for _, o := range s.Objects() {
		if _, ok := scene.LayerOf(o); ok {
			return true
		}
	}
	return false
}
