package scene

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

// bareObject carries a field so pointers to separate instances stay
// distinct (zero-size values may share an address).
type bareObject struct {
	id int
}

func (bareObject) Draw(screen *ebiten.Image) {}

type fullObject struct {
	layer   string
	z       int
	visible bool
}

func (fullObject) Draw(screen *ebiten.Image) {}

func (o fullObject) Layer() string { return o.layer }
func (o fullObject) ZOrder() int   { return o.z }
func (o fullObject) Visible() bool { return o.visible }

func TestCapabilityDefaults(t *testing.T) {
	o := bareObject{}

	layer, ok := LayerOf(o)
	assert.False(t, ok, "bare objects belong to no managed layer")
	assert.Equal(t, "", layer)
	assert.Equal(t, 0, ZOrderOf(o))
	assert.True(t, IsVisible(o))
}

func TestCapabilityAccessors(t *testing.T) {
	o := fullObject{layer: "ui", z: 3, visible: false}

	layer, ok := LayerOf(o)
	assert.True(t, ok)
	assert.Equal(t, "ui", layer)
	assert.Equal(t, 3, ZOrderOf(o))
	assert.False(t, IsVisible(o))
}

func TestBase_AddRemove(t *testing.T) {
	b := NewBase("test")
	a := &bareObject{id: 1}
	c := &bareObject{id: 2}

	b.Add(a)
	b.Add(c)
	b.Add(a) // duplicate ignored

	assert.Equal(t, 2, b.ObjectCount())
	assert.Equal(t, []Object{a, c}, b.Objects())

	b.Remove(a)
	assert.Equal(t, []Object{c}, b.Objects())

	b.Remove(a) // absent; no-op
	assert.Equal(t, 1, b.ObjectCount())
}

func TestBase_Clear(t *testing.T) {
	b := NewBase("test")
	b.Add(&bareObject{})
	b.Clear()

	assert.Zero(t, b.ObjectCount())
}

func TestBase_Name(t *testing.T) {
	assert.Equal(t, "pause", NewBase("pause").Name())
}
