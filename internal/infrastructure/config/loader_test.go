package config

import (
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadEngine(t *testing.T) {
	loader := NewLoader("../../../cmd/game/configs")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 360, cfg.Display.ScreenHeight)
	assert.Equal(t, 0.5, cfg.Transitions.DefaultDuration)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, cfg.Transitions.FadeColor.RGBA())

	require.Len(t, cfg.Layers, 6)
	assert.Equal(t, "background", cfg.Layers[0].Name)
	debug := cfg.Layers[5]
	assert.Equal(t, "debug", debug.Name)
	assert.Equal(t, 50, debug.Z)
	require.NotNil(t, debug.Visible)
	assert.False(t, *debug.Visible)
}

func TestLoader_LoadEngine_MissingFileUsesDefaults(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, ".")

	cfg, err := loader.LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoader_LoadEngine_MalformedYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"engine.yaml": &fstest.MapFile{Data: []byte("layers: [unclosed")},
	}
	loader := NewFSLoader(fsys, ".")

	_, err := loader.LoadEngine()
	assert.Error(t, err)
}

func TestLoader_LoadEngine_RejectsInvalidDuration(t *testing.T) {
	fsys := fstest.MapFS{
		"engine.yaml": &fstest.MapFile{Data: []byte("transitions:\n  defaultDuration: -1\n")},
	}
	loader := NewFSLoader(fsys, ".")

	_, err := loader.LoadEngine()
	assert.ErrorContains(t, err, "defaultDuration")
}

func TestLoader_LoadEngine_RejectsDuplicateLayers(t *testing.T) {
	fsys := fstest.MapFS{
		"engine.yaml": &fstest.MapFile{Data: []byte(
			"layers:\n  - name: ui\n    z: 1\n  - name: ui\n    z: 2\n")},
	}
	loader := NewFSLoader(fsys, ".")

	_, err := loader.LoadEngine()
	assert.ErrorContains(t, err, "duplicate layer")
}

func TestEngineConfig_Validate(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
