package config

import (
	"fmt"
	"image/color"
)

// EngineConfig is the root config for engine.yaml
type EngineConfig struct {
	Display     DisplayConfig    `yaml:"display"`
	Layers      []LayerConfig    `yaml:"layers"`
	Transitions TransitionConfig `yaml:"transitions"`
}

// DisplayConfig sets the logical screen size
type DisplayConfig struct {
	ScreenWidth  int `yaml:"screenWidth"`
	ScreenHeight int `yaml:"screenHeight"`
}

// LayerConfig describes one named render layer
type LayerConfig struct {
	Name    string `yaml:"name"`
	Z       int    `yaml:"z"`
	Visible *bool  `yaml:"visible"` // nil means visible
}

// TransitionConfig sets transition defaults
type TransitionConfig struct {
	DefaultDuration float64     `yaml:"defaultDuration"` // seconds
	FadeColor       ColorConfig `yaml:"fadeColor"`
}

// ColorConfig is an RGBA color in config form
type ColorConfig struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// RGBA converts to the stdlib color type
func (c ColorConfig) RGBA() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, c.A}
}

// Default returns the built-in configuration used when no engine.yaml is
// present.
func Default() *EngineConfig {
	return &EngineConfig{
		Display: DisplayConfig{ScreenWidth: 640, ScreenHeight: 360},
		Layers: []LayerConfig{
			{Name: "background", Z: 0},
			{Name: "world", Z: 10},
			{Name: "entities", Z: 20},
			{Name: "effects", Z: 30},
			{Name: "ui", Z: 40},
			{Name: "debug", Z: 50},
		},
		Transitions: TransitionConfig{
			DefaultDuration: 0.5,
			FadeColor:       ColorConfig{A: 255},
		},
	}
}

// Validate rejects configs the engine cannot run with: non-positive
// transition durations and duplicate layer names.
func (c *EngineConfig) Validate() error {
	if c.Transitions.DefaultDuration <= 0 {
		return fmt.Errorf("transitions.defaultDuration must be > 0, got %v", c.Transitions.DefaultDuration)
	}
	seen := make(map[string]bool, len(c.Layers))
	for _, l := range c.Layers {
		if seen[l.Name] {
			return fmt.Errorf("duplicate layer name %q", l.Name)
		}
		seen[l.Name] = true
	}
	return nil
}
