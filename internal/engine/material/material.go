// Package material provides surface materials for the table parts and the
// soft shadow receiver, plus a texture library that swaps surface maps.
package material

import (
	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Material describes how a mesh surface is shaded.
type Material struct {
	Name      string
	Color     [3]float32
	Roughness float32
	Metalness float32

	Map         *texture.Texture
	NormalMap   *texture.Texture
	NormalScale math.Vec2

	Opacity     float32
	AlphaTest   float32
	ColorBlend  float32
	Transparent bool

	// Version increments whenever maps change so a host can re-upload.
	Version int
}

// New creates an opaque white material.
func New(name string) *Material {
	return &Material{
		Name:        name,
		Color:       [3]float32{1, 1, 1},
		Roughness:   1,
		NormalScale: math.Vec2{X: 1, Y: 1},
		Opacity:     1,
	}
}

// Clone returns a copy. Textures are shared; they are immutable once decoded.
func (m *Material) Clone() *Material {
	c := *m
	return &c
}

// ShadowConfig holds the soft shadow receiver appearance.
type ShadowConfig struct {
	Opacity    float32 `yaml:"opacity"`
	AlphaTest  float32 `yaml:"alpha_test"`
	ColorBlend float32 `yaml:"color_blend"`
}

// DefaultShadowConfig returns the shadow appearance used by the configurator.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		Opacity:    0.45,
		AlphaTest:  0.83,
		ColorBlend: 0.1,
	}
}

// NewShadow creates the transparent material drawn by the shadow receiver.
func NewShadow(cfg ShadowConfig) *Material {
	m := New("soft_shadow")
	m.Color = [3]float32{0, 0, 0}
	m.Transparent = true
	m.Opacity = cfg.Opacity
	m.AlphaTest = cfg.AlphaTest
	m.ColorBlend = cfg.ColorBlend
	return m
}

// Hide zeroes opacity and alpha test so the receiver drops out of its own bake.
func (m *Material) Hide() {
	m.Opacity = 0
	m.AlphaTest = 0
}

// Restore sets opacity and alpha test back to the configured values.
func (m *Material) Restore(cfg ShadowConfig) {
	m.Opacity = cfg.Opacity
	m.AlphaTest = cfg.AlphaTest
}
