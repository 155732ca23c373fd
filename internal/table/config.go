package table

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Range is an inclusive parameter range in millimetres with a start value.
type Range struct {
	Min     float32 `yaml:"min"`
	Max     float32 `yaml:"max"`
	Default float32 `yaml:"default"`
}

// Clamp limits v to the range. NaN maps to Min.
func (r Range) Clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return r.Min
	}
	return min(max(v, r.Min), r.Max)
}

// Fraction maps v (clamped) to 0..1 across the range. An empty range maps to 0.
func (r Range) Fraction(v float32) float32 {
	if r.Max <= r.Min {
		return 0
	}
	return (r.Clamp(v) - r.Min) / (r.Max - r.Min)
}

// Config holds the table geometry settings.
type Config struct {
	LengthMM    Range `yaml:"length_mm"`
	LegLengthMM Range `yaml:"leg_length_mm"`
	LegHeightMM Range `yaml:"leg_height_mm"`

	// MorphMax is the morph weight reached at the top of a leg range.
	MorphMax    float32 `yaml:"morph_max"`
	LengthMorph string  `yaml:"length_morph"`
	HeightMorph string  `yaml:"height_morph"`

	TopOffset    float32 `yaml:"top_offset"`  // gap between leg tops and slab centre
	TopPadding   float32 `yaml:"top_padding"` // overhang added to both spans
	MinSpan      float32 `yaml:"min_span"`    // floor for degenerate spans
	TopThickness float32 `yaml:"top_thickness"`
	TopSegments  int     `yaml:"top_segments"`
	FocusDrop    float32 `yaml:"focus_drop"`

	LegPart        string          `yaml:"leg_part"`
	FastenerPart   string          `yaml:"fastener_part"`
	FastenerOffset float32         `yaml:"fastener_offset"`
	SupportInset   float32         `yaml:"support_inset"`
	Support        support.Variant `yaml:"support"`
}

// DefaultConfig returns the configurator's table settings.
func DefaultConfig() Config {
	return Config{
		LengthMM:    Range{Min: 1200, Max: 2400, Default: 1200},
		LegLengthMM: Range{Min: 300, Max: 900, Default: 300},
		LegHeightMM: Range{Min: 500, Max: 1200, Default: 500},

		MorphMax:    0.3,
		LengthMorph: "length",
		HeightMorph: "height",

		TopOffset:    0.0085,
		TopPadding:   0.2,
		MinSpan:      0.01,
		TopThickness: 0.02,
		TopSegments:  32,
		FocusDrop:    0.2,

		LegPart:        "Cube007",
		FastenerPart:   "Cube007_1",
		FastenerOffset: -0.03,
		SupportInset:   support.DefaultInset,
		Support:        support.Prop01,
	}
}

// SurfaceConfig holds the table top material settings.
type SurfaceConfig struct {
	TileSize    float32        `yaml:"tile_size"`
	Texture     string         `yaml:"texture"`
	TexturesDir string         `yaml:"textures_dir"`
	NormalScale math.Vec2      `yaml:"normal_scale"`
	Textures    []texture.Spec `yaml:"textures"`
}

// DefaultSurfaceConfig returns the configurator's surface settings.
func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		TileSize:    0.5,
		Texture:     "ashwood",
		NormalScale: math.Vec2{X: -0.5, Y: -0.5},
		Textures:    DefaultTextures(),
	}
}

// DefaultTextures returns the surface texture catalog.
func DefaultTextures() []texture.Spec {
	wood := func(name string) texture.Spec {
		return texture.Spec{Name: name, Path: name + ".webp", Repeat: true, RepeatSet: 0.7, Anisotropy: true}
	}
	normal := func(name string) texture.Spec {
		s := wood(name)
		s.NonSRGB = true
		return s
	}
	return []texture.Spec{
		wood("ashwood"),
		wood("cedar"),
		wood("walnut"),
		wood("plastic_black"),
		normal("plastic_black_nrm"),
		wood("plastic_white"),
		normal("plastic_white_nrm"),
	}
}

// Settings bundles everything a Model is built from.
type Settings struct {
	Table   Config
	Surface SurfaceConfig
	Shadow  lightmap.Config
}

// DefaultSettings returns the default table, surface and shadow settings.
func DefaultSettings() Settings {
	return Settings{
		Table:   DefaultConfig(),
		Surface: DefaultSurfaceConfig(),
		Shadow:  lightmap.DefaultConfig(),
	}
}
