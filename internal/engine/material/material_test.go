package material

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/pkg/math"
)

func testLibrary() *Library {
	specs := []texture.Spec{
		{Name: "cedar"},
		{Name: "plastic_black"},
		{Name: "plastic_black" + NormalSuffix, NonSRGB: true},
		{Name: "broken", Path: "broken.png"},
	}
	src := texture.MapSource{"broken.png": []byte("not a png")}
	return NewLibrary(texture.NewCatalog(specs, src), math.Vec2{X: -0.5, Y: -0.5})
}

func TestCloneIsIndependent(t *testing.T) {
	m := New("leg")
	m.Map = &texture.Texture{Spec: texture.Spec{Name: "cedar"}}

	c := m.Clone()
	c.Opacity = 0.2
	c.Color[0] = 0

	assert.Equal(t, float32(1), m.Opacity)
	assert.Equal(t, float32(1), m.Color[0])
	assert.Same(t, m.Map, c.Map)
}

func TestShadowMaterial(t *testing.T) {
	cfg := DefaultShadowConfig()
	m := NewShadow(cfg)

	assert.True(t, m.Transparent)
	assert.Equal(t, [3]float32{0, 0, 0}, m.Color)
	assert.Equal(t, float32(0.45), m.Opacity)
	assert.Equal(t, float32(0.83), m.AlphaTest)
	assert.Equal(t, float32(0.1), m.ColorBlend)

	m.Hide()
	assert.Zero(t, m.Opacity)
	assert.Zero(t, m.AlphaTest)
	assert.Equal(t, float32(0.1), m.ColorBlend)

	m.Restore(cfg)
	assert.Equal(t, cfg.Opacity, m.Opacity)
	assert.Equal(t, cfg.AlphaTest, m.AlphaTest)
}

func TestApplyWithNormalMap(t *testing.T) {
	lib := testLibrary()
	a, b := New("top"), New("leg")

	require.NoError(t, lib.Apply("plastic_black", a, nil, b))

	for _, m := range []*Material{a, b} {
		require.NotNil(t, m.Map)
		assert.Equal(t, "plastic_black", m.Map.Name)
		require.NotNil(t, m.NormalMap)
		assert.Equal(t, "plastic_black_nrm", m.NormalMap.Name)
		assert.Equal(t, math.Vec2{X: -0.5, Y: -0.5}, m.NormalScale)
		assert.Equal(t, 1, m.Version)
	}
}

func TestApplyClearsNormalMap(t *testing.T) {
	lib := testLibrary()
	m := New("top")

	require.NoError(t, lib.Apply("plastic_black", m))
	require.NotNil(t, m.NormalMap)

	require.NoError(t, lib.Apply("cedar", m))
	assert.Equal(t, "cedar", m.Map.Name)
	assert.Nil(t, m.NormalMap)
	assert.Equal(t, 2, m.Version)
}

func TestApplyErrorsLeaveMaterial(t *testing.T) {
	lib := testLibrary()
	m := New("top")
	require.NoError(t, lib.Apply("cedar", m))

	tests := []struct {
		name     string
		texture  string
		notFound bool
	}{
		{"unknown", "marble", true},
		{"undecodable", "broken", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := lib.Apply(tt.texture, m)
			require.Error(t, err)
			assert.Equal(t, tt.notFound, errors.Is(err, texture.ErrNotFound))
			assert.Equal(t, "cedar", m.Map.Name)
			assert.Equal(t, 1, m.Version)
		})
	}
}
