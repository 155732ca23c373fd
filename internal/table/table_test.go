package table

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// testSettings keeps bakes small enough for unit tests.
func testSettings() Settings {
	s := DefaultSettings()
	s.Shadow.Frames = 4
	s.Shadow.Resolution = 16
	s.Shadow.Seed = 1
	s.Shadow.Light.Amount = 2
	s.Shadow.Light.Shadow.MapSize = 32
	return s
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m, err := New(testSettings(), NewFixture(), nil)
	require.NoError(t, err)
	return m
}

func unitLegParts() *model.Mesh {
	parts := model.NewGroup("parts")
	parts.Add(model.NewBox("Cube007", 1, 1, 1, 1, 1, 1))
	return parts
}

func TestNewMissingLeg(t *testing.T) {
	_, err := New(testSettings(), model.NewGroup("parts"), nil)
	assert.True(t, errors.Is(err, ErrMissingPart))
}

func TestNewBuildsScene(t *testing.T) {
	parts := NewFixture()
	m, err := New(testSettings(), parts, nil)
	require.NoError(t, err)

	assert.Empty(t, parts.Children, "parts are moved into the table")
	assert.NotNil(t, m.Root().Find("Leg1"))
	assert.NotNil(t, m.Root().Find("Leg2"))
	assert.Same(t, m.Top(), m.Root().Find(TopName))
	assert.Same(t, m.Receiver(), m.Root().Find(ReceiverName))
	assert.True(t, m.Supports().Complete())
	assert.Len(t, m.Root().FindAll("Cube007_1"), 2)

	st := m.Status()
	assert.Empty(t, st.Warnings)
	assert.Equal(t, float32(1200), st.LengthMM)
	assert.Equal(t, "ashwood", st.Texture)
	assert.Equal(t, support.Prop01, st.Support)
	assert.Equal(t, lightmap.Finished, st.BakeState)
	assert.Equal(t, 4, st.Samples)
}

func TestLegsHaveIndependentBuffers(t *testing.T) {
	m := newTestModel(t)
	legs := m.Legs()
	legs[0].Positions[0].X += 1
	assert.NotEqual(t, legs[0].Positions[0], legs[1].Positions[0])
}

func TestSetTableLengthScenario(t *testing.T) {
	m, err := New(testSettings(), unitLegParts(), nil)
	require.NoError(t, err)
	require.InDelta(t, 1.2, m.Legs()[1].Transform.Position.Z, 1e-6)

	m.SetTableLength(1500)
	m.RegenerateTopSurface()

	top := m.Top().Transform
	assert.InDelta(t, 1.5+0.2, top.Scale.Z, 1e-6)
	assert.Equal(t, float32(0.75), top.Position.Z)
	assert.InDelta(t, 1.0+0.2, top.Scale.X, 1e-6)
	assert.InDelta(t, 0, top.Position.X, 1e-6)
	assert.InDelta(t, 0.5+0.0085, top.Position.Y, 1e-6)
	assert.InDelta(t, 1.5, m.Legs()[1].Transform.Position.Z, 1e-6)
}

func TestSetTableLengthClamps(t *testing.T) {
	m := newTestModel(t)

	m.SetTableLength(5000)
	assert.Equal(t, float32(2400), m.Status().LengthMM)
	assert.InDelta(t, 2.4, m.Legs()[1].Transform.Position.Z, 1e-6)

	m.SetTableLength(10)
	assert.Equal(t, float32(1200), m.Status().LengthMM)
}

func TestSetLegLength(t *testing.T) {
	m := newTestModel(t)

	m.SetLegLength(900)
	assert.InDelta(t, 0.9+0.2, m.Top().Transform.Scale.X, 1e-5)

	inset := m.Settings().Table.SupportInset
	for _, slot := range m.Supports().Slots() {
		want := float32(0.45) - inset
		if slot.Side == support.Left {
			want = -0.45 + inset
		}
		assert.InDelta(t, want, slot.Mesh.Transform.Position.X, 1e-5, "%s", slot.Mesh.Name)
	}

	m.SetLegLength(100000)
	assert.Equal(t, float32(900), m.Status().LegLengthMM)
	assert.InDelta(t, 0.9+0.2, m.Top().Transform.Scale.X, 1e-5)
}

func TestSetLegHeight(t *testing.T) {
	m := newTestModel(t)
	assert.InDelta(t, 0.5+0.0085, m.Top().Transform.Position.Y, 1e-5)

	m.SetLegHeight(1200)
	assert.InDelta(t, 1.2+0.0085, m.Top().Transform.Position.Y, 1e-5)

	for _, f := range m.Root().FindAll("Cube007_1") {
		i := f.MorphIndex("height")
		require.GreaterOrEqual(t, i, 0)
		assert.InDelta(t, 0.3, f.Morphs[i].Weight, 1e-6)
	}
}

func TestSetMorphWeightIsNotClamped(t *testing.T) {
	m := newTestModel(t)

	assert.True(t, m.SetMorphWeight("length", 0.6))
	assert.InDelta(t, 0.3+2*0.6+0.2, m.Top().Transform.Scale.X, 1e-5)

	assert.False(t, m.SetMorphWeight("width", 1))
	assert.Contains(t, m.Status().Warnings, "morph target missing")
}

func TestRepeatedWarningsRecordedOnce(t *testing.T) {
	m := newTestModel(t)

	for range 50 {
		m.SetMorphWeight("width", 1)
	}
	assert.Equal(t, []string{"morph target missing"}, m.Status().Warnings)
}

func TestBakeZeroFramesRestoresReceiver(t *testing.T) {
	m := newTestModel(t)
	cfg := m.Settings().Shadow.Material

	m.BakeShadows(0)

	st := m.Status()
	assert.Equal(t, lightmap.Finished, st.BakeState)
	assert.Zero(t, st.Samples)
	assert.Equal(t, cfg.Opacity, m.Receiver().Material.Opacity)
	assert.Equal(t, cfg.AlphaTest, m.Receiver().Material.AlphaTest)
}

func TestSetTableLengthNaN(t *testing.T) {
	m := newTestModel(t)

	m.SetTableLength(float32(gomath.NaN()))

	assert.Equal(t, float32(1200), m.Status().LengthMM)
	assert.InDelta(t, 0.6, m.Top().Transform.Position.Z, 1e-6)
	assert.InDelta(t, 1.2, m.Legs()[1].Transform.Position.Z, 1e-6)
}

func TestBoundsFollowWeights(t *testing.T) {
	m := newTestModel(t)
	before := m.TopBounds()

	m.SetLegHeight(800)
	after := m.TopBounds()

	assert.Greater(t, after.Max.Y, before.Max.Y)
	assert.Equal(t, m.TopWorldBounds(), after)
}

func TestTopUVsFollowScale(t *testing.T) {
	m := newTestModel(t)
	m.SetTableLength(2000)

	top := m.Top()
	sz := top.Transform.Scale.Z
	sx := top.Transform.Scale.X
	checked := 0
	for i, p := range top.Positions {
		if top.Normals[i].Y > 0.9 {
			assert.InDelta(t, -p.Z*sz/0.5, top.UVs[i].X, 1e-5)
			assert.InDelta(t, p.X*sx/0.5, top.UVs[i].Y, 1e-5)
			checked++
		}
	}
	assert.NotZero(t, checked)
	assert.Len(t, top.Tangents, top.VertexCount())
}

func TestSetSurfaceTexture(t *testing.T) {
	m := newTestModel(t)
	mat := m.Top().Material

	require.NoError(t, m.SetSurfaceTexture("plastic_black"))
	require.NotNil(t, mat.Map)
	assert.Equal(t, "plastic_black", mat.Map.Name)
	require.NotNil(t, mat.NormalMap)
	assert.Equal(t, "plastic_black_nrm", mat.NormalMap.Name)
	assert.Equal(t, math.Vec2{X: -0.5, Y: -0.5}, mat.NormalScale)

	require.NoError(t, m.SetSurfaceTexture("walnut"))
	assert.Equal(t, "walnut", mat.Map.Name)
	assert.Nil(t, mat.NormalMap)

	assert.Error(t, m.SetSurfaceTexture("oak"))
	assert.Equal(t, "walnut", mat.Map.Name)
	assert.Equal(t, "walnut", m.Status().Texture)
}

func TestSetSupportVariant(t *testing.T) {
	m := newTestModel(t)

	m.SetSupportVariant(support.Prop02)
	assert.Equal(t, support.Prop02, m.Status().Support)
	visible := 0
	for _, slot := range m.Supports().Slots() {
		if slot.Mesh.Visible {
			visible++
			assert.Equal(t, support.Prop02, slot.Variant)
		}
	}
	assert.Equal(t, 4, visible)
}

func TestMissingSupportsAreSkipped(t *testing.T) {
	m, err := New(testSettings(), unitLegParts(), nil)
	require.NoError(t, err)

	st := m.Status()
	assert.Contains(t, st.Warnings, "support part missing, supports skipped")
	assert.Contains(t, st.Warnings, "fastener part missing, clone skipped")
	assert.False(t, m.Supports().Complete())

	m.SetSupportVariant(support.Prop02)
	m.SetTableLength(1800)
	assert.InDelta(t, 0.9, m.Top().Transform.Position.Z, 1e-6)
}

func TestBakeShadowsDeterministic(t *testing.T) {
	m := newTestModel(t)

	m.BakeShadows(6)
	first := append([]float32(nil), m.Lightmap().Data...)
	m.BakeShadows(6)

	assert.Equal(t, first, m.Lightmap().Data)
	assert.Equal(t, 6, m.Status().Samples)
	assert.Equal(t, m.Settings().Shadow.Material.Opacity, m.Receiver().Material.Opacity)
}

func TestBakeCastsShadowUnderTable(t *testing.T) {
	s := testSettings()
	s.Shadow.Light.Ambient = -1
	s.Shadow.Light.Radius = 0
	s.Shadow.Light.Position = math.Vec3{X: 0.01, Y: 5, Z: 0.6}
	s.Shadow.Light.Shadow.MapSize = 128
	m, err := New(s, NewFixture(), nil)
	require.NoError(t, err)

	m.BakeShadows(2)

	// Row 6, column 8 sits at world (0.22, 0, 0.66), under the top; the
	// first texel is open floor.
	lm := m.Lightmap()
	require.Equal(t, 16, lm.Size)
	center := lm.Data[6*lm.Size+8]
	corner := lm.Data[0]
	assert.Less(t, center, corner)
}

func TestResetShadowBake(t *testing.T) {
	s := testSettings()
	s.Shadow.Frames = 0
	s.Shadow.SequenceLength = 8
	m, err := New(s, NewFixture(), nil)
	require.NoError(t, err)

	m.AccumulateShadows(3)
	assert.Equal(t, 3, m.Status().Samples)

	m.ResetShadowBake()
	assert.Zero(t, m.Status().Samples)
	assert.Zero(t, m.Receiver().Material.Opacity)
	assert.Equal(t, lightmap.Preparing, m.Status().BakeState)

	m.AccumulateShadows(2)
	m.AccumulateShadows(2)
	assert.Equal(t, 4, m.Status().Samples)
	assert.Equal(t, s.Shadow.Material.Opacity, m.Receiver().Material.Opacity)
	assert.Equal(t, s.Shadow.Material.AlphaTest, m.Receiver().Material.AlphaTest)
}

func TestResetShadowBakeFinite(t *testing.T) {
	m := newTestModel(t)
	m.ResetShadowBake()
	assert.Equal(t, 4, m.Status().Samples)
	assert.Equal(t, lightmap.Finished, m.Status().BakeState)
}

func TestFocusPoint(t *testing.T) {
	m := newTestModel(t)
	top := m.Top().Transform

	p := m.FocusPoint()
	assert.InDelta(t, top.Position.X, p.X, 1e-5)
	assert.InDelta(t, top.Position.Y-0.2, p.Y, 1e-5)
	assert.InDelta(t, top.Position.Z, p.Z, 1e-5)
}

func TestReportYAML(t *testing.T) {
	m := newTestModel(t)

	out, err := yaml.Marshal(m.Report())
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	status, ok := back["status"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "prop_01", status["support"])
	assert.Equal(t, "finished", status["bake_state"])
	supports, ok := back["supports"].([]any)
	require.True(t, ok)
	assert.Len(t, supports, support.SlotCount)
}

func TestRangeFraction(t *testing.T) {
	r := Range{Min: 300, Max: 900}
	assert.Equal(t, float32(0), r.Fraction(100))
	assert.Equal(t, float32(0.5), r.Fraction(600))
	assert.Equal(t, float32(1), r.Fraction(1000))
	assert.Equal(t, float32(0), Range{Min: 1, Max: 1}.Fraction(5))
	assert.Equal(t, float32(0), r.Fraction(float32(gomath.NaN())))
}
