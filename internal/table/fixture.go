package table

import (
	"github.com/Faultbox/tablecraft/internal/engine/material"
	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Fixture dimensions, in metres, at zero morph weight.
const (
	fixtureLegWidth  = 0.3  // X, the leg "length" parameter
	fixtureLegHeight = 0.5  // Y
	fixtureLegDepth  = 0.05 // Z
)

// NewFixture builds a procedural stand-in for the loaded table parts: a leg
// with "length" and "height" morph targets, its fastener, and both support
// variants. Morph deltas are scaled so a weight of 0.3 reaches the top of
// each default millimetre range.
func NewFixture() *model.Mesh {
	cfg := DefaultConfig()
	lengthPerWeight := (cfg.LegLengthMM.Max - cfg.LegLengthMM.Min) / 1000 / cfg.MorphMax / 2
	heightPerWeight := (cfg.LegHeightMM.Max - cfg.LegHeightMM.Min) / 1000 / cfg.MorphMax

	parts := model.NewGroup("parts")

	leg := model.NewBox(cfg.LegPart, fixtureLegWidth, fixtureLegHeight, fixtureLegDepth, 1, 1, 1)
	lift(leg, fixtureLegHeight/2)
	leg.Material = material.New("leg")
	leg.Material.Color = [3]float32{0.1, 0.1, 0.1}
	leg.Morphs = []model.MorphTarget{
		{Name: cfg.LengthMorph, Deltas: deltas(leg, func(p math.Vec3) math.Vec3 {
			if p.X > 0 {
				return math.Vec3{X: lengthPerWeight}
			}
			return math.Vec3{X: -lengthPerWeight}
		})},
		{Name: cfg.HeightMorph, Deltas: deltas(leg, func(p math.Vec3) math.Vec3 {
			if p.Y > fixtureLegHeight/2 {
				return math.Vec3{Y: heightPerWeight}
			}
			return math.Vec3{}
		})},
	}
	parts.Add(leg)

	fastener := model.NewBox(cfg.FastenerPart, 0.02, 0.02, 0.02, 1, 1, 1)
	fastener.Transform.Position = math.Vec3{Y: fixtureLegHeight - 0.03, Z: fixtureLegDepth/2 + 0.01}
	fastener.Material = leg.Material.Clone()
	fastener.Morphs = []model.MorphTarget{
		{Name: cfg.HeightMorph, Deltas: deltas(fastener, func(math.Vec3) math.Vec3 {
			return math.Vec3{Y: heightPerWeight}
		})},
	}
	parts.Add(fastener)

	prop1 := model.NewBox("prop_01", 0.03, 0.25, 0.03, 1, 1, 1)
	prop1.Transform.Position = math.Vec3{Y: 0.125}
	prop1.Material = leg.Material.Clone()
	parts.Add(prop1)

	prop2 := model.NewBox("prop_02", 0.06, 0.03, 0.08, 1, 1, 1)
	prop2.Transform.Position = math.Vec3{Y: 0.015}
	prop2.Material = leg.Material.Clone()
	parts.Add(prop2)

	return parts
}

func lift(m *model.Mesh, dy float32) {
	for i := range m.Positions {
		m.Positions[i].Y += dy
	}
}

func deltas(m *model.Mesh, fn func(p math.Vec3) math.Vec3) []math.Vec3 {
	out := make([]math.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		out[i] = fn(p)
	}
	return out
}
