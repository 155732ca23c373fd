package table

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/tablecraft/internal/engine/bounds"
	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/internal/engine/shadow"
	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/internal/logger"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// SetTableLength clamps mm to the length range, moves the second leg to the
// new length and regenerates the top surface.
func (m *Model) SetTableLength(mm float32) {
	m.lengthMM = m.settings.Table.LengthMM.Clamp(mm)
	m.legs[1].Transform.Position.Z = m.Length()
	m.RegenerateTopSurface()
}

// SetLegLength clamps mm to the leg length range, drives the length morph of
// both legs and regenerates the top surface.
func (m *Model) SetLegLength(mm float32) {
	cfg := m.settings.Table
	m.legLengthMM = cfg.LegLengthMM.Clamp(mm)
	m.applyMorph(cfg.LengthMorph, cfg.LegLengthMM.Fraction(m.legLengthMM)*cfg.MorphMax)
	m.RegenerateTopSurface()
}

// SetLegHeight clamps mm to the leg height range, drives the height morph of
// the legs and fasteners and regenerates the top surface.
func (m *Model) SetLegHeight(mm float32) {
	cfg := m.settings.Table
	m.legHeightMM = cfg.LegHeightMM.Clamp(mm)
	m.applyMorph(cfg.HeightMorph, cfg.LegHeightMM.Fraction(m.legHeightMM)*cfg.MorphMax)
	m.RegenerateTopSurface()
}

// SetMorphWeight sets a raw morph weight, unclamped, on the legs and
// fasteners and regenerates the top surface. It returns false if no part has
// a target by that name.
func (m *Model) SetMorphWeight(name string, weight float32) bool {
	ok := m.applyMorph(name, weight)
	m.RegenerateTopSurface()
	return ok
}

func (m *Model) applyMorph(name string, weight float32) bool {
	found := false
	for _, mesh := range [...]*model.Mesh{m.legs[0], m.legs[1], m.fastener, m.fastenerClone} {
		if mesh != nil && mesh.SetMorphWeight(name, weight) {
			found = true
		}
	}
	if !found {
		m.warn("morph target missing", zap.String("morph", name))
	}
	return found
}

// RegenerateTopSurface recomputes everything derived from the legs: the leg
// bounds, the top slab position and size, its UVs, normals and tangents, the
// support placement, the shadow casters, and finally the baked shadow.
func (m *Model) RegenerateTopSurface() {
	cfg := m.settings.Table

	b := m.evaluator.World(m.legs[0], m.legs[1])
	if b.IsEmpty() {
		m.warn("legs have no vertices, top surface skipped")
		return
	}

	spanX := math32.Abs(b.Max.X - b.Min.X)
	if spanX < cfg.MinSpan {
		logger.Debug("leg span below minimum", zap.Float32("span", spanX))
		spanX = cfg.MinSpan
	}
	spanZ := max(m.Length(), cfg.MinSpan)

	t := &m.top.Transform
	t.Position = math.Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: b.Max.Y + cfg.TopOffset,
		Z: m.Length() / 2,
	}
	t.Scale.X = spanX + cfg.TopPadding
	t.Scale.Z = spanZ + cfg.TopPadding

	m.mapper.Apply(m.top)
	m.top.Material.Version++

	for i, leg := range m.legs {
		lb := m.evaluator.Local(leg)
		m.legBounds[i] = lb
		m.supports.Place(i, lb.Min.X, lb.Max.X)
	}

	m.topBounds = m.evaluator.World(m.top)
	m.updateCasters()
	m.baker.Reset()

	logger.Debug("top surface regenerated",
		zap.Float32("scale_x", t.Scale.X),
		zap.Float32("scale_z", t.Scale.Z),
		zap.Float32("y", t.Position.Y))
}

// SetSurfaceTexture swaps the top's texture and, when one exists, its normal
// map. Geometry is untouched. An unknown name leaves the material unchanged.
func (m *Model) SetSurfaceTexture(name string) error {
	if err := m.library.Apply(name, m.top.Material); err != nil {
		m.warn("surface texture unavailable", zap.String("texture", name), zap.Error(err))
		return err
	}
	m.texture = name
	return nil
}

// SetSupportVariant shows variant v on both legs and hides the other.
func (m *Model) SetSupportVariant(v support.Variant) {
	m.settings.Table.Support = v
	m.supports.SetVariant(v)
	m.updateCasters()
}

// updateCasters gathers the world-space morphed geometry of every visible
// shadow casting mesh for the shadow pass. Buffers are reused between calls.
func (m *Model) updateCasters() {
	m.casters = m.casters[:0]
	n := 0

	var visit func(node *model.Mesh, parent math.Mat4)
	visit = func(node *model.Mesh, parent math.Mat4) {
		if !node.Visible {
			return
		}
		world := parent.Mul(node.Transform.Matrix())
		if node.CastShadow && len(node.Indices) > 0 {
			if n == len(m.casterBufs) {
				m.casterBufs = append(m.casterBufs, nil)
			}
			m.casterBufs[n] = m.blender.World(m.casterBufs[n], node.Positions, node.Morphs, world)
			m.casters = append(m.casters, shadow.Caster{Positions: m.casterBufs[n], Indices: node.Indices})
			n++
		}
		for _, c := range node.Children {
			visit(c, world)
		}
	}
	visit(m.root, math.Identity())

	m.pass.SetCasters(m.casters)
}

// FocusPoint returns the camera target for the table: the centre of the top's
// world bounds, lowered by the configured focus drop.
func (m *Model) FocusPoint() math.Vec3 {
	c := m.topBounds.Center()
	c.Y -= m.settings.Table.FocusDrop
	return c
}

// TopWorldBounds recomputes the top slab bounds from its current transform.
func (m *Model) TopWorldBounds() bounds.Bounds {
	return m.evaluator.World(m.top)
}
