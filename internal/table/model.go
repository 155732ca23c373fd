// Package table is the parametric table: it owns the legs, supports, top slab
// and shadow receiver, and keeps their geometry, placement and baked soft
// shadow consistent as the length, leg, texture and support parameters change.
package table

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/tablecraft/internal/engine/bounds"
	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/engine/material"
	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/internal/engine/morph"
	"github.com/Faultbox/tablecraft/internal/engine/shadow"
	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/internal/engine/texture"
	"github.com/Faultbox/tablecraft/internal/engine/uvmap"
	"github.com/Faultbox/tablecraft/internal/logger"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// ErrMissingPart is returned when the parts group has no leg to build from.
var ErrMissingPart = errors.New("missing part")

// Scene object names.
const (
	TopName      = "Table top"
	ReceiverName = "shadowMesh"
)

// Model is the single context object for one table. It is not safe for
// concurrent use; every operation runs to completion on the caller's goroutine.
type Model struct {
	settings Settings

	root          *model.Mesh
	legs          [support.Legs]*model.Mesh
	fastener      *model.Mesh
	fastenerClone *model.Mesh
	top           *model.Mesh
	receiver      *model.Mesh

	supports  *support.Set
	evaluator bounds.Evaluator
	mapper    uvmap.Mapper
	library   *material.Library

	pass       *shadow.Pass
	baker      *lightmap.Baker
	blender    morph.Blender
	casters    []shadow.Caster
	casterBufs [][]math.Vec3

	lengthMM    float32
	legLengthMM float32
	legHeightMM float32
	texture     string

	topBounds bounds.Bounds
	legBounds [support.Legs]bounds.Bounds
	warnings  []string
}

// New builds a table from a parts group holding the leg, fastener and support
// variants. Parts are moved out of the group into the table. Missing optional
// parts are reported in Status and skipped; a missing leg is an error.
// Textures are read from src, which may be nil.
func New(s Settings, parts *model.Mesh, src texture.Source) (*Model, error) {
	cfg := s.Table

	leg := parts.Find(cfg.LegPart)
	if leg == nil {
		return nil, fmt.Errorf("leg %q: %w", cfg.LegPart, ErrMissingPart)
	}
	parts.Remove(leg)

	m := &Model{
		settings: s,
		root:     model.NewGroup("table"),
		supports: support.NewSet(cfg.SupportInset),
		mapper:   uvmap.NewMapper(s.Surface.TileSize),
		library:  material.NewLibrary(texture.NewCatalog(s.Surface.Textures, src), s.Surface.NormalScale),
	}

	leg.Name = "Leg1"
	if leg.Material == nil {
		leg.Material = material.New("leg")
	}
	leg2 := leg.Clone()
	leg2.Name = "Leg2"
	m.legs = [support.Legs]*model.Mesh{leg, leg2}
	m.root.Add(leg)
	m.root.Add(leg2)

	m.top = newTop(cfg)
	m.root.Add(m.top)

	m.attachSupports(parts)
	m.attachFastener(parts)
	m.supports.SetVariant(cfg.Support)

	m.receiver = model.NewPlane(ReceiverName, 1, 1)
	m.receiver.Transform.Rotation = math.Vec3{X: -math32.Pi / 2}
	m.receiver.Transform.Scale = math.Vec3{X: s.Shadow.Scale, Y: s.Shadow.Scale, Z: s.Shadow.Scale}
	m.receiver.CastShadow = false
	m.receiver.ReceiveShadow = true
	m.receiver.Material = material.NewShadow(s.Shadow.Material)
	m.root.Add(m.receiver)

	m.pass = shadow.NewPass(s.Shadow.Light.Shadow.MapSize)
	m.baker = lightmap.NewBaker(s.Shadow, m.pass, m.receiver.Material)
	m.pass.SetReceiver(m.receiver.Transform.Matrix(), m.baker.Config().Resolution)

	m.lengthMM = cfg.LengthMM.Clamp(cfg.LengthMM.Default)
	m.legs[1].Transform.Position.Z = m.Length()
	m.legLengthMM = cfg.LegLengthMM.Clamp(cfg.LegLengthMM.Default)
	m.applyMorph(cfg.LengthMorph, cfg.LegLengthMM.Fraction(m.legLengthMM)*cfg.MorphMax)
	m.legHeightMM = cfg.LegHeightMM.Clamp(cfg.LegHeightMM.Default)
	m.applyMorph(cfg.HeightMorph, cfg.LegHeightMM.Fraction(m.legHeightMM)*cfg.MorphMax)

	if s.Surface.Texture != "" {
		_ = m.SetSurfaceTexture(s.Surface.Texture)
	}

	m.RegenerateTopSurface()

	logger.Info("table ready",
		zap.Float32("length_mm", m.lengthMM),
		zap.Int("support_slots", len(m.supports.Slots())),
		zap.Int("warnings", len(m.warnings)))
	return m, nil
}

func newTop(cfg Config) *model.Mesh {
	segs := max(cfg.TopSegments, 1)
	top := model.NewBox(TopName, 1, cfg.TopThickness, 1, segs, 1, segs)
	uvmap.ApplyInitial(top)
	top.ReceiveShadow = true
	top.Material = material.New("table_top")
	top.Material.Roughness = 0.5
	top.Material.NormalScale = math.Vec2{X: -1, Y: -1}
	return top
}

// attachSupports clones both support variants into the eight slots and
// removes the originals from the parts group.
func (m *Model) attachSupports(parts *model.Mesh) {
	sources := make([]*model.Mesh, len(support.Variants))
	for i, v := range support.Variants {
		sources[i] = parts.Find(v.String())
		if sources[i] == nil {
			m.warn("support part missing, supports skipped", zap.String("part", v.String()))
			return
		}
	}
	for i, v := range support.Variants {
		m.supports.Attach(v, sources[i], m.legs)
		parts.Remove(sources[i])
	}
}

// attachFastener mounts the fastener on the first leg and a clone on the
// second, offset along Z and sharing the original's morph weights.
func (m *Model) attachFastener(parts *model.Mesh) {
	cfg := m.settings.Table
	f := parts.Find(cfg.FastenerPart)
	if f == nil {
		m.warn("fastener part missing, clone skipped", zap.String("part", cfg.FastenerPart))
		return
	}
	parts.Remove(f)
	m.legs[0].Add(f)

	clone := f.Clone()
	clone.Transform.Position.Z += cfg.FastenerOffset
	clone.CopyMorphWeights(f)
	m.legs[1].Add(clone)

	m.fastener = f
	m.fastenerClone = clone
}

// warn logs msg and records it once; repeats are logged at debug only.
func (m *Model) warn(msg string, fields ...zap.Field) {
	if slices.Contains(m.warnings, msg) {
		logger.Debug(msg, fields...)
		return
	}
	m.warnings = append(m.warnings, msg)
	logger.Warn(msg, fields...)
}

// Length returns the table length in metres.
func (m *Model) Length() float32 {
	return m.lengthMM / 1000
}

// Root returns the scene group holding every table object.
func (m *Model) Root() *model.Mesh { return m.root }

// Top returns the table top slab.
func (m *Model) Top() *model.Mesh { return m.top }

// Legs returns both legs.
func (m *Model) Legs() [support.Legs]*model.Mesh { return m.legs }

// Receiver returns the soft shadow plane.
func (m *Model) Receiver() *model.Mesh { return m.receiver }

// Supports returns the support slots.
func (m *Model) Supports() *support.Set { return m.supports }

// Baker returns the lightmap baker.
func (m *Model) Baker() *lightmap.Baker { return m.baker }

// Lightmap returns the baked soft shadow buffer.
func (m *Model) Lightmap() *lightmap.Accumulator { return m.baker.Texture() }

// TopBounds returns the world bounds of the top slab from the last regeneration.
func (m *Model) TopBounds() bounds.Bounds { return m.topBounds }

// LegBounds returns the local morphed bounds of each leg from the last regeneration.
func (m *Model) LegBounds() [support.Legs]bounds.Bounds { return m.legBounds }

// Settings returns the settings the table was built with.
func (m *Model) Settings() Settings { return m.settings }
