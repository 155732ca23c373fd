// Package uvmap assigns tiling UV coordinates to the table top slab so the
// surface texture keeps a fixed physical tile size as the slab is resized.
package uvmap

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/pkg/math"
)

const (
	// faceThreshold selects the projection axis from the vertex normal.
	faceThreshold = 0.9

	// edgeScale stretches the thin edge faces vertically so only a narrow band
	// of the texture shows around the slab rim.
	edgeScale  = 100
	edgeOffset = 0.5
)

// DefaultTileSize is the physical size in metres of one texture tile.
const DefaultTileSize = 0.5

// Project returns the UV for a vertex at position p with normal n on a slab
// scaled by scale, with tileSize metres per texture repeat.
//
//	|ny| > 0.9 (top/bottom):  u = -z*sz/T, v = x*sx/T
//	|nz| > 0.9 (front/back):  u =  x*sx/T, v = 100y + 0.5
//	otherwise (sides):        u =  z*sz/T, v = 100y + 0.5
//
// A degenerate normal falls through to the side projection.
func Project(p, n, scale math.Vec3, tileSize float32) math.Vec2 {
	switch {
	case math32.Abs(n.Y) > faceThreshold:
		return math.Vec2{X: (-p.Z * scale.Z) / tileSize, Y: (p.X * scale.X) / tileSize}
	case math32.Abs(n.Z) > faceThreshold:
		return math.Vec2{X: (p.X * scale.X) / tileSize, Y: edgeScale*p.Y + edgeOffset}
	default:
		return math.Vec2{X: (p.Z * scale.Z) / tileSize, Y: edgeScale*p.Y + edgeOffset}
	}
}

// ProjectUnit is the construction-time projection for a unit slab centred on
// the origin: local coordinates are shifted into 0..1 and doubled, so the
// initial slab shows two tiles per side before any resize.
func ProjectUnit(p, n math.Vec3) math.Vec2 {
	switch {
	case math32.Abs(n.Y) > faceThreshold:
		return math.Vec2{X: (-p.Z + 0.5) * 2, Y: (p.X + 0.5) * 2}
	case math32.Abs(n.Z) > faceThreshold:
		return math.Vec2{X: (p.X + 0.5) * 2, Y: edgeScale*p.Y + edgeOffset}
	default:
		return math.Vec2{X: (p.Z + 0.5) * 2, Y: edgeScale*p.Y + edgeOffset}
	}
}

// Mapper re-projects slab UVs after a resize.
type Mapper struct {
	TileSize float32
}

// NewMapper creates a mapper, falling back to DefaultTileSize for a
// non-positive tile size.
func NewMapper(tileSize float32) Mapper {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return Mapper{TileSize: tileSize}
}

// Apply rewrites every UV of m from its local positions and normals and the
// final transform scale, then recomputes normals and tangents from the new
// topology. Call it after the slab transform has been updated.
func (mp Mapper) Apply(m *model.Mesh) {
	scale := m.Transform.Scale
	m.UVs = resize(m.UVs, len(m.Positions))
	for i, p := range m.Positions {
		m.UVs[i] = Project(p, normalAt(m, i), scale, mp.TileSize)
	}
	model.ComputeVertexNormals(m)
	model.ComputeTangents(m)
}

// ApplyInitial assigns construction-time UVs to a freshly built unit slab and
// derives its normals and tangents.
func ApplyInitial(m *model.Mesh) {
	m.UVs = resize(m.UVs, len(m.Positions))
	for i, p := range m.Positions {
		m.UVs[i] = ProjectUnit(p, normalAt(m, i))
	}
	model.ComputeVertexNormals(m)
	model.ComputeTangents(m)
}

func normalAt(m *model.Mesh, i int) math.Vec3 {
	if i < len(m.Normals) {
		return m.Normals[i]
	}
	return math.Vec3{}
}

func resize(buf []math.Vec2, n int) []math.Vec2 {
	if cap(buf) < n {
		return make([]math.Vec2, n)
	}
	return buf[:n]
}
