// Package model provides the mesh container shared by the geometry subsystem:
// vertex buffers, morph targets, transforms, and a small child hierarchy.
package model

import (
	"github.com/Faultbox/tablecraft/internal/engine/material"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Transform is a position/rotation/scale triple. Rotation holds XYZ Euler
// angles in radians.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

// NewTransform returns an identity transform.
func NewTransform() Transform {
	return Transform{Scale: math.One}
}

// Matrix returns the local matrix T * R * S.
func (t Transform) Matrix() math.Mat4 {
	return math.Compose(t.Position, t.Rotation, t.Scale)
}

// MorphTarget is a named per-vertex displacement buffer with an influence weight.
// Deltas is indexed like the owning mesh's Positions.
type MorphTarget struct {
	Name   string
	Deltas []math.Vec3
	Weight float32
}

// Mesh holds geometry plus a world placement. Children inherit the mesh transform.
type Mesh struct {
	Name string

	Positions []math.Vec3
	Normals   []math.Vec3
	UVs       []math.Vec2
	Tangents  []math.Vec4
	Indices   []uint32

	Morphs    []MorphTarget
	Transform Transform

	Visible       bool
	CastShadow    bool
	ReceiveShadow bool
	Material      *material.Material

	Children []*Mesh
}

// NewMesh creates an empty visible mesh with an identity transform.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:       name,
		Transform:  NewTransform(),
		Visible:    true,
		CastShadow: true,
	}
}

// NewGroup creates a mesh without geometry, used only to hold children.
func NewGroup(name string) *Mesh {
	g := NewMesh(name)
	g.CastShadow = false
	return g
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of indexed triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}
