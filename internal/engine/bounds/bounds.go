// Package bounds computes axis-aligned bounding boxes over deformed meshes.
package bounds

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/internal/engine/morph"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Bounds is an axis-aligned box. An empty box has Min > Max on every axis.
type Bounds struct {
	Min math.Vec3 `yaml:"min"`
	Max math.Vec3 `yaml:"max"`
}

// Empty returns a box that contains nothing and absorbs the first Extend.
func Empty() Bounds {
	inf := math32.Inf(1)
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Extend grows the box to include p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Union returns the smallest box containing both boxes.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Size returns the extent along each axis, or zero for an empty box.
func (b Bounds) Size() math.Vec3 {
	if b.IsEmpty() {
		return math.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint, or the origin for an empty box.
func (b Bounds) Center() math.Vec3 {
	if b.IsEmpty() {
		return math.Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Evaluator recomputes bounds from morphed vertex positions. Every call is a
// full pass; nothing is cached between calls, so results always reflect the
// current morph weights and transforms.
type Evaluator struct {
	blender morph.Blender
}

// World returns the combined bounds of the meshes, each placed by its own
// transform. Children are not included. With no meshes, or only meshes without
// vertices, the result is Empty.
func (e *Evaluator) World(meshes ...*model.Mesh) Bounds {
	b := Empty()
	for _, m := range meshes {
		if m == nil {
			continue
		}
		e.extend(&b, m, m.Transform.Matrix())
	}
	return b
}

// Transformed returns the bounds of m placed by an explicit world matrix.
func (e *Evaluator) Transformed(m *model.Mesh, world math.Mat4) Bounds {
	b := Empty()
	e.extend(&b, m, world)
	return b
}

// Local returns the bounds of m's morphed positions in its own space.
func (e *Evaluator) Local(m *model.Mesh) Bounds {
	b := Empty()
	for _, p := range e.blender.Mesh(m) {
		b.Extend(p)
	}
	return b
}

func (e *Evaluator) extend(b *Bounds, m *model.Mesh, world math.Mat4) {
	for _, p := range e.blender.MeshWorld(m, world) {
		b.Extend(p)
	}
}
