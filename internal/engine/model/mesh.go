package model

import (
	"slices"

	"github.com/Faultbox/tablecraft/pkg/math"
)

// Clone deep-copies the mesh, its buffers, morph targets, material and children.
// Vertex buffers are never shared between meshes.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Name:          m.Name,
		Positions:     slices.Clone(m.Positions),
		Normals:       slices.Clone(m.Normals),
		UVs:           slices.Clone(m.UVs),
		Tangents:      slices.Clone(m.Tangents),
		Indices:       slices.Clone(m.Indices),
		Transform:     m.Transform,
		Visible:       m.Visible,
		CastShadow:    m.CastShadow,
		ReceiveShadow: m.ReceiveShadow,
	}
	if m.Material != nil {
		c.Material = m.Material.Clone()
	}
	if len(m.Morphs) > 0 {
		c.Morphs = make([]MorphTarget, len(m.Morphs))
		for i, t := range m.Morphs {
			c.Morphs[i] = MorphTarget{Name: t.Name, Deltas: slices.Clone(t.Deltas), Weight: t.Weight}
		}
	}
	for _, child := range m.Children {
		c.Children = append(c.Children, child.Clone())
	}
	return c
}

// Add appends a child.
func (m *Mesh) Add(child *Mesh) {
	m.Children = append(m.Children, child)
}

// Remove detaches a direct or nested child. Returns false if it was not found.
func (m *Mesh) Remove(child *Mesh) bool {
	for i, c := range m.Children {
		if c == child {
			m.Children = slices.Delete(m.Children, i, i+1)
			return true
		}
		if c.Remove(child) {
			return true
		}
	}
	return false
}

// Find returns the first mesh named name in depth-first order, including m itself.
func (m *Mesh) Find(name string) *Mesh {
	if m.Name == name {
		return m
	}
	for _, c := range m.Children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every mesh named name in depth-first order.
func (m *Mesh) FindAll(name string) []*Mesh {
	var out []*Mesh
	m.Walk(math.Identity(), func(n *Mesh, _ math.Mat4) {
		if n.Name == name {
			out = append(out, n)
		}
	})
	return out
}

// Walk visits m and its descendants with their world matrices.
// parent is the matrix of whatever holds m.
func (m *Mesh) Walk(parent math.Mat4, fn func(n *Mesh, world math.Mat4)) {
	world := parent.Mul(m.Transform.Matrix())
	fn(m, world)
	for _, c := range m.Children {
		c.Walk(world, fn)
	}
}

// MorphIndex returns the index of the morph target called name, or -1.
func (m *Mesh) MorphIndex(name string) int {
	for i := range m.Morphs {
		if m.Morphs[i].Name == name {
			return i
		}
	}
	return -1
}

// SetMorphWeight sets the influence of a named target as given, without clamping.
// Returns false if the mesh has no such target.
func (m *Mesh) SetMorphWeight(name string, weight float32) bool {
	i := m.MorphIndex(name)
	if i < 0 {
		return false
	}
	m.Morphs[i].Weight = weight
	return true
}

// CopyMorphWeights copies weights from src by target name.
func (m *Mesh) CopyMorphWeights(src *Mesh) {
	for _, t := range src.Morphs {
		m.SetMorphWeight(t.Name, t.Weight)
	}
}
