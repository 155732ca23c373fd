// Package morph blends weighted morph target displacements into vertex positions.
package morph

import (
	"github.com/Faultbox/tablecraft/internal/engine/model"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Blender computes effective vertex positions. It owns a scratch buffer that is
// reused across calls, so steady-state blending does not allocate.
// A Blender is not safe for concurrent use.
type Blender struct {
	scratch []math.Vec3
}

// Local writes base + sum(weight * delta) into dst, growing it only when its
// capacity is short, and returns the resized slice. Weights are used as given.
// Targets with zero weight are skipped, so all-zero weights reproduce base exactly.
// A target with fewer deltas than vertices only displaces the vertices it covers.
func (b *Blender) Local(dst, base []math.Vec3, targets []model.MorphTarget) []math.Vec3 {
	dst = resize(dst, len(base))
	copy(dst, base)

	for i := range targets {
		w := targets[i].Weight
		if w == 0 {
			continue
		}
		deltas := targets[i].Deltas
		n := min(len(deltas), len(dst))
		for v := 0; v < n; v++ {
			d := deltas[v]
			dst[v].X += d.X * w
			dst[v].Y += d.Y * w
			dst[v].Z += d.Z * w
		}
	}
	return dst
}

// World blends like Local and then applies the world matrix to every vertex.
func (b *Blender) World(dst, base []math.Vec3, targets []model.MorphTarget, world math.Mat4) []math.Vec3 {
	dst = b.Local(dst, base, targets)
	for i := range dst {
		dst[i] = world.TransformVec3(dst[i])
	}
	return dst
}

// Mesh returns the morphed local positions of m in the blender's scratch buffer.
// The result is only valid until the next call on this blender.
func (b *Blender) Mesh(m *model.Mesh) []math.Vec3 {
	b.scratch = b.Local(b.scratch, m.Positions, m.Morphs)
	return b.scratch
}

// MeshWorld returns the morphed positions of m transformed by world, in the
// scratch buffer. The result is only valid until the next call on this blender.
func (b *Blender) MeshWorld(m *model.Mesh, world math.Mat4) []math.Vec3 {
	b.scratch = b.World(b.scratch, m.Positions, m.Morphs, world)
	return b.scratch
}

func resize(buf []math.Vec3, n int) []math.Vec3 {
	if cap(buf) < n {
		return make([]math.Vec3, n)
	}
	return buf[:n]
}
