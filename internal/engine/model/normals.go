package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/pkg/math"
)

// ComputeVertexNormals recomputes per-vertex normals from the indexed triangles.
// Face normals are area weighted and accumulated onto shared vertices.
func ComputeVertexNormals(m *Mesh) {
	if cap(m.Normals) < len(m.Positions) {
		m.Normals = make([]math.Vec3, len(m.Positions))
	}
	m.Normals = m.Normals[:len(m.Positions)]
	clear(m.Normals)

	n := uint32(len(m.Positions))
	for i := 0; i+2 < len(m.Indices); i += 3 {
		ia, ib, ic := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if ia >= n || ib >= n || ic >= n {
			continue
		}
		pa, pb, pc := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		face := pc.Sub(pb).Cross(pa.Sub(pb))

		m.Normals[ia] = m.Normals[ia].Add(face)
		m.Normals[ib] = m.Normals[ib].Add(face)
		m.Normals[ic] = m.Normals[ic].Add(face)
	}

	for i := range m.Normals {
		m.Normals[i] = m.Normals[i].Normalize()
	}
}

// ComputeTangents recomputes per-vertex tangents from positions, normals and UVs.
// W holds the bitangent handedness (+1 or -1). Triangles with degenerate UV area
// are skipped; vertices left without a tangent get one perpendicular to the normal.
func ComputeTangents(m *Mesh) {
	count := len(m.Positions)
	if len(m.Normals) != count || len(m.UVs) != count {
		return
	}

	tan1 := make([]math.Vec3, count)
	tan2 := make([]math.Vec3, count)

	n := uint32(count)
	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		if i0 >= n || i1 >= n || i2 >= n {
			continue
		}

		e1 := m.Positions[i1].Sub(m.Positions[i0])
		e2 := m.Positions[i2].Sub(m.Positions[i0])
		d1 := m.UVs[i1].Sub(m.UVs[i0])
		d2 := m.UVs[i2].Sub(m.UVs[i0])

		denom := d1.X*d2.Y - d2.X*d1.Y
		if denom == 0 {
			continue
		}
		r := 1 / denom

		sdir := e1.Scale(d2.Y * r).Sub(e2.Scale(d1.Y * r))
		tdir := e2.Scale(d1.X * r).Sub(e1.Scale(d2.X * r))

		for _, idx := range [3]uint32{i0, i1, i2} {
			tan1[idx] = tan1[idx].Add(sdir)
			tan2[idx] = tan2[idx].Add(tdir)
		}
	}

	if cap(m.Tangents) < count {
		m.Tangents = make([]math.Vec4, count)
	}
	m.Tangents = m.Tangents[:count]

	for i := range count {
		nrm := m.Normals[i]
		t := tan1[i]

		// Gram-Schmidt: T = normalize(T - N*(N.T))
		t = t.Sub(nrm.Scale(nrm.Dot(t)))
		if t.LengthSqr() < 1e-12 {
			if math32.Abs(nrm.X) < 0.9 {
				t = math.Vec3{X: 1}.Sub(nrm.Scale(nrm.X))
			} else {
				t = math.Vec3{Y: 1}.Sub(nrm.Scale(nrm.Y))
			}
		}
		t = t.Normalize()

		w := float32(1)
		if nrm.Cross(t).Dot(tan2[i]) < 0 {
			w = -1
		}
		m.Tangents[i] = math.Vec4{X: t.X, Y: t.Y, Z: t.Z, W: w}
	}
}
