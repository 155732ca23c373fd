package model

import "github.com/Faultbox/tablecraft/pkg/math"

// NewBox builds a segmented box centered on the origin. Each face owns its own
// vertices so face normals stay flat; UVs run 0..1 per face.
// Face order: +X, -X, +Y, -Y, +Z, -Z.
func NewBox(name string, width, height, depth float32, widthSegs, heightSegs, depthSegs int) *Mesh {
	widthSegs = max(widthSegs, 1)
	heightSegs = max(heightSegs, 1)
	depthSegs = max(depthSegs, 1)

	m := NewMesh(name)
	b := &planeBuilder{mesh: m}
	b.build(axisZ, axisY, axisX, -1, -1, depth, height, width, depthSegs, heightSegs)
	b.build(axisZ, axisY, axisX, 1, -1, depth, height, -width, depthSegs, heightSegs)
	b.build(axisX, axisZ, axisY, 1, 1, width, depth, height, widthSegs, depthSegs)
	b.build(axisX, axisZ, axisY, 1, -1, width, depth, -height, widthSegs, depthSegs)
	b.build(axisX, axisY, axisZ, 1, -1, width, height, depth, widthSegs, heightSegs)
	b.build(axisX, axisY, axisZ, -1, -1, width, height, -depth, widthSegs, heightSegs)
	return m
}

// NewPlane builds a plane in the XY plane facing +Z. UV (u, v) maps to local
// position (u-0.5, v-0.5) * size.
func NewPlane(name string, width, height float32) *Mesh {
	m := NewMesh(name)
	m.Positions = []math.Vec3{
		{X: -width / 2, Y: height / 2}, {X: width / 2, Y: height / 2},
		{X: -width / 2, Y: -height / 2}, {X: width / 2, Y: -height / 2},
	}
	m.Normals = []math.Vec3{{Z: 1}, {Z: 1}, {Z: 1}, {Z: 1}}
	m.UVs = []math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 0}}
	m.Indices = []uint32{0, 2, 1, 2, 3, 1}
	return m
}

const (
	axisX = iota
	axisY
	axisZ
)

type planeBuilder struct {
	mesh *Mesh
}

func setAxis(v *math.Vec3, axis int, value float32) {
	switch axis {
	case axisX:
		v.X = value
	case axisY:
		v.Y = value
	default:
		v.Z = value
	}
}

// build appends one face grid. u and v are the in-plane axes, w the face normal axis;
// depth carries the side of the box the face sits on.
func (b *planeBuilder) build(u, v, w int, udir, vdir, width, height, depth float32, gridX, gridY int) {
	m := b.mesh
	base := uint32(len(m.Positions))

	segW := width / float32(gridX)
	segH := height / float32(gridY)
	halfW := width / 2
	halfH := height / 2
	halfD := depth / 2

	normalSign := float32(1)
	if depth < 0 {
		normalSign = -1
	}

	for iy := 0; iy <= gridY; iy++ {
		y := float32(iy)*segH - halfH
		for ix := 0; ix <= gridX; ix++ {
			x := float32(ix)*segW - halfW

			var pos, normal math.Vec3
			setAxis(&pos, u, x*udir)
			setAxis(&pos, v, y*vdir)
			setAxis(&pos, w, halfD)
			setAxis(&normal, w, normalSign)

			m.Positions = append(m.Positions, pos)
			m.Normals = append(m.Normals, normal)
			m.UVs = append(m.UVs, math.Vec2{
				X: float32(ix) / float32(gridX),
				Y: 1 - float32(iy)/float32(gridY),
			})
		}
	}

	row := uint32(gridX + 1)
	for iy := 0; iy < gridY; iy++ {
		for ix := 0; ix < gridX; ix++ {
			a := base + uint32(ix) + row*uint32(iy)
			bb := base + uint32(ix) + row*uint32(iy+1)
			c := base + uint32(ix+1) + row*uint32(iy+1)
			d := base + uint32(ix+1) + row*uint32(iy)
			m.Indices = append(m.Indices, a, bb, d, bb, c, d)
		}
	}
}
