// Package shadow renders directional light depth maps on the CPU and
// resolves per-texel visibility for the soft shadow receiver.
package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/pkg/math"
)

// DefaultResolution is the default shadow map resolution.
const DefaultResolution = 512

// Map is a square depth buffer in light clip space. Depth holds NDC z,
// smaller is closer to the light.
type Map struct {
	Resolution int
	Depth      []float32
	ViewProj   math.Mat4
}

// NewMap creates a shadow map. A non-positive resolution uses DefaultResolution.
func NewMap(resolution int) *Map {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	m := &Map{
		Resolution: resolution,
		Depth:      make([]float32, resolution*resolution),
	}
	m.Clear(math.Identity())
	return m
}

// Clear resets every texel to infinitely far and sets the light matrix.
func (m *Map) Clear(viewProj math.Mat4) {
	m.ViewProj = viewProj
	inf := math32.Inf(1)
	for i := range m.Depth {
		m.Depth[i] = inf
	}
}

// project maps a world point to texel space x, y and NDC depth z.
func (m *Map) project(p math.Vec3) math.Vec3 {
	ndc := m.ViewProj.TransformVec3(p)
	res := float32(m.Resolution)
	return math.Vec3{
		X: (ndc.X*0.5 + 0.5) * res,
		Y: (ndc.Y*0.5 + 0.5) * res,
		Z: ndc.Z,
	}
}

// RasterizeTriangle writes the nearest depth of a world-space triangle.
// Both windings are drawn. The inner loop does not allocate.
func (m *Map) RasterizeTriangle(a, b, c math.Vec3) {
	p0, p1, p2 := m.project(a), m.project(b), m.project(c)
	size := m.Resolution

	minX := int(math32.Floor(min(p0.X, p1.X, p2.X)))
	maxX := int(math32.Ceil(max(p0.X, p1.X, p2.X)))
	minY := int(math32.Floor(min(p0.Y, p1.Y, p2.Y)))
	maxY := int(math32.Ceil(max(p0.Y, p1.Y, p2.Y)))

	minX = max(minX, 0)
	minY = max(minY, 0)
	maxX = min(maxX, size-1)
	maxY = min(maxY, size-1)
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (p1.Y-p2.Y)*(p0.X-p2.X) + (p2.X-p1.X)*(p0.Y-p2.Y)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1 / det

	dy12 := p1.Y - p2.Y
	dx21 := p2.X - p1.X
	dy20 := p2.Y - p0.Y
	dx02 := p0.X - p2.X

	for sy := minY; sy <= maxY; sy++ {
		dsy := float32(sy) + 0.5 - p2.Y
		row := sy * size
		for sx := minX; sx <= maxX; sx++ {
			dsx := float32(sx) + 0.5 - p2.X
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*p0.Z + w1*p1.Z + w2*p2.Z
			if z < m.Depth[row+sx] {
				m.Depth[row+sx] = z
			}
		}
	}
}

// Visible reports whether p is lit: it lies outside the shadow volume, or no
// stored depth is closer to the light than p minus bias.
func (m *Map) Visible(p math.Vec3, bias float32) bool {
	t := m.project(p)
	if t.Z < -1 || t.Z > 1 {
		return true
	}
	x := int(math32.Floor(t.X))
	y := int(math32.Floor(t.Y))
	if x < 0 || y < 0 || x >= m.Resolution || y >= m.Resolution {
		return true
	}
	return t.Z-bias <= m.Depth[y*m.Resolution+x]
}
