package shadow

import (
	"github.com/Faultbox/tablecraft/internal/engine/lighting"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Caster is world-space triangle geometry that blocks light.
type Caster struct {
	Positions []math.Vec3
	Indices   []uint32
}

// Pass renders one soft shadow sample: for every receiver texel, the share of
// the total light intensity that reaches it.
type Pass struct {
	depth   *Map
	casters []Caster
	texels  []math.Vec3
	size    int
}

// NewPass creates a pass whose lights render depth maps of mapSize texels.
func NewPass(mapSize int) *Pass {
	return &Pass{depth: NewMap(mapSize)}
}

// SetCasters replaces the shadow casting geometry. The slices are retained,
// not copied.
func (p *Pass) SetCasters(casters []Caster) {
	p.casters = casters
}

// SetReceiver sets the receiver plane by its world matrix and texel count per side.
func (p *Pass) SetReceiver(world math.Mat4, size int) {
	p.size = size
	p.texels = PlaneTexels(p.texels, world, size)
}

// Size returns the receiver texels per side.
func (p *Pass) Size() int {
	return p.size
}

// Render writes one sample into dst, which must hold Size()*Size() values.
// A texel lit by every light gets 1, a texel every light misses gets 0.
func (p *Pass) Render(lights []*lighting.DirectionalLight, dst []float32) {
	clear(dst)

	var total float32
	for _, l := range lights {
		total += l.Intensity
	}
	if total <= 0 {
		return
	}

	for _, l := range lights {
		if l.Intensity <= 0 {
			continue
		}
		share := l.Intensity / total

		p.depth.Clear(LightMatrix(l))
		for i := range p.casters {
			c := &p.casters[i]
			n := uint32(len(c.Positions))
			for t := 0; t+2 < len(c.Indices); t += 3 {
				ia, ib, ic := c.Indices[t], c.Indices[t+1], c.Indices[t+2]
				if ia >= n || ib >= n || ic >= n {
					continue
				}
				p.depth.RasterizeTriangle(c.Positions[ia], c.Positions[ib], c.Positions[ic])
			}
		}

		bias := l.Shadow.Bias
		for i, texel := range p.texels {
			if i >= len(dst) {
				break
			}
			if p.depth.Visible(texel, bias) {
				dst[i] += share
			}
		}
	}
}

// PlaneTexels returns the world position of each texel centre of a unit plane
// (local XY, -0.5..0.5) placed by world, row-major with v growing by row.
// dst is reused when large enough.
func PlaneTexels(dst []math.Vec3, world math.Mat4, size int) []math.Vec3 {
	n := size * size
	if cap(dst) < n {
		dst = make([]math.Vec3, n)
	}
	dst = dst[:n]

	inv := 1 / float32(size)
	for y := range size {
		v := (float32(y) + 0.5) * inv
		for x := range size {
			u := (float32(x) + 0.5) * inv
			dst[y*size+x] = world.TransformVec3(math.Vec3{X: u - 0.5, Y: v - 0.5})
		}
	}
	return dst
}
