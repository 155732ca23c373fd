package shadow

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/internal/engine/lighting"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// LightMatrix computes the view-projection of a directional light's shadow
// camera: an orthographic box of the configured size looking from the light
// position at its target.
func LightMatrix(l *lighting.DirectionalLight) math.Mat4 {
	dir := l.Target.Sub(l.Position)
	if dir.LengthSqr() == 0 {
		dir = math.Vec3{Y: -1}
	}
	dir = dir.Normalize()

	// Choose an up vector that is not parallel with the light direction
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	if math32.Abs(dir.Y) > 0.99 {
		up = math.Vec3{X: 0, Y: 0, Z: 1}
	}

	view := math.LookAt(l.Position, l.Position.Add(dir), up)

	half := l.Shadow.Size / 2
	proj := math.Ortho(-half, half, -half, half, l.Shadow.Near, l.Shadow.Far)

	return proj.Mul(view)
}
