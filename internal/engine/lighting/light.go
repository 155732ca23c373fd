// Package lighting provides the directional lights used while baking soft shadows.
package lighting

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/pkg/math"
)

// ShadowCamera is the orthographic volume a light renders its depth map from.
type ShadowCamera struct {
	Size    float32 `yaml:"size"` // width and height of the ortho volume
	Near    float32 `yaml:"near"`
	Far     float32 `yaml:"far"`
	Bias    float32 `yaml:"bias"`
	MapSize int     `yaml:"map_size"`
}

// DirectionalLight shines from Position towards Target.
type DirectionalLight struct {
	Name      string
	Position  math.Vec3
	Target    math.Vec3
	Intensity float32
	Shadow    ShadowCamera
}

// Direction returns the normalized direction the light travels.
func (l *DirectionalLight) Direction() math.Vec3 {
	return l.Target.Sub(l.Position).Normalize()
}

// SpherePoint converts a latitude lambda and azimuth phi (radians) to a point
// on a sphere of the given radius. Y is folded to be non-negative so the point
// always lies on the upper hemisphere.
func SpherePoint(lambda, phi, radius float32) math.Vec3 {
	cl := math32.Cos(lambda)
	return math.Vec3{
		X: cl * math32.Cos(phi) * radius,
		Y: math32.Abs(cl * math32.Sin(phi) * radius),
		Z: math32.Sin(lambda) * radius,
	}
}
