package lightmap

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/internal/engine/lighting"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Sequence is a fixed list of per-frame light position sets. It is drawn once
// per session and replayed, so repeated bakes see the same light positions.
type Sequence struct {
	lights    int
	positions []math.Vec3 // frame-major, lights per frame
}

// GenerateSequence draws one position per light for each of frames frames.
//
// With probability cfg.Ambient a light is placed on the upper hemisphere at
// the nominal light distance from the origin; otherwise the nominal position
// is jittered by up to cfg.Radius/2 along each axis.
func GenerateSequence(rng *rand.Rand, frames, lights int, cfg lighting.Config) *Sequence {
	frames = max(frames, 1)
	lights = max(lights, 1)

	s := &Sequence{
		lights:    lights,
		positions: make([]math.Vec3, frames*lights),
	}
	dist := cfg.Position.Length()
	for i := range s.positions {
		if rng.Float32() > cfg.Ambient {
			s.positions[i] = cfg.Position.Add(math.Vec3{
				X: spread(rng, cfg.Radius),
				Y: spread(rng, cfg.Radius),
				Z: spread(rng, cfg.Radius),
			})
			continue
		}
		lambda := math32.Acos(2*rng.Float32()-1) - math32.Pi/2
		phi := 2 * math32.Pi * rng.Float32()
		s.positions[i] = lighting.SpherePoint(lambda, phi, dist)
	}
	return s
}

// spread returns a uniform value in (-r/2, r/2].
func spread(rng *rand.Rand, r float32) float32 {
	return r * (0.5 - rng.Float32())
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.positions) / s.lights
}

// Lights returns the number of light positions per frame.
func (s *Sequence) Lights() int {
	return s.lights
}

// Frame returns the positions for a running frame counter, wrapping around
// the sequence so baking can continue indefinitely.
func (s *Sequence) Frame(count int) []math.Vec3 {
	n := s.Len()
	i := count % n
	if i < 0 {
		i += n
	}
	return s.positions[i*s.lights : (i+1)*s.lights]
}
