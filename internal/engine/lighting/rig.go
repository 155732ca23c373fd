package lighting

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/tablecraft/pkg/math"
)

// Config describes the bake light rig.
type Config struct {
	Position  math.Vec3 `yaml:"position"`
	Radius    float32   `yaml:"radius"`    // jitter spread for direct samples
	Amount    int       `yaml:"amount"`    // number of lights
	Intensity float32   `yaml:"intensity"` // total budget split across lights
	Ambient   float32   `yaml:"ambient"`   // probability of a hemisphere sample

	Shadow ShadowCamera `yaml:"shadow"`
}

// DefaultConfig returns the configurator's bake rig.
func DefaultConfig() Config {
	return Config{
		Position:  math.Vec3{X: 0.3, Y: 3, Z: 4},
		Radius:    9,
		Amount:    8,
		Intensity: math32.Pi,
		Ambient:   0.7,
		Shadow: ShadowCamera{
			Size:    15,
			Near:    0.01,
			Far:     10.5,
			Bias:    0.001,
			MapSize: 512,
		},
	}
}

// Rig is the set of lights that exist only while a bake is running.
type Rig struct {
	cfg      Config
	lights   []*DirectionalLight
	attached bool
}

// NewRig creates cfg.Amount lights at the nominal position, each carrying an
// equal share of the intensity budget. Amount is raised to at least one.
func NewRig(cfg Config) *Rig {
	cfg.Amount = max(cfg.Amount, 1)
	r := &Rig{cfg: cfg, lights: make([]*DirectionalLight, cfg.Amount)}
	share := cfg.Intensity / float32(cfg.Amount)
	for i := range r.lights {
		r.lights[i] = &DirectionalLight{
			Name:      fmt.Sprintf("bake_light_%d", i),
			Position:  cfg.Position,
			Intensity: share,
			Shadow:    cfg.Shadow,
		}
	}
	return r
}

// Config returns the rig configuration.
func (r *Rig) Config() Config {
	return r.cfg
}

// Lights returns the rig's lights.
func (r *Rig) Lights() []*DirectionalLight {
	return r.lights
}

// Len returns the number of lights.
func (r *Rig) Len() int {
	return len(r.lights)
}

// Attach adds the lights to the render graph.
func (r *Rig) Attach() {
	r.attached = true
}

// Detach removes the lights from the render graph.
func (r *Rig) Detach() {
	r.attached = false
}

// Attached reports whether the lights are in the render graph.
func (r *Rig) Attached() bool {
	return r.attached
}

// MoveTo sets light i to positions[i]. Extra positions are ignored; lights
// without a position keep theirs.
func (r *Rig) MoveTo(positions []math.Vec3) {
	n := min(len(positions), len(r.lights))
	for i := 0; i < n; i++ {
		r.lights[i].Position = positions[i]
	}
}

// TotalIntensity returns the summed intensity of all lights.
func (r *Rig) TotalIntensity() float32 {
	var sum float32
	for _, l := range r.lights {
		sum += l.Intensity
	}
	return sum
}
