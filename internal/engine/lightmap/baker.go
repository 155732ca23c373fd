// Package lightmap bakes the table's soft shadow by progressively blending
// many shadow passes rendered from randomly placed lights.
package lightmap

import (
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/tablecraft/internal/engine/lighting"
	"github.com/Faultbox/tablecraft/internal/engine/material"
	"github.com/Faultbox/tablecraft/internal/logger"
)

// State is the baker lifecycle stage.
type State int

const (
	Idle State = iota
	Preparing
	Accumulating
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Preparing:
		return "preparing"
	case Accumulating:
		return "accumulating"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ShadowPass renders one shadow sample for the current light positions into
// dst, one value per receiver texel.
type ShadowPass interface {
	Render(lights []*lighting.DirectionalLight, dst []float32)
}

// Config holds bake parameters.
type Config struct {
	// Frames is the frame budget of a bake. Zero or less means unbounded:
	// the caller drives accumulation.
	Frames int `yaml:"frames"`
	// SequenceLength is used instead of Frames when the budget is unbounded.
	SequenceLength int `yaml:"sequence_length"`
	// Blend sets the blend weight when the budget is unbounded.
	Blend int `yaml:"blend"`
	// Resolution is the lightmap size in texels per side.
	Resolution int `yaml:"resolution"`
	// Scale is the receiver plane size in metres.
	Scale float32 `yaml:"scale"`
	// Seed feeds the sequence generator; zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	Material material.ShadowConfig `yaml:",inline"`
	Light    lighting.Config       `yaml:"light"`
}

// DefaultConfig returns the configurator's bake settings.
func DefaultConfig() Config {
	return Config{
		Frames:         100,
		SequenceLength: 100,
		Blend:          40,
		Resolution:     512,
		Scale:          7,
		Material:       material.DefaultShadowConfig(),
		Light:          lighting.DefaultConfig(),
	}
}

// Unbounded reports whether the frame budget is infinite.
func (c Config) Unbounded() bool {
	return c.Frames <= 0
}

// BlendWeight returns 1/max(2, budget), where budget is Frames when finite
// and Blend otherwise.
func (c Config) BlendWeight() float32 {
	budget := c.Blend
	if !c.Unbounded() {
		budget = c.Frames
	}
	return 1 / float32(max(2, budget))
}

// Baker runs the Idle -> Preparing -> Accumulating -> Finished cycle.
// It is single threaded; every call runs to completion before returning.
type Baker struct {
	cfg      Config
	pass     ShadowPass
	rig      *lighting.Rig
	receiver *material.Material

	acc    *Accumulator
	sample []float32
	seq    *Sequence
	rng    *rand.Rand

	state State
	count int
}

// NewBaker creates a baker rendering through pass and fading receiver while
// accumulating. The light sequence is drawn here, once.
func NewBaker(cfg Config, pass ShadowPass, receiver *material.Material) *Baker {
	if cfg.Resolution <= 0 {
		cfg.Resolution = DefaultConfig().Resolution
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	b := &Baker{
		cfg:      cfg,
		pass:     pass,
		rig:      lighting.NewRig(cfg.Light),
		receiver: receiver,
		acc:      NewAccumulator(cfg.Resolution),
		sample:   make([]float32, cfg.Resolution*cfg.Resolution),
		rng:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
	b.Regenerate()

	logger.Debug("lightmap baker created",
		zap.Int("resolution", cfg.Resolution),
		zap.Int("frames", cfg.Frames),
		zap.Int("sequence", b.seq.Len()),
		zap.Int("lights", b.rig.Len()),
		zap.Uint64("seed", seed))
	return b
}

// Regenerate draws a new light sequence from the baker's generator.
func (b *Baker) Regenerate() {
	n := b.cfg.Frames
	if b.cfg.Unbounded() {
		n = b.cfg.SequenceLength
	}
	b.seq = GenerateSequence(b.rng, n, b.rig.Len(), b.cfg.Light)
}

// Config returns the bake configuration.
func (b *Baker) Config() Config {
	return b.cfg
}

// State returns the lifecycle stage.
func (b *Baker) State() State {
	return b.state
}

// Count returns the number of samples blended since the last Prepare.
func (b *Baker) Count() int {
	return b.count
}

// Sequence returns the light sequence being replayed.
func (b *Baker) Sequence() *Sequence {
	return b.seq
}

// Rig returns the bake lights.
func (b *Baker) Rig() *lighting.Rig {
	return b.rig
}

// Texture returns the accumulation buffer. It must not be modified.
func (b *Baker) Texture() *Accumulator {
	return b.acc
}

// Prepare clears the buffer and the sample count and hides the receiver so it
// does not shadow itself.
func (b *Baker) Prepare() {
	b.acc.Clear()
	b.count = 0
	if b.receiver != nil {
		b.receiver.Hide()
	}
	b.state = Preparing
}

// Accumulate blends n more frames into the current buffer, then finishes.
// A baker that was never prepared is prepared first.
func (b *Baker) Accumulate(n int) {
	if b.state == Idle {
		b.Prepare()
	}
	if n <= 0 {
		if b.state == Accumulating {
			b.finish()
		}
		return
	}

	if b.receiver != nil {
		b.receiver.Hide()
	}
	b.state = Accumulating
	b.rig.Attach()

	w := b.cfg.BlendWeight()
	for range n {
		b.rig.MoveTo(b.seq.Frame(b.count))
		b.pass.Render(b.rig.Lights(), b.sample)
		b.acc.Blend(b.sample, w)
		b.count++
	}

	b.finish()
	logger.Debug("lightmap accumulated", zap.Int("frames", n), zap.Int("count", b.count))
}

// Bake runs a full session of n frames from a cleared buffer. With the same
// sequence, repeated bakes produce identical buffers. A bake of zero frames
// still finishes, restoring the receiver over the cleared buffer.
func (b *Baker) Bake(n int) {
	b.Prepare()
	if n <= 0 {
		b.finish()
		return
	}
	b.Accumulate(n)
}

// Reset clears the bake. With a finite frame budget it immediately bakes that
// many frames; otherwise it leaves the buffer cleared for the caller to fill.
func (b *Baker) Reset() {
	b.Prepare()
	if !b.cfg.Unbounded() {
		b.Accumulate(b.cfg.Frames)
	}
}

func (b *Baker) finish() {
	if b.receiver != nil {
		b.receiver.Restore(b.cfg.Material)
	}
	b.rig.Detach()
	b.state = Finished
}
