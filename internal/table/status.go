package table

import (
	"slices"

	"github.com/Faultbox/tablecraft/internal/engine/bounds"
	"github.com/Faultbox/tablecraft/internal/engine/lightmap"
	"github.com/Faultbox/tablecraft/internal/engine/support"
	"github.com/Faultbox/tablecraft/pkg/math"
)

// Status is a snapshot of the table parameters and bake progress.
type Status struct {
	LengthMM    float32         `yaml:"length_mm"`
	LegLengthMM float32         `yaml:"leg_length_mm"`
	LegHeightMM float32         `yaml:"leg_height_mm"`
	Texture     string          `yaml:"texture"`
	Support     support.Variant `yaml:"support"`
	BakeState   lightmap.State  `yaml:"bake_state"`
	Samples     int             `yaml:"samples"`
	Warnings    []string        `yaml:"warnings,omitempty"`
}

// Status returns the current parameters, bake state and accumulated warnings.
func (m *Model) Status() Status {
	return Status{
		LengthMM:    m.lengthMM,
		LegLengthMM: m.legLengthMM,
		LegHeightMM: m.legHeightMM,
		Texture:     m.texture,
		Support:     m.supports.Active(),
		BakeState:   m.baker.State(),
		Samples:     m.baker.Count(),
		Warnings:    slices.Clone(m.warnings),
	}
}

// Placement is the resolved position of one support slot.
type Placement struct {
	Name    string          `yaml:"name"`
	Leg     int             `yaml:"leg"`
	Side    string          `yaml:"side"`
	Variant support.Variant `yaml:"variant"`
	X       float32         `yaml:"x"`
	Visible bool            `yaml:"visible"`
}

// Transform is a reported position and scale.
type Transform struct {
	Position math.Vec3 `yaml:"position"`
	Scale    math.Vec3 `yaml:"scale"`
}

// Report describes the derived geometry after the last regeneration.
type Report struct {
	Status     Status          `yaml:"status"`
	TopBounds  bounds.Bounds   `yaml:"top_bounds"`
	LegBounds  []bounds.Bounds `yaml:"leg_bounds"`
	Top        Transform       `yaml:"top"`
	FocusPoint math.Vec3       `yaml:"focus_point"`
	Supports   []Placement     `yaml:"supports"`
	MeanLight  float32         `yaml:"mean_light"`
}

// Report collects the current status and derived geometry.
func (m *Model) Report() Report {
	r := Report{
		Status:     m.Status(),
		TopBounds:  m.topBounds,
		LegBounds:  slices.Clone(m.legBounds[:]),
		Top:        Transform{Position: m.top.Transform.Position, Scale: m.top.Transform.Scale},
		FocusPoint: m.FocusPoint(),
		MeanLight:  m.baker.Texture().Mean(),
	}
	for _, slot := range m.supports.Slots() {
		r.Supports = append(r.Supports, Placement{
			Name:    slot.Mesh.Name,
			Leg:     slot.Leg + 1,
			Side:    slot.Side.String(),
			Variant: slot.Variant,
			X:       slot.Mesh.Transform.Position.X,
			Visible: slot.Mesh.Visible,
		})
	}
	return r
}
