// Package support manages the accessory parts mounted on the table legs and
// places them relative to each leg's morphed bounds.
package support

import (
	"fmt"
	"strings"

	"github.com/Faultbox/tablecraft/internal/engine/model"
)

// Variant selects which style of support part is shown.
type Variant int

const (
	Prop01 Variant = iota
	Prop02
)

// Variants lists every variant in slot order.
var Variants = [...]Variant{Prop01, Prop02}

// String returns the part name of the variant.
func (v Variant) String() string {
	switch v {
	case Prop01:
		return "prop_01"
	case Prop02:
		return "prop_02"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// ParseVariant accepts "prop_01", "prop_02", "1" or "2".
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "prop_01", "1":
		return Prop01, nil
	case "prop_02", "2":
		return Prop02, nil
	}
	return 0, fmt.Errorf("unknown support variant %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	parsed, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Side is the end of the leg a support sits on.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Legs is the number of legs carrying supports.
const Legs = 2

// SlotCount is the number of support slots: legs x variants x sides.
const SlotCount = Legs * len(Variants) * 2

// DefaultInset is the distance from the leg edge to a support, in metres.
const DefaultInset = 0.02

// Slot is one mounted support instance.
type Slot struct {
	Leg     int
	Variant Variant
	Side    Side
	Mesh    *model.Mesh
}

// Set owns the support slots of both legs.
type Set struct {
	slots  [SlotCount]Slot
	filled int
	active Variant
	inset  float32
}

// NewSet creates an empty set with the given inset.
func NewSet(inset float32) *Set {
	return &Set{inset: inset}
}

func slotIndex(leg int, v Variant, side Side) int {
	return (leg*len(Variants)+int(v))*2 + int(side)
}

// Attach clones part into the four slots of variant v (both legs, both
// sides) and parents each clone to its leg. Attaching the same variant
// again replaces the previous clones.
func (s *Set) Attach(v Variant, part *model.Mesh, legs [Legs]*model.Mesh) {
	for leg := range Legs {
		for _, side := range [...]Side{Left, Right} {
			idx := slotIndex(leg, v, side)
			prev := s.slots[idx]
			if prev.Mesh != nil {
				legs[leg].Remove(prev.Mesh)
				s.filled--
			}

			clone := part.Clone()
			clone.Name = fmt.Sprintf("%s_%d_%s", v, leg+1, side)
			clone.Visible = v == s.active
			legs[leg].Add(clone)

			s.slots[idx] = Slot{Leg: leg, Variant: v, Side: side, Mesh: clone}
			s.filled++
		}
	}
}

// Complete reports whether every slot holds a mesh.
func (s *Set) Complete() bool {
	return s.filled == SlotCount
}

// Active returns the visible variant.
func (s *Set) Active() Variant {
	return s.active
}

// Inset returns the edge inset in metres.
func (s *Set) Inset() float32 {
	return s.inset
}

// SetVariant shows the slots of v and hides the rest, on both legs.
func (s *Set) SetVariant(v Variant) {
	s.active = v
	for i := range s.slots {
		if m := s.slots[i].Mesh; m != nil {
			m.Visible = s.slots[i].Variant == v
		}
	}
}

// Place moves the four slots of leg so left supports sit at minX + inset and
// right supports at maxX - inset, in the leg's local space. Y and Z are kept.
func (s *Set) Place(leg int, minX, maxX float32) {
	for _, v := range Variants {
		if m := s.slots[slotIndex(leg, v, Left)].Mesh; m != nil {
			m.Transform.Position.X = minX + s.inset
		}
		if m := s.slots[slotIndex(leg, v, Right)].Mesh; m != nil {
			m.Transform.Position.X = maxX - s.inset
		}
	}
}

// Slots returns the filled slots in leg, variant, side order.
func (s *Set) Slots() []Slot {
	out := make([]Slot, 0, s.filled)
	for _, slot := range s.slots {
		if slot.Mesh != nil {
			out = append(out, slot)
		}
	}
	return out
}
