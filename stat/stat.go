// Package stat holds the numeric attributes entities fight with and the
// derived combat quantities computed from them.
package stat

import "fmt"

// ModifierKind selects how a modifier combines with the base value.
type ModifierKind uint8

const (
	Additive ModifierKind = iota
	Multiplicative
)

func (k ModifierKind) String() string {
	switch k {
	case Additive:
		return "additive"
	case Multiplicative:
		return "multiplicative"
	default:
		return "unknown"
	}
}

// ParseModifierKind maps "additive" or "multiplicative" to its kind.
func ParseModifierKind(s string) (ModifierKind, error) {
	switch s {
	case "additive", "":
		return Additive, nil
	case "multiplicative":
		return Multiplicative, nil
	default:
		return Additive, fmt.Errorf("stat: unknown modifier kind %q", s)
	}
}

// Modifier is a change attached to a Stat by an item or effect. Source
// identifies the owner; (Source, Kind) identifies the modifier.
type Modifier struct {
	Source string
	Kind   ModifierKind
	Value  float64
}

// Stat is a base value plus the modifiers currently attached to it.
type Stat struct {
	base      float64
	modifiers []Modifier
}

func NewStat(base float64) Stat {
	return Stat{base: base}
}

// Value returns (base + Σadditive) × (1 + Σmultiplicative).
func (s *Stat) Value() float64 {
	if s == nil {
		return 0
	}
	add, mul := 0.0, 0.0
	for _, m := range s.modifiers {
		switch m.Kind {
		case Additive:
			add += m.Value
		case Multiplicative:
			mul += m.Value
		}
	}
	return (s.base + add) * (1 + mul)
}

func (s *Stat) BaseValue() float64 {
	if s == nil {
		return 0
	}
	return s.base
}

// SetBaseValue replaces the base. Attached modifiers are kept.
func (s *Stat) SetBaseValue(v float64) {
	if s == nil {
		return
	}
	s.base = v
}

// AddModifier attaches m. It reports false when a modifier with the same
// source and kind is already attached.
func (s *Stat) AddModifier(m Modifier) bool {
	if s == nil {
		return false
	}
	for _, existing := range s.modifiers {
		if existing.Source == m.Source && existing.Kind == m.Kind {
			return false
		}
	}
	s.modifiers = append(s.modifiers, m)
	return true
}

// RemoveModifier detaches every modifier owned by source and reports
// whether anything was removed.
func (s *Stat) RemoveModifier(source string) bool {
	if s == nil {
		return false
	}
	kept := s.modifiers[:0]
	removed := false
	for _, m := range s.modifiers {
		if m.Source == source {
			removed = true
			continue
		}
		kept = append(kept, m)
	}
	s.modifiers = kept
	return removed
}

// Modifiers returns a copy of the attached modifiers in attach order.
func (s *Stat) Modifiers() []Modifier {
	if s == nil {
		return nil
	}
	return append([]Modifier(nil), s.modifiers...)
}
