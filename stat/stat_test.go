package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestStatValueCombinesModifiers(t *testing.T) {
	s := NewStat(10)
	require.True(t, s.AddModifier(Modifier{Source: "sword", Kind: Additive, Value: 5}))
	require.True(t, s.AddModifier(Modifier{Source: "ring", Kind: Multiplicative, Value: 0.5}))

	assert.InDelta(t, 22.5, s.Value(), 1e-9)
	assert.Equal(t, 10.0, s.BaseValue())
}

func TestStatRejectsDuplicateModifier(t *testing.T) {
	s := NewStat(1)
	require.True(t, s.AddModifier(Modifier{Source: "a", Kind: Additive, Value: 1}))
	assert.False(t, s.AddModifier(Modifier{Source: "a", Kind: Additive, Value: 3}))
	assert.True(t, s.AddModifier(Modifier{Source: "a", Kind: Multiplicative, Value: 1}))
	assert.Len(t, s.Modifiers(), 2)
}

func TestStatRemoveModifierBySource(t *testing.T) {
	s := NewStat(4)
	s.AddModifier(Modifier{Source: "a", Kind: Additive, Value: 1})
	s.AddModifier(Modifier{Source: "a", Kind: Multiplicative, Value: 1})
	s.AddModifier(Modifier{Source: "b", Kind: Additive, Value: 2})

	assert.True(t, s.RemoveModifier("a"))
	assert.False(t, s.RemoveModifier("a"))
	assert.Equal(t, 6.0, s.Value())
}

func TestNilStatIsZero(t *testing.T) {
	var s *Stat
	assert.Zero(t, s.Value())
	assert.False(t, s.AddModifier(Modifier{Source: "x"}))
}

func TestStatAddRemoveRestoresValue(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		base := rapid.Float64Range(-1000, 1000).Draw(rt, "base")
		add := rapid.Float64Range(-100, 100).Draw(rt, "add")
		mul := rapid.Float64Range(-1, 1).Draw(rt, "mul")

		s := NewStat(base)
		before := s.Value()
		s.AddModifier(Modifier{Source: "item", Kind: Additive, Value: add})
		s.AddModifier(Modifier{Source: "item", Kind: Multiplicative, Value: mul})
		s.RemoveModifier("item")

		if s.Value() != before {
			rt.Fatalf("value %v after removal, want %v", s.Value(), before)
		}
	})
}

func TestParseModifierKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ModifierKind
		wantErr bool
	}{
		{"additive", Additive, false},
		{"", Additive, false},
		{"multiplicative", Multiplicative, false},
		{"percent", Additive, true},
	}
	for _, tt := range tests {
		got, err := ParseModifierKind(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
