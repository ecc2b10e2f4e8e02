package stat

import "github.com/milk9111/hollowblade/common"

// DamageScale scales an attack's damage and carries its elemental effect
// tuning.
type DamageScale struct {
	Physical  float64 `yaml:"physical"`
	Elemental float64 `yaml:"elemental"`

	ChillDuration       float64 `yaml:"chill_duration"`
	ChillSlowMultiplier float64 `yaml:"chill_slow_multiplier"`
}

// DefaultDamageScale is a plain unscaled hit with the stock chill tuning.
func DefaultDamageScale() DamageScale {
	return DamageScale{
		Physical:            1,
		Elemental:           1,
		ChillDuration:       3,
		ChillSlowMultiplier: 0.2,
	}
}

// ElementalEffect is the status payload an attack carries.
type ElementalEffect struct {
	Element ElementType

	ChillDuration       float64
	ChillSlowMultiplier float64
}

// AttackData is a fully rolled attack ready to be applied to a target.
type AttackData struct {
	Physical  float64
	Elemental float64
	Element   ElementType
	IsCrit    bool
	Effect    ElementalEffect
}

// AttackData rolls physical and elemental damage from s scaled by scale.
func (s *Sheet) AttackData(r common.Rand, scale DamageScale) AttackData {
	physical, crit := s.PhysicalDamage(r, scale.Physical)
	elemental, element := s.ElementalDamage(scale.Elemental)
	return AttackData{
		Physical:  physical,
		Elemental: elemental,
		Element:   element,
		IsCrit:    crit,
		Effect: ElementalEffect{
			Element:             element,
			ChillDuration:       scale.ChillDuration,
			ChillSlowMultiplier: scale.ChillSlowMultiplier,
		},
	}
}
