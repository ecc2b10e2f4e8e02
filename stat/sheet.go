package stat

import (
	"github.com/milk9111/hollowblade/common"
)

const (
	resistanceCap = 75.0
	evasionCap    = 85.0
	mitigationCap = 0.85
	armorScale    = 100.0

	critChancePerAgility   = 0.3
	critPowerPerStrength   = 0.5
	resistancePerIntellect = 0.5
	evasionPerAgility      = 0.5
	healthPerVitality      = 5.0
	weakerElementShare     = 0.5
)

// Sheet is an entity's full stat set. Every combat quantity is derived on
// demand from the current stat values; nothing derived is cached. A nil
// Sheet derives zeros.
type Sheet struct {
	Resources ResourceGroup
	Offense   OffenseGroup
	Defense   DefenseGroup
	Major     MajorGroup
}

// BaseDamage is damage + 1 per Strength.
func (s *Sheet) BaseDamage() float64 {
	if s == nil {
		return 0
	}
	return s.Offense.Damage.Value() + s.Major.Strength.Value()
}

// CritChance is the crit chance in percent: critChance + 0.3 per Agility.
func (s *Sheet) CritChance() float64 {
	if s == nil {
		return 0
	}
	return s.Offense.CritChance.Value() + s.Major.Agility.Value()*critChancePerAgility
}

// CritPower is the crit damage multiplier: (critPower + 0.5 per Strength) / 100.
func (s *Sheet) CritPower() float64 {
	if s == nil {
		return 0
	}
	return (s.Offense.CritPower.Value() + s.Major.Strength.Value()*critPowerPerStrength) / 100
}

// PhysicalDamage rolls for a crit against r and returns the scaled damage.
func (s *Sheet) PhysicalDamage(r common.Rand, scaleFactor float64) (float64, bool) {
	if s == nil {
		return 0, false
	}
	base := s.BaseDamage()
	isCrit := common.Roll100(r) < s.CritChance()
	if isCrit {
		return base * s.CritPower() * scaleFactor, true
	}
	return base * scaleFactor, false
}

// ElementalDamage picks the strongest element. Elements below it add half
// their value, elements tied with it add nothing, and Intelligence adds a
// flat bonus. With no positive element the
// result is zero and ElementNone.
func (s *Sheet) ElementalDamage(scaleFactor float64) (float64, ElementType) {
	if s == nil {
		return 0, ElementNone
	}
	fire := s.Offense.FireDamage.Value()
	ice := s.Offense.IceDamage.Value()
	lightning := s.Offense.LightningDamage.Value()

	highest, element := fire, ElementFire
	if ice > highest {
		highest, element = ice, ElementIce
	}
	if lightning > highest {
		highest, element = lightning, ElementLightning
	}
	if highest <= 0 {
		return 0, ElementNone
	}

	weaker := 0.0
	for _, v := range []float64{fire, ice, lightning} {
		if v != highest {
			weaker += v * weakerElementShare
		}
	}
	return (highest + weaker + s.Major.Intelligence.Value()) * scaleFactor, element
}

// ElementalResistance returns the resistance to element as a [0, 0.75]
// fraction. ElementNone only gets the Intelligence bonus.
func (s *Sheet) ElementalResistance(element ElementType) float64 {
	if s == nil {
		return 0
	}
	base := 0.0
	switch element {
	case ElementFire:
		base = s.Defense.FireRes.Value()
	case ElementIce:
		base = s.Defense.IceRes.Value()
	case ElementLightning:
		base = s.Defense.LightningRes.Value()
	}
	total := base + s.Major.Intelligence.Value()*resistancePerIntellect
	return common.Clamp(total, 0, resistanceCap) / 100
}

// BaseArmor is armor + 1 per Vitality.
func (s *Sheet) BaseArmor() float64 {
	if s == nil {
		return 0
	}
	return s.Defense.Armor.Value() + s.Major.Vitality.Value()
}

// ArmorMitigation is the fraction of physical damage armor negates after the
// attacker's armorReduction fraction is applied. Capped at 0.85.
func (s *Sheet) ArmorMitigation(armorReduction float64) float64 {
	if s == nil {
		return 0
	}
	effective := s.BaseArmor() * common.Clamp(1-armorReduction, 0, 1)
	mitigation := effective / (effective + armorScale)
	return common.Clamp(mitigation, 0, mitigationCap)
}

// ArmorReduction is the attacker side armor penetration as a fraction.
func (s *Sheet) ArmorReduction() float64 {
	if s == nil {
		return 0
	}
	return s.Offense.ArmorReduction.Value() / 100
}

// Evasion is the dodge chance in percent, capped at 85.
func (s *Sheet) Evasion() float64 {
	if s == nil {
		return 0
	}
	total := s.Defense.Evasion.Value() + s.Major.Agility.Value()*evasionPerAgility
	return common.Clamp(total, 0, evasionCap)
}

// MaxHealth is maxHealth + 5 per Vitality.
func (s *Sheet) MaxHealth() float64 {
	if s == nil {
		return 0
	}
	return s.Resources.MaxHealth.Value() + s.Major.Vitality.Value()*healthPerVitality
}

// StatByType returns the stat named by t, or nil when t is unknown.
func (s *Sheet) StatByType(t Type) *Stat {
	if s == nil {
		return nil
	}
	switch t {
	case MaxHealth:
		return &s.Resources.MaxHealth
	case HealthRegen:
		return &s.Resources.HealthRegen
	case Strength:
		return &s.Major.Strength
	case Agility:
		return &s.Major.Agility
	case Intelligence:
		return &s.Major.Intelligence
	case Vitality:
		return &s.Major.Vitality
	case AttackSpeed:
		return &s.Offense.AttackSpeed
	case Damage:
		return &s.Offense.Damage
	case CritChance:
		return &s.Offense.CritChance
	case CritPower:
		return &s.Offense.CritPower
	case ArmorReduction:
		return &s.Offense.ArmorReduction
	case FireDamage:
		return &s.Offense.FireDamage
	case IceDamage:
		return &s.Offense.IceDamage
	case LightningDamage:
		return &s.Offense.LightningDamage
	case Armor:
		return &s.Defense.Armor
	case Evasion:
		return &s.Defense.Evasion
	case FireResistance:
		return &s.Defense.FireRes
	case IceResistance:
		return &s.Defense.IceRes
	case LightningResistance:
		return &s.Defense.LightningRes
	default:
		return nil
	}
}
