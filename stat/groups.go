package stat

type ResourceGroup struct {
	MaxHealth   Stat
	HealthRegen Stat
}

type OffenseGroup struct {
	AttackSpeed    Stat
	Damage         Stat
	CritChance     Stat
	CritPower      Stat
	ArmorReduction Stat

	FireDamage      Stat
	IceDamage       Stat
	LightningDamage Stat
}

type DefenseGroup struct {
	Armor   Stat
	Evasion Stat

	FireRes      Stat
	IceRes       Stat
	LightningRes Stat
}

type MajorGroup struct {
	Strength     Stat
	Agility      Stat
	Intelligence Stat
	Vitality     Stat
}

// Type names a single stat for lookups by items and prefabs.
type Type string

const (
	MaxHealth   Type = "max_health"
	HealthRegen Type = "health_regen"

	Strength     Type = "strength"
	Agility      Type = "agility"
	Intelligence Type = "intelligence"
	Vitality     Type = "vitality"

	AttackSpeed    Type = "attack_speed"
	Damage         Type = "damage"
	CritChance     Type = "crit_chance"
	CritPower      Type = "crit_power"
	ArmorReduction Type = "armor_reduction"

	FireDamage      Type = "fire_damage"
	IceDamage       Type = "ice_damage"
	LightningDamage Type = "lightning_damage"

	Armor   Type = "armor"
	Evasion Type = "evasion"

	FireResistance      Type = "fire_resistance"
	IceResistance       Type = "ice_resistance"
	LightningResistance Type = "lightning_resistance"
)

// ElementType is the element an attack's elemental damage carries.
type ElementType uint8

const (
	ElementNone ElementType = iota
	ElementFire
	ElementIce
	ElementLightning
)

func (e ElementType) String() string {
	switch e {
	case ElementFire:
		return "fire"
	case ElementIce:
		return "ice"
	case ElementLightning:
		return "lightning"
	default:
		return "none"
	}
}
