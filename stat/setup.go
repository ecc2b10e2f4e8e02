package stat

// Setup is the default stat block an entity starts from, keyed by stat
// type so prefabs can list only the stats they care about.
type Setup map[Type]float64

// NewSheet builds a sheet from setup. Unknown stat types are ignored.
func NewSheet(setup Setup) *Sheet {
	s := &Sheet{}
	s.ApplySetup(setup)
	return s
}

// ApplySetup overwrites the base value of every stat listed in setup.
func (s *Sheet) ApplySetup(setup Setup) {
	if s == nil {
		return
	}
	for t, v := range setup {
		if st := s.StatByType(t); st != nil {
			st.SetBaseValue(v)
		}
	}
}

// AdjustStatSetup rebases s from another sheet: offense and evasion are
// multiplied by increase, health, regen, armor and resistances by penalty.
// Slimes use it to spawn weaker but harder hitting children.
func (s *Sheet) AdjustStatSetup(from *Sheet, penalty, increase float64) {
	if s == nil || from == nil {
		return
	}
	increased := []Type{
		Damage, AttackSpeed, CritChance, CritPower,
		FireDamage, IceDamage, LightningDamage,
		Evasion,
	}
	for _, t := range increased {
		s.StatByType(t).SetBaseValue(from.StatByType(t).Value() * increase)
	}

	penalized := []Type{
		MaxHealth, HealthRegen,
		Armor, LightningResistance, FireResistance, IceResistance,
	}
	for _, t := range penalized {
		s.StatByType(t).SetBaseValue(from.StatByType(t).Value() * penalty)
	}
}

// AttackSpeedMultiplier maps the attackSpeed stat to an animation speed
// factor. A zero stat means normal speed.
func (s *Sheet) AttackSpeedMultiplier() float64 {
	if s == nil {
		return 1
	}
	v := s.Offense.AttackSpeed.Value()
	if v <= 0 {
		return 1
	}
	return v
}
