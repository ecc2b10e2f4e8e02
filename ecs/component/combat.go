package component

import "github.com/milk9111/hollowblade/stat"

// Combat describes how an entity hits things: a circle in front of it
// probed against TargetMask.
type Combat struct {
	AttackRadius  float64
	AttackOffsetX float64
	AttackOffsetY float64
	TargetMask    uint32
	Scale         stat.DamageScale

	// CounterRadius and CounterRecovery are used by counter attacks.
	CounterRadius   float64
	CounterRecovery float64
	CounterUntil    float64
}

var CombatComponent = NewComponent[Combat]()

// AttackScript names a tengo script that adjusts an enemy's attack.
type AttackScript struct {
	Name string
}

var AttackScriptComponent = NewComponent[AttackScript]()
