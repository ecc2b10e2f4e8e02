package component

import "github.com/jakecoffman/cp"

// KnockbackTuning is the knockback an entity receives when damaged.
type KnockbackTuning struct {
	Power         cp.Vector
	Duration      float64
	HeavyPower    cp.Vector
	HeavyDuration float64
	// HeavyThreshold is the fraction of max health a single physical hit
	// must exceed to use the heavy values.
	HeavyThreshold float64
}

func DefaultKnockbackTuning() KnockbackTuning {
	return KnockbackTuning{
		Power:          cp.Vector{X: 1.5, Y: 2.5},
		Duration:       0.2,
		HeavyPower:     cp.Vector{X: 7, Y: 7},
		HeavyDuration:  0.5,
		HeavyThreshold: 0.3,
	}
}

// Health is mutated only through the health functions in the system
// package. Dead flips once and never back.
type Health struct {
	Current         float64
	Dead            bool
	LastDamageTaken float64

	RegenEnabled  bool
	RegenInterval float64
	NextRegenAt   float64

	Knockback KnockbackTuning
}

var HealthComponent = NewComponent[Health]()
