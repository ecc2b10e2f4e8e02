package system

import (
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// CooldownSystem expires deadline based effects: slows, timed
// invulnerability and the player's counter recovery.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach(w, component.SlowComponent.Kind(), func(e ecs.Entity, slow *component.Slow) {
		if now >= slow.Until {
			StopSlow(w, e)
		}
	})

	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		if inv.Until > 0 && now >= inv.Until {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
		}
	})

	ecs.ForEach(w, component.CombatComponent.Kind(), func(e ecs.Entity, c *component.Combat) {
		if c.CounterUntil > 0 && now >= c.CounterUntil {
			c.CounterUntil = 0
		}
	})
}
