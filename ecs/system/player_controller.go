package system

import (
	"math"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

const groundedEpsilon = 0.05

// PlayerControllerSystem turns player input into movement, attacks and
// counters. Input is consumed each tick.
type PlayerControllerSystem struct {
	detector Detector
}

func NewPlayerControllerSystem(detector Detector) *PlayerControllerSystem {
	return &PlayerControllerSystem{detector: detector}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
	)
	for _, e := range entities {
		input, _ := ecs.Get(w, e, component.InputComponent.Kind())
		player, _ := ecs.Get(w, e, component.PlayerComponent.Kind())

		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			*input = component.Input{}
			continue
		}

		_, vy := Velocity(w, e)
		if input.JumpPressed && math.Abs(vy) < groundedEpsilon {
			vy = player.JumpSpeed
		}
		SetVelocity(w, e, input.MoveX*player.MoveSpeed*SlowMultiplier(w, e), vy)

		if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
			switch {
			case input.MoveX != 0:
				anim.Play("run")
			default:
				anim.Play("idle")
			}
		}

		switch {
		case input.Counter && !InCounterRecovery(w, e):
			if CounterAttackPerformed(w, p.detector, e) {
				if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
					anim.Trigger("counter")
				}
			}
		case input.Attack:
			if c, ok := ecs.Get(w, e, component.CombatComponent.Kind()); ok {
				PerformAttack(w, p.detector, e, c.Scale)
				if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
					anim.Trigger("attack")
				}
			}
		}

		input.JumpPressed = false
		input.Attack = false
		input.Counter = false
	}
}
