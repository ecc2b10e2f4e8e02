package arena

import (
	"math"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
)

const (
	autopilotSwingInterval = 0.45
	autopilotCloseEnough   = 0.8
)

// Autopilot drives the player in headless runs: walk to the nearest enemy,
// counter any open window in reach, otherwise swing on an interval.
type Autopilot struct {
	nextSwingAt float64
}

func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

func (a *Autopilot) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}
	pt, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	combat, ok := ecs.Get(w, player, component.CombatComponent.Kind())
	if !ok {
		return
	}

	target, dx, found := nearestEnemy(w, pt.X)
	input.MoveX = 0
	if !found {
		return
	}

	reach := combat.AttackOffsetX + combat.AttackRadius
	if math.Abs(dx) > reach*autopilotCloseEnough {
		input.MoveX = math.Copysign(1, dx)
		return
	}
	system.HandleFlip(w, player, dx)

	if brain, ok := ecs.Get(w, target, component.EnemyBrainComponent.Kind()); ok && brain.CanBeStunned {
		input.Counter = true
		return
	}

	now := w.Now()
	if now >= a.nextSwingAt {
		input.Attack = true
		a.nextSwingAt = now + autopilotSwingInterval
	}
}

func nearestEnemy(w *ecs.World, x float64) (ecs.Entity, float64, bool) {
	var (
		best  ecs.Entity
		bestD = math.Inf(1)
		dx    float64
	)
	ecs.ForEach2(w, component.EnemyTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.EnemyTag, t *component.Transform) {
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Dead {
			return
		}
		if d := math.Abs(t.X - x); d < bestD {
			best, bestD, dx = e, d, t.X-x
		}
	})
	return best, dx, best.Valid()
}
