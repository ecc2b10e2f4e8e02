package system

import (
	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// MaxSlowMultiplier caps how much of its speed a slowed entity loses, so the
// movement factor stays in (0, 1].
const MaxSlowMultiplier = 0.9

// ApplySlow slows e by multiplier for duration seconds. The newest slow
// replaces any active one; slows never stack. The multiplier is clamped to
// [0, MaxSlowMultiplier].
func ApplySlow(w *ecs.World, e ecs.Entity, duration, multiplier float64) {
	if duration <= 0 || !w.IsAlive(e) {
		return
	}
	_ = ecs.Add(w, e, component.SlowComponent.Kind(), &component.Slow{
		Multiplier: common.Clamp(multiplier, 0, MaxSlowMultiplier),
		Until:      w.Now() + duration,
	})
	syncAnimatorSpeed(w, e)
}

// StopSlow removes any slow from e and restores its unslowed speed.
func StopSlow(w *ecs.World, e ecs.Entity) {
	ecs.Remove(w, e, component.SlowComponent.Kind())
	syncAnimatorSpeed(w, e)
}

// SlowMultiplier is the factor movement speeds are scaled by: 1 when e is
// not slowed, otherwise 1 - multiplier.
func SlowMultiplier(w *ecs.World, e ecs.Entity) float64 {
	s, ok := ecs.Get(w, e, component.SlowComponent.Kind())
	if !ok || w.Now() >= s.Until {
		return 1
	}
	return 1 - s.Multiplier
}

// animatorSpeed is the playback speed e should run at: the slow factor,
// times the attack speed while an enemy is attacking.
func animatorSpeed(w *ecs.World, e ecs.Entity) float64 {
	speed := SlowMultiplier(w, e)
	if EnemyStateOf(w, e) == component.StateAttack {
		speed *= sheetOf(w, e).AttackSpeedMultiplier()
	}
	if speed <= 0 {
		return 1
	}
	return speed
}

func syncAnimatorSpeed(w *ecs.World, e ecs.Entity) {
	if anim, ok := ecs.Get(w, e, component.AnimatorComponent.Kind()); ok {
		anim.Speed = animatorSpeed(w, e)
	}
}
