package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

const rebattleInterval = 0.3

// CreateSlimeOnDeath spawns the slime's children at its position. Children
// inherit adjusted stats, are thrown in a random direction and chase the
// parent's target.
func CreateSlimeOnDeath(w *ecs.World, parent ecs.Entity) []ecs.Entity {
	slime, ok := ecs.Get(w, parent, component.SlimeComponent.Kind())
	if !ok || slime.Child || slime.Spawn == nil || slime.SplitCount <= 0 {
		return nil
	}
	t, ok := ecs.Get(w, parent, component.TransformComponent.Kind())
	if !ok {
		return nil
	}

	var target ecs.Entity
	if brain, ok := ecs.Get(w, parent, component.EnemyBrainComponent.Kind()); ok {
		target = ecs.Entity(brain.Target)
	}
	parentStats := sheetOf(w, parent)

	children := make([]ecs.Entity, 0, slime.SplitCount)
	for i := 0; i < slime.SplitCount; i++ {
		id, err := slime.Spawn(t.X, t.Y)
		if err != nil {
			w.Logger().Warn("slime split failed", zap.Stringer("parent", parent), zap.Error(err))
			continue
		}
		child := ecs.Entity(id)

		if cs, ok := ecs.Get(w, child, component.SlimeComponent.Kind()); ok {
			cs.Child = true
		}
		if parentStats != nil {
			sheetOf(w, child).AdjustStatSetup(parentStats, slime.Penalty, slime.Increase)
			SetupHealth(w, child)
		}
		ApplyRespawnVelocity(w, child)
		StartBattleStateCheck(w, child, target)
		ecs.Publish(w, ecs.Event{Type: ecs.EventSpawned, Source: child, Other: parent})
		children = append(children, child)
	}
	return children
}

// ApplyRespawnVelocity throws e using its stunned velocity with random
// jitter.
func ApplyRespawnVelocity(w *ecs.World, e ecs.Entity) {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return
	}
	r := w.Rand()
	SetVelocity(w, e,
		enemy.StunnedVelocity.X*common.RandRange(r, -1, 1),
		enemy.StunnedVelocity.Y*common.RandRange(r, 1, 2),
	)
}

// StartBattleStateCheck sends e into battle against player and keeps
// retrying every 0.3s until it is fighting.
func StartBattleStateCheck(w *ecs.World, e, player ecs.Entity) {
	if !player.Valid() {
		return
	}
	TryEnterBattleState(w, e, player)
	_ = ecs.Add(w, e, component.RebattleCheckComponent.Kind(), &component.RebattleCheck{
		Interval: rebattleInterval,
		NextAt:   w.Now(),
	})
}

// RebattleSystem drives the battle state checks started by
// StartBattleStateCheck.
type RebattleSystem struct{}

func NewRebattleSystem() *RebattleSystem { return &RebattleSystem{} }

func (s *RebattleSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	ecs.ForEach2(w, component.RebattleCheckComponent.Kind(), component.EnemyBrainComponent.Kind(), func(e ecs.Entity, check *component.RebattleCheck, brain *component.EnemyBrain) {
		if now < check.NextAt {
			return
		}
		check.NextAt = now + check.Interval

		target := ecs.Entity(brain.Target)
		switch {
		case brain.Current == component.StateBattle, brain.Current == component.StateAttack:
			ecs.Remove(w, e, component.RebattleCheckComponent.Kind())
		case isTerminal(brain.Current), !w.IsAlive(target):
			ecs.Remove(w, e, component.RebattleCheckComponent.Kind())
		default:
			ChangeEnemyState(w, e, component.StateBattle)
		}
	})
}
