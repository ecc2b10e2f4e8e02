package entity

import (
	"fmt"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
)

// NewEnemy builds the enemy prefab name with its spawn offset by (x, y).
// Slime prefabs get a spawner for their children.
func (f *Factory) NewEnemy(w *ecs.World, name string, x, y float64) (ecs.Entity, error) {
	spec, err := f.prefabs.Enemy(name)
	if err != nil {
		return 0, fmt.Errorf("enemy: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return 0, fmt.Errorf("enemy: add enemy tag: %w", err)
	}

	tuning := spec.AI.Tuning()
	if spec.Slime != nil {
		tuning.DeadState = component.StateSlimeDead
	}
	if err := ecs.Add(w, entity, component.EnemyComponent.Kind(), &tuning); err != nil {
		return 0, fmt.Errorf("enemy: add enemy: %w", err)
	}

	if err := ecs.Add(w, entity, component.EnemyBrainComponent.Kind(), component.NewEnemyBrain()); err != nil {
		return 0, fmt.Errorf("enemy: add brain: %w", err)
	}

	if err := (fighter{
		prefix:    "enemy",
		transform: spec.Transform,
		collider:  spec.Collider,
		stats:     spec.Stats,
		health:    spec.Health,
		layer:     component.CollisionLayer{Category: component.LayerEnemy, Mask: component.LayerGround},
		color:     spec.DebugColor,
	}).add(w, entity, x, y); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, entity, component.CombatComponent.Kind(), combatFrom(spec.Combat, component.LayerPlayer)); err != nil {
		return 0, fmt.Errorf("enemy: add combat: %w", err)
	}

	if spec.Script != "" {
		if err := ecs.Add(w, entity, component.AttackScriptComponent.Kind(), &component.AttackScript{Name: spec.Script}); err != nil {
			return 0, fmt.Errorf("enemy: add attack script: %w", err)
		}
	}

	if s := spec.Slime; s != nil {
		child := s.Child
		if err := ecs.Add(w, entity, component.SlimeComponent.Kind(), &component.Slime{
			Prefab:     child,
			SplitCount: s.SplitCount,
			Penalty:    s.Penalty,
			Increase:   s.Increase,
			Spawn: func(x, y float64) (uint64, error) {
				e, err := f.NewEnemy(w, child, x, y)
				return uint64(e), err
			},
		}); err != nil {
			return 0, fmt.Errorf("enemy: add slime: %w", err)
		}
	}

	system.SubscribeEnemyEvents(w, entity)
	f.sync(w)
	return entity, nil
}
