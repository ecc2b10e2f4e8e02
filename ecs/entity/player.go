package entity

import (
	"fmt"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// NewPlayer builds the player prefab name with its spawn offset by (x, y).
func (f *Factory) NewPlayer(w *ecs.World, name string, x, y float64) (ecs.Entity, error) {
	spec, err := f.prefabs.Player(name)
	if err != nil {
		return 0, fmt.Errorf("player: load spec: %w", err)
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{
		MoveSpeed: spec.MoveSpeed,
		JumpSpeed: spec.JumpSpeed,
	}); err != nil {
		return 0, fmt.Errorf("player: add player: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := (fighter{
		prefix:    "player",
		transform: spec.Transform,
		collider:  spec.Collider,
		stats:     spec.Stats,
		health:    spec.Health,
		layer:     component.CollisionLayer{Category: component.LayerPlayer, Mask: component.LayerGround},
		color:     spec.DebugColor,
	}).add(w, entity, x, y); err != nil {
		return 0, err
	}

	if err := ecs.Add(w, entity, component.CombatComponent.Kind(), combatFrom(spec.Combat, component.LayerEnemy)); err != nil {
		return 0, fmt.Errorf("player: add combat: %w", err)
	}

	f.sync(w)
	return entity, nil
}
