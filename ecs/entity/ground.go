package entity

import (
	"fmt"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// NewGround adds a static box centered on (x, y).
func (f *Factory) NewGround(w *ecs.World, x, y, width, height float64) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.GroundTagComponent.Kind(), &component.GroundTag{}); err != nil {
		return 0, fmt.Errorf("ground: add ground tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), &component.Transform{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
	}); err != nil {
		return 0, fmt.Errorf("ground: add transform: %w", err)
	}

	if err := ecs.Add(w, entity, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    width,
		Height:   height,
		Friction: 1,
		Static:   true,
	}); err != nil {
		return 0, fmt.Errorf("ground: add physics body: %w", err)
	}

	if err := ecs.Add(w, entity, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerGround,
	}); err != nil {
		return 0, fmt.Errorf("ground: add collision layer: %w", err)
	}

	if err := ecs.Add(w, entity, component.DebugDrawComponent.Kind(), &component.DebugDraw{Color: groundColor}); err != nil {
		return 0, fmt.Errorf("ground: add debug draw: %w", err)
	}

	f.sync(w)
	return entity, nil
}
