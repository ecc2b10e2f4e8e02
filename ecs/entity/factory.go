package entity

import (
	"fmt"
	"image/color"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/prefabs"
	"github.com/milk9111/hollowblade/stat"
)

// Syncer creates physics bodies for freshly built entities.
type Syncer interface {
	Sync(w *ecs.World)
}

// Factory builds arena entities from prefab specs.
type Factory struct {
	prefabs *prefabs.Registry
	physics Syncer
}

// NewFactory returns a factory reading specs from reg. physics may be nil,
// in which case bodies are created on the next physics step.
func NewFactory(reg *prefabs.Registry, physics Syncer) *Factory {
	return &Factory{prefabs: reg, physics: physics}
}

func (f *Factory) sync(w *ecs.World) {
	if f.physics != nil {
		f.physics.Sync(w)
	}
}

// fighter is the component set shared by players and enemies.
type fighter struct {
	prefix    string
	transform prefabs.TransformSpec
	collider  prefabs.ColliderSpec
	stats     prefabs.StatsSpec
	health    prefabs.HealthSpec
	layer     component.CollisionLayer
	color     *prefabs.YAMLColor
}

func (fs fighter) add(w *ecs.World, e ecs.Entity, x, y float64) error {
	setup, err := fs.stats.Setup()
	if err != nil {
		return fmt.Errorf("%s: stats: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      fs.transform.X + x,
		Y:      fs.transform.Y + y,
		ScaleX: fs.transform.ScaleX,
		ScaleY: fs.transform.ScaleY,
	}); err != nil {
		return fmt.Errorf("%s: add transform: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Width:    fs.collider.Width,
		Height:   fs.collider.Height,
		Mass:     fs.collider.Mass,
		Friction: fs.collider.Friction,
	}); err != nil {
		return fmt.Errorf("%s: add physics body: %w", fs.prefix, err)
	}

	layer := fs.layer
	if err := ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &layer); err != nil {
		return fmt.Errorf("%s: add collision layer: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return fmt.Errorf("%s: add velocity: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{Speed: 1}); err != nil {
		return fmt.Errorf("%s: add animator: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{Sheet: stat.NewSheet(setup)}); err != nil {
		return fmt.Errorf("%s: add stats: %w", fs.prefix, err)
	}

	if err := ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		RegenEnabled:  fs.health.RegenEnabled,
		RegenInterval: fs.health.RegenInterval,
		Knockback:     fs.health.Knockback.Tuning(),
	}); err != nil {
		return fmt.Errorf("%s: add health: %w", fs.prefix, err)
	}
	system.SetupHealth(w, e)

	if fs.color != nil {
		if err := ecs.Add(w, e, component.DebugDrawComponent.Kind(), &component.DebugDraw{Color: fs.color.Color}); err != nil {
			return fmt.Errorf("%s: add debug draw: %w", fs.prefix, err)
		}
	}

	return nil
}

func combatFrom(spec prefabs.CombatSpec, mask uint32) *component.Combat {
	return &component.Combat{
		AttackRadius:    spec.AttackRadius,
		AttackOffsetX:   spec.AttackOffsetX,
		AttackOffsetY:   spec.AttackOffsetY,
		TargetMask:      mask,
		Scale:           spec.Scale,
		CounterRadius:   spec.CounterRadius,
		CounterRecovery: spec.CounterRecovery,
	}
}

var groundColor color.Color = color.NRGBA{R: 0x5d, G: 0x4b, B: 0x3c, A: 0xff}
