package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/stat"
)

// fakeDetector sees the player whenever seePlayer is set and returns a
// fixed overlap list.
type fakeDetector struct {
	player    ecs.Entity
	seePlayer bool
	noGround  bool
	wall      bool
	overlap   []ecs.Entity
	rays      int
}

func (d *fakeDetector) Raycast(from, to cp.Vector, mask uint32) (RayHit, bool) {
	d.rays++
	if mask&component.LayerPlayer != 0 {
		if d.seePlayer {
			return RayHit{Entity: d.player, Category: component.LayerPlayer}, true
		}
		return RayHit{}, false
	}
	// ground only probes: downward rays look for floor, sideways for walls
	if from.X == to.X {
		return RayHit{Category: component.LayerGround}, !d.noGround
	}
	return RayHit{Category: component.LayerGround}, d.wall
}

func (d *fakeDetector) Overlap(cp.Vector, float64, uint32) []ecs.Entity {
	return d.overlap
}

func newTestWorld(values ...float64) *ecs.World {
	if len(values) == 0 {
		values = []float64{0.99}
	}
	return ecs.NewWorld(ecs.WithRand(&common.FixedRand{Values: values}))
}

func addFighter(t *testing.T, w *ecs.World, e ecs.Entity, x float64, setup stat.Setup) {
	t.Helper()
	require.NoError(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{Sheet: stat.NewSheet(setup)}))
	require.NoError(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{
		RegenInterval: 1,
		Knockback:     component.DefaultKnockbackTuning(),
	}))
	require.NoError(t, ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{}))
	require.NoError(t, ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{Speed: 1}))
	require.True(t, SetupHealth(w, e))
}

func newTestPlayer(t *testing.T, w *ecs.World, x float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, x, stat.Setup{stat.MaxHealth: 100, stat.Damage: 10})
	require.NoError(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{MoveSpeed: 5, JumpSpeed: 12}))
	require.NoError(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, e, component.CombatComponent.Kind(), &component.Combat{
		AttackRadius:    1,
		AttackOffsetX:   0.8,
		TargetMask:      component.LayerEnemy,
		Scale:           stat.DefaultDamageScale(),
		CounterRecovery: 0.1,
	}))
	return e
}

func newTestEnemy(t *testing.T, w *ecs.World, x float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, x, stat.Setup{stat.MaxHealth: 100, stat.Damage: 5})
	tuning := component.DefaultEnemy()
	require.NoError(t, ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	require.NoError(t, ecs.Add(w, e, component.EnemyComponent.Kind(), &tuning))
	require.NoError(t, ecs.Add(w, e, component.EnemyBrainComponent.Kind(), component.NewEnemyBrain()))
	require.NoError(t, ecs.Add(w, e, component.CombatComponent.Kind(), &component.Combat{
		AttackRadius:  1,
		AttackOffsetX: 0.8,
		TargetMask:    component.LayerPlayer,
		Scale:         stat.DefaultDamageScale(),
	}))
	SubscribeEnemyEvents(w, e)
	return e
}

func advance(w *ecs.World, dt float64, systems ...ecs.System) {
	w.Clock().Advance(dt)
	for _, s := range systems {
		s.Update(w)
	}
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	require.True(t, ok)
	return v
}
