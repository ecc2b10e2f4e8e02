package entity

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/prefabs"
)

func newFactory(t *testing.T) (*Factory, *system.PhysicsSystem) {
	t.Helper()
	ps := system.NewPhysicsSystem()
	return NewFactory(prefabs.NewRegistry(prefabs.Source{Dir: t.TempDir()}), ps), ps
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	require.True(t, ok)
	return v
}

func TestNewPlayer(t *testing.T) {
	f, _ := newFactory(t)
	w := ecs.NewWorld()

	e, err := f.NewPlayer(w, "player.yaml", 3, 0)
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))

	tr := mustGet(t, w, e, component.TransformComponent.Kind())
	assert.Equal(t, 3.0, tr.X)
	assert.Equal(t, 1.0, tr.Y)

	p := mustGet(t, w, e, component.PlayerComponent.Kind())
	assert.Equal(t, 6.0, p.MoveSpeed)
	assert.Equal(t, 14.0, p.JumpSpeed)

	sheet := mustGet(t, w, e, component.StatsComponent.Kind()).Sheet
	assert.Equal(t, 120.0, sheet.Resources.MaxHealth.Value())
	h := mustGet(t, w, e, component.HealthComponent.Kind())
	assert.Equal(t, sheet.MaxHealth(), h.Current)
	assert.True(t, h.RegenEnabled)

	c := mustGet(t, w, e, component.CombatComponent.Kind())
	assert.Equal(t, component.LayerEnemy, c.TargetMask)
	assert.Equal(t, 1.4, c.CounterRadius)

	layer := mustGet(t, w, e, component.CollisionLayerComponent.Kind())
	assert.Equal(t, component.LayerPlayer, layer.Category)

	body := mustGet(t, w, e, component.PhysicsBodyComponent.Kind())
	assert.NotNil(t, body.Body, "factory syncs physics")
	assert.True(t, ecs.Has(w, e, component.DebugDrawComponent.Kind()))
}

func TestNewEnemySkeleton(t *testing.T) {
	f, _ := newFactory(t)
	w := ecs.NewWorld()
	before := w.Events().Subscribers()

	e, err := f.NewEnemy(w, "skeleton", -2, 0)
	require.NoError(t, err)

	enemy := mustGet(t, w, e, component.EnemyComponent.Kind())
	assert.Equal(t, component.StateDead, enemy.DeadState)
	assert.Equal(t, "heavy_swing", mustGet(t, w, e, component.AttackScriptComponent.Kind()).Name)
	assert.False(t, ecs.Has(w, e, component.SlimeComponent.Kind()))
	assert.Equal(t, component.LayerPlayer, mustGet(t, w, e, component.CombatComponent.Kind()).TargetMask)
	assert.Greater(t, w.Events().Subscribers(), before)
	assert.True(t, math.IsInf(mustGet(t, w, e, component.EnemyBrainComponent.Kind()).LastTimeAttacked, -1), "never attacked")

	assert.Equal(t, -2.0, mustGet(t, w, e, component.TransformComponent.Kind()).X)
}

func TestNewEnemySlimeSpawnsChildren(t *testing.T) {
	f, _ := newFactory(t)
	w := ecs.NewWorld()

	e, err := f.NewEnemy(w, "slime.yaml", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, component.StateSlimeDead, mustGet(t, w, e, component.EnemyComponent.Kind()).DeadState)
	slime := mustGet(t, w, e, component.SlimeComponent.Kind())
	assert.Equal(t, "slime_small.yaml", slime.Prefab)
	assert.Equal(t, 2, slime.SplitCount)
	require.NotNil(t, slime.Spawn)

	id, err := slime.Spawn(4, 0)
	require.NoError(t, err)
	child := ecs.Entity(id)
	require.True(t, w.IsAlive(child))
	assert.True(t, ecs.Has(w, child, component.EnemyTagComponent.Kind()))
	assert.False(t, ecs.Has(w, child, component.SlimeComponent.Kind()))
	assert.Equal(t, 3.0, mustGet(t, w, child, component.EnemyComponent.Kind()).DestroyDelay)
}

func TestNewEnemyErrors(t *testing.T) {
	f, _ := newFactory(t)
	w := ecs.NewWorld()

	_, err := f.NewEnemy(w, "missing.yaml", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enemy: load spec")

	_, err = f.NewPlayer(w, "missing.yaml", 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player: load spec")
}

func TestNewGroundIsSolid(t *testing.T) {
	f, ps := newFactory(t)
	w := ecs.NewWorld()

	g, err := f.NewGround(w, 0, -0.5, 20, 1)
	require.NoError(t, err)
	assert.True(t, mustGet(t, w, g, component.PhysicsBodyComponent.Kind()).Static)

	hit, ok := ps.Raycast(cp.Vector{X: 0, Y: 5}, cp.Vector{X: 0, Y: -5}, component.LayerGround)
	require.True(t, ok)
	assert.Equal(t, g, hit.Entity)
	assert.InDelta(t, 0, hit.Point.Y, 1e-6)
}

func TestFactoryWithoutPhysics(t *testing.T) {
	f := NewFactory(prefabs.NewRegistry(prefabs.Source{Dir: t.TempDir()}), nil)
	w := ecs.NewWorld()

	e, err := f.NewEnemy(w, "skeleton.yaml", 0, 0)
	require.NoError(t, err)
	assert.Nil(t, mustGet(t, w, e, component.PhysicsBodyComponent.Kind()).Body)
}
