package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

func autopilotScene(t *testing.T, enemyX float64) (*ecs.World, ecs.Entity, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()

	player := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	require.NoError(t, ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}))
	require.NoError(t, ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, player, component.CombatComponent.Kind(), &component.Combat{AttackRadius: 1, AttackOffsetX: 0.8}))

	enemy := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, enemy, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	require.NoError(t, ecs.Add(w, enemy, component.TransformComponent.Kind(), &component.Transform{X: enemyX, ScaleX: 1, ScaleY: 1}))
	require.NoError(t, ecs.Add(w, enemy, component.EnemyBrainComponent.Kind(), component.NewEnemyBrain()))
	return w, player, enemy
}

func inputOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Input {
	t.Helper()
	in, ok := ecs.Get(w, e, component.InputComponent.Kind())
	require.True(t, ok)
	return in
}

func TestAutopilotWalksToEnemy(t *testing.T) {
	w, player, _ := autopilotScene(t, -5)
	NewAutopilot().Update(w)

	in := inputOf(t, w, player)
	assert.Equal(t, -1.0, in.MoveX)
	assert.False(t, in.Attack)
}

func TestAutopilotSwingsOnInterval(t *testing.T) {
	w, player, _ := autopilotScene(t, -1)
	ap := NewAutopilot()

	ap.Update(w)
	in := inputOf(t, w, player)
	assert.True(t, in.Attack)
	assert.Zero(t, in.MoveX)
	tr, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	assert.Equal(t, -1, tr.FacingDir(), "turns to face the enemy")

	in.Attack = false
	w.Clock().Advance(0.2)
	ap.Update(w)
	assert.False(t, in.Attack)

	w.Clock().Advance(0.3)
	ap.Update(w)
	assert.True(t, in.Attack)
}

func TestAutopilotCountersOpenWindow(t *testing.T) {
	w, player, enemy := autopilotScene(t, 1)
	brain, _ := ecs.Get(w, enemy, component.EnemyBrainComponent.Kind())
	brain.CanBeStunned = true

	NewAutopilot().Update(w)

	in := inputOf(t, w, player)
	assert.True(t, in.Counter)
	assert.False(t, in.Attack)
}

func TestAutopilotIgnoresDeadEnemies(t *testing.T) {
	w, player, enemy := autopilotScene(t, 1)
	require.NoError(t, ecs.Add(w, enemy, component.HealthComponent.Kind(), &component.Health{Dead: true}))

	NewAutopilot().Update(w)

	in := inputOf(t, w, player)
	assert.Zero(t, in.MoveX)
	assert.False(t, in.Attack)
}
