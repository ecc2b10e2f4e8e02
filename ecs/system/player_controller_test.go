package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

func TestPlayerMovesAndFaces(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	pc := NewPlayerControllerSystem(&fakeDetector{})

	mustGet(t, w, player, component.InputComponent.Kind()).MoveX = -1
	pc.Update(w)

	vx, _ := Velocity(w, player)
	assert.Equal(t, -5.0, vx)
	assert.Equal(t, -1, FacingDir(w, player))
	assert.Equal(t, "run", mustGet(t, w, player, component.AnimatorComponent.Kind()).State)

	mustGet(t, w, player, component.InputComponent.Kind()).MoveX = 0
	pc.Update(w)
	assert.Equal(t, "idle", mustGet(t, w, player, component.AnimatorComponent.Kind()).State)
	assert.Equal(t, -1, FacingDir(w, player), "standing still keeps facing")
}

func TestPlayerJumpsOnlyWhenGrounded(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	pc := NewPlayerControllerSystem(&fakeDetector{})
	input := mustGet(t, w, player, component.InputComponent.Kind())

	input.JumpPressed = true
	pc.Update(w)
	_, vy := Velocity(w, player)
	assert.Equal(t, 12.0, vy)
	assert.False(t, input.JumpPressed)

	writeVelocity(w, player, 0, 3)
	input.JumpPressed = true
	pc.Update(w)
	_, vy = Velocity(w, player)
	assert.Equal(t, 3.0, vy)
}

func TestPlayerAttackHitsEnemies(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	enemy := newTestEnemy(t, w, 1)
	pc := NewPlayerControllerSystem(&fakeDetector{overlap: []ecs.Entity{enemy}})

	mustGet(t, w, player, component.InputComponent.Kind()).Attack = true
	pc.Update(w)

	assert.Equal(t, 90.0, mustGet(t, w, enemy, component.HealthComponent.Kind()).Current)
	assert.Equal(t, component.StateBattle, EnemyStateOf(w, enemy))
	assert.Equal(t, 1, mustGet(t, w, player, component.AnimatorComponent.Kind()).Triggers["attack"])

	pc.Update(w)
	assert.Equal(t, 90.0, mustGet(t, w, enemy, component.HealthComponent.Kind()).Current, "attack input is one shot")
}

func TestPlayerCounterTakesPriority(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	enemy := newTestEnemy(t, w, 1)
	pc := NewPlayerControllerSystem(&fakeDetector{overlap: []ecs.Entity{enemy}})
	require.True(t, ChangeEnemyState(w, enemy, component.StateAttack))

	input := mustGet(t, w, player, component.InputComponent.Kind())
	input.Counter = true
	input.Attack = true
	pc.Update(w)

	assert.Equal(t, component.StateStunned, EnemyStateOf(w, enemy))
	assert.Equal(t, 100.0, mustGet(t, w, enemy, component.HealthComponent.Kind()).Current)
	anim := mustGet(t, w, player, component.AnimatorComponent.Kind())
	assert.Equal(t, 1, anim.Triggers["counter"])
	assert.Zero(t, anim.Triggers["attack"])
}

func TestPlayerCounterIgnoredDuringRecovery(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	a := newTestEnemy(t, w, 1)
	b := newTestEnemy(t, w, 1)
	det := &fakeDetector{overlap: []ecs.Entity{a}}
	pc := NewPlayerControllerSystem(det)

	require.True(t, ChangeEnemyState(w, a, component.StateAttack))
	mustGet(t, w, player, component.InputComponent.Kind()).Counter = true
	pc.Update(w)
	require.True(t, InCounterRecovery(w, player))

	require.True(t, ChangeEnemyState(w, b, component.StateAttack))
	det.overlap = []ecs.Entity{b}
	mustGet(t, w, player, component.InputComponent.Kind()).Counter = true
	pc.Update(w)
	assert.Equal(t, component.StateAttack, EnemyStateOf(w, b))
}

func TestDeadPlayerIgnoresInput(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0)
	pc := NewPlayerControllerSystem(&fakeDetector{})
	ReduceHealth(w, player, 1000)

	input := mustGet(t, w, player, component.InputComponent.Kind())
	input.MoveX = 1
	input.JumpPressed = true
	pc.Update(w)

	vx, vy := Velocity(w, player)
	assert.Zero(t, vx)
	assert.Zero(t, vy)
	assert.Equal(t, component.Input{}, *input)
}
