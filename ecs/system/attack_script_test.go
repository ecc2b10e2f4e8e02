package system

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

type scriptSource struct {
	files map[string]string
	loads int
}

func (s *scriptSource) load(name string) ([]byte, error) {
	s.loads++
	src, ok := s.files[name]
	if !ok {
		return nil, fmt.Errorf("no script %s", name)
	}
	return []byte(src), nil
}

const heavySwing = `
physical = physical * 2.0
if distance >= 0 && distance < 1.0 {
	lunge_x = 4.0
	lunge_y = 1.5
}
`

func TestAttackScriptRun(t *testing.T) {
	src := &scriptSource{files: map[string]string{"heavy": heavySwing}}
	scripts := NewAttackScripts(src.load)

	out, err := scripts.Run("heavy", AttackScriptInput{Physical: 1.5, Elemental: 1, Distance: 0.5})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.Physical)
	assert.Equal(t, 1.0, out.Elemental)
	assert.Equal(t, 4.0, out.LungeX)
	assert.Equal(t, 1.5, out.LungeY)

	out, err = scripts.Run("heavy", AttackScriptInput{Physical: 1, Elemental: 1, Distance: 3})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.Physical)
	assert.Zero(t, out.LungeX, "runs do not share globals")
	assert.Equal(t, 1, src.loads, "compiled once")
}

func TestAttackScriptUsesAttackCount(t *testing.T) {
	src := &scriptSource{files: map[string]string{
		"combo": `
if attacks % 3 == 0 {
	physical = physical * 3.0
}
`,
	}}
	scripts := NewAttackScripts(src.load)

	out, err := scripts.Run("combo", AttackScriptInput{Physical: 1, Attacks: 2})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.Physical)

	out, err = scripts.Run("combo", AttackScriptInput{Physical: 1, Attacks: 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out.Physical)
}

func TestAttackScriptInvalidate(t *testing.T) {
	src := &scriptSource{files: map[string]string{"s": `physical = 2.0`}}
	scripts := NewAttackScripts(src.load)

	_, err := scripts.Run("s", AttackScriptInput{})
	require.NoError(t, err)

	src.files["s"] = `physical = 5.0`
	out, err := scripts.Run("s", AttackScriptInput{})
	require.NoError(t, err)
	assert.Equal(t, 2.0, out.Physical, "cached until invalidated")

	scripts.Invalidate("s")
	out, err = scripts.Run("s", AttackScriptInput{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out.Physical)

	scripts.Invalidate("")
	_, err = scripts.Run("s", AttackScriptInput{})
	require.NoError(t, err)
	assert.Equal(t, 3, src.loads)
}

func TestAttackScriptErrors(t *testing.T) {
	src := &scriptSource{files: map[string]string{"broken": `physical = (`}}
	scripts := NewAttackScripts(src.load)

	_, err := scripts.Run("missing", AttackScriptInput{})
	assert.ErrorContains(t, err, "missing")

	_, err = scripts.Run("broken", AttackScriptInput{})
	assert.ErrorContains(t, err, "compile")

	_, err = NewAttackScripts(nil).Run("any", AttackScriptInput{})
	assert.ErrorContains(t, err, "no loader")
}

func TestEnemyAttackUsesScript(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0.5)
	enemy := newTestEnemy(t, w, 0)
	require.NoError(t, ecs.Add(w, enemy, component.AttackScriptComponent.Kind(), &component.AttackScript{Name: "heavy"}))
	scripts := NewAttackScripts((&scriptSource{files: map[string]string{"heavy": heavySwing}}).load)
	det := &fakeDetector{player: player, overlap: []ecs.Entity{player}}
	ai := NewEnemyAISystem(det, scripts)

	mustGet(t, w, enemy, component.EnemyBrainComponent.Kind()).Target = uint64(player)
	require.True(t, ChangeEnemyState(w, enemy, component.StateAttack))
	advance(w, 0.4, ai)

	assert.Equal(t, 90.0, mustGet(t, w, player, component.HealthComponent.Kind()).Current)
	vx, vy := Velocity(w, enemy)
	assert.Equal(t, 4.0, vx)
	assert.Equal(t, 1.5, vy)
}

func TestEnemyAttackFallsBackWhenScriptFails(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(t, w, 0.5)
	enemy := newTestEnemy(t, w, 0)
	require.NoError(t, ecs.Add(w, enemy, component.AttackScriptComponent.Kind(), &component.AttackScript{Name: "gone"}))
	scripts := NewAttackScripts((&scriptSource{}).load)
	ai := NewEnemyAISystem(&fakeDetector{player: player, overlap: []ecs.Entity{player}}, scripts)

	require.True(t, ChangeEnemyState(w, enemy, component.StateAttack))
	advance(w, 0.4, ai)

	assert.Equal(t, 95.0, mustGet(t, w, player, component.HealthComponent.Kind()).Current)
}
