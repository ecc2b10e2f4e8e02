package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/stat"
)

func TestTakeDamageAppliesMitigationAndResistance(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 1, stat.Setup{stat.MaxHealth: 200, stat.Armor: 100, stat.FireResistance: 50})

	report := TakeDamage(w, target, dealer, 40, 10, stat.ElementFire)

	require.Equal(t, OutcomeHit, report.Outcome)
	assert.InDelta(t, 20.0, report.Physical, 1e-9)
	assert.InDelta(t, 5.0, report.Elemental, 1e-9)
	h := mustGet(t, w, target, component.HealthComponent.Kind())
	assert.InDelta(t, 175.0, h.Current, 1e-9)
	assert.InDelta(t, 25.0, h.LastDamageTaken, 1e-9)
}

func TestTakeDamageArmorReductionFromDealer(t *testing.T) {
	w := newTestWorld()
	dealer := ecs.CreateEntity(w)
	addFighter(t, w, dealer, 0, stat.Setup{stat.MaxHealth: 10, stat.ArmorReduction: 100})
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 1, stat.Setup{stat.MaxHealth: 100, stat.Armor: 100})

	report := TakeDamage(w, target, dealer, 10, 0, stat.ElementNone)
	assert.Equal(t, 10.0, report.Physical)
}

func TestHeavyDamageKnockback(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 2, stat.Setup{stat.MaxHealth: 100})

	report := TakeDamage(w, target, dealer, 35, 0, stat.ElementNone)

	require.True(t, report.Heavy)
	kb := mustGet(t, w, target, component.KnockbackComponent.Kind())
	assert.Equal(t, 7.0, kb.Velocity.X)
	assert.Equal(t, 7.0, kb.Velocity.Y)
	assert.InDelta(t, 0.5, kb.Until, 1e-9)
}

func TestLightDamageKnockbackPointsAwayFromDealer(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 5)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 2, stat.Setup{stat.MaxHealth: 100})

	report := TakeDamage(w, target, dealer, 10, 0, stat.ElementNone)

	require.False(t, report.Heavy)
	kb := mustGet(t, w, target, component.KnockbackComponent.Kind())
	assert.Equal(t, -1.5, kb.Velocity.X)
	assert.Equal(t, 2.5, kb.Velocity.Y)
	assert.InDelta(t, 0.2, kb.Until, 1e-9)
}

func TestEvadedAttackChangesNothing(t *testing.T) {
	w := newTestWorld(0.5)
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 1, stat.Setup{stat.MaxHealth: 100, stat.Evasion: 85})

	report := TakeDamage(w, target, dealer, 50, 0, stat.ElementNone)

	assert.Equal(t, OutcomeEvaded, report.Outcome)
	assert.Equal(t, 100.0, mustGet(t, w, target, component.HealthComponent.Kind()).Current)
	assert.False(t, ecs.Has(w, target, component.KnockbackComponent.Kind()))
	assert.False(t, ecs.Has(w, target, component.WhiteFlashComponent.Kind()))
}

func TestDeadOrImmuneTargetIgnoresDamage(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 1, stat.Setup{stat.MaxHealth: 100})

	SetImmune(w, target, true)
	assert.Equal(t, OutcomeIgnored, TakeDamage(w, target, dealer, 50, 0, stat.ElementNone).Outcome)

	SetImmune(w, target, false)
	first := TakeDamage(w, target, dealer, 500, 0, stat.ElementNone)
	require.True(t, first.Killed)
	assert.Equal(t, OutcomeIgnored, TakeDamage(w, target, dealer, 50, 0, stat.ElementNone).Outcome)

	died := 0
	for _, evt := range w.Events().Drain() {
		if evt.Type == ecs.EventEntityDied && evt.Source == target {
			died++
		}
	}
	assert.Equal(t, 1, died)
}

func TestTargetWithoutStatsSkipsMitigation(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, target, component.HealthComponent.Kind(), &component.Health{Current: 30}))

	report := TakeDamage(w, target, dealer, 12, 3, stat.ElementIce)

	assert.Equal(t, OutcomeHit, report.Outcome)
	assert.Equal(t, 15.0, report.Total())
	assert.False(t, report.Heavy)
	assert.Equal(t, 15.0, mustGet(t, w, target, component.HealthComponent.Kind()).Current)
}

func TestTimedInvulnerabilityExpires(t *testing.T) {
	w := newTestWorld()
	dealer := newTestPlayer(t, w, 0)
	target := ecs.CreateEntity(w)
	addFighter(t, w, target, 1, stat.Setup{stat.MaxHealth: 100})
	require.NoError(t, ecs.Add(w, target, component.InvulnerableComponent.Kind(), &component.Invulnerable{Until: 1}))

	assert.True(t, IsImmune(w, target))
	advance(w, 1, NewCooldownSystem())
	assert.False(t, IsImmune(w, target))
	assert.Equal(t, OutcomeHit, TakeDamage(w, target, dealer, 1, 0, stat.ElementNone).Outcome)
}

func TestHealthBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := newTestWorld()
		e := ecs.CreateEntity(w)
		maxHealth := rapid.Float64Range(1, 1000).Draw(rt, "max")
		_ = ecs.Add(w, e, component.StatsComponent.Kind(), &component.Stats{Sheet: stat.NewSheet(stat.Setup{stat.MaxHealth: maxHealth})})
		_ = ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{})
		SetupHealth(w, e)
		h, _ := ecs.Get(w, e, component.HealthComponent.Kind())

		ops := rapid.SliceOfN(rapid.Float64Range(-2000, 2000), 1, 30).Draw(rt, "ops")
		for _, amount := range ops {
			before := h.Current
			wasDead := h.Dead
			if amount >= 0 {
				IncreaseHealth(w, e, amount)
			} else {
				ReduceHealth(w, e, -amount)
			}
			if h.Current > maxHealth+1e-9 {
				rt.Fatalf("health %v above max %v", h.Current, maxHealth)
			}
			if wasDead && (h.Current > before || !h.Dead) {
				rt.Fatalf("dead entity changed: %v -> %v dead=%v", before, h.Current, h.Dead)
			}
		}
	})
}

func TestSetHealthToPercentClamps(t *testing.T) {
	w := newTestWorld()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, 0, stat.Setup{stat.MaxHealth: 80})

	SetHealthToPercent(w, e, 0.25)
	assert.Equal(t, 0.25, HealthPercent(w, e))
	SetHealthToPercent(w, e, 3)
	assert.Equal(t, 1.0, HealthPercent(w, e))
	SetHealthToPercent(w, e, -1)
	assert.Zero(t, HealthPercent(w, e))
}

func TestHealthRegen(t *testing.T) {
	w := newTestWorld()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, 0, stat.Setup{stat.MaxHealth: 100, stat.HealthRegen: 5})
	h := mustGet(t, w, e, component.HealthComponent.Kind())
	h.RegenEnabled = true
	h.Current = 50

	regen := NewHealthRegenSystem()
	regen.Update(w)
	assert.Equal(t, 55.0, h.Current)

	advance(w, 0.5, regen)
	assert.Equal(t, 55.0, h.Current)
	advance(w, 0.5, regen)
	assert.Equal(t, 60.0, h.Current)

	h.RegenEnabled = false
	advance(w, 3, regen)
	assert.Equal(t, 60.0, h.Current)
}

func TestRegenSkippedWhenDead(t *testing.T) {
	w := newTestWorld()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, 0, stat.Setup{stat.MaxHealth: 10, stat.HealthRegen: 5})
	h := mustGet(t, w, e, component.HealthComponent.Kind())
	h.RegenEnabled = true

	ReduceHealth(w, e, 20)
	require.True(t, h.Dead)
	advance(w, 5, NewHealthRegenSystem())
	assert.Equal(t, -10.0, h.Current)
}

func TestWhiteFlashOnDamage(t *testing.T) {
	w := newTestWorld()
	e := ecs.CreateEntity(w)
	addFighter(t, w, e, 0, stat.Setup{stat.MaxHealth: 10})

	ReduceHealth(w, e, 1)
	wf := mustGet(t, w, e, component.WhiteFlashComponent.Kind())
	assert.True(t, wf.On)

	flash := NewWhiteFlashSystem()
	advance(w, 0.05, flash)
	assert.False(t, wf.On)
	advance(w, 0.2, flash)
	assert.False(t, ecs.Has(w, e, component.WhiteFlashComponent.Kind()))
}
