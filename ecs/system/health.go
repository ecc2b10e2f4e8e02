package system

import (
	"go.uber.org/zap"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/stat"
)

const (
	damageFlashDuration = 0.2
	damageFlashInterval = 0.05
)

// DamageOutcome is what happened to a TakeDamage call.
type DamageOutcome uint8

const (
	// OutcomeIgnored means the target was dead, immune or had no health.
	OutcomeIgnored DamageOutcome = iota
	OutcomeEvaded
	OutcomeHit
)

func (o DamageOutcome) String() string {
	switch o {
	case OutcomeEvaded:
		return "evaded"
	case OutcomeHit:
		return "hit"
	default:
		return "ignored"
	}
}

// DamageReport describes the result of one damage application.
type DamageReport struct {
	Target    ecs.Entity
	Outcome   DamageOutcome
	Physical  float64
	Elemental float64
	Heavy     bool
	Killed    bool
}

func (r DamageReport) Total() float64 {
	return r.Physical + r.Elemental
}

// Landed reports whether the damage was applied.
func (r DamageReport) Landed() bool {
	return r.Outcome == OutcomeHit
}

func sheetOf(w *ecs.World, e ecs.Entity) *stat.Sheet {
	s, ok := ecs.Get(w, e, component.StatsComponent.Kind())
	if !ok {
		return nil
	}
	return s.Sheet
}

// MaxHealth is the derived max health of e, zero without stats.
func MaxHealth(w *ecs.World, e ecs.Entity) float64 {
	return sheetOf(w, e).MaxHealth()
}

// SetupHealth fills e's health from its stats and starts regeneration.
func SetupHealth(w *ecs.World, e ecs.Entity) bool {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	sheet := sheetOf(w, e)
	if sheet == nil {
		return false
	}
	h.Current = sheet.MaxHealth()
	if h.RegenInterval <= 0 {
		h.RegenInterval = 1
	}
	h.NextRegenAt = w.Now()
	return true
}

// IsImmune reports whether e currently ignores damage.
func IsImmune(w *ecs.World, e ecs.Entity) bool {
	inv, ok := ecs.Get(w, e, component.InvulnerableComponent.Kind())
	if !ok {
		return false
	}
	return inv.Until == 0 || w.Now() < inv.Until
}

// SetImmune toggles indefinite damage immunity.
func SetImmune(w *ecs.World, e ecs.Entity, immune bool) {
	if immune {
		_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{})
		return
	}
	ecs.Remove(w, e, component.InvulnerableComponent.Kind())
}

// TakeDamage runs the damage pipeline against target. Dead or immune
// targets ignore the call; an evaded attack changes nothing.
func TakeDamage(w *ecs.World, target, dealer ecs.Entity, physical, elemental float64, element stat.ElementType) DamageReport {
	report := DamageReport{Target: target}
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok || h.Dead || IsImmune(w, target) {
		return report
	}

	targetStats := sheetOf(w, target)
	if targetStats != nil && common.Roll100(w.Rand()) < targetStats.Evasion() {
		report.Outcome = OutcomeEvaded
		w.Logger().Debug("attack evaded",
			zap.Stringer("target", target),
			zap.Stringer("dealer", dealer),
		)
		ecs.Publish(w, ecs.Event{Type: ecs.EventAttackEvaded, Source: target, Other: dealer})
		return report
	}

	armorReduction := sheetOf(w, dealer).ArmorReduction()
	mitigation := targetStats.ArmorMitigation(armorReduction)
	resistance := targetStats.ElementalResistance(element)

	report.Outcome = OutcomeHit
	report.Physical = physical * (1 - mitigation)
	report.Elemental = elemental * (1 - resistance)
	report.Heavy = isHeavyDamage(h, targetStats, report.Physical)

	takeKnockback(w, target, dealer, h, report.Heavy)
	playerHit := ecs.Has(w, dealer, component.PlayerTagComponent.Kind())
	if playerHit {
		rememberAttacker(w, target, dealer)
	}
	ReduceHealth(w, target, report.Total())
	h.LastDamageTaken = report.Total()
	report.Killed = h.Dead

	ecs.Publish(w, ecs.Event{Type: ecs.EventDamageTaken, Source: target, Other: dealer, Data: report})

	if !h.Dead && playerHit {
		TryEnterBattleState(w, target, dealer)
	}
	return report
}

// rememberAttacker records player as target's target when it has none, so
// a killing blow still leaves death effects someone to chase.
func rememberAttacker(w *ecs.World, target, player ecs.Entity) {
	brain, ok := ecs.Get(w, target, component.EnemyBrainComponent.Kind())
	if !ok || w.IsAlive(ecs.Entity(brain.Target)) {
		return
	}
	brain.Target = uint64(player)
}

func isHeavyDamage(h *component.Health, sheet *stat.Sheet, physical float64) bool {
	if sheet == nil {
		return false
	}
	maxHealth := sheet.MaxHealth()
	if maxHealth <= 0 {
		return false
	}
	return physical/maxHealth > h.Knockback.HeavyThreshold
}

func takeKnockback(w *ecs.World, target, dealer ecs.Entity, h *component.Health, heavy bool) {
	tt, ok := ecs.Get(w, target, component.TransformComponent.Kind())
	if !ok {
		return
	}
	dt, ok := ecs.Get(w, dealer, component.TransformComponent.Kind())
	if !ok {
		return
	}

	dir := -1.0
	if tt.X > dt.X {
		dir = 1
	}

	power, duration := h.Knockback.Power, h.Knockback.Duration
	if heavy {
		power, duration = h.Knockback.HeavyPower, h.Knockback.HeavyDuration
	}

	_ = ecs.Add(w, target, component.KnockbackComponent.Kind(), &component.Knockback{
		Velocity: cp.Vector{X: power.X * dir, Y: power.Y},
		Until:    w.Now() + duration,
	})
}

// ReduceHealth subtracts amount, plays the damage cue and kills the entity
// once health reaches zero.
func ReduceHealth(w *ecs.World, e ecs.Entity, amount float64) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}
	h.Current -= amount

	now := w.Now()
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{
		Until:      now + damageFlashDuration,
		Interval:   damageFlashInterval,
		NextToggle: now + damageFlashInterval,
		On:         true,
	})
	ecs.Publish(w, ecs.Event{Type: ecs.EventHealthChanged, Source: e, Data: h.Current})

	if h.Current <= 0 {
		die(w, e, h)
	}
}

func die(w *ecs.World, e ecs.Entity, h *component.Health) {
	if h.Dead {
		return
	}
	h.Dead = true
	w.Logger().Debug("entity died", zap.Stringer("entity", e))

	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		ChangeEnemyState(w, e, enemy.DeadState)
	}
	if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		ecs.Publish(w, ecs.Event{Type: ecs.EventPlayerDied, Source: e})
	}
	ecs.Publish(w, ecs.Event{Type: ecs.EventEntityDied, Source: e})
}

// IncreaseHealth heals e up to its max health. Dead entities stay dead.
func IncreaseHealth(w *ecs.World, e ecs.Entity, amount float64) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}
	h.Current = min(h.Current+amount, MaxHealth(w, e))
	ecs.Publish(w, ecs.Event{Type: ecs.EventHealthChanged, Source: e, Data: h.Current})
}

// HealthPercent is current / max, zero when max is not positive.
func HealthPercent(w *ecs.World, e ecs.Entity) float64 {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return 0
	}
	maxHealth := MaxHealth(w, e)
	if maxHealth <= 0 {
		return 0
	}
	return h.Current / maxHealth
}

// SetHealthToPercent sets health to max × clamp(percent, 0, 1).
func SetHealthToPercent(w *ecs.World, e ecs.Entity, percent float64) {
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok || h.Dead {
		return
	}
	h.Current = MaxHealth(w, e) * common.Clamp01(percent)
	ecs.Publish(w, ecs.Event{Type: ecs.EventHealthChanged, Source: e, Data: h.Current})
}

// HealthRegenSystem adds the healthRegen stat every RegenInterval seconds.
type HealthRegenSystem struct{}

func NewHealthRegenSystem() *HealthRegenSystem { return &HealthRegenSystem{} }

func (s *HealthRegenSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	ecs.ForEach2(w, component.HealthComponent.Kind(), component.StatsComponent.Kind(), func(e ecs.Entity, h *component.Health, st *component.Stats) {
		if h.Dead || !h.RegenEnabled || h.RegenInterval <= 0 {
			return
		}
		for h.NextRegenAt <= now && !h.Dead {
			IncreaseHealth(w, e, st.Sheet.Resources.HealthRegen.Value())
			h.NextRegenAt += h.RegenInterval
		}
	})
}
