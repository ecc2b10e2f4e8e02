package system

import (
	"math"

	"go.uber.org/zap"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/stat"
)

func attackPoint(w *ecs.World, e ecs.Entity, c *component.Combat) (cp.Vector, bool) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return cp.Vector{
		X: t.X + float64(t.FacingDir())*c.AttackOffsetX,
		Y: t.Y + c.AttackOffsetY,
	}, true
}

// PerformAttack hits every target in front of attacker with damage rolled
// from attacker's stats and scale. Ice damage also chills the target.
func PerformAttack(w *ecs.World, det Detector, attacker ecs.Entity, scale stat.DamageScale) []DamageReport {
	if det == nil {
		return nil
	}
	c, ok := ecs.Get(w, attacker, component.CombatComponent.Kind())
	if !ok {
		return nil
	}
	center, ok := attackPoint(w, attacker, c)
	if !ok {
		return nil
	}

	sheet := sheetOf(w, attacker)
	var reports []DamageReport
	for _, target := range det.Overlap(center, c.AttackRadius, c.TargetMask) {
		if target == attacker || !ecs.Has(w, target, component.HealthComponent.Kind()) {
			continue
		}
		data := sheet.AttackData(w.Rand(), scale)
		report := TakeDamage(w, target, attacker, data.Physical, data.Elemental, data.Element)
		if report.Landed() && data.Effect.Element == stat.ElementIce {
			ApplySlow(w, target, data.Effect.ChillDuration, data.Effect.ChillSlowMultiplier)
		}
		reports = append(reports, report)
	}
	return reports
}

// CounterAttackPerformed stuns every enemy near player whose counter window
// is open and reports whether any was stunned.
func CounterAttackPerformed(w *ecs.World, det Detector, player ecs.Entity) bool {
	if det == nil {
		return false
	}
	c, ok := ecs.Get(w, player, component.CombatComponent.Kind())
	if !ok {
		return false
	}
	center, ok := attackPoint(w, player, c)
	if !ok {
		return false
	}
	radius := c.CounterRadius
	if radius <= 0 {
		radius = c.AttackRadius
	}

	performed := false
	for _, target := range det.Overlap(center, radius, component.LayerEnemy) {
		if !HandleCounter(w, target) {
			continue
		}
		performed = true
		ecs.Publish(w, ecs.Event{Type: ecs.EventCountered, Source: target, Other: player})
	}
	if performed {
		c.CounterUntil = w.Now() + c.CounterRecovery
	}
	return performed
}

// InCounterRecovery reports whether player is still recovering from a
// landed counter.
func InCounterRecovery(w *ecs.World, player ecs.Entity) bool {
	c, ok := ecs.Get(w, player, component.CombatComponent.Kind())
	return ok && c.CounterUntil > 0 && w.Now() < c.CounterUntil
}

func enemyAttack(ctx *EnemyContext) {
	c, ok := ecs.Get(ctx.World, ctx.Entity, component.CombatComponent.Kind())
	if !ok {
		return
	}
	scale := c.Scale

	if script, ok := ecs.Get(ctx.World, ctx.Entity, component.AttackScriptComponent.Kind()); ok && ctx.Scripts != nil {
		distance := ctx.DistanceToPlayer()
		if math.IsInf(distance, 1) {
			distance = -1
		}
		out, err := ctx.Scripts.Run(script.Name, AttackScriptInput{
			Physical:      scale.Physical,
			Elemental:     scale.Elemental,
			Distance:      distance,
			HealthPercent: HealthPercent(ctx.World, ctx.Entity),
			Attacks:       ctx.Brain.Enters[component.StateAttack],
		})
		if err != nil {
			ctx.World.Logger().Warn("attack script failed",
				zap.String("script", script.Name),
				zap.Error(err),
			)
		} else {
			scale.Physical = out.Physical
			scale.Elemental = out.Elemental
			if out.LungeX != 0 || out.LungeY != 0 {
				writeVelocity(ctx.World, ctx.Entity, out.LungeX*float64(ctx.FacingDir()), out.LungeY)
			}
		}
	}

	PerformAttack(ctx.World, ctx.Detector, ctx.Entity, scale)
}
