package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// KnockbackSystem applies pending knockbacks once and stops the entity when
// the knockback expires. Movement writes are ignored in between.
type KnockbackSystem struct{}

func NewKnockbackSystem() *KnockbackSystem { return &KnockbackSystem{} }

func (s *KnockbackSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	ecs.ForEach(w, component.KnockbackComponent.Kind(), func(e ecs.Entity, kb *component.Knockback) {
		if !kb.Applied {
			applyKnockback(w, e, kb.Velocity)
			kb.Applied = true
		}
		if now < kb.Until {
			return
		}
		ecs.Remove(w, e, component.KnockbackComponent.Kind())
		writeVelocity(w, e, 0, 0)
	})
}

func applyKnockback(w *ecs.World, e ecs.Entity, v cp.Vector) {
	body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if !ok || body.Body == nil || body.Static {
		writeVelocity(w, e, v.X, v.Y)
		return
	}

	strength := v.Length()
	if strength <= 1e-6 {
		return
	}
	n := v.Mult(1 / strength)

	// Apply an impulse rather than overwriting velocity so momentum the
	// entity already has along the push still counts.
	body.Body.ApplyImpulseAtWorldPoint(v.Mult(body.Body.Mass()), body.Body.Position())

	// cap the velocity contributed along the push direction
	cur := body.Body.Velocity()
	along := cur.Dot(n)
	if along > strength {
		tangent := cur.Sub(n.Mult(along))
		cur = tangent.Add(n.Mult(strength))
		body.Body.SetVelocityVector(cur)
	}
	writeVelocity(w, e, cur.X, cur.Y)
}

func isKnockedBack(w *ecs.World, e ecs.Entity) bool {
	return ecs.Has(w, e, component.KnockbackComponent.Kind())
}

// SetVelocity commands e's velocity and turns it to face the horizontal
// movement direction. It does nothing while e is being knocked back.
func SetVelocity(w *ecs.World, e ecs.Entity, x, y float64) {
	if isKnockedBack(w, e) {
		return
	}
	writeVelocity(w, e, x, y)
	HandleFlip(w, e, x)
}

// Velocity returns e's commanded velocity.
func Velocity(w *ecs.World, e ecs.Entity) (float64, float64) {
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return 0, 0
	}
	return v.X, v.Y
}

func writeVelocity(w *ecs.World, e ecs.Entity, x, y float64) {
	if v, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		v.X, v.Y = x, y
		return
	}
	_ = ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: x, Y: y})
}

// HandleFlip turns e to face the sign of x. Zero keeps the current facing.
func HandleFlip(w *ecs.World, e ecs.Entity, x float64) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || x == 0 || math.IsNaN(x) {
		return
	}
	if (x > 0) != (t.FacingDir() > 0) {
		t.Flip()
	}
}

// FacingDir is +1 for right, -1 for left.
func FacingDir(w *ecs.World, e ecs.Entity) int {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 1
	}
	return t.FacingDir()
}
