package system

import (
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// TTLSystem destroys entities whose TTL deadline has passed.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()
	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if now < ttl.At {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}

// DestroyWithDelay schedules e for destruction delay seconds from now.
func DestroyWithDelay(w *ecs.World, e ecs.Entity, delay float64) {
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{At: w.Now() + delay})
}
