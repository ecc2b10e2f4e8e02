package system

import (
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

type WhiteFlashSystem struct{}

func NewWhiteFlashSystem() *WhiteFlashSystem { return &WhiteFlashSystem{} }

func (s *WhiteFlashSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	now := w.Now()

	ecs.ForEach(w, component.WhiteFlashComponent.Kind(), func(e ecs.Entity, wf *component.WhiteFlash) {
		if now >= wf.Until {
			ecs.Remove(w, e, component.WhiteFlashComponent.Kind())
			return
		}
		if wf.Interval <= 0 {
			wf.Interval = damageFlashInterval
		}
		for wf.NextToggle <= now {
			wf.On = !wf.On
			wf.NextToggle += wf.Interval
		}
	})
}
