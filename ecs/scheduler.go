package ecs

// Phase selects when a system runs inside a tick.
type Phase uint8

const (
	// PhaseFrame runs state updates, timers and decisions.
	PhaseFrame Phase = iota
	// PhasePhysics applies velocities and steps the physics space.
	PhasePhysics
)

// Scheduler runs systems in two ordered phases per tick. It is single
// threaded and never reentrant.
type Scheduler struct {
	frame   []System
	physics []System
}

func NewScheduler(systems ...System) *Scheduler {
	copied := append([]System(nil), systems...)
	return &Scheduler{frame: copied}
}

// Add appends a frame phase system.
func (s *Scheduler) Add(system System) {
	s.AddTo(PhaseFrame, system)
}

func (s *Scheduler) AddTo(phase Phase, system System) {
	if system == nil {
		return
	}
	switch phase {
	case PhasePhysics:
		s.physics = append(s.physics, system)
	default:
		s.frame = append(s.frame, system)
	}
}

// Tick advances the world clock by dt and runs the frame phase followed by
// the physics phase.
func (s *Scheduler) Tick(w *World, dt float64) {
	if w == nil {
		return
	}
	w.clock.Advance(dt)
	s.Update(w)
}

// Update runs both phases without touching the clock.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.frame {
		system.Update(w)
	}
	for _, system := range s.physics {
		system.Update(w)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.frame)+len(s.physics))
	systems = append(systems, s.frame...)
	return append(systems, s.physics...)
}
