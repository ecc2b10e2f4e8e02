package component

// Animator is the animation state consumed by renderers. Gameplay only
// writes the current clip name and playback speed.
type Animator struct {
	State string
	Speed float64
	// Triggers counts one-shot triggers fired this session, keyed by name.
	Triggers map[string]int
}

// Play switches the current clip. Switching to the active clip is a no-op.
func (a *Animator) Play(state string) {
	if a == nil || a.State == state {
		return
	}
	a.State = state
}

// Trigger fires a one-shot animation trigger.
func (a *Animator) Trigger(name string) {
	if a == nil {
		return
	}
	if a.Triggers == nil {
		a.Triggers = map[string]int{}
	}
	a.Triggers[name]++
}

var AnimatorComponent = NewComponent[Animator]()
