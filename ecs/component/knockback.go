package component

import "github.com/jakecoffman/cp"

// Knockback is added by the damage pipeline. The knockback system applies
// Velocity once, holds the entity until Until, then stops it. Movement
// writes are ignored while it is present.
type Knockback struct {
	Velocity cp.Vector
	Until    float64
	Applied  bool
}

var KnockbackComponent = NewComponent[Knockback]()
