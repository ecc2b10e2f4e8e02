package component

// Velocity is the commanded linear velocity in units per second. The
// physics system pushes it into the body before a step and reads it back
// afterwards.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()
