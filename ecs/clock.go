package ecs

// Clock is the monotonic game clock. Timed effects store absolute deadlines
// against Now and re-check them every tick.
type Clock struct {
	now   float64
	delta float64
	ticks uint64
}

func (c *Clock) Now() float64 { return c.now }

func (c *Clock) Delta() float64 { return c.delta }

func (c *Clock) Ticks() uint64 { return c.ticks }

// Advance moves the clock forward by dt seconds. Negative steps are ignored.
func (c *Clock) Advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.delta = dt
	c.now += dt
	c.ticks++
}
