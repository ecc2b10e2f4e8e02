package component

// Slow reduces movement and animation speed by Multiplier (0.2 = 20%
// slower) until the world clock reaches Until. A newer slow replaces the
// current one.
type Slow struct {
	Multiplier float64
	Until      float64
}

var SlowComponent = NewComponent[Slow]()
