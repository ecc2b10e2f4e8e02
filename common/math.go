package common

// Gravity is the world gravity in units per second squared. The world is
// y-up, so it is negative.
const Gravity = -40.0

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// DirectionTo returns +1 when to is right of from, otherwise -1.
func DirectionTo(fromX, toX float64) int {
	if toX > fromX {
		return 1
	}
	return -1
}
