package component

// WhiteFlash makes a sprite render as full white while active. It is the
// on-damage visual cue; the white flash system toggles On every Interval
// seconds until Until.
type WhiteFlash struct {
	Until      float64
	Interval   float64
	NextToggle float64
	On         bool
}

var WhiteFlashComponent = NewComponent[WhiteFlash]()
