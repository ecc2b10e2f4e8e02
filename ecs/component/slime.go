package component

// Slime splits into smaller slimes when it dies.
type Slime struct {
	Prefab     string
	SplitCount int
	Penalty    float64
	Increase   float64
	// Child slimes do not split again.
	Child bool
	// Spawn builds one child at the given position. Builders set it.
	Spawn func(x, y float64) (uint64, error)
}

var SlimeComponent = NewComponent[Slime]()

// RebattleCheck asks an enemy to retry entering battle every Interval
// seconds until it is in battle or attacking.
type RebattleCheck struct {
	Interval float64
	NextAt   float64
}

var RebattleCheckComponent = NewComponent[RebattleCheck]()
