package component

import "math"

// StateID identifies an enemy state.
type StateID string

const (
	StateIdle      StateID = "idle"
	StateMove      StateID = "move"
	StateBattle    StateID = "battle"
	StateAttack    StateID = "attack"
	StateStunned   StateID = "stunned"
	StateDead      StateID = "dead"
	StateSlimeDead StateID = "slime_dead"
)

// EnemyBrain is the runtime data of one enemy's state machine. The states
// themselves are stateless; everything they remember lives here.
type EnemyBrain struct {
	Current  StateID
	Previous StateID

	// StateTimer is an absolute deadline owned by the active state.
	StateTimer float64

	Target              uint64
	LastTimeWasInBattle float64
	LastTimeAttacked    float64

	AttackHitAt float64
	AttackHit   bool

	// CanBeStunned is the counter window. It is open from attack start
	// until the hit lands.
	CanBeStunned bool

	// Untargetable is set on death; the physics system moves the entity
	// to the untargetable layer.
	Untargetable bool

	// Enters counts state entries by id.
	Enters map[StateID]int
}

// NewEnemyBrain returns a brain that has never attacked, so the first
// attack is not held back by the cooldown.
func NewEnemyBrain() *EnemyBrain {
	return &EnemyBrain{LastTimeAttacked: math.Inf(-1)}
}

var EnemyBrainComponent = NewComponent[EnemyBrain]()
