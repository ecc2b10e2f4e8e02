package component

import "github.com/jakecoffman/cp"

// Enemy is the per-enemy tuning read by the enemy states.
type Enemy struct {
	IdleTime            float64
	MoveSpeed           float64
	PlayerCheckDistance float64

	BattleMoveSpeed    float64
	AttackDistance     float64
	AttackCooldown     float64
	CanChasePlayer     bool
	BattleTimeDuration float64
	MinRetreatDistance float64
	RetreatVelocity    cp.Vector

	// AttackWindup is when the hit lands after entering attack; the
	// attack state returns to battle at AttackDuration.
	AttackWindup   float64
	AttackDuration float64

	StunnedDuration float64
	StunnedVelocity cp.Vector

	DeathLaunch  cp.Vector
	DestroyDelay float64

	// DeadState is the state entered on death.
	DeadState StateID
}

// DefaultEnemy returns the stock skeleton tuning.
func DefaultEnemy() Enemy {
	return Enemy{
		IdleTime:            2,
		MoveSpeed:           1.4,
		PlayerCheckDistance: 10,
		BattleMoveSpeed:     3,
		AttackDistance:      2,
		AttackCooldown:      0.5,
		CanChasePlayer:      true,
		BattleTimeDuration:  5,
		MinRetreatDistance:  1,
		RetreatVelocity:     cp.Vector{X: 5, Y: 3},
		AttackWindup:        0.4,
		AttackDuration:      0.8,
		StunnedDuration:     1,
		StunnedVelocity:     cp.Vector{X: 7, Y: 7},
		DeathLaunch:         cp.Vector{X: 0, Y: 15},
		DestroyDelay:        10,
		DeadState:           StateDead,
	}
}

var EnemyComponent = NewComponent[Enemy]()
