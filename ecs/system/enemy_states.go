package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

const (
	// velocity applied instead of a hard stop when an enemy may not chase
	holdVelocity = 0.0001

	groundCheckDistance = 0.4
	wallCheckDistance   = 0.2
)

// EnemyState is one state of the enemy state machine. States keep no data
// of their own; everything lives on the context's brain.
type EnemyState interface {
	ID() component.StateID
	Enter(ctx *EnemyContext)
	Update(ctx *EnemyContext)
	Exit(ctx *EnemyContext)
}

// EnemyContext gives a state access to one enemy for the duration of a
// call. Detector and Scripts are nil outside the AI system's update.
type EnemyContext struct {
	World     *ecs.World
	Entity    ecs.Entity
	Enemy     *component.Enemy
	Brain     *component.EnemyBrain
	Transform *component.Transform
	Detector  Detector
	Scripts   *AttackScripts
}

func (ctx *EnemyContext) Now() float64 { return ctx.World.Now() }

// ChangeState leaves the current state and enters id.
func (ctx *EnemyContext) ChangeState(id component.StateID) {
	changeState(ctx, id)
}

func (ctx *EnemyContext) Is(ids ...component.StateID) bool {
	for _, id := range ids {
		if ctx.Brain.Current == id {
			return true
		}
	}
	return false
}

func (ctx *EnemyContext) FacingDir() int {
	return ctx.Transform.FacingDir()
}

func (ctx *EnemyContext) Flip() {
	ctx.Transform.Flip()
}

// SetVelocity commands the enemy's velocity and turns it toward x.
func (ctx *EnemyContext) SetVelocity(x, y float64) {
	SetVelocity(ctx.World, ctx.Entity, x, y)
}

func (ctx *EnemyContext) VelocityY() float64 {
	_, y := Velocity(ctx.World, ctx.Entity)
	return y
}

func (ctx *EnemyContext) SlowMultiplier() float64 {
	return SlowMultiplier(ctx.World, ctx.Entity)
}

func (ctx *EnemyContext) MoveSpeed() float64 {
	return ctx.Enemy.MoveSpeed * ctx.SlowMultiplier()
}

func (ctx *EnemyContext) BattleMoveSpeed() float64 {
	return ctx.Enemy.BattleMoveSpeed * ctx.SlowMultiplier()
}

// PlayerDetected casts a ray in the facing direction against the player and
// the ground. It only counts a hit when the first thing touched is the
// player.
func (ctx *EnemyContext) PlayerDetected() (ecs.Entity, bool) {
	if ctx.Detector == nil {
		return 0, false
	}
	from := cp.Vector{X: ctx.Transform.X, Y: ctx.Transform.Y}
	to := from.Add(cp.Vector{X: float64(ctx.FacingDir()) * ctx.Enemy.PlayerCheckDistance})
	hit, ok := ctx.Detector.Raycast(from, to, component.LayerPlayer|component.LayerGround)
	if !ok || hit.Category&component.LayerPlayer == 0 {
		return 0, false
	}
	return hit.Entity, true
}

// Target returns the remembered player when it is still alive.
func (ctx *EnemyContext) Target() (ecs.Entity, bool) {
	target := ecs.Entity(ctx.Brain.Target)
	if !target.Valid() || !ctx.World.IsAlive(target) {
		return 0, false
	}
	return target, true
}

// PlayerReference returns the target, looking for the player when none is
// remembered yet.
func (ctx *EnemyContext) PlayerReference() (ecs.Entity, bool) {
	if target, ok := ctx.Target(); ok {
		return target, true
	}
	if player, ok := ctx.PlayerDetected(); ok {
		ctx.Brain.Target = uint64(player)
		return player, true
	}
	return 0, false
}

// DistanceToPlayer is the horizontal distance to the target, +Inf without
// one.
func (ctx *EnemyContext) DistanceToPlayer() float64 {
	target, ok := ctx.Target()
	if !ok {
		return math.Inf(1)
	}
	pt, ok := ecs.Get(ctx.World, target, component.TransformComponent.Kind())
	if !ok {
		return math.Inf(1)
	}
	return math.Abs(pt.X - ctx.Transform.X)
}

// DirectionToPlayer is +1 or -1 toward the target, 0 without one.
func (ctx *EnemyContext) DirectionToPlayer() int {
	target, ok := ctx.Target()
	if !ok {
		return 0
	}
	pt, ok := ecs.Get(ctx.World, target, component.TransformComponent.Kind())
	if !ok {
		return 0
	}
	if pt.X > ctx.Transform.X {
		return 1
	}
	return -1
}

func (ctx *EnemyContext) halfSize() (float64, float64) {
	if pb, ok := ecs.Get(ctx.World, ctx.Entity, component.PhysicsBodyComponent.Kind()); ok {
		return pb.Width / 2, pb.Height / 2
	}
	return 0.5, 0.5
}

// GroundDetected looks for ground just below the leading edge.
func (ctx *EnemyContext) GroundDetected() bool {
	if ctx.Detector == nil {
		return true
	}
	hw, hh := ctx.halfSize()
	from := cp.Vector{X: ctx.Transform.X + float64(ctx.FacingDir())*hw, Y: ctx.Transform.Y}
	to := from.Add(cp.Vector{Y: -(hh + groundCheckDistance)})
	_, ok := ctx.Detector.Raycast(from, to, component.LayerGround)
	return ok
}

// WallDetected looks for ground geometry directly ahead.
func (ctx *EnemyContext) WallDetected() bool {
	if ctx.Detector == nil {
		return false
	}
	hw, _ := ctx.halfSize()
	from := cp.Vector{X: ctx.Transform.X, Y: ctx.Transform.Y}
	to := from.Add(cp.Vector{X: float64(ctx.FacingDir()) * (hw + wallCheckDistance)})
	_, ok := ctx.Detector.Raycast(from, to, component.LayerGround)
	return ok
}

var enemyStates = map[component.StateID]EnemyState{}

func registerEnemyState(s EnemyState) {
	enemyStates[s.ID()] = s
}

func init() {
	registerEnemyState(idleState{})
	registerEnemyState(moveState{})
	registerEnemyState(battleState{})
	registerEnemyState(attackState{})
	registerEnemyState(stunnedState{})
	registerEnemyState(deadState{})
	registerEnemyState(slimeDeadState{})
}

// groundedUpdate is shared by idle and move: seeing the player starts a
// fight.
func groundedUpdate(ctx *EnemyContext) bool {
	player, ok := ctx.PlayerDetected()
	if !ok {
		return false
	}
	tryEnterBattle(ctx, player)
	return ctx.Is(component.StateBattle)
}

type idleState struct{}

func (idleState) ID() component.StateID { return component.StateIdle }

func (idleState) Enter(ctx *EnemyContext) {
	ctx.Brain.StateTimer = ctx.Now() + ctx.Enemy.IdleTime
	ctx.SetVelocity(0, ctx.VelocityY())
}

func (idleState) Update(ctx *EnemyContext) {
	if groundedUpdate(ctx) {
		return
	}
	if ctx.Now() >= ctx.Brain.StateTimer {
		ctx.ChangeState(component.StateMove)
	}
}

func (idleState) Exit(*EnemyContext) {}

type moveState struct{}

func (moveState) ID() component.StateID { return component.StateMove }

func (moveState) Enter(ctx *EnemyContext) {
	if !ctx.GroundDetected() || ctx.WallDetected() {
		ctx.Flip()
	}
}

func (moveState) Update(ctx *EnemyContext) {
	if groundedUpdate(ctx) {
		return
	}
	ctx.SetVelocity(ctx.MoveSpeed()*float64(ctx.FacingDir()), ctx.VelocityY())
	if !ctx.GroundDetected() || ctx.WallDetected() {
		ctx.Flip()
		ctx.ChangeState(component.StateIdle)
	}
}

func (moveState) Exit(*EnemyContext) {}

type battleState struct{}

func (battleState) ID() component.StateID { return component.StateBattle }

func (battleState) Enter(ctx *EnemyContext) {
	ctx.Brain.LastTimeWasInBattle = ctx.Now()
	ctx.PlayerReference()

	if ctx.DistanceToPlayer() < ctx.Enemy.MinRetreatDistance {
		dir := ctx.DirectionToPlayer()
		writeVelocity(ctx.World, ctx.Entity,
			ctx.Enemy.RetreatVelocity.X*ctx.SlowMultiplier()*float64(-dir),
			ctx.Enemy.RetreatVelocity.Y,
		)
		HandleFlip(ctx.World, ctx.Entity, float64(dir))
	}
}

func (battleState) Update(ctx *EnemyContext) {
	player, detected := ctx.PlayerDetected()
	if detected {
		ctx.Brain.Target = uint64(player)
		ctx.Brain.LastTimeWasInBattle = ctx.Now()
	}

	if ctx.Now() > ctx.Brain.LastTimeWasInBattle+ctx.Enemy.BattleTimeDuration {
		ctx.ChangeState(component.StateIdle)
		return
	}

	canAttack := ctx.Now() > ctx.Brain.LastTimeAttacked+ctx.Enemy.AttackCooldown
	if ctx.DistanceToPlayer() < ctx.Enemy.AttackDistance && detected && canAttack {
		ctx.Brain.LastTimeAttacked = ctx.Now()
		ctx.ChangeState(component.StateAttack)
		return
	}

	speed := holdVelocity
	if ctx.Enemy.CanChasePlayer {
		speed = ctx.BattleMoveSpeed()
	}
	ctx.SetVelocity(speed*float64(ctx.DirectionToPlayer()), ctx.VelocityY())
}

func (battleState) Exit(*EnemyContext) {}

type attackState struct{}

func (attackState) ID() component.StateID { return component.StateAttack }

func (attackState) Enter(ctx *EnemyContext) {
	speed := animatorSpeed(ctx.World, ctx.Entity)
	now := ctx.Now()
	ctx.Brain.AttackHit = false
	ctx.Brain.AttackHitAt = now + ctx.Enemy.AttackWindup/speed
	ctx.Brain.StateTimer = now + ctx.Enemy.AttackDuration/speed
	ctx.Brain.CanBeStunned = true
	if anim, ok := ecs.Get(ctx.World, ctx.Entity, component.AnimatorComponent.Kind()); ok {
		anim.Speed = speed
	}
}

func (attackState) Update(ctx *EnemyContext) {
	ctx.SetVelocity(0, ctx.VelocityY())

	now := ctx.Now()
	if !ctx.Brain.AttackHit && now >= ctx.Brain.AttackHitAt {
		ctx.Brain.AttackHit = true
		ctx.Brain.CanBeStunned = false
		enemyAttack(ctx)
	}
	if now >= ctx.Brain.StateTimer {
		ctx.ChangeState(component.StateBattle)
	}
}

func (attackState) Exit(ctx *EnemyContext) {
	ctx.Brain.CanBeStunned = false
	if anim, ok := ecs.Get(ctx.World, ctx.Entity, component.AnimatorComponent.Kind()); ok {
		anim.Speed = ctx.SlowMultiplier()
	}
}

type stunnedState struct{}

func (stunnedState) ID() component.StateID { return component.StateStunned }

func (stunnedState) Enter(ctx *EnemyContext) {
	ctx.Brain.CanBeStunned = false
	ctx.Brain.StateTimer = ctx.Now() + ctx.Enemy.StunnedDuration
	writeVelocity(ctx.World, ctx.Entity,
		ctx.Enemy.StunnedVelocity.X*float64(-ctx.FacingDir()),
		ctx.Enemy.StunnedVelocity.Y,
	)
}

func (stunnedState) Update(ctx *EnemyContext) {
	if ctx.Now() >= ctx.Brain.StateTimer {
		ctx.ChangeState(component.StateIdle)
	}
}

func (stunnedState) Exit(*EnemyContext) {}

type deadState struct{}

func (deadState) ID() component.StateID { return component.StateDead }

func (deadState) Enter(ctx *EnemyContext) {
	launch := ctx.Enemy.DeathLaunch
	vx, _ := Velocity(ctx.World, ctx.Entity)
	ecs.Remove(ctx.World, ctx.Entity, component.KnockbackComponent.Kind())
	writeVelocity(ctx.World, ctx.Entity, vx+launch.X, launch.Y)
	MakeUntargetable(ctx.World, ctx.Entity)
	DestroyWithDelay(ctx.World, ctx.Entity, ctx.Enemy.DestroyDelay)
}

func (deadState) Update(*EnemyContext) {}

func (deadState) Exit(*EnemyContext) {}

type slimeDeadState struct{}

func (slimeDeadState) ID() component.StateID { return component.StateSlimeDead }

func (slimeDeadState) Enter(ctx *EnemyContext) {
	CreateSlimeOnDeath(ctx.World, ctx.Entity)
	deadState{}.Enter(ctx)
}

func (slimeDeadState) Update(*EnemyContext) {}

func (slimeDeadState) Exit(*EnemyContext) {}

func isTerminal(id component.StateID) bool {
	return id == component.StateDead || id == component.StateSlimeDead
}
