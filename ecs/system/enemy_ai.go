package system

import (
	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
)

// EnemyAISystem hosts the enemy state machines. Enemies without a state
// are started in idle.
type EnemyAISystem struct {
	detector Detector
	scripts  *AttackScripts
}

func NewEnemyAISystem(detector Detector, scripts *AttackScripts) *EnemyAISystem {
	return &EnemyAISystem{detector: detector, scripts: scripts}
}

func (s *EnemyAISystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, e := range w.Query(component.EnemyBrainComponent.Kind(), component.EnemyComponent.Kind()) {
		ctx, ok := s.context(w, e)
		if !ok {
			continue
		}
		if ctx.Brain.Current == "" {
			changeState(ctx, component.StateIdle)
			continue
		}
		state, ok := enemyStates[ctx.Brain.Current]
		if !ok {
			continue
		}
		state.Update(ctx)
	}
}

func (s *EnemyAISystem) context(w *ecs.World, e ecs.Entity) (*EnemyContext, bool) {
	ctx, ok := newEnemyContext(w, e)
	if !ok {
		return nil, false
	}
	ctx.Detector = s.detector
	ctx.Scripts = s.scripts
	return ctx, true
}

func newEnemyContext(w *ecs.World, e ecs.Entity) (*EnemyContext, bool) {
	enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
	if !ok {
		return nil, false
	}
	brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind())
	if !ok {
		return nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return nil, false
	}
	return &EnemyContext{World: w, Entity: e, Enemy: enemy, Brain: brain, Transform: t}, true
}

func changeState(ctx *EnemyContext, id component.StateID) {
	next, ok := enemyStates[id]
	if !ok || isTerminal(ctx.Brain.Current) {
		return
	}
	if cur, ok := enemyStates[ctx.Brain.Current]; ok {
		cur.Exit(ctx)
	}

	ctx.Brain.Previous = ctx.Brain.Current
	ctx.Brain.Current = id
	if ctx.Brain.Enters == nil {
		ctx.Brain.Enters = map[component.StateID]int{}
	}
	ctx.Brain.Enters[id]++

	if anim, ok := ecs.Get(ctx.World, ctx.Entity, component.AnimatorComponent.Kind()); ok {
		anim.Play(animationFor(id))
	}

	ctx.World.Logger().Debug("enemy state changed",
		zap.Stringer("entity", ctx.Entity),
		zap.String("from", string(ctx.Brain.Previous)),
		zap.String("to", string(id)),
	)

	next.Enter(ctx)
	ecs.Publish(ctx.World, ecs.Event{Type: ecs.EventStateChanged, Source: ctx.Entity, Data: id})
}

func animationFor(id component.StateID) string {
	if id == component.StateSlimeDead {
		return string(component.StateIdle)
	}
	return string(id)
}

// ChangeEnemyState moves e to state id. Dead enemies never leave their
// dead state.
func ChangeEnemyState(w *ecs.World, e ecs.Entity, id component.StateID) bool {
	ctx, ok := newEnemyContext(w, e)
	if !ok || isTerminal(ctx.Brain.Current) {
		return false
	}
	changeState(ctx, id)
	return ctx.Brain.Current == id
}

// EnemyStateOf returns e's current state.
func EnemyStateOf(w *ecs.World, e ecs.Entity) component.StateID {
	brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind())
	if !ok {
		return ""
	}
	return brain.Current
}

// TryEnterBattleState makes e fight player unless it is already fighting.
func TryEnterBattleState(w *ecs.World, e, player ecs.Entity) {
	ctx, ok := newEnemyContext(w, e)
	if !ok {
		return
	}
	tryEnterBattle(ctx, player)
}

func tryEnterBattle(ctx *EnemyContext, player ecs.Entity) {
	if ctx.Is(component.StateBattle, component.StateAttack) || isTerminal(ctx.Brain.Current) {
		return
	}
	ctx.Brain.Target = uint64(player)
	changeState(ctx, component.StateBattle)
}

// HandleCounter stuns e when its counter window is open. A stunned enemy
// cannot be stunned again until a new window opens.
func HandleCounter(w *ecs.World, e ecs.Entity) bool {
	ctx, ok := newEnemyContext(w, e)
	if !ok || !ctx.Brain.CanBeStunned || ctx.Is(component.StateStunned) {
		return false
	}
	changeState(ctx, component.StateStunned)
	return ctx.Is(component.StateStunned)
}

// EnableCounterWindow opens or closes e's counter window.
func EnableCounterWindow(w *ecs.World, e ecs.Entity, enable bool) {
	if brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind()); ok {
		brain.CanBeStunned = enable
	}
}

// MakeUntargetable moves e to the untargetable layer. It keeps colliding
// with nothing so the corpse falls out of the level.
func MakeUntargetable(w *ecs.World, e ecs.Entity) {
	if brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind()); ok {
		brain.Untargetable = true
	}
	_ = ecs.Add(w, e, component.CollisionLayerComponent.Kind(), &component.CollisionLayer{
		Category: component.LayerUntargetable,
		Mask:     component.LayerUntargetable,
	})
}

// SubscribeEnemyEvents sends e back to idle whenever the player dies. The
// subscription ends with e.
func SubscribeEnemyEvents(w *ecs.World, e ecs.Entity) {
	w.Events().Subscribe(e, ecs.EventPlayerDied, func(w *ecs.World, _ ecs.Event) {
		if brain, ok := ecs.Get(w, e, component.EnemyBrainComponent.Kind()); ok {
			brain.Target = 0
		}
		ChangeEnemyState(w, e, component.StateIdle)
	})
}
