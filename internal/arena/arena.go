// Package arena assembles a playable fight from config: a ground strip,
// the player and the configured enemies, ticked by the ecs scheduler.
package arena

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/milk9111/hollowblade/common"
	"github.com/milk9111/hollowblade/config"
	"github.com/milk9111/hollowblade/ecs"
	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/ecs/entity"
	"github.com/milk9111/hollowblade/ecs/system"
	"github.com/milk9111/hollowblade/inventory"
	"github.com/milk9111/hollowblade/prefabs"
)

const groundThickness = 1.0

type Option func(*options)

type options struct {
	input ecs.System
	store inventory.Store
}

// WithInput replaces the headless autopilot with sys, run first each tick.
func WithInput(sys ecs.System) Option {
	return func(o *options) { o.input = sys }
}

// WithStore persists the player inventory in store.
func WithStore(store inventory.Store) Option {
	return func(o *options) { o.store = store }
}

// Arena owns the world and every system ticking it.
type Arena struct {
	cfg    *config.Config
	logger *zap.Logger

	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	registry  *prefabs.Registry
	scripts   *system.AttackScripts
	factory   *entity.Factory

	player    ecs.Entity
	inventory *inventory.Player
	store     inventory.Store

	reloads <-chan string
}

func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts ...Option) (*Arena, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	src := prefabs.Source{Dir: cfg.Prefabs.Dir}
	a := &Arena{
		cfg:      cfg,
		logger:   logger,
		world:    ecs.NewWorld(ecs.WithRand(common.NewRand(cfg.Sim.Seed)), ecs.WithLogger(logger)),
		physics:  system.NewPhysicsSystem(),
		registry: prefabs.NewRegistry(src),
		scripts:  system.NewAttackScripts(src.LoadScript),
		store:    o.store,
	}
	a.factory = entity.NewFactory(a.registry, a.physics)

	input := o.input
	if input == nil {
		input = NewAutopilot()
	}
	a.scheduler = ecs.NewScheduler(
		input,
		system.NewPlayerControllerSystem(a.physics),
		system.NewEnemyAISystem(a.physics, a.scripts),
		system.NewRebattleSystem(),
		system.NewHealthRegenSystem(),
		system.NewCooldownSystem(),
		system.NewWhiteFlashSystem(),
		system.NewTTLSystem(),
	)
	a.scheduler.AddTo(ecs.PhasePhysics, system.NewKnockbackSystem())
	a.scheduler.AddTo(ecs.PhasePhysics, a.physics)

	if err := a.populate(); err != nil {
		return nil, err
	}
	if err := a.setupInventory(ctx); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) populate() error {
	arena := a.cfg.Arena
	if _, err := a.factory.NewGround(a.world, 0, -groundThickness/2, arena.GroundWidth, groundThickness); err != nil {
		return fmt.Errorf("arena: %w", err)
	}

	player, err := a.factory.NewPlayer(a.world, arena.Player, arena.PlayerX, 0)
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	a.player = player

	for _, placement := range arena.Enemies {
		e, err := a.factory.NewEnemy(a.world, placement.Prefab, placement.X, 0)
		if err != nil {
			return fmt.Errorf("arena: %w", err)
		}
		a.logger.Debug("enemy placed",
			zap.String("prefab", placement.Prefab),
			zap.Stringer("entity", e),
			zap.Float64("x", placement.X),
		)
	}
	return nil
}

func (a *Arena) World() *ecs.World { return a.world }

func (a *Arena) Physics() *system.PhysicsSystem { return a.physics }

func (a *Arena) Player() ecs.Entity { return a.player }

func (a *Arena) Inventory() *inventory.Player { return a.inventory }

// WatchReloads feeds changed prefab paths into the arena. They are applied
// on the sim goroutine at the start of the next Step.
func (a *Arena) WatchReloads(ch <-chan string) {
	a.reloads = ch
}

// Step drains pending reloads, advances one fixed tick and logs the
// notable events it produced.
func (a *Arena) Step() {
	a.drainReloads()
	a.scheduler.Tick(a.world, a.cfg.Sim.Delta())
	a.logEvents()
}

func (a *Arena) drainReloads() {
	for {
		select {
		case path, ok := <-a.reloads:
			if !ok {
				a.reloads = nil
				return
			}
			a.Reload(path)
		default:
			return
		}
	}
}

// Reload invalidates the cached spec or attack script for path. Entities
// already built keep their components; new spawns use the fresh spec.
func (a *Arena) Reload(path string) {
	if name := prefabs.ScriptName(path); name != "" {
		a.scripts.Invalidate(name)
		a.logger.Info("attack script reloaded", zap.String("script", name))
		return
	}
	if a.registry.Invalidate(path) {
		a.logger.Info("prefab reloaded", zap.String("path", path))
	}
}

func (a *Arena) logEvents() {
	for _, evt := range a.world.Events().Drain() {
		switch evt.Type {
		case ecs.EventEntityDied:
			a.logger.Info("entity died", zap.Stringer("entity", evt.Source), zap.Float64("t", a.world.Now()))
		case ecs.EventCountered:
			a.logger.Info("counter", zap.Stringer("enemy", evt.Source))
		case ecs.EventSpawned:
			a.logger.Info("spawned", zap.Stringer("entity", evt.Source), zap.Stringer("parent", evt.Other))
		}
	}
}

// Done reports whether the fight is over: the player is dead or no enemy
// is left.
func (a *Arena) Done() bool {
	if h, ok := ecs.Get(a.world, a.player, component.HealthComponent.Kind()); !ok || h.Dead {
		return true
	}
	return len(a.world.Query(component.EnemyTagComponent.Kind())) == 0
}

// Run steps until ctx is done, the fight is over or MaxTicks is reached.
// With reloads attached it paces ticks in real time so edits land
// mid-fight; otherwise it runs flat out.
func (a *Arena) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if a.reloads != nil {
		t := time.NewTicker(time.Duration(a.cfg.Sim.Delta() * float64(time.Second)))
		defer t.Stop()
		tick = t.C
	}

	for n := 0; a.cfg.Sim.MaxTicks == 0 || n < a.cfg.Sim.MaxTicks; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return nil
		}

		a.Step()
		if a.Done() {
			break
		}
	}
	a.logSummary()
	return nil
}

// Summary is the outcome of a run.
type Summary struct {
	Ticks         uint64
	Elapsed       float64
	PlayerHealth  float64
	PlayerDead    bool
	EnemiesAlive  int
	EnemiesPlaced int
}

func (a *Arena) Summary() Summary {
	s := Summary{
		Ticks:         a.world.Clock().Ticks(),
		Elapsed:       a.world.Now(),
		EnemiesPlaced: len(a.cfg.Arena.Enemies),
	}
	if h, ok := ecs.Get(a.world, a.player, component.HealthComponent.Kind()); ok {
		s.PlayerHealth = h.Current
		s.PlayerDead = h.Dead
	} else {
		s.PlayerDead = true
	}
	for _, e := range a.world.Query(component.EnemyTagComponent.Kind()) {
		if h, ok := ecs.Get(a.world, e, component.HealthComponent.Kind()); ok && !h.Dead {
			s.EnemiesAlive++
		}
	}
	return s
}

func (a *Arena) logSummary() {
	s := a.Summary()
	a.logger.Info("arena finished",
		zap.Uint64("ticks", s.Ticks),
		zap.Float64("elapsed", s.Elapsed),
		zap.Float64("player_health", s.PlayerHealth),
		zap.Bool("player_dead", s.PlayerDead),
		zap.Int("enemies_alive", s.EnemiesAlive),
	)
}
