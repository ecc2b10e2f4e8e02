package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/hollowblade/ecs/component"
	"github.com/milk9111/hollowblade/stat"
)

// loadSpecFrom decodes filename over base, so fields the file leaves out
// keep base's values.
func loadSpecFrom[T any](src Source, filename string, base T) (T, error) {
	var zero T
	data, err := src.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	spec := base
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec2Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec2Spec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func vec2(v cp.Vector) Vec2Spec {
	return Vec2Spec{X: v.X, Y: v.Y}
}

type TransformSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	ScaleX float64 `yaml:"scale_x"`
	ScaleY float64 `yaml:"scale_y"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

// StatsSpec lists base stat values by stat type name, e.g. max_health.
type StatsSpec map[string]float64

// Setup converts the spec to a stat setup, rejecting unknown stat names.
func (s StatsSpec) Setup() (stat.Setup, error) {
	probe := &stat.Sheet{}
	setup := make(stat.Setup, len(s))
	var unknown []string
	for name, v := range s {
		t := stat.Type(name)
		if probe.StatByType(t) == nil {
			unknown = append(unknown, name)
			continue
		}
		setup[t] = v
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("prefabs: unknown stats %s", strings.Join(unknown, ", "))
	}
	return setup, nil
}

type KnockbackSpec struct {
	Power          Vec2Spec `yaml:"power"`
	Duration       float64  `yaml:"duration"`
	HeavyPower     Vec2Spec `yaml:"heavy_power"`
	HeavyDuration  float64  `yaml:"heavy_duration"`
	HeavyThreshold float64  `yaml:"heavy_threshold"`
}

func (k KnockbackSpec) Tuning() component.KnockbackTuning {
	return component.KnockbackTuning{
		Power:          k.Power.Vector(),
		Duration:       k.Duration,
		HeavyPower:     k.HeavyPower.Vector(),
		HeavyDuration:  k.HeavyDuration,
		HeavyThreshold: k.HeavyThreshold,
	}
}

type HealthSpec struct {
	RegenEnabled  bool          `yaml:"regen_enabled"`
	RegenInterval float64       `yaml:"regen_interval"`
	Knockback     KnockbackSpec `yaml:"knockback"`
}

type CombatSpec struct {
	AttackRadius    float64          `yaml:"attack_radius"`
	AttackOffsetX   float64          `yaml:"attack_offset_x"`
	AttackOffsetY   float64          `yaml:"attack_offset_y"`
	CounterRadius   float64          `yaml:"counter_radius"`
	CounterRecovery float64          `yaml:"counter_recovery"`
	Scale           stat.DamageScale `yaml:"scale"`
}

// EnemyAISpec mirrors component.Enemy. Missing keys keep the stock tuning.
type EnemyAISpec struct {
	IdleTime            float64  `yaml:"idle_time"`
	MoveSpeed           float64  `yaml:"move_speed"`
	PlayerCheckDistance float64  `yaml:"player_check_distance"`
	BattleMoveSpeed     float64  `yaml:"battle_move_speed"`
	AttackDistance      float64  `yaml:"attack_distance"`
	AttackCooldown      float64  `yaml:"attack_cooldown"`
	CanChasePlayer      bool     `yaml:"can_chase_player"`
	BattleTimeDuration  float64  `yaml:"battle_time_duration"`
	MinRetreatDistance  float64  `yaml:"min_retreat_distance"`
	RetreatVelocity     Vec2Spec `yaml:"retreat_velocity"`
	AttackWindup        float64  `yaml:"attack_windup"`
	AttackDuration      float64  `yaml:"attack_duration"`
	StunnedDuration     float64  `yaml:"stunned_duration"`
	StunnedVelocity     Vec2Spec `yaml:"stunned_velocity"`
	DeathLaunch         Vec2Spec `yaml:"death_launch"`
	DestroyDelay        float64  `yaml:"destroy_delay"`
}

func aiSpecFrom(e component.Enemy) EnemyAISpec {
	return EnemyAISpec{
		IdleTime:            e.IdleTime,
		MoveSpeed:           e.MoveSpeed,
		PlayerCheckDistance: e.PlayerCheckDistance,
		BattleMoveSpeed:     e.BattleMoveSpeed,
		AttackDistance:      e.AttackDistance,
		AttackCooldown:      e.AttackCooldown,
		CanChasePlayer:      e.CanChasePlayer,
		BattleTimeDuration:  e.BattleTimeDuration,
		MinRetreatDistance:  e.MinRetreatDistance,
		RetreatVelocity:     vec2(e.RetreatVelocity),
		AttackWindup:        e.AttackWindup,
		AttackDuration:      e.AttackDuration,
		StunnedDuration:     e.StunnedDuration,
		StunnedVelocity:     vec2(e.StunnedVelocity),
		DeathLaunch:         vec2(e.DeathLaunch),
		DestroyDelay:        e.DestroyDelay,
	}
}

func (a EnemyAISpec) Tuning() component.Enemy {
	e := component.DefaultEnemy()
	e.IdleTime = a.IdleTime
	e.MoveSpeed = a.MoveSpeed
	e.PlayerCheckDistance = a.PlayerCheckDistance
	e.BattleMoveSpeed = a.BattleMoveSpeed
	e.AttackDistance = a.AttackDistance
	e.AttackCooldown = a.AttackCooldown
	e.CanChasePlayer = a.CanChasePlayer
	e.BattleTimeDuration = a.BattleTimeDuration
	e.MinRetreatDistance = a.MinRetreatDistance
	e.RetreatVelocity = a.RetreatVelocity.Vector()
	e.AttackWindup = a.AttackWindup
	e.AttackDuration = a.AttackDuration
	e.StunnedDuration = a.StunnedDuration
	e.StunnedVelocity = a.StunnedVelocity.Vector()
	e.DeathLaunch = a.DeathLaunch.Vector()
	e.DestroyDelay = a.DestroyDelay
	return e
}

// SlimeSpec makes an enemy split into Child prefabs on death.
type SlimeSpec struct {
	Child      string  `yaml:"child"`
	SplitCount int     `yaml:"split_count"`
	Penalty    float64 `yaml:"penalty"`
	Increase   float64 `yaml:"increase"`
}

type PlayerSpec struct {
	Name       string        `yaml:"name"`
	MoveSpeed  float64       `yaml:"move_speed"`
	JumpSpeed  float64       `yaml:"jump_speed"`
	Transform  TransformSpec `yaml:"transform"`
	Collider   ColliderSpec  `yaml:"collider"`
	Stats      StatsSpec     `yaml:"stats"`
	Health     HealthSpec    `yaml:"health"`
	Combat     CombatSpec    `yaml:"combat"`
	DebugColor *YAMLColor    `yaml:"debug_color"`
}

type EnemySpec struct {
	Name      string        `yaml:"name"`
	AI        EnemyAISpec   `yaml:"ai"`
	Transform TransformSpec `yaml:"transform"`
	Collider  ColliderSpec  `yaml:"collider"`
	Stats     StatsSpec     `yaml:"stats"`
	Health    HealthSpec    `yaml:"health"`
	Combat    CombatSpec    `yaml:"combat"`
	// Script names a tengo attack script under scripts/.
	Script     string     `yaml:"script"`
	Slime      *SlimeSpec `yaml:"slime"`
	DebugColor *YAMLColor `yaml:"debug_color"`
}

func defaultTransform() TransformSpec {
	return TransformSpec{ScaleX: 1, ScaleY: 1}
}

func defaultCollider() ColliderSpec {
	return ColliderSpec{Width: 1, Height: 1, Mass: 1}
}

func defaultHealth() HealthSpec {
	kb := component.DefaultKnockbackTuning()
	return HealthSpec{
		RegenEnabled:  true,
		RegenInterval: 1,
		Knockback: KnockbackSpec{
			Power:          vec2(kb.Power),
			Duration:       kb.Duration,
			HeavyPower:     vec2(kb.HeavyPower),
			HeavyDuration:  kb.HeavyDuration,
			HeavyThreshold: kb.HeavyThreshold,
		},
	}
}

func defaultCombat() CombatSpec {
	return CombatSpec{
		AttackRadius:  1,
		AttackOffsetX: 0.8,
		Scale:         stat.DefaultDamageScale(),
	}
}

func defaultPlayerSpec() PlayerSpec {
	combat := defaultCombat()
	combat.CounterRecovery = 0.3
	return PlayerSpec{
		MoveSpeed: 6,
		JumpSpeed: 14,
		Transform: defaultTransform(),
		Collider:  defaultCollider(),
		Health:    defaultHealth(),
		Combat:    combat,
	}
}

func defaultEnemySpec() EnemySpec {
	return EnemySpec{
		AI:        aiSpecFrom(component.DefaultEnemy()),
		Transform: defaultTransform(),
		Collider:  defaultCollider(),
		Health:    defaultHealth(),
		Combat:    defaultCombat(),
	}
}

func validateCollider(c ColliderSpec) []string {
	var errs []string
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("collider must have a positive size, got %gx%g", c.Width, c.Height))
	}
	if c.Mass < 0 {
		errs = append(errs, "collider.mass must not be negative")
	}
	return errs
}

func (s *PlayerSpec) Validate() error {
	errs := validateCollider(s.Collider)
	if _, err := s.Stats.Setup(); err != nil {
		errs = append(errs, err.Error())
	}
	if s.MoveSpeed < 0 {
		errs = append(errs, "move_speed must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("player %q: %s", s.Name, strings.Join(errs, "; "))
	}
	return nil
}

func (s *EnemySpec) Validate() error {
	errs := validateCollider(s.Collider)
	if _, err := s.Stats.Setup(); err != nil {
		errs = append(errs, err.Error())
	}
	if s.AI.AttackWindup > s.AI.AttackDuration {
		errs = append(errs, "ai.attack_windup must not exceed ai.attack_duration")
	}
	if s.Slime != nil {
		if s.Slime.SplitCount < 0 {
			errs = append(errs, "slime.split_count must not be negative")
		}
		if s.Slime.SplitCount > 0 && s.Slime.Child == "" {
			errs = append(errs, "slime.child must be set when slime.split_count > 0")
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("enemy %q: %s", s.Name, strings.Join(errs, "; "))
	}
	return nil
}

// LoadPlayerSpec reads a player prefab over the stock player tuning.
func (s Source) LoadPlayerSpec(name string) (*PlayerSpec, error) {
	spec, err := loadSpecFrom(s, name, defaultPlayerSpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// LoadEnemySpec reads an enemy prefab over the stock enemy tuning.
func (s Source) LoadEnemySpec(name string) (*EnemySpec, error) {
	spec, err := loadSpecFrom(s, name, defaultEnemySpec())
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

type ModifierSpec struct {
	Stat  string  `yaml:"stat"`
	Kind  string  `yaml:"kind"`
	Value float64 `yaml:"value"`
}

type ItemSpec struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Type      string         `yaml:"type"`
	MaxStack  int            `yaml:"max_stack"`
	Modifiers []ModifierSpec `yaml:"modifiers"`
}

type ItemCatalogSpec struct {
	Items []ItemSpec `yaml:"items"`
}

var errEmptyID = errors.New("item id must not be empty")

// LoadItemCatalog reads the item database.
func (s Source) LoadItemCatalog(name string) (*ItemCatalogSpec, error) {
	spec, err := loadSpecFrom(s, name, ItemCatalogSpec{})
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(spec.Items))
	for i, item := range spec.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("prefabs: %s: items[%d]: %w", name, i, errEmptyID)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("prefabs: %s: duplicate item %q", name, item.ID)
		}
		seen[item.ID] = true
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
