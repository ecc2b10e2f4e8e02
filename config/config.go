// Package config provides Viper-based configuration loading for the arena
// simulation.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimConfig holds fixed-step simulation settings.
type SimConfig struct {
	// TickRate is the number of simulation ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// Seed feeds the world random source so runs can be replayed.
	Seed uint64 `mapstructure:"seed"`
	// Headless runs the simulation without opening a window.
	Headless bool `mapstructure:"headless"`
	// MaxTicks stops a headless run after this many ticks. Zero runs until
	// the player dies or every enemy is gone.
	MaxTicks int `mapstructure:"max_ticks"`
}

// Delta returns the fixed step in seconds.
//
// Precondition: TickRate must be positive.
func (s SimConfig) Delta() float64 {
	return 1 / float64(s.TickRate)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// PrefabsConfig controls where prefab specs and attack scripts are read from.
type PrefabsConfig struct {
	// Dir overrides the embedded prefabs when a file of the same name exists.
	Dir string `mapstructure:"dir"`
	// HotReload watches Dir and reloads changed specs and scripts.
	HotReload bool `mapstructure:"hot_reload"`
}

// EnemyPlacement places one enemy prefab in the arena.
type EnemyPlacement struct {
	Prefab string  `mapstructure:"prefab"`
	X      float64 `mapstructure:"x"`
}

// ArenaConfig describes the arena the runner builds.
type ArenaConfig struct {
	Player      string           `mapstructure:"player"`
	PlayerX     float64          `mapstructure:"player_x"`
	GroundWidth float64          `mapstructure:"ground_width"`
	Enemies     []EnemyPlacement `mapstructure:"enemies"`
	// Items are granted to the player inventory on start.
	Items []string `mapstructure:"items"`
}

// StoreConfig holds Redis persistence settings for the player inventory.
type StoreConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Addr      string `mapstructure:"addr"`
	KeyPrefix string `mapstructure:"key_prefix"`
	// Profile names the saved inventory to load and write back.
	Profile string `mapstructure:"profile"`
}

// Config is the top-level application configuration.
type Config struct {
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
	Prefabs PrefabsConfig `mapstructure:"prefabs"`
	Arena   ArenaConfig   `mapstructure:"arena"`
	Store   StoreConfig   `mapstructure:"store"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	for _, err := range []error{
		validateSim(c.Sim),
		validateLogging(c.Logging),
		validatePrefabs(c.Prefabs),
		validateArena(c.Arena),
		validateStore(c.Store),
	} {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateSim(s SimConfig) error {
	var errs []string
	if s.TickRate < 1 || s.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("sim.tick_rate must be 1-1000, got %d", s.TickRate))
	}
	if s.MaxTicks < 0 {
		errs = append(errs, fmt.Sprintf("sim.max_ticks must be >= 0, got %d", s.MaxTicks))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validatePrefabs(p PrefabsConfig) error {
	if p.HotReload && p.Dir == "" {
		return errors.New("prefabs.dir must be set when prefabs.hot_reload is enabled")
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	var errs []string
	if a.Player == "" {
		errs = append(errs, "arena.player must not be empty")
	}
	if a.GroundWidth <= 0 {
		errs = append(errs, fmt.Sprintf("arena.ground_width must be positive, got %g", a.GroundWidth))
	}
	for i, e := range a.Enemies {
		if e.Prefab == "" {
			errs = append(errs, fmt.Sprintf("arena.enemies[%d].prefab must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateStore(s StoreConfig) error {
	if !s.Enabled {
		return nil
	}
	var errs []string
	if s.Addr == "" {
		errs = append(errs, "store.addr must not be empty when the store is enabled")
	}
	if s.Profile == "" {
		errs = append(errs, "store.profile must not be empty when the store is enabled")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path loads defaults only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with HOLLOW_ prefix
	v.SetEnvPrefix("HOLLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("sim.tick_rate", 60)
	v.SetDefault("sim.seed", 1)
	v.SetDefault("sim.headless", true)
	v.SetDefault("sim.max_ticks", 3600)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.hot_reload", false)

	v.SetDefault("arena.player", "player.yaml")
	v.SetDefault("arena.player_x", 0)
	v.SetDefault("arena.ground_width", 40)
	v.SetDefault("arena.enemies", []map[string]any{
		{"prefab": "skeleton.yaml", "x": 6},
		{"prefab": "slime.yaml", "x": -6},
	})
	v.SetDefault("arena.items", []string{"iron_sword", "leather_armor", "health_potion"})

	v.SetDefault("store.enabled", false)
	v.SetDefault("store.addr", "localhost:6379")
	v.SetDefault("store.key_prefix", "hollowblade")
	v.SetDefault("store.profile", "default")
}
