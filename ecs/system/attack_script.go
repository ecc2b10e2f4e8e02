package system

import (
	"fmt"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// AttackScriptInput is exposed to attack scripts as globals.
type AttackScriptInput struct {
	Physical      float64
	Elemental     float64
	Distance      float64
	HealthPercent float64
	Attacks       int
}

// AttackScriptOutput is read back from the script globals after a run.
type AttackScriptOutput struct {
	Physical  float64
	Elemental float64
	LungeX    float64
	LungeY    float64
}

// AttackScripts compiles tengo attack scripts on first use and caches
// them until invalidated by a reload.
type AttackScripts struct {
	mu       sync.Mutex
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

func NewAttackScripts(load func(name string) ([]byte, error)) *AttackScripts {
	return &AttackScripts{
		load:     load,
		compiled: make(map[string]*tengo.Compiled),
	}
}

// Invalidate drops the cached compilation of name, or of every script when
// name is empty.
func (s *AttackScripts) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.compiled = make(map[string]*tengo.Compiled)
		return
	}
	delete(s.compiled, name)
}

func (s *AttackScripts) get(name string) (*tengo.Compiled, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.compiled[name]; ok {
		return c, nil
	}
	if s.load == nil {
		return nil, fmt.Errorf("attack script %q: no loader", name)
	}
	src, err := s.load(name)
	if err != nil {
		return nil, fmt.Errorf("attack script %q: %w", name, err)
	}

	script := tengo.NewScript(src)
	for _, v := range []string{"physical", "elemental", "distance", "health_percent", "lunge_x", "lunge_y"} {
		_ = script.Add(v, 0.0)
	}
	_ = script.Add("attacks", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("attack script %q: compile: %w", name, err)
	}
	s.compiled[name] = compiled
	return compiled, nil
}

// Run executes name against in. Globals the script leaves untouched keep
// their input values.
func (s *AttackScripts) Run(name string, in AttackScriptInput) (AttackScriptOutput, error) {
	compiled, err := s.get(name)
	if err != nil {
		return AttackScriptOutput{}, err
	}
	c := compiled.Clone()

	vars := map[string]any{
		"physical":       in.Physical,
		"elemental":      in.Elemental,
		"distance":       in.Distance,
		"health_percent": in.HealthPercent,
		"attacks":        in.Attacks,
		"lunge_x":        0.0,
		"lunge_y":        0.0,
	}
	for k, v := range vars {
		if err := c.Set(k, v); err != nil {
			return AttackScriptOutput{}, fmt.Errorf("attack script %q: set %s: %w", name, k, err)
		}
	}
	if err := c.Run(); err != nil {
		return AttackScriptOutput{}, fmt.Errorf("attack script %q: run: %w", name, err)
	}

	return AttackScriptOutput{
		Physical:  c.Get("physical").Float(),
		Elemental: c.Get("elemental").Float(),
		LungeX:    c.Get("lunge_x").Float(),
		LungeY:    c.Get("lunge_y").Float(),
	}, nil
}
