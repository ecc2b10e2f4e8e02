package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
)

// Registry caches parsed prefab specs. The watcher goroutine reports
// changes and the sim goroutine calls Invalidate, so lookups after a reload
// see the new file.
type Registry struct {
	src Source

	mu      sync.RWMutex
	players map[string]*PlayerSpec
	enemies map[string]*EnemySpec
	items   map[string]*ItemCatalogSpec
}

func NewRegistry(src Source) *Registry {
	return &Registry{
		src:     src,
		players: make(map[string]*PlayerSpec),
		enemies: make(map[string]*EnemySpec),
		items:   make(map[string]*ItemCatalogSpec),
	}
}

func (r *Registry) Player(name string) (*PlayerSpec, error) {
	return cached(r, r.players, name, r.src.LoadPlayerSpec)
}

func (r *Registry) Enemy(name string) (*EnemySpec, error) {
	return cached(r, r.enemies, name, r.src.LoadEnemySpec)
}

func (r *Registry) Items(name string) (*ItemCatalogSpec, error) {
	return cached(r, r.items, name, r.src.LoadItemCatalog)
}

// Invalidate drops every cached spec loaded from path. It reports whether
// anything was dropped.
func (r *Registry) Invalidate(path string) bool {
	key := specKey(path)
	r.mu.Lock()
	defer r.mu.Unlock()

	_, p := r.players[key]
	_, e := r.enemies[key]
	_, i := r.items[key]
	delete(r.players, key)
	delete(r.enemies, key)
	delete(r.items, key)
	return p || e || i
}

func cached[T any](r *Registry, m map[string]*T, name string, load func(string) (*T, error)) (*T, error) {
	key := specKey(name)
	r.mu.RLock()
	spec, ok := m[key]
	r.mu.RUnlock()
	if ok {
		return spec, nil
	}

	spec, err := load(key)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	m[key] = spec
	r.mu.Unlock()
	return spec, nil
}

// specKey reduces a path reported by the watcher or a prefab reference to
// the file name specs are cached under.
func specKey(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(filepath.Base(path)), "/")
}

// ScriptName returns the script name for a changed script path, or "" when
// path is not a script.
func ScriptName(path string) string {
	if !isScriptFile(path) {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
