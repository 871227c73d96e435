package rules

import "sync"

// globalRegistry is the single global registry for all validation rules.
var globalRegistry = &Registry{
	defs: make(map[string]Def),
}

// Registry stores registered validation rules keyed by ID.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]Def
}

// Register adds a rule to the global registry.
// Call this from init() functions in rule files.
func Register(def Def) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.defs[def.ID] = def
}

// Get returns a rule by its ID.
func Get(id string) (Def, bool) {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	def, ok := globalRegistry.defs[id]
	return def, ok
}

// All returns the built-in rules in canonical order, followed by any
// additionally registered rules in unspecified order.
func All() []Def {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	defs := make([]Def, 0, len(globalRegistry.defs))
	seen := make(map[string]struct{}, len(globalRegistry.defs))
	for _, id := range DefaultRuleIDs {
		if def, ok := globalRegistry.defs[id]; ok {
			defs = append(defs, def)
			seen[id] = struct{}{}
		}
	}
	for id, def := range globalRegistry.defs {
		if _, ok := seen[id]; !ok {
			defs = append(defs, def)
		}
	}
	return defs
}

// Count returns the number of registered rules.
func Count() int {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	return len(globalRegistry.defs)
}
