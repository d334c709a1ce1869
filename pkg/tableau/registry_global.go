package tableau

import "sync"

// Well-known logic names accepted by NewEngine.
const (
	LogicCPL  = "CPL"
	LogicWK3  = "WK3"
	LogicWKRQ = "wKrQ"
	LogicFDE  = "FDE"
)

var (
	logicsMu sync.RWMutex
	logics   = map[string]*Registry{}
)

// Register installs a logic's rule registry under name, making it
// available to NewEngine(name). This is the API spec.md §6 calls
// `register(name, signs, contradiction_fn, rules)`: the contradiction
// function lives on each Sign value (§4.2), and signs/rules live on the
// Registry itself, so registering a logic is exactly installing its
// Registry.
func Register(name string, registry *Registry) {
	logicsMu.Lock()
	defer logicsMu.Unlock()
	logics[name] = registry
}

// Lookup returns the registry installed under name.
func Lookup(name string) (*Registry, bool) {
	logicsMu.RLock()
	defer logicsMu.RUnlock()
	r, ok := logics[name]
	return r, ok
}

// RegisteredLogics returns the names of all currently registered logics,
// primarily for diagnostics and tests.
func RegisteredLogics() []string {
	logicsMu.RLock()
	defer logicsMu.RUnlock()
	names := make([]string, 0, len(logics))
	for n := range logics {
		names = append(names, n)
	}
	return names
}
