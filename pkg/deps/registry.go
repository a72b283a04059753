package deps

import (
	"io"

	"github.com/charmbracelet/log"
)

// Registry maps ecosystem tags to adapters and to the vulnerability
// database's ecosystem names.
//
// A Registry is populated before use and only read while enriching; it is
// not safe for concurrent modification.
type Registry struct {
	adapters  map[Ecosystem]Adapter
	overrides map[Ecosystem]string
}

// NewRegistry creates a registry holding the given adapters.
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{
		adapters:  make(map[Ecosystem]Adapter, len(adapters)),
		overrides: make(map[Ecosystem]string),
	}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds a, replacing any adapter for the same ecosystem.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Ecosystem()] = a
}

// Adapter returns the adapter for e.
func (r *Registry) Adapter(e Ecosystem) (Adapter, bool) {
	a, ok := r.adapters[e]
	return a, ok
}

// Ecosystems returns the registered ecosystems in report order.
func (r *Registry) Ecosystems() []Ecosystem {
	return sortEcosystems(r.adapters)
}

// SetVulnerabilityEcosystem overrides the vulnerability database name for e.
// An empty name removes the override.
func (r *Registry) SetVulnerabilityEcosystem(e Ecosystem, name string) {
	if name == "" {
		delete(r.overrides, e)
		return
	}
	r.overrides[e] = name
}

// VulnerabilityEcosystem translates e into the vulnerability database's
// vocabulary: an explicit override first, then the adapter's own name.
// Unknown ecosystems pass through unchanged.
func (r *Registry) VulnerabilityEcosystem(e Ecosystem) string {
	if name, ok := r.overrides[e]; ok {
		return name
	}
	if a, ok := r.adapters[e]; ok {
		return a.VulnerabilityEcosystem()
	}
	return string(e)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
