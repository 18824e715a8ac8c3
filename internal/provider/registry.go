package provider

import (
	"sync"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// Factory builds a ContentProvider from injected scan options.
type Factory func(opts ScanOptions) ContentProvider

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

// Register registers a dialect factory. Duplicate names are ignored.
func Register(name string, factory Factory) {
	if factory == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return
	}
	registry[name] = factory
}

// New constructs the provider registered under name.
func New(name string, opts ScanOptions) (ContentProvider, error) {
	registryMu.RLock()
	factory := registry[name]
	registryMu.RUnlock()
	if factory == nil {
		return nil, errors.ConfigError("unknown content provider").
			WithContext("provider", name).Build()
	}
	return factory(opts), nil
}

// Names returns the registered dialect identifiers.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}
