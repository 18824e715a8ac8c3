// Package theme provides the closed set of built-in bundle themes plus the
// "custom" escape hatch, behind a registry so new built-ins register without
// scattering conditionals.
package theme

import (
	"os"
	"sync"

	"git.home.luguber.info/inful/helpbundler/internal/errors"
)

// CustomName selects a user-supplied stylesheet instead of a built-in theme.
const CustomName = "custom"

// Theme supplies the stylesheet written into every generated bundle.
type Theme interface {
	Name() string
	Stylesheet() ([]byte, error)
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Theme{}
)

// Register registers a Theme implementation. Duplicate names are ignored.
func Register(t Theme) {
	if t == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[t.Name()]; exists {
		return
	}
	registry[t.Name()] = t
}

// Names returns the registered built-in theme names.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Resolve selects a theme by name. "custom" requires a stylesheet path; any
// other name must be a registered built-in.
func Resolve(name, customStylesheetPath string) (Theme, error) {
	if name == CustomName {
		if customStylesheetPath == "" {
			return nil, errors.ConfigError("custom theme requires a stylesheet path").Build()
		}
		return &customTheme{path: customStylesheetPath}, nil
	}

	registryMu.RLock()
	t := registry[name]
	registryMu.RUnlock()
	if t == nil {
		return nil, errors.ConfigError("unknown theme").
			WithContext("theme", name).Build()
	}
	return t, nil
}

// customTheme reads its stylesheet from a user-supplied path at build time.
type customTheme struct {
	path string
}

func (t *customTheme) Name() string { return CustomName }

func (t *customTheme) Stylesheet() ([]byte, error) {
	css, err := os.ReadFile(t.path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "custom stylesheet unreadable").
			WithContext("path", t.path).Build()
	}
	return css, nil
}
