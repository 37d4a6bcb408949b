// Package registry provides a global registry for coaching providers.
// Providers register themselves in init() functions, allowing the CLI to
// pick one by name from configuration without hardcoded dependencies.
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/typestrike/internal/config"
	"github.com/vovakirdan/typestrike/internal/stats"
)

// ErrUnknownProvider is returned by Create for unregistered names.
var ErrUnknownProvider = errors.New("registry: unknown coach provider")

// Coach produces short coaching feedback for a finished session.
type Coach interface {
	// Name returns the provider identifier (e.g., "local", "remote").
	Name() string

	// RequestFeedback returns coaching text for the session. It must honour
	// ctx cancellation.
	RequestFeedback(ctx context.Context, req stats.FeedbackRequest) (string, error)
}

// Factory builds a provider from its configuration.
type Factory func(cfg config.CoachConfig) (Coach, error)

var (
	factories = make(map[string]Factory)
	mu        sync.RWMutex
)

// Register adds a provider factory to the registry.
// Panics if a provider with the same name is already registered.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("registry: coach provider %q already registered", name))
	}
	factories[name] = f
}

// List returns the registered provider names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Create builds the provider named by cfg.Provider.
func Create(cfg config.CoachConfig) (Coach, error) {
	mu.RLock()
	f, ok := factories[cfg.Provider]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, cfg.Provider)
	}
	return f(cfg)
}

// Exists checks if a provider with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[name]
	return ok
}
