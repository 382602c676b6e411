package repositories

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	domainRepos "github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// ErrUnknownProvider is returned when no factory is registered under a name.
var ErrUnknownProvider = errors.New("unknown provider type")

// ProviderFactory builds a ProviderRepository that authenticates with token.
type ProviderFactory func(token string) domainRepos.ProviderRepository

// ProviderRegistry maps provider type names (case-insensitive) to their factories.
type ProviderRegistry struct {
	factories map[string]ProviderFactory
}

// NewProviderRegistry creates an empty provider registry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{factories: make(map[string]ProviderFactory)}
}

// Register adds or replaces the factory for name (e.g. "github").
func (r *ProviderRegistry) Register(name string, factory ProviderFactory) {
	r.factories[normalizeProviderName(name)] = factory
}

// Get builds the provider registered under name.
func (r *ProviderRegistry) Get(name, token string) (domainRepos.ProviderRepository, error) {
	factory, ok := r.factories[normalizeProviderName(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProvider, name, strings.Join(r.Names(), ", "))
	}
	return factory(token), nil
}

// Names returns the registered provider names in sorted order.
func (r *ProviderRegistry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeProviderName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
