package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings are loaded by the entry point (they depend on the --config flag)
// and provided before this runs.
func RegisterProviders(container *dig.Container) error {
	return container.Provide(func(settings *Settings) *SafetyPolicy {
		return settings.NewSafetyPolicy()
	})
}
