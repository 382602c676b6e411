//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// SettingsBuilder helps create test settings with a fluent interface.
// It starts from the application defaults with both secrets filled in.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	settings entities.Settings
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		settings:    defaultTestSettings(),
	}
}

func defaultTestSettings() entities.Settings {
	settings := *entities.NewDefaultSettings()
	settings.Provider.Token = "test-token"
	settings.Agents.APIKey = "test-api-key"
	settings.Store.Path = "runs.db"
	return settings
}

// WithProvider sets the provider type and token.
func (b *SettingsBuilder) WithProvider(providerType, token string) *SettingsBuilder {
	b.settings.Provider.Type = providerType
	b.settings.Provider.Token = token
	return b
}

// WithAPIKey sets the chat model API key.
func (b *SettingsBuilder) WithAPIKey(apiKey string) *SettingsBuilder {
	b.settings.Agents.APIKey = apiKey
	return b
}

// WithMaxTurns sets the turn cap of the team.
func (b *SettingsBuilder) WithMaxTurns(maxTurns int) *SettingsBuilder {
	b.settings.Agents.MaxTurns = maxTurns
	return b
}

// WithMaxToolIterations sets the tool-call iterations per turn.
func (b *SettingsBuilder) WithMaxToolIterations(iterations int) *SettingsBuilder {
	b.settings.Agents.MaxToolIterations = iterations
	return b
}

// WithTerminationPhrase sets the phrase that ends a run.
func (b *SettingsBuilder) WithTerminationPhrase(phrase string) *SettingsBuilder {
	b.settings.Agents.TerminationPhrase = phrase
	return b
}

// WithMaxFileChars sets the truncation limit.
func (b *SettingsBuilder) WithMaxFileChars(maxFileChars int) *SettingsBuilder {
	b.settings.Safety.MaxFileChars = maxFileChars
	return b
}

// WithStorePath sets the run history file.
func (b *SettingsBuilder) WithStorePath(path string) *SettingsBuilder {
	b.settings.Store.Path = path
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// WithConfigPath sets the file the settings claim to be loaded from.
func (b *SettingsBuilder) WithConfigPath(path string) *SettingsBuilder {
	b.settings.ConfigPath = path
	return b
}

// BuildSettings creates the settings with a concrete return type.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := b.settings
	settings.Safety.IgnoredExtensions = append([]string{}, b.settings.Safety.IgnoredExtensions...)
	settings.Safety.IgnoredFiles = append([]string{}, b.settings.Safety.IgnoredFiles...)
	settings.Agents.ServerArgs = append([]string{}, b.settings.Agents.ServerArgs...)
	return &settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.settings = defaultTestSettings()
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		settings:    *b.BuildSettings(),
	}
}
