package entities

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Provider type names accepted in the settings.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
	ProviderGit    = "git"
)

const (
	defaultModel             = "gpt-4o-mini"
	defaultMaxTurns          = 12
	defaultMaxToolIterations = 5
	defaultTermination       = "TERMINATE"
	defaultReportFile        = "IMPROVEMENTS.md"
	defaultHTTPAddress       = "127.0.0.1:8080"
	apiKeyEnvName            = "OPENAI_API_KEY"
)

var configFileNames = []string{ //nolint:gochecknoglobals // fixed lookup order
	".repodoctor.yaml",
	".repodoctor.yml",
	"repodoctor.yaml",
	"repodoctor.yml",
}

// Settings is the top-level configuration for repodoctor.
type Settings struct {
	Provider ProviderSettings `yaml:"provider"`
	Safety   SafetySettings   `yaml:"safety"`
	Agents   AgentSettings    `yaml:"agents"`
	Server   ServerSettings   `yaml:"server"`
	Store    StoreSettings    `yaml:"store"`

	// ConfigPath is the file the settings were read from, empty for defaults.
	ConfigPath string `yaml:"-"`
}

// ProviderSettings describes the upstream source-control provider.
type ProviderSettings struct {
	Type  string `yaml:"type"`  // "github", "gitlab", "git"
	Token string `yaml:"token"` // Inline, ${ENV_VAR}, or file path
}

// SafetySettings feeds the SafetyPolicy.
type SafetySettings struct {
	MaxFileChars      int      `yaml:"max_file_chars"`
	IgnoredExtensions []string `yaml:"ignored_extensions"`
	IgnoredFiles      []string `yaml:"ignored_files"`
}

// AgentSettings configures the orchestrator and its chat model.
type AgentSettings struct {
	Model             string   `yaml:"model"`
	APIKey            string   `yaml:"api_key"` // Inline, ${ENV_VAR}, or file path
	BaseURL           string   `yaml:"base_url"`
	MaxTurns          int      `yaml:"max_turns"`
	MaxToolIterations int      `yaml:"max_tool_iterations"`
	TerminationPhrase string   `yaml:"termination_phrase"`
	ReportFile        string   `yaml:"report_file"`
	ServerCommand     string   `yaml:"server_command"` // default: this executable
	ServerArgs        []string `yaml:"server_args"`    // default: ["serve"]
}

// ServerSettings configures the HTTP transport of the tool server.
type ServerSettings struct {
	HTTPAddress string `yaml:"http_address"`
}

// StoreSettings configures the run history database.
type StoreSettings struct {
	Path string `yaml:"path"`
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewDefaultSettings returns settings populated with all default values.
func NewDefaultSettings() *Settings {
	return &Settings{
		Provider: ProviderSettings{Type: ProviderGitHub},
		Safety: SafetySettings{
			MaxFileChars:      DefaultMaxFileChars,
			IgnoredExtensions: DefaultIgnoredExtensions(),
			IgnoredFiles:      DefaultIgnoredFiles(),
		},
		Agents: AgentSettings{
			Model:             defaultModel,
			MaxTurns:          defaultMaxTurns,
			MaxToolIterations: defaultMaxToolIterations,
			TerminationPhrase: defaultTermination,
			ReportFile:        defaultReportFile,
			ServerArgs:        []string{"serve"},
		},
		Server: ServerSettings{HTTPAddress: defaultHTTPAddress},
		Store:  StoreSettings{Path: defaultStorePath()},
	}
}

// NewSettings reads a configuration file on top of the defaults and resolves
// its secrets. The absolute path of the file is kept in ConfigPath.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	settings := NewDefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.ConfigPath = path
	if absolute, absErr := filepath.Abs(path); absErr == nil {
		settings.ConfigPath = absolute
	}
	settings.ResolveSecrets()

	if validateErr := validate(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// LoadSettings loads the given file, or the first one found in the default
// locations, or the defaults when there is none.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		found, ok := findConfigFile()
		if !ok {
			logger.Debug("No config file found, using defaults")
			settings := NewDefaultSettings()
			settings.ResolveSecrets()
			return settings, nil
		}
		path = found
	}

	logger.Debugf("Using config file: %s", path)
	return NewSettings(path)
}

// findConfigFile returns the first regular file among the candidate config
// paths: the working directory and its .config and configs folders first,
// then the home directory and ~/.config.
func findConfigFile() (string, bool) {
	dirs := []string{".", ".config", "configs"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home, filepath.Join(home, ".config"))
	}

	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
				return candidate, true
			}
		}
	}
	return "", false
}

// ResolveSecrets turns the configured secrets into their values, falling
// back to the conventional environment variables when one is left empty.
func (s *Settings) ResolveSecrets() {
	providerType := s.Provider.Type
	s.Provider.Token = resolveSecret(s.Provider.Token, func() string { return TokenFromEnv(providerType) })
	s.Agents.APIKey = resolveSecret(s.Agents.APIKey, func() string { return os.Getenv(apiKeyEnvName) })
}

// RequireProviderToken fails when no upstream token is available.
func (s *Settings) RequireProviderToken() error {
	if s.Provider.Token == "" {
		return fmt.Errorf("%w: set provider.token or %s", ErrMissingToken, TokenEnvHint(s.Provider.Type))
	}
	return nil
}

// RequireAPIKey fails when no chat model API key is available.
func (s *Settings) RequireAPIKey() error {
	if s.Agents.APIKey == "" {
		return fmt.Errorf("%w: set agents.api_key or %s", ErrMissingAPIKey, apiKeyEnvName)
	}
	return nil
}

// NewSafetyPolicy builds the immutable policy described by the settings.
func (s *Settings) NewSafetyPolicy() *SafetyPolicy {
	return NewSafetyPolicy(s.Safety.IgnoredExtensions, s.Safety.IgnoredFiles, s.Safety.MaxFileChars)
}

// TokenFromEnv returns the token found in the conventional environment
// variables for the provider type.
func TokenFromEnv(providerType string) string {
	switch providerType {
	case ProviderGitHub, ProviderGit:
		if t := os.Getenv("GITHUB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GH_TOKEN")
	case ProviderGitLab:
		if t := os.Getenv("GITLAB_TOKEN"); t != "" {
			return t
		}
		return os.Getenv("GL_TOKEN")
	default:
		return ""
	}
}

// TokenEnvName returns the primary environment variable holding the token of
// the provider type.
func TokenEnvName(providerType string) string {
	switch providerType {
	case ProviderGitHub, ProviderGit:
		return "GITHUB_TOKEN"
	case ProviderGitLab:
		return "GITLAB_TOKEN"
	default:
		return ""
	}
}

// TokenEnvHint names the environment variables read by TokenFromEnv.
func TokenEnvHint(providerType string) string {
	switch providerType {
	case ProviderGitHub, ProviderGit:
		return "GITHUB_TOKEN or GH_TOKEN"
	case ProviderGitLab:
		return "GITLAB_TOKEN or GL_TOKEN"
	default:
		return "<unknown provider>"
	}
}

// resolveSecret expands ${VAR} references in raw and, when the result names
// an existing file, replaces it with the trimmed file content. An empty result
// is taken from fallback, if any.
func resolveSecret(raw string, fallback func() string) string {
	value := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		expanded := os.Getenv(name)
		if expanded == "" {
			logger.Warnf("Environment variable %q is not set", name)
		}
		return expanded
	})

	if value != "" {
		if info, err := os.Stat(value); err == nil && info.Mode().IsRegular() {
			data, readErr := os.ReadFile(value)
			if readErr != nil {
				logger.Warnf("Failed to read secret file %q: %v", value, readErr)
				return value
			}
			logger.Debugf("Read secret from file %q", value)
			value = strings.TrimSpace(string(data))
		}
	}

	if value == "" && fallback != nil {
		return fallback()
	}
	return value
}

// validate checks for consistent configuration values. Secrets are checked
// later by the commands that need them.
func validate(settings *Settings) error {
	switch settings.Provider.Type {
	case ProviderGitHub, ProviderGitLab, ProviderGit:
	case "":
		return errors.New("provider.type is required")
	default:
		return fmt.Errorf("provider.type %q is not supported (github, gitlab, git)", settings.Provider.Type)
	}

	if settings.Safety.MaxFileChars <= 0 {
		return errors.New("safety.max_file_chars must be positive")
	}
	if settings.Agents.MaxTurns <= 0 {
		return errors.New("agents.max_turns must be positive")
	}
	if settings.Agents.MaxToolIterations <= 0 {
		return errors.New("agents.max_tool_iterations must be positive")
	}
	if strings.TrimSpace(settings.Agents.TerminationPhrase) == "" {
		return errors.New("agents.termination_phrase is required")
	}
	if settings.Agents.ReportFile == "" {
		return errors.New("agents.report_file is required")
	}

	return nil
}

// defaultStorePath resolves the default run history database location,
// falling back to the temporary directory when home cannot be determined.
func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "repodoctor", "runs.db")
	}
	return filepath.Join(home, ".repodoctor", "runs.db")
}
