//go:build unit

package entities_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "repodoctor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewDefaultSettings(t *testing.T) {
	t.Parallel()

	t.Run("should carry the documented defaults", func(t *testing.T) {
		t.Parallel()

		// given / when
		settings := entities.NewDefaultSettings()

		// then
		assert.Equal(t, entities.ProviderGitHub, settings.Provider.Type)
		assert.Equal(t, 20000, settings.Safety.MaxFileChars)
		assert.Equal(t, 12, settings.Agents.MaxTurns)
		assert.Equal(t, "TERMINATE", settings.Agents.TerminationPhrase)
		assert.Equal(t, "IMPROVEMENTS.md", settings.Agents.ReportFile)
		assert.Equal(t, []string{"serve"}, settings.Agents.ServerArgs)
		assert.NoError(t, entities.Validate(settings))
	})
}

func TestNewSettings(t *testing.T) {
	t.Run("should overlay the file on the defaults", func(t *testing.T) {
		// given
		path := writeConfig(t, `
provider:
  type: gitlab
  token: plain-token
agents:
  max_turns: 6
safety:
  max_file_chars: 500
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.ProviderGitLab, settings.Provider.Type)
		assert.Equal(t, "plain-token", settings.Provider.Token)
		assert.Equal(t, 6, settings.Agents.MaxTurns)
		assert.Equal(t, 500, settings.Safety.MaxFileChars)
		assert.Equal(t, "TERMINATE", settings.Agents.TerminationPhrase)
	})

	t.Run("should expand environment variables in secrets", func(t *testing.T) {
		// given
		t.Setenv("REPODOCTOR_TEST_TOKEN", "from-env")
		t.Setenv("REPODOCTOR_TEST_KEY", "sk-test")
		path := writeConfig(t, `
provider:
  token: ${REPODOCTOR_TEST_TOKEN}
agents:
  api_key: ${REPODOCTOR_TEST_KEY}
`)

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-env", settings.Provider.Token)
		assert.Equal(t, "sk-test", settings.Agents.APIKey)
	})

	t.Run("should remember the absolute path of the file", func(t *testing.T) {
		// given
		path := writeConfig(t, "safety:\n  max_file_chars: 5\n")

		// when
		settings, err := entities.LoadSettings(path)

		// then
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(settings.ConfigPath))
		assert.Equal(t, filepath.Clean(path), settings.ConfigPath)
		assert.Equal(t, 5, settings.Safety.MaxFileChars)
	})

	t.Run("should reject an unsupported provider", func(t *testing.T) {
		// given
		path := writeConfig(t, "provider:\n  type: bitbucket\n")

		// when
		settings, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
		assert.Nil(t, settings)
		assert.Contains(t, err.Error(), "bitbucket")
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		// given
		path := writeConfig(t, "provider: [unclosed\n")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "missing.yaml")

		// when
		_, err := entities.NewSettings(path)

		// then
		require.Error(t, err)
	})
}

func TestResolveSecret(t *testing.T) {
	t.Run("should read the token from a file path", func(t *testing.T) {
		// given
		tokenFile := filepath.Join(t.TempDir(), "token")
		require.NoError(t, os.WriteFile(tokenFile, []byte("  file-token\n"), 0o600))

		// when
		token := entities.ResolveSecret(tokenFile, nil)

		// then
		assert.Equal(t, "file-token", token)
	})

	t.Run("should return empty when the variable is unset", func(t *testing.T) {
		// given
		t.Setenv("REPODOCTOR_UNSET_TOKEN", "")

		// when
		token := entities.ResolveSecret("${REPODOCTOR_UNSET_TOKEN}", nil)

		// then
		assert.Empty(t, token)
	})

	t.Run("should keep inline tokens", func(t *testing.T) {
		// given
		raw := "ghp_inline"

		// when
		token := entities.ResolveSecret(raw, func() string { return "from-env" })

		// then
		assert.Equal(t, raw, token)
	})

	t.Run("should fall back when the secret resolves to nothing", func(t *testing.T) {
		// given
		t.Setenv("REPODOCTOR_UNSET_TOKEN", "")
		fallback := func() string { return "from-env" }

		// when
		missing := entities.ResolveSecret("", fallback)
		unset := entities.ResolveSecret("${REPODOCTOR_UNSET_TOKEN}", fallback)

		// then
		assert.Equal(t, "from-env", missing)
		assert.Equal(t, "from-env", unset)
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*entities.Settings)
	}{
		{name: "should require a provider type", mutate: func(s *entities.Settings) { s.Provider.Type = "" }},
		{name: "should require a positive char limit", mutate: func(s *entities.Settings) { s.Safety.MaxFileChars = 0 }},
		{name: "should require positive max turns", mutate: func(s *entities.Settings) { s.Agents.MaxTurns = -1 }},
		{name: "should require positive tool iterations", mutate: func(s *entities.Settings) { s.Agents.MaxToolIterations = 0 }},
		{name: "should require a termination phrase", mutate: func(s *entities.Settings) { s.Agents.TerminationPhrase = "  " }},
		{name: "should require a report file", mutate: func(s *entities.Settings) { s.Agents.ReportFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given
			settings := entities.NewDefaultSettings()
			tt.mutate(settings)

			// when
			err := entities.Validate(settings)

			// then
			assert.Error(t, err)
		})
	}
}

func TestResolveSecrets(t *testing.T) {
	t.Run("should fill missing secrets from the environment", func(t *testing.T) {
		// given
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "gh-token")
		t.Setenv("OPENAI_API_KEY", "sk-env")
		settings := entities.NewDefaultSettings()

		// when
		settings.ResolveSecrets()

		// then
		assert.Equal(t, "gh-token", settings.Provider.Token)
		assert.Equal(t, "sk-env", settings.Agents.APIKey)
		assert.NoError(t, settings.RequireProviderToken())
		assert.NoError(t, settings.RequireAPIKey())
	})

	t.Run("should keep configured secrets", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "env-token")
		settings := entities.NewDefaultSettings()
		settings.Provider.Type = entities.ProviderGitLab
		settings.Provider.Token = "configured"

		// when
		settings.ResolveSecrets()

		// then
		assert.Equal(t, "configured", settings.Provider.Token)
	})

	t.Run("should report missing secrets", func(t *testing.T) {
		// given
		t.Setenv("GITLAB_TOKEN", "")
		t.Setenv("GL_TOKEN", "")
		t.Setenv("OPENAI_API_KEY", "")
		settings := entities.NewDefaultSettings()
		settings.Provider.Type = entities.ProviderGitLab

		// when
		settings.ResolveSecrets()

		// then
		assert.ErrorIs(t, settings.RequireProviderToken(), entities.ErrMissingToken)
		assert.ErrorIs(t, settings.RequireAPIKey(), entities.ErrMissingAPIKey)
		assert.Contains(t, settings.RequireProviderToken().Error(), "GITLAB_TOKEN")
	})
}

func TestTokenEnvName(t *testing.T) {
	t.Parallel()

	t.Run("should name the primary variable per provider", func(t *testing.T) {
		t.Parallel()

		// given / when / then
		assert.Equal(t, "GITHUB_TOKEN", entities.TokenEnvName(entities.ProviderGitHub))
		assert.Equal(t, "GITHUB_TOKEN", entities.TokenEnvName(entities.ProviderGit))
		assert.Equal(t, "GITLAB_TOKEN", entities.TokenEnvName(entities.ProviderGitLab))
		assert.Empty(t, entities.TokenEnvName("svn"))
	})
}
