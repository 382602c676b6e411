//go:build unit

package controllers_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/infrastructure/controllers"
	"github.com/rios0rios0/repodoctor/test/domain/commanddoubles"
	"github.com/rios0rios0/repodoctor/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/repodoctor/test/infrastructure/repositorydoubles"
)

func TestAnalyzeController(t *testing.T) {
	t.Parallel()

	t.Run("should run the analysis and point at the saved report", func(t *testing.T) {
		t.Parallel()

		// given
		run := entitybuilders.NewAnalysisRunBuilder().BuildAnalysisRun()
		command := &commanddoubles.StubAnalyzeCommand{
			Run: &run,
			Messages: []entities.Message{
				{Source: "Navigator", Role: entities.RoleAssistant, Content: "Core files: main.go"},
			},
		}
		reports := &doubles.InMemoryReportRepository{Present: true, Content: "# Report"}
		controller := controllers.NewAnalyzeController(entitybuilders.NewSettingsBuilder().BuildSettings(), command, reports)
		cmd, out := newTestCommand()
		controller.AddFlags(cmd)
		require.NoError(t, cmd.Flags().Set("max-turns", "6"))

		// when
		controller.Execute(cmd, []string{"acme/app"})

		// then
		assert.Equal(t, "acme/app", command.LastOpts.Repository)
		assert.Equal(t, 6, command.LastOpts.MaxTurns)
		assert.Contains(t, out.String(), "Navigator")
		assert.Contains(t, out.String(), "Core files: main.go")
		assert.Contains(t, out.String(), "DONE! Open 'IMPROVEMENTS.md' to see the results.")
	})

	t.Run("should prompt for the repository when none is given", func(t *testing.T) {
		t.Parallel()

		// given
		run := entitybuilders.NewAnalysisRunBuilder().BuildAnalysisRun()
		command := &commanddoubles.StubAnalyzeCommand{Run: &run}
		controller := controllers.NewAnalyzeController(
			entitybuilders.NewSettingsBuilder().BuildSettings(), command, &doubles.InMemoryReportRepository{})
		cmd, out := newTestCommand()
		controller.AddFlags(cmd)
		cmd.SetIn(strings.NewReader("  acme/lib \n"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Contains(t, out.String(), "Enter GitHub repository (e.g., owner/repo): ")
		assert.Equal(t, "acme/lib", command.LastOpts.Repository)
		assert.Contains(t, out.String(), "Process finished, but 'IMPROVEMENTS.md' was not found.")
	})

	t.Run("should refuse an empty repository", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubAnalyzeCommand{}
		controller := controllers.NewAnalyzeController(
			entitybuilders.NewSettingsBuilder().BuildSettings(), command, &doubles.InMemoryReportRepository{})
		cmd, out := newTestCommand()
		controller.AddFlags(cmd)
		cmd.SetIn(strings.NewReader("\n"))

		// when
		controller.Execute(cmd, nil)

		// then
		assert.Zero(t, command.ExecuteCallCount)
		assert.Contains(t, out.String(), "please enter a valid repo name")
	})

	t.Run("should fail preflight without an API key", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubAnalyzeCommand{}
		settings := entitybuilders.NewSettingsBuilder().WithAPIKey("").BuildSettings()
		controller := controllers.NewAnalyzeController(settings, command, &doubles.InMemoryReportRepository{})

		// when
		err := controller.Preflight()

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrMissingAPIKey)
		assert.Zero(t, command.ExecuteCallCount)
	})

	t.Run("should stop quietly when the run could not start", func(t *testing.T) {
		t.Parallel()

		// given
		command := &commanddoubles.StubAnalyzeCommand{ExecuteErr: errors.New("could not connect to tool server")}
		controller := controllers.NewAnalyzeController(
			entitybuilders.NewSettingsBuilder().BuildSettings(), command, &doubles.InMemoryReportRepository{Present: true})
		cmd, out := newTestCommand()
		controller.AddFlags(cmd)

		// when
		controller.Execute(cmd, []string{"acme/app"})

		// then
		assert.NotContains(t, out.String(), "DONE!")
	})
}
