package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const stopReasonError = "error"

// ErrEmptyRepository is returned when no repository was given to analyze.
var ErrEmptyRepository = errors.New("please enter a valid repo name")

// Analyze is the interface for the analyze command.
type Analyze interface {
	Execute(ctx context.Context, opts AnalyzeOptions) (*entities.AnalysisRun, error)
}

// AnalyzeOptions holds runtime options for a single analysis.
type AnalyzeOptions struct {
	Repository string
	MaxTurns   int                    // If set, overrides the configured turn cap
	OnMessage  func(entities.Message) // Receives every message as it is produced
}

// AnalyzeCommand orchestrates the review team:
// connect to the tool server -> run Navigator and Analyst -> record the run.
type AnalyzeCommand struct {
	settings   *entities.Settings
	model      repositories.ChatModelRepository
	tools      repositories.ToolClientFactory
	reports    repositories.ReportRepository
	runs       repositories.RunRepository
	saveReport SaveReport
	newID      func() string
	now        func() time.Time
}

// NewAnalyzeCommand creates a new AnalyzeCommand.
func NewAnalyzeCommand(
	settings *entities.Settings,
	model repositories.ChatModelRepository,
	tools repositories.ToolClientFactory,
	reports repositories.ReportRepository,
	runs repositories.RunRepository,
	saveReport SaveReport,
) *AnalyzeCommand {
	return &AnalyzeCommand{
		settings:   settings,
		model:      model,
		tools:      tools,
		reports:    reports,
		runs:       runs,
		saveReport: saveReport,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Execute runs one analysis. The returned run is nil only when the team
// could not be started.
func (it *AnalyzeCommand) Execute(ctx context.Context, opts AnalyzeOptions) (*entities.AnalysisRun, error) {
	repositoryID := strings.TrimSpace(opts.Repository)
	if repositoryID == "" {
		return nil, ErrEmptyRepository
	}

	client, err := it.tools.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not connect to tool server: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Debugf("Closing tool server connection: %v", closeErr)
		}
	}()

	reportSaved := false
	toolbox, err := it.buildToolbox(ctx, client, &reportSaved)
	if err != nil {
		return nil, err
	}

	maxTurns := it.settings.Agents.MaxTurns
	if opts.MaxTurns > 0 {
		maxTurns = opts.MaxTurns
	}

	phrase := it.settings.Agents.TerminationPhrase
	team := newRoundRobinTeam(
		[]entities.Agent{
			NewNavigatorAgent(repositoryID),
			NewAnalystAgent(repositoryID, filepath.Base(it.reports.Location()), phrase),
		},
		it.model,
		toolbox,
		TeamOptions{
			MaxTurns:          maxTurns,
			MaxToolIterations: it.settings.Agents.MaxToolIterations,
			TerminationPhrase: phrase,
			OnMessage:         opts.OnMessage,
		},
	)

	run := entities.AnalysisRun{
		ID:         it.newID(),
		Repository: repositoryID,
		Model:      it.model.Model(),
		StartedAt:  it.now(),
		ReportPath: it.reports.Location(),
	}
	logger.Infof("Starting analysis %s of %s with %s", run.ID, repositoryID, run.Model)

	result, teamErr := team.Run(ctx, fmt.Sprintf("Analyze %s and produce a report.", repositoryID))

	run.FinishedAt = it.now()
	run.Turns = result.Turns
	run.StopReason = result.StopReason
	if teamErr != nil {
		run.StopReason = stopReasonError
		run.Error = teamErr.Error()
	}
	// a report left over from an earlier run does not count
	run.ReportSaved = reportSaved && it.reports.Exists(ctx)

	if saveErr := it.runs.Save(ctx, run); saveErr != nil {
		logger.Warnf("Failed to record run %s: %v", run.ID, saveErr)
	}

	logger.Infof(
		"Analysis %s finished after %d turns: %s (report saved: %t)",
		run.ID, run.Turns, run.StopReason, run.ReportSaved,
	)
	return &run, teamErr
}

// buildToolbox combines the remote tools with the local save_report tool.
func (it *AnalyzeCommand) buildToolbox(
	ctx context.Context,
	client repositories.ToolClientRepository,
	reportSaved *bool,
) (*Toolbox, error) {
	remote, err := client.ListTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not list remote tools: %w", err)
	}

	toolbox := NewToolbox()
	for _, spec := range remote {
		name := spec.Name
		toolbox.Register(spec, func(ctx context.Context, arguments map[string]any) string {
			output, callErr := client.CallTool(ctx, name, arguments)
			if callErr != nil {
				return "Error: " + callErr.Error()
			}
			return output
		})
	}

	toolbox.Register(
		SaveReportToolSpec(filepath.Base(it.reports.Location())),
		func(ctx context.Context, arguments map[string]any) string {
			result := it.saveReport.Execute(ctx, StringArgument(arguments, ArgContent))
			if !result.IsError {
				*reportSaved = true
			}
			return result.Text
		},
	)

	logger.Debugf("Toolbox ready with %d tools", len(toolbox.Specs()))
	return toolbox, nil
}
