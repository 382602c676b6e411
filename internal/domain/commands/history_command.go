package commands

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// History is the interface for the run history command.
type History interface {
	Execute(ctx context.Context, limit int) ([]entities.AnalysisRun, error)
}

// HistoryCommand lists recorded analysis runs.
type HistoryCommand struct {
	runs repositories.RunRepository
}

// NewHistoryCommand creates a new HistoryCommand.
func NewHistoryCommand(runs repositories.RunRepository) *HistoryCommand {
	return &HistoryCommand{runs: runs}
}

// Execute returns the newest runs first; a non-positive limit returns all of them.
func (it *HistoryCommand) Execute(ctx context.Context, limit int) ([]entities.AnalysisRun, error) {
	runs, err := it.runs.List(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
