package repositories

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// RunRepository persists the history of analysis runs.
type RunRepository interface {
	Save(ctx context.Context, run entities.AnalysisRun) error

	// List returns all runs, newest first.
	List(ctx context.Context) ([]entities.AnalysisRun, error)
}
