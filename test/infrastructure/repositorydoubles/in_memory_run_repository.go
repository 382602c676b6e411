//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// InMemoryRunRepository records runs in insertion order and lists them
// newest first.
type InMemoryRunRepository struct {
	Runs    []entities.AnalysisRun
	SaveErr error
	ListErr error
}

var _ repositories.RunRepository = (*InMemoryRunRepository)(nil)

func (r *InMemoryRunRepository) Save(_ context.Context, run entities.AnalysisRun) error {
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Runs = append(r.Runs, run)
	return nil
}

func (r *InMemoryRunRepository) List(_ context.Context) ([]entities.AnalysisRun, error) {
	if r.ListErr != nil {
		return nil, r.ListErr
	}
	runs := make([]entities.AnalysisRun, 0, len(r.Runs))
	for i := len(r.Runs) - 1; i >= 0; i-- {
		runs = append(runs, r.Runs[i])
	}
	return runs, nil
}
