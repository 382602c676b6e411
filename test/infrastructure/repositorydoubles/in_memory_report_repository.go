//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"errors"

	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// InMemoryReportRepository keeps the report in memory.
type InMemoryReportRepository struct {
	Path      string
	Content   string
	Present   bool
	SaveErr   error
	SaveCount int
}

var _ repositories.ReportRepository = (*InMemoryReportRepository)(nil)

func (r *InMemoryReportRepository) Save(_ context.Context, content string) error {
	r.SaveCount++
	if r.SaveErr != nil {
		return r.SaveErr
	}
	r.Content = content
	r.Present = true
	return nil
}

func (r *InMemoryReportRepository) Exists(_ context.Context) bool { return r.Present }

func (r *InMemoryReportRepository) Read(_ context.Context) (string, error) {
	if !r.Present {
		return "", errors.New("report not found")
	}
	return r.Content, nil
}

func (r *InMemoryReportRepository) Location() string {
	if r.Path == "" {
		return "IMPROVEMENTS.md"
	}
	return r.Path
}
