package report

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const reportFileMode = 0o644

// FileReportRepository implements repositories.ReportRepository as a single file.
type FileReportRepository struct {
	fs   afero.Fs
	path string
}

// NewReportRepository writes the report to the configured file on disk.
func NewReportRepository(settings *entities.Settings) repositories.ReportRepository {
	return NewReportRepositoryWithFs(afero.NewOsFs(), settings.Agents.ReportFile)
}

// NewReportRepositoryWithFs writes the report to path on the given filesystem.
func NewReportRepositoryWithFs(fs afero.Fs, path string) *FileReportRepository {
	return &FileReportRepository{fs: fs, path: path}
}

func (r *FileReportRepository) Location() string { return r.path }

func (r *FileReportRepository) Save(_ context.Context, content string) error {
	if err := afero.WriteFile(r.fs, r.path, []byte(content), reportFileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", r.path, err)
	}
	return nil
}

func (r *FileReportRepository) Exists(_ context.Context) bool {
	exists, err := afero.Exists(r.fs, r.path)
	return err == nil && exists
}

func (r *FileReportRepository) Read(_ context.Context) (string, error) {
	data, err := afero.ReadFile(r.fs, r.path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return string(data), nil
}
