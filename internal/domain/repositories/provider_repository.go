package repositories

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// ProviderRepository abstracts a Git hosting service (GitHub, GitLab, plain
// git) for read-only file access.
type ProviderRepository interface {
	// Name returns the provider type name (e.g. "github").
	Name() string

	// ListDirectory returns the entries of path ("" is the root) in upstream
	// order. It returns entities.ErrNotADirectory when path is a file.
	ListDirectory(ctx context.Context, repo entities.Repository, path string) ([]entities.File, error)

	// GetFileContent returns the decoded content of the file at path.
	// It returns entities.ErrNotAFile when path is a directory and
	// entities.ErrNotText when the content is not UTF-8 text.
	GetFileContent(ctx context.Context, repo entities.Repository, path string) (string, error)
}
