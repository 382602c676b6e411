//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
type SpyProviderRepository struct {
	// --- identity ---
	ProviderName string

	// --- ListDirectory ---
	Directories map[string][]entities.File // path -> entries
	ListErr     error
	ListedPaths []string

	// --- GetFileContent ---
	FileContents   map[string]string // path -> content
	FileContentErr error
	ReadPaths      []string

	// spy: last repository received by any call
	LastRepository entities.Repository
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string {
	if p.ProviderName == "" {
		return "spy"
	}
	return p.ProviderName
}

func (p *SpyProviderRepository) ListDirectory(
	_ context.Context, repo entities.Repository, path string,
) ([]entities.File, error) {
	p.LastRepository = repo
	p.ListedPaths = append(p.ListedPaths, path)
	if p.ListErr != nil {
		return nil, p.ListErr
	}
	return p.Directories[path], nil
}

func (p *SpyProviderRepository) GetFileContent(
	_ context.Context, repo entities.Repository, path string,
) (string, error) {
	p.LastRepository = repo
	p.ReadPaths = append(p.ReadPaths, path)
	if p.FileContents != nil {
		if content, ok := p.FileContents[path]; ok {
			return content, nil
		}
	}
	if p.FileContentErr != nil {
		return "", p.FileContentErr
	}
	return "", fmt.Errorf("file not found: %s", path)
}

// CallCount returns the number of upstream calls made so far.
func (p *SpyProviderRepository) CallCount() int {
	return len(p.ListedPaths) + len(p.ReadPaths)
}
