package entities

import (
	"strings"

	gitforgeEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
)

// Repository is re-exported from gitforge.
type Repository = gitforgeEntities.Repository

// File is re-exported from gitforge.
type File = gitforgeEntities.File

// NewRepositoryFromID builds a Repository from an "owner/repo" identifier.
// Only the first slash separates the owner, everything else is left for the
// upstream provider to accept or reject.
func NewRepositoryFromID(repositoryID string) Repository {
	org, name, found := strings.Cut(strings.TrimSpace(repositoryID), "/")
	if !found {
		return Repository{ID: repositoryID, Name: org}
	}
	return Repository{
		ID:           repositoryID,
		Name:         name,
		Organization: org,
	}
}

// FullName returns the "owner/repo" form of a repository.
func FullName(repo Repository) string {
	if repo.Organization == "" {
		return repo.Name
	}
	return repo.Organization + "/" + repo.Name
}
