package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const (
	labelDirectory = "[DIR]"
	labelFile      = "[FILE]"
)

// ListDirectory is the interface for the directory listing operation.
type ListDirectory interface {
	Execute(ctx context.Context, repositoryID, path string) entities.ToolResult
}

// ListDirectoryCommand lists a repository directory through the upstream
// provider, hiding denylisted filenames. It never fails: every error is
// rendered as text for the calling agent.
type ListDirectoryCommand struct {
	provider repositories.ProviderRepository
	policy   *entities.SafetyPolicy
}

// NewListDirectoryCommand creates a new ListDirectoryCommand.
func NewListDirectoryCommand(
	provider repositories.ProviderRepository,
	policy *entities.SafetyPolicy,
) *ListDirectoryCommand {
	return &ListDirectoryCommand{
		provider: provider,
		policy:   policy,
	}
}

// Execute returns one "[DIR] <path>" or "[FILE] <path>" line per visible entry.
func (it *ListDirectoryCommand) Execute(ctx context.Context, repositoryID, path string) entities.ToolResult {
	if strings.TrimSpace(repositoryID) == "" {
		return entities.ErrorResult("Error: repository id must not be empty")
	}

	repo := entities.NewRepositoryFromID(repositoryID)
	files, err := it.provider.ListDirectory(ctx, repo, path)
	if err != nil {
		if errors.Is(err, entities.ErrNotADirectory) {
			return entities.ErrorResult(fmt.Sprintf("Error: %s is a file, not a directory.", path))
		}
		logger.Debugf("[%s] Listing %s:%q failed: %v", it.provider.Name(), repositoryID, path, err)
		return entities.ErrorResult("Error: " + err.Error())
	}

	lines := make([]string, 0, len(files))
	for _, file := range files {
		// lock files are hidden so that agents are not tempted to read them
		if it.policy.IsIgnoredFile(file.Path) {
			continue
		}
		label := labelFile
		if file.IsDir {
			label = labelDirectory
		}
		lines = append(lines, label+" "+file.Path)
	}

	logger.Debugf("[%s] Listed %d entries in %s:%q", it.provider.Name(), len(lines), repositoryID, path)
	return entities.TextResult(strings.Join(lines, "\n"))
}
