package commands

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const readErrorPrefix = "Error reading file: "

// ReadFile is the interface for the file reading operation.
type ReadFile interface {
	Execute(ctx context.Context, repositoryID, filePath string) entities.ToolResult
}

// ReadFileCommand reads a repository file through the upstream provider.
// Denylisted files are refused before any upstream call and long files are
// truncated to the policy limit.
type ReadFileCommand struct {
	provider repositories.ProviderRepository
	policy   *entities.SafetyPolicy
}

// NewReadFileCommand creates a new ReadFileCommand.
func NewReadFileCommand(
	provider repositories.ProviderRepository,
	policy *entities.SafetyPolicy,
) *ReadFileCommand {
	return &ReadFileCommand{
		provider: provider,
		policy:   policy,
	}
}

// Execute returns the file content, possibly truncated, or an error text.
func (it *ReadFileCommand) Execute(ctx context.Context, repositoryID, filePath string) entities.ToolResult {
	if it.policy.Rejects(filePath) {
		return entities.ErrorResult(fmt.Sprintf(
			"Error: I cannot read %s because it is a binary or lock file.", filePath,
		))
	}
	if strings.TrimSpace(repositoryID) == "" {
		return entities.ErrorResult(readErrorPrefix + "repository id must not be empty")
	}
	if strings.TrimSpace(filePath) == "" {
		return entities.ErrorResult(readErrorPrefix + "file path must not be empty")
	}

	repo := entities.NewRepositoryFromID(repositoryID)
	raw, err := it.provider.GetFileContent(ctx, repo, filePath)
	if err != nil {
		logger.Debugf("[%s] Reading %s:%q failed: %v", it.provider.Name(), repositoryID, filePath, err)
		return entities.ErrorResult(readErrorPrefix + err.Error())
	}
	if !utf8.ValidString(raw) {
		return entities.ErrorResult(readErrorPrefix + entities.ErrNotText.Error())
	}

	content := entities.NewFileContent(raw, it.policy.MaxFileChars())
	if content.Truncated {
		logger.Debugf("[%s] Truncated %s:%q to %d chars", it.provider.Name(), repositoryID, filePath, content.Limit)
	}
	return entities.TextResult(content.String())
}
