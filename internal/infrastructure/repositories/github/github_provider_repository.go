package github

import (
	"context"
	"fmt"
	"io"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const (
	providerName   = "github"
	contentTypeDir = "dir"
	// GitHub serves files larger than 1 MB without inline content.
	encodingNone = "none"
)

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewProviderRepository creates a new GitHub provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	client := gh.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return newProviderRepositoryWithClient(client)
}

func newProviderRepositoryWithClient(client *gh.Client) *GitHubProviderRepository {
	return &GitHubProviderRepository{client: client}
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// ListDirectory lists the contents of a directory using the contents API.
func (p *GitHubProviderRepository) ListDirectory(
	ctx context.Context,
	repo entities.Repository,
	path string,
) ([]entities.File, error) {
	fileContent, directoryContent, _, err := p.client.Repositories.GetContents(
		ctx, repo.Organization, repo.Name, path, contentOptions(repo),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", path, err)
	}
	if fileContent != nil {
		return nil, fmt.Errorf("%q: %w", path, entities.ErrNotADirectory)
	}

	files := make([]entities.File, 0, len(directoryContent))
	for _, content := range directoryContent {
		files = append(files, entities.File{
			Path:     content.GetPath(),
			ObjectID: content.GetSHA(),
			IsDir:    content.GetType() == contentTypeDir,
		})
	}

	return files, nil
}

// GetFileContent returns the decoded content of a file.
func (p *GitHubProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	fileContent, _, _, err := p.client.Repositories.GetContents(
		ctx, repo.Organization, repo.Name, path, contentOptions(repo),
	)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("%q: %w", path, entities.ErrNotAFile)
	}

	if fileContent.GetEncoding() == encodingNone {
		return p.downloadFileContent(ctx, repo, path)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file content: %w", err)
	}

	return content, nil
}

func (p *GitHubProviderRepository) downloadFileContent(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	reader, _, err := p.client.Repositories.DownloadContents(
		ctx, repo.Organization, repo.Name, path, contentOptions(repo),
	)
	if err != nil {
		return "", fmt.Errorf("failed to download file %q: %w", path, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", path, err)
	}
	return string(data), nil
}

func contentOptions(repo entities.Repository) *gh.RepositoryContentGetOptions {
	return &gh.RepositoryContentGetOptions{
		Ref: strings.TrimPrefix(repo.DefaultBranch, "refs/heads/"),
	}
}
