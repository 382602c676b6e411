package gitlab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const (
	providerName = "gitlab"
	perPage      = 100
	nodeTypeTree = "tree"
	headRef      = "HEAD"
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
type GitLabProviderRepository struct {
	client *gl.Client
}

// NewProviderRepository creates a new GitLab provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	client, err := gl.NewClient(token)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &GitLabProviderRepository{client: nil}
	}
	return newProviderRepositoryWithClient(client)
}

func newProviderRepositoryWithClient(client *gl.Client) *GitLabProviderRepository {
	return &GitLabProviderRepository{client: client}
}

func (p *GitLabProviderRepository) Name() string { return providerName }

// ListDirectory lists one level of the repository tree at path.
func (p *GitLabProviderRepository) ListDirectory(
	ctx context.Context,
	repo entities.Repository,
	path string,
) ([]entities.File, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	pid := entities.FullName(repo)
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
	}
	if path != "" {
		opts.Path = gl.Ptr(path)
	}
	if branch := branchOf(repo); branch != "" {
		opts.Ref = gl.Ptr(branch)
	}

	var files []entities.File
	for {
		nodes, resp, err := p.client.Repositories.ListTree(pid, opts, gl.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list tree %q: %w", path, err)
		}

		for _, node := range nodes {
			files = append(files, entities.File{
				Path:     node.Path,
				ObjectID: node.ID,
				IsDir:    node.Type == nodeTypeTree,
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	// GitLab answers a tree request on a file path with an empty tree
	if len(files) == 0 && path != "" && p.isFile(ctx, repo, path) {
		return nil, fmt.Errorf("%q: %w", path, entities.ErrNotADirectory)
	}

	return files, nil
}

// GetFileContent returns the raw content of a file.
func (p *GitLabProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (string, error) {
	if p.client == nil {
		return "", errClientNotInitialized
	}

	raw, err := p.getRawFile(ctx, repo, path)
	if err != nil {
		return "", fmt.Errorf("failed to get file %q: %w", path, err)
	}

	return string(raw), nil
}

func (p *GitLabProviderRepository) isFile(ctx context.Context, repo entities.Repository, path string) bool {
	_, err := p.getRawFile(ctx, repo, path)
	return err == nil
}

func (p *GitLabProviderRepository) getRawFile(
	ctx context.Context,
	repo entities.Repository,
	path string,
) ([]byte, error) {
	ref := branchOf(repo)
	if ref == "" {
		ref = headRef
	}
	raw, _, err := p.client.RepositoryFiles.GetRawFile(
		entities.FullName(repo), path,
		&gl.GetRawFileOptions{Ref: gl.Ptr(ref)},
		gl.WithContext(ctx),
	)
	return raw, err
}

func branchOf(repo entities.Repository) string {
	return strings.TrimPrefix(repo.DefaultBranch, "refs/heads/")
}
