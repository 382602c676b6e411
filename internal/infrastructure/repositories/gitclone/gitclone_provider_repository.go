package gitclone

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const (
	providerName   = "git"
	defaultBaseURL = "https://github.com"
	tokenUsername  = "x-access-token"
)

// Cloner fetches a repository from url.
type Cloner func(ctx context.Context, url string, auth transport.AuthMethod) (*git.Repository, error)

// GitCloneProviderRepository implements repositories.ProviderRepository on
// top of a shallow in-memory clone. Clones are kept for the process lifetime;
// concurrent first uses of the same URL share one clone, other URLs never
// wait on it.
type GitCloneProviderRepository struct {
	token   string
	baseURL string
	clone   Cloner

	mu       sync.RWMutex
	clones   map[string]*git.Repository
	inflight singleflight.Group
}

// NewProviderRepository creates a new git provider with the given token.
func NewProviderRepository(token string) repositories.ProviderRepository {
	return newProviderRepository(token, defaultBaseURL, shallowClone)
}

func newProviderRepository(token, baseURL string, clone Cloner) *GitCloneProviderRepository {
	return &GitCloneProviderRepository{
		token:   token,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		clone:   clone,
		clones:  make(map[string]*git.Repository),
	}
}

func (p *GitCloneProviderRepository) Name() string { return providerName }

// ListDirectory lists the tree entries at path of the HEAD commit.
func (p *GitCloneProviderRepository) ListDirectory(
	ctx context.Context,
	repo entities.Repository,
	dir string,
) ([]entities.File, error) {
	tree, err := p.headTree(ctx, repo)
	if err != nil {
		return nil, err
	}

	clean := strings.Trim(dir, "/")
	if clean != "" {
		entry, findErr := tree.FindEntry(clean)
		if findErr != nil {
			return nil, fmt.Errorf("failed to find %q: %w", dir, findErr)
		}
		if entry.Mode != filemode.Dir {
			return nil, fmt.Errorf("%q: %w", dir, entities.ErrNotADirectory)
		}
		if tree, err = tree.Tree(clean); err != nil {
			return nil, fmt.Errorf("failed to open tree %q: %w", dir, err)
		}
	}

	files := make([]entities.File, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		files = append(files, entities.File{
			Path:     path.Join(clean, entry.Name),
			ObjectID: entry.Hash.String(),
			IsDir:    entry.Mode == filemode.Dir,
		})
	}

	return files, nil
}

// GetFileContent returns the content of a text blob at path of the HEAD commit.
func (p *GitCloneProviderRepository) GetFileContent(
	ctx context.Context,
	repo entities.Repository,
	filePath string,
) (string, error) {
	tree, err := p.headTree(ctx, repo)
	if err != nil {
		return "", err
	}

	clean := strings.Trim(filePath, "/")
	entry, err := tree.FindEntry(clean)
	if err != nil {
		return "", fmt.Errorf("failed to find %q: %w", filePath, err)
	}
	if entry.Mode == filemode.Dir {
		return "", fmt.Errorf("%q: %w", filePath, entities.ErrNotAFile)
	}

	file, err := tree.File(clean)
	if err != nil {
		return "", fmt.Errorf("failed to open %q: %w", filePath, err)
	}

	binary, err := file.IsBinary()
	if err != nil {
		return "", fmt.Errorf("failed to inspect %q: %w", filePath, err)
	}
	if binary {
		return "", fmt.Errorf("%q: %w", filePath, entities.ErrNotText)
	}

	content, err := file.Contents()
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", filePath, err)
	}
	return content, nil
}

func (p *GitCloneProviderRepository) headTree(ctx context.Context, repo entities.Repository) (*object.Tree, error) {
	gitRepo, err := p.repository(ctx, repo)
	if err != nil {
		return nil, err
	}

	head, err := gitRepo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := gitRepo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to load HEAD commit: %w", err)
	}
	return commit.Tree()
}

// repository returns the cached clone of repo, cloning it on first use.
func (p *GitCloneProviderRepository) repository(ctx context.Context, repo entities.Repository) (*git.Repository, error) {
	url := p.cloneURL(repo)

	if cached, ok := p.cached(url); ok {
		return cached, nil
	}

	result, err, _ := p.inflight.Do(url, func() (any, error) {
		if cached, ok := p.cached(url); ok {
			return cached, nil
		}

		logger.Debugf("[%s] Cloning %s", providerName, url)
		gitRepo, cloneErr := p.clone(ctx, url, p.auth())
		if cloneErr != nil {
			return nil, fmt.Errorf("failed to clone %q: %w", entities.FullName(repo), cloneErr)
		}

		p.mu.Lock()
		p.clones[url] = gitRepo
		p.mu.Unlock()
		return gitRepo, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*git.Repository), nil //nolint:forcetypeassert // only *git.Repository is stored
}

func (p *GitCloneProviderRepository) cached(url string) (*git.Repository, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	gitRepo, ok := p.clones[url]
	return gitRepo, ok
}

func (p *GitCloneProviderRepository) cloneURL(repo entities.Repository) string {
	if repo.RemoteURL != "" {
		return repo.RemoteURL
	}
	return fmt.Sprintf("%s/%s.git", p.baseURL, entities.FullName(repo))
}

func (p *GitCloneProviderRepository) auth() transport.AuthMethod {
	if p.token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: tokenUsername, Password: p.token}
}

func shallowClone(ctx context.Context, url string, auth transport.AuthMethod) (*git.Repository, error) {
	gitRepo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:          url,
		Auth:         auth,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if errors.Is(err, transport.ErrEmptyRemoteRepository) {
		return nil, fmt.Errorf("repository %q is empty: %w", url, err)
	}
	return gitRepo, err
}
