package github

import gh "github.com/google/go-github/v66/github"

// NewProviderRepositoryWithClient exports newProviderRepositoryWithClient for testing.
func NewProviderRepositoryWithClient(client *gh.Client) *GitHubProviderRepository {
	return newProviderRepositoryWithClient(client)
}
