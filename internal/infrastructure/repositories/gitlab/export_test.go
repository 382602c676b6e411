package gitlab

import gl "gitlab.com/gitlab-org/api/client-go"

// NewProviderRepositoryWithClient exports newProviderRepositoryWithClient for testing.
func NewProviderRepositoryWithClient(client *gl.Client) *GitLabProviderRepository {
	return newProviderRepositoryWithClient(client)
}
