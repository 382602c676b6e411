package gitclone

// NewProviderRepositoryWithCloner exports newProviderRepository for testing.
func NewProviderRepositoryWithCloner(token, baseURL string, clone Cloner) *GitCloneProviderRepository {
	return newProviderRepository(token, baseURL, clone)
}

// CloneURL exports cloneURL for testing.
var CloneURL = (*GitCloneProviderRepository).cloneURL //nolint:gochecknoglobals // test export
