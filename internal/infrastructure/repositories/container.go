package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	domainRepos "github.com/rios0rios0/repodoctor/internal/domain/repositories"
	boltRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/bolt"
	gitRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/gitclone"
	ghRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/github"
	glRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/gitlab"
	mcpRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/mcp"
	openaiRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/openai"
	reportRepo "github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/report"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register provider registry with all provider factories
	if err := container.Provide(func() *ProviderRegistry {
		reg := NewProviderRegistry()
		reg.Register(entities.ProviderGitHub, ghRepo.NewProviderRepository)
		reg.Register(entities.ProviderGitLab, glRepo.NewProviderRepository)
		reg.Register(entities.ProviderGit, gitRepo.NewProviderRepository)
		return reg
	}); err != nil {
		return err
	}

	// The upstream provider selected by the settings
	if err := container.Provide(func(
		reg *ProviderRegistry,
		settings *entities.Settings,
	) (domainRepos.ProviderRepository, error) {
		return reg.Get(settings.Provider.Type, settings.Provider.Token)
	}); err != nil {
		return err
	}

	constructors := []any{
		openaiRepo.NewChatModelRepository,
		mcpRepo.NewStdioToolClientFactory,
		reportRepo.NewReportRepository,
		boltRepo.NewRunRepository,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}
