package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []any{
		NewListDirectoryCommand,
		NewReadFileCommand,
		NewSaveReportCommand,
		NewAnalyzeCommand,
		NewHistoryCommand,
		NewRepositoryTools,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []any{
		func(impl *ListDirectoryCommand) ListDirectory { return impl },
		func(impl *ReadFileCommand) ReadFile { return impl },
		func(impl *SaveReportCommand) SaveReport { return impl },
		func(impl *AnalyzeCommand) Analyze { return impl },
		func(impl *HistoryCommand) History { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}
