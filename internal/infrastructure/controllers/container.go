package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register controller constructors
	constructors := []any{
		NewServeController,
		NewAnalyzeController,
		NewListController,
		NewReadController,
		NewHistoryController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	serveController *ServeController,
	analyzeController *AnalyzeController,
	listController *ListController,
	readController *ReadController,
	historyController *HistoryController,
) *[]entities.Controller {
	return &[]entities.Controller{
		serveController,
		analyzeController,
		listController,
		readController,
		historyController,
	}
}
