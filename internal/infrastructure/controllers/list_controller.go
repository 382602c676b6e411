package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// ListController handles the "list" subcommand.
type ListController struct {
	settings *entities.Settings
	command  commands.ListDirectory
}

// NewListController creates a new ListController.
func NewListController(settings *entities.Settings, command commands.ListDirectory) *ListController {
	return &ListController{settings: settings, command: command}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "list <owner/repo> [path]",
		Short: "List a repository directory the way the agents see it",
	}
}

// Preflight refuses to list without an upstream token.
func (it *ListController) Preflight() error {
	if err := it.settings.RequireProviderToken(); err != nil {
		return fmt.Errorf("cannot list directory: %w", err)
	}
	return nil
}

// Execute prints the directory listing, or the error text the tool would return.
func (it *ListController) Execute(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		_ = cmd.Help()
		return
	}

	path := ""
	if len(args) > 1 {
		path = args[1]
	}

	result := it.command.Execute(context.Background(), args[0], path)
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
}
