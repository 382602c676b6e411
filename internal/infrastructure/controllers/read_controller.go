package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// ReadController handles the "read" subcommand.
type ReadController struct {
	settings *entities.Settings
	command  commands.ReadFile
}

// NewReadController creates a new ReadController.
func NewReadController(settings *entities.Settings, command commands.ReadFile) *ReadController {
	return &ReadController{settings: settings, command: command}
}

// GetBind returns the Cobra command metadata for the read controller.
func (it *ReadController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "read <owner/repo> <file>",
		Short: "Read a repository file through the safety policy",
	}
}

// Preflight refuses to read without an upstream token.
func (it *ReadController) Preflight() error {
	if err := it.settings.RequireProviderToken(); err != nil {
		return fmt.Errorf("cannot read file: %w", err)
	}
	return nil
}

// Execute prints the (possibly truncated) file, or the error text the tool would return.
func (it *ReadController) Execute(cmd *cobra.Command, args []string) {
	if len(args) < 2 { //nolint:mnd // repository and file
		_ = cmd.Help()
		return
	}

	result := it.command.Execute(context.Background(), args[0], args[1])
	fmt.Fprintln(cmd.OutOrStdout(), result.Text)
}
