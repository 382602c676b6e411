package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/infrastructure/servers"
)

const shutdownTimeout = 10 * time.Second

// ServerVersion is announced by the tool server.
var ServerVersion = "dev" //nolint:gochecknoglobals // overridden at build time

// ServeController handles the "serve" subcommand (tool server).
type ServeController struct {
	settings *entities.Settings
	tools    *commands.RepositoryTools
}

// NewServeController creates a new ServeController.
func NewServeController(settings *entities.Settings, tools *commands.RepositoryTools) *ServeController {
	return &ServeController{settings: settings, tools: tools}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Serve the repository tools",
		Long: `Serve the list_directory and read_file tools over the Model Context
Protocol on stdin/stdout. With --http the same tools are exposed as JSON
endpoints instead.`,
	}
}

// AddFlags adds serve-specific flags to the given command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("http", "", "Serve over HTTP on this address instead of stdio (e.g. 127.0.0.1:8080)")
}

// Preflight refuses to start the tool server without an upstream token.
func (it *ServeController) Preflight() error {
	if err := it.settings.RequireProviderToken(); err != nil {
		return fmt.Errorf("cannot start tool server: %w", err)
	}
	return nil
}

// Execute starts the selected transport and blocks until it stops.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) {
	address, _ := cmd.Flags().GetString("http")
	if cmd.Flags().Changed("http") && address == "" {
		address = it.settings.Server.HTTPAddress
	}

	if address != "" {
		if err := it.serveHTTP(address); err != nil {
			logger.Errorf("HTTP tool server failed: %v", err)
		}
		return
	}

	mcpServer, err := servers.NewMCPServer(it.tools, ServerVersion)
	if err != nil {
		logger.Errorf("Cannot create tool server: %v", err)
		return
	}
	logger.Debugf("Serving %d tools over stdio (provider: %s)", len(it.tools.Specs()), it.settings.Provider.Type)
	if err = servers.ServeStdio(mcpServer); err != nil {
		logger.Errorf("Tool server stopped: %v", err)
	}
}

func (it *ServeController) serveHTTP(address string) error {
	httpServer := servers.NewHTTPServer(address, it.tools)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		logger.Infof("Received %s, shutting down", sig)
	case err := <-errCh:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}
