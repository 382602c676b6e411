package repositories

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// ToolClientRepository is a connection to a remote tool server.
type ToolClientRepository interface {
	// ListTools returns the tools exposed by the server.
	ListTools(ctx context.Context) ([]entities.ToolSpec, error)

	// CallTool invokes a tool and returns its text output.
	CallTool(ctx context.Context, name string, arguments map[string]any) (string, error)

	// Close terminates the connection.
	Close() error
}

// ToolClientFactory opens a new connection to the tool server.
type ToolClientFactory interface {
	Connect(ctx context.Context) (ToolClientRepository, error)
}
