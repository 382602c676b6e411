package servers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
)

const serverName = "GitHubServer"

// NewMCPServer exposes the repository tools over the Model Context Protocol.
func NewMCPServer(tools *commands.RepositoryTools, version string) (*server.MCPServer, error) {
	mcpServer := server.NewMCPServer(
		serverName,
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, spec := range tools.Specs() {
		schema, err := json.Marshal(spec.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encoding schema of %s: %w", spec.Name, err)
		}
		mcpServer.AddTool(
			mcp.NewToolWithRawSchema(spec.Name, spec.Description, schema),
			NewMCPToolHandler(tools, spec.Name),
		)
	}

	return mcpServer, nil
}

// NewMCPToolHandler answers every call with a single text content. Operation
// failures are already text; only an unknown tool is flagged as an error.
func NewMCPToolHandler(tools *commands.RepositoryTools, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := tools.Call(ctx, name, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(result.Text), nil
	}
}

// ServeStdio serves MCP requests on stdin/stdout until the input is closed.
func ServeStdio(mcpServer *server.MCPServer) error {
	return server.ServeStdio(mcpServer)
}
