package mcp

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const clientName = "repodoctor"

// ClientVersion is announced to tool servers during initialization.
var ClientVersion = "dev" //nolint:gochecknoglobals // overridden at build time

// mcpClient is the subset of the mcp-go client used here.
type mcpClient interface {
	ListTools(ctx context.Context, request mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// StdioToolClientFactory spawns the tool server as a subprocess and talks MCP
// over its standard streams.
type StdioToolClientFactory struct {
	command string
	args    []string
	env     []string
}

// NewStdioToolClientFactory creates a factory from the agent settings. Without
// a configured command the current executable is started with "serve", and
// the config file, the resolved provider and the token are handed down to it
// so both processes apply the same safety policy.
func NewStdioToolClientFactory(settings *entities.Settings) repositories.ToolClientFactory {
	factory := &StdioToolClientFactory{
		command: settings.Agents.ServerCommand,
		args:    append([]string{}, settings.Agents.ServerArgs...),
	}
	if factory.command != "" {
		return factory
	}

	executable, err := os.Executable()
	if err != nil {
		logger.Warnf("Cannot resolve own executable, falling back to PATH lookup: %v", err)
		executable = clientName
	}
	factory.command = executable
	if settings.ConfigPath != "" {
		factory.args = append(factory.args, "--config", settings.ConfigPath)
	}
	factory.args = append(factory.args, "--provider", settings.Provider.Type)
	if name := entities.TokenEnvName(settings.Provider.Type); name != "" && settings.Provider.Token != "" {
		factory.env = []string{name + "=" + settings.Provider.Token}
	}
	return factory
}

// Connect starts the server process and performs the MCP handshake.
func (f *StdioToolClientFactory) Connect(ctx context.Context) (repositories.ToolClientRepository, error) {
	logger.Debugf("Starting tool server: %s %s", f.command, strings.Join(f.args, " "))
	stdioClient, err := client.NewStdioMCPClient(f.command, f.env, f.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to start tool server %q: %w", f.command, err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: ClientVersion,
	}

	result, err := stdioClient.Initialize(ctx, initRequest)
	if err != nil {
		_ = stdioClient.Close()
		return nil, fmt.Errorf("failed to initialize tool server session: %w", err)
	}
	logger.Debugf("Connected to tool server %s %s", result.ServerInfo.Name, result.ServerInfo.Version)

	return newToolClientRepository(stdioClient), nil
}

// MCPToolClientRepository implements repositories.ToolClientRepository over an MCP session.
type MCPToolClientRepository struct {
	client mcpClient
}

func newToolClientRepository(c mcpClient) *MCPToolClientRepository {
	return &MCPToolClientRepository{client: c}
}

// ListTools returns the server tools with their input schema.
func (r *MCPToolClientRepository) ListTools(ctx context.Context) ([]entities.ToolSpec, error) {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	specs := make([]entities.ToolSpec, 0, len(result.Tools))
	for _, tool := range result.Tools {
		specs = append(specs, entities.ToolSpec{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  schemaOf(tool.InputSchema),
		})
	}
	return specs, nil
}

// CallTool invokes a tool and joins its text contents.
func (r *MCPToolClientRepository) CallTool(
	ctx context.Context,
	name string,
	arguments map[string]any,
) (string, error) {
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = arguments

	result, err := r.client.CallTool(ctx, request)
	if err != nil {
		return "", fmt.Errorf("failed to call tool %s: %w", name, err)
	}

	texts := make([]string, 0, len(result.Content))
	for _, content := range result.Content {
		switch text := content.(type) {
		case mcp.TextContent:
			texts = append(texts, text.Text)
		case *mcp.TextContent:
			texts = append(texts, text.Text)
		}
	}
	return strings.Join(texts, "\n"), nil
}

// Close terminates the session and the server process.
func (r *MCPToolClientRepository) Close() error {
	return r.client.Close()
}

func schemaOf(input mcp.ToolInputSchema) map[string]any {
	schemaType := input.Type
	if schemaType == "" {
		schemaType = "object"
	}
	properties := input.Properties
	if properties == nil {
		properties = map[string]any{}
	}
	required := input.Required
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       schemaType,
		"properties": properties,
		"required":   required,
	}
}
