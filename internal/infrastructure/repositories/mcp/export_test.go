package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// FakeMCPClient is an in-memory MCP session for testing.
type FakeMCPClient struct {
	Tools       []mcp.Tool
	ListErr     error
	CallResult  *mcp.CallToolResult
	CallErr     error
	CallNames   []string
	CallArgs    []any
	CloseCalled bool
}

func (f *FakeMCPClient) ListTools(_ context.Context, _ mcp.ListToolsRequest) (*mcp.ListToolsResult, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return &mcp.ListToolsResult{Tools: f.Tools}, nil
}

func (f *FakeMCPClient) CallTool(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f.CallNames = append(f.CallNames, request.Params.Name)
	f.CallArgs = append(f.CallArgs, request.Params.Arguments)
	return f.CallResult, f.CallErr
}

func (f *FakeMCPClient) Close() error {
	f.CloseCalled = true
	return nil
}

// NewToolClientRepositoryWithClient exports newToolClientRepository for testing.
func NewToolClientRepositoryWithClient(c *FakeMCPClient) *MCPToolClientRepository {
	return newToolClientRepository(c)
}

// CommandLine returns what the factory starts the tool server with.
func (f *StdioToolClientFactory) CommandLine() (string, []string, []string) {
	return f.command, f.args, f.env
}
