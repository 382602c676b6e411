//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// ToolCallRecord captures one CallTool invocation.
type ToolCallRecord struct {
	Name      string
	Arguments map[string]any
}

// SpyToolClientRepository implements repositories.ToolClientRepository as a configurable spy.
type SpyToolClientRepository struct {
	// --- ListTools ---
	Tools   []entities.ToolSpec
	ListErr error

	// --- CallTool ---
	Outputs map[string]string // tool name -> output
	CallErr error
	Calls   []ToolCallRecord

	// --- Close ---
	Closed bool
}

var _ repositories.ToolClientRepository = (*SpyToolClientRepository)(nil)

func (s *SpyToolClientRepository) ListTools(_ context.Context) ([]entities.ToolSpec, error) {
	return s.Tools, s.ListErr
}

func (s *SpyToolClientRepository) CallTool(
	_ context.Context, name string, arguments map[string]any,
) (string, error) {
	s.Calls = append(s.Calls, ToolCallRecord{Name: name, Arguments: arguments})
	if s.CallErr != nil {
		return "", s.CallErr
	}
	return s.Outputs[name], nil
}

func (s *SpyToolClientRepository) Close() error {
	s.Closed = true
	return nil
}

// SpyToolClientFactory hands out the configured client.
type SpyToolClientFactory struct {
	Client       *SpyToolClientRepository
	ConnectErr   error
	ConnectCount int
}

var _ repositories.ToolClientFactory = (*SpyToolClientFactory)(nil)

func (f *SpyToolClientFactory) Connect(_ context.Context) (repositories.ToolClientRepository, error) {
	f.ConnectCount++
	if f.ConnectErr != nil {
		return nil, f.ConnectErr
	}
	return f.Client, nil
}
