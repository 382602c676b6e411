//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// StubChatModelRepository replays scripted replies in order. Once the script
// is exhausted it keeps answering with Fallback.
type StubChatModelRepository struct {
	ModelName string
	Replies   []entities.Message
	Fallback  entities.Message
	Err       error

	// spy: inputs received
	Calls    [][]entities.Message
	ToolSets [][]entities.ToolSpec
}

var _ repositories.ChatModelRepository = (*StubChatModelRepository)(nil)

func (s *StubChatModelRepository) Model() string {
	if s.ModelName == "" {
		return "stub-model"
	}
	return s.ModelName
}

func (s *StubChatModelRepository) Complete(
	_ context.Context,
	messages []entities.Message,
	tools []entities.ToolSpec,
) (entities.Message, error) {
	s.Calls = append(s.Calls, append([]entities.Message{}, messages...))
	s.ToolSets = append(s.ToolSets, tools)
	if s.Err != nil {
		return entities.Message{}, s.Err
	}

	index := len(s.Calls) - 1
	if index < len(s.Replies) {
		return s.Replies[index], nil
	}
	return s.Fallback, nil
}
