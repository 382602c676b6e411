package repositories

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// ChatModelRepository abstracts a chat-completion language model with tool calling.
type ChatModelRepository interface {
	// Model returns the model identifier used for completions.
	Model() string

	// Complete sends the conversation and the available tools and returns the
	// assistant reply, which may carry tool calls instead of content.
	Complete(ctx context.Context, messages []entities.Message, tools []entities.ToolSpec) (entities.Message, error)
}
