package openai

import (
	"context"

	goopenai "github.com/sashabaranov/go-openai"
)

// ChatCompleterFunc adapts a function to the chat completion client.
type ChatCompleterFunc func(ctx context.Context, request goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)

// CreateChatCompletion calls f.
func (f ChatCompleterFunc) CreateChatCompletion(
	ctx context.Context,
	request goopenai.ChatCompletionRequest,
) (goopenai.ChatCompletionResponse, error) {
	return f(ctx, request)
}

// NewChatModelRepositoryWithClient exports newChatModelRepository for testing.
func NewChatModelRepositoryWithClient(client ChatCompleterFunc, model string) *OpenAIChatModelRepository {
	return newChatModelRepository(client, model)
}
