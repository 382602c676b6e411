package openai

import (
	"context"
	"errors"
	"fmt"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

var errNoChoices = errors.New("chat completion returned no choices")

// chatCompleter is the subset of the go-openai client used here.
type chatCompleter interface {
	CreateChatCompletion(
		ctx context.Context,
		request goopenai.ChatCompletionRequest,
	) (goopenai.ChatCompletionResponse, error)
}

// OpenAIChatModelRepository implements repositories.ChatModelRepository for
// any OpenAI-compatible chat completions API.
type OpenAIChatModelRepository struct {
	client chatCompleter
	model  string
}

// NewChatModelRepository creates a chat model from the agent settings.
func NewChatModelRepository(settings *entities.Settings) repositories.ChatModelRepository {
	config := goopenai.DefaultConfig(settings.Agents.APIKey)
	if settings.Agents.BaseURL != "" {
		config.BaseURL = settings.Agents.BaseURL
	}
	return newChatModelRepository(goopenai.NewClientWithConfig(config), settings.Agents.Model)
}

func newChatModelRepository(client chatCompleter, model string) *OpenAIChatModelRepository {
	return &OpenAIChatModelRepository{client: client, model: model}
}

func (r *OpenAIChatModelRepository) Model() string { return r.model }

// Complete sends one chat completion request.
func (r *OpenAIChatModelRepository) Complete(
	ctx context.Context,
	messages []entities.Message,
	tools []entities.ToolSpec,
) (entities.Message, error) {
	request := goopenai.ChatCompletionRequest{
		Model:    r.model,
		Messages: toChatMessages(messages),
	}
	if len(tools) > 0 {
		request.Tools = toTools(tools)
	}

	response, err := r.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return entities.Message{}, fmt.Errorf("chat completion with %s failed: %w", r.model, err)
	}
	if len(response.Choices) == 0 {
		return entities.Message{}, errNoChoices
	}

	return fromChatMessage(response.Choices[0].Message), nil
}

func toChatMessages(messages []entities.Message) []goopenai.ChatCompletionMessage {
	converted := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, message := range messages {
		chatMessage := goopenai.ChatCompletionMessage{
			Role:       message.Role,
			Content:    message.Content,
			ToolCallID: message.ToolCallID,
		}
		// other speakers are told apart by name in a shared conversation
		if message.Role == entities.RoleUser && message.Source != "" && message.Source != entities.RoleUser {
			chatMessage.Name = message.Source
		}
		for _, call := range message.ToolCalls {
			chatMessage.ToolCalls = append(chatMessage.ToolCalls, goopenai.ToolCall{
				ID:   call.ID,
				Type: goopenai.ToolTypeFunction,
				Function: goopenai.FunctionCall{
					Name:      call.Name,
					Arguments: call.Arguments,
				},
			})
		}
		converted = append(converted, chatMessage)
	}
	return converted
}

func toTools(specs []entities.ToolSpec) []goopenai.Tool {
	tools := make([]goopenai.Tool, 0, len(specs))
	for _, spec := range specs {
		tools = append(tools, goopenai.Tool{
			Type: goopenai.ToolTypeFunction,
			Function: &goopenai.FunctionDefinition{
				Name:        spec.Name,
				Description: spec.Description,
				Parameters:  spec.Parameters,
			},
		})
	}
	return tools
}

func fromChatMessage(message goopenai.ChatCompletionMessage) entities.Message {
	converted := entities.Message{
		Role:    entities.RoleAssistant,
		Content: message.Content,
	}
	for _, call := range message.ToolCalls {
		converted.ToolCalls = append(converted.ToolCalls, entities.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		})
	}
	return converted
}
