//go:build unit

package openai_test

import (
	"context"
	"errors"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/openai"
)

func TestOpenAIChatModelRepositoryComplete(t *testing.T) {
	t.Parallel()

	t.Run("should convert the conversation and the tools", func(t *testing.T) {
		t.Parallel()

		// given
		var request goopenai.ChatCompletionRequest
		client := openai.ChatCompleterFunc(func(
			_ context.Context, r goopenai.ChatCompletionRequest,
		) (goopenai.ChatCompletionResponse, error) {
			request = r
			return goopenai.ChatCompletionResponse{Choices: []goopenai.ChatCompletionChoice{
				{Message: goopenai.ChatCompletionMessage{Role: "assistant", Content: "hello"}},
			}}, nil
		})
		repo := openai.NewChatModelRepositoryWithClient(client, "gpt-test")
		messages := []entities.Message{
			{Role: entities.RoleSystem, Content: "be nice"},
			{Source: entities.RoleUser, Role: entities.RoleUser, Content: "task"},
			{Source: "Navigator", Role: entities.RoleUser, Content: "read main.go"},
			{
				Source: "Analyst", Role: entities.RoleAssistant,
				ToolCalls: []entities.ToolCall{{ID: "c1", Name: "read_file", Arguments: `{"file_path":"main.go"}`}},
			},
			{Source: "Analyst", Role: entities.RoleTool, Content: "package main", ToolCallID: "c1"},
		}
		tools := []entities.ToolSpec{{Name: "read_file", Description: "reads", Parameters: map[string]any{"type": "object"}}}

		// when
		reply, err := repo.Complete(context.Background(), messages, tools)

		// then
		require.NoError(t, err)
		assert.Equal(t, "hello", reply.Content)
		assert.Equal(t, entities.RoleAssistant, reply.Role)
		assert.Equal(t, "gpt-test", request.Model)
		require.Len(t, request.Messages, 5)
		assert.Empty(t, request.Messages[1].Name)
		assert.Equal(t, "Navigator", request.Messages[2].Name)
		assert.Equal(t, "read_file", request.Messages[3].ToolCalls[0].Function.Name)
		assert.Equal(t, goopenai.ToolTypeFunction, request.Messages[3].ToolCalls[0].Type)
		assert.Equal(t, "c1", request.Messages[4].ToolCallID)
		require.Len(t, request.Tools, 1)
		assert.Equal(t, "read_file", request.Tools[0].Function.Name)
	})

	t.Run("should return tool calls of the reply", func(t *testing.T) {
		t.Parallel()

		// given
		client := openai.ChatCompleterFunc(func(
			context.Context, goopenai.ChatCompletionRequest,
		) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{Choices: []goopenai.ChatCompletionChoice{{
				Message: goopenai.ChatCompletionMessage{ToolCalls: []goopenai.ToolCall{{
					ID:       "x",
					Type:     goopenai.ToolTypeFunction,
					Function: goopenai.FunctionCall{Name: "list_directory", Arguments: `{}`},
				}}},
			}}}, nil
		})
		repo := openai.NewChatModelRepositoryWithClient(client, "gpt-test")

		// when
		reply, err := repo.Complete(context.Background(), nil, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, []entities.ToolCall{{ID: "x", Name: "list_directory", Arguments: `{}`}}, reply.ToolCalls)
	})

	t.Run("should omit tools when there are none", func(t *testing.T) {
		t.Parallel()

		// given
		var request goopenai.ChatCompletionRequest
		client := openai.ChatCompleterFunc(func(
			_ context.Context, r goopenai.ChatCompletionRequest,
		) (goopenai.ChatCompletionResponse, error) {
			request = r
			return goopenai.ChatCompletionResponse{Choices: []goopenai.ChatCompletionChoice{{}}}, nil
		})
		repo := openai.NewChatModelRepositoryWithClient(client, "gpt-test")

		// when
		_, err := repo.Complete(context.Background(), []entities.Message{{Role: entities.RoleUser, Content: "hi"}}, nil)

		// then
		require.NoError(t, err)
		assert.Nil(t, request.Tools)
	})

	t.Run("should fail without choices", func(t *testing.T) {
		t.Parallel()

		// given
		client := openai.ChatCompleterFunc(func(
			context.Context, goopenai.ChatCompletionRequest,
		) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{}, nil
		})
		repo := openai.NewChatModelRepositoryWithClient(client, "gpt-test")

		// when
		_, err := repo.Complete(context.Background(), nil, nil)

		// then
		require.Error(t, err)
	})

	t.Run("should wrap client errors", func(t *testing.T) {
		t.Parallel()

		// given
		client := openai.ChatCompleterFunc(func(
			context.Context, goopenai.ChatCompletionRequest,
		) (goopenai.ChatCompletionResponse, error) {
			return goopenai.ChatCompletionResponse{}, errors.New("401 unauthorized")
		})
		repo := openai.NewChatModelRepositoryWithClient(client, "gpt-test")

		// when
		_, err := repo.Complete(context.Background(), nil, nil)

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gpt-test")
		assert.Contains(t, err.Error(), "401 unauthorized")
	})

	t.Run("should expose the configured model", func(t *testing.T) {
		t.Parallel()

		// given
		settings := entities.NewDefaultSettings()
		settings.Agents.Model = "gpt-4o"

		// when
		repo := openai.NewChatModelRepository(settings)

		// then
		assert.Equal(t, "gpt-4o", repo.Model())
	})
}
