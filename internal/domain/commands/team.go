package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// ToolExecutor runs a tool and returns the text handed back to the model.
type ToolExecutor func(ctx context.Context, arguments map[string]any) string

// Toolbox is the set of tools offered to every agent of a team.
type Toolbox struct {
	specs     []entities.ToolSpec
	executors map[string]ToolExecutor
}

// NewToolbox creates an empty toolbox.
func NewToolbox() *Toolbox {
	return &Toolbox{executors: make(map[string]ToolExecutor)}
}

// Register adds a tool. A later registration with the same name replaces the executor.
func (t *Toolbox) Register(spec entities.ToolSpec, executor ToolExecutor) {
	if _, exists := t.executors[spec.Name]; !exists {
		t.specs = append(t.specs, spec)
	}
	t.executors[spec.Name] = executor
}

// Specs returns the registered tools in registration order.
func (t *Toolbox) Specs() []entities.ToolSpec {
	return t.specs
}

// Call runs a tool call issued by a model. Failures are returned as text.
func (t *Toolbox) Call(ctx context.Context, call entities.ToolCall) string {
	executor, ok := t.executors[call.Name]
	if !ok {
		return fmt.Sprintf("Error: %v: %s", ErrUnknownTool, call.Name)
	}

	arguments := map[string]any{}
	if strings.TrimSpace(call.Arguments) != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &arguments); err != nil {
			return fmt.Sprintf("Error: invalid arguments for %s: %v", call.Name, err)
		}
	}

	return executor(ctx, arguments)
}

// TeamOptions bounds a round-robin conversation.
type TeamOptions struct {
	MaxTurns          int
	MaxToolIterations int
	TerminationPhrase string
	OnMessage         func(entities.Message)
}

// TeamResult summarizes a finished conversation.
type TeamResult struct {
	Messages   []entities.Message
	Turns      int
	StopReason string
}

type teamAgent struct {
	spec    entities.Agent
	context []entities.Message
}

// roundRobinTeam lets agents speak in a fixed order. Each agent keeps its own
// model context; only final replies are broadcast to the others.
type roundRobinTeam struct {
	agents  []*teamAgent
	model   repositories.ChatModelRepository
	toolbox *Toolbox
	opts    TeamOptions
	result  TeamResult
}

func newRoundRobinTeam(
	agents []entities.Agent,
	model repositories.ChatModelRepository,
	toolbox *Toolbox,
	opts TeamOptions,
) *roundRobinTeam {
	members := make([]*teamAgent, 0, len(agents))
	for _, agent := range agents {
		members = append(members, &teamAgent{spec: agent})
	}
	if opts.MaxToolIterations <= 0 {
		opts.MaxToolIterations = 1
	}
	return &roundRobinTeam{
		agents:  members,
		model:   model,
		toolbox: toolbox,
		opts:    opts,
	}
}

// Run starts the conversation with task and returns when an agent mentions
// the termination phrase, the turn cap is hit, or a model call fails.
func (t *roundRobinTeam) Run(ctx context.Context, task string) (TeamResult, error) {
	if len(t.agents) == 0 {
		return t.result, errors.New("team has no participants")
	}

	taskMessage := entities.Message{Source: entities.RoleUser, Role: entities.RoleUser, Content: task}
	t.emit(taskMessage)
	t.broadcast(nil, taskMessage)

	for turn := 0; turn < t.opts.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			t.result.StopReason = "cancelled"
			return t.result, err
		}

		speaker := t.agents[turn%len(t.agents)]
		reply, err := t.speak(ctx, speaker)
		if err != nil {
			return t.result, fmt.Errorf("agent %s failed: %w", speaker.spec.Name, err)
		}
		t.result.Turns++

		t.broadcast(speaker, entities.Message{
			Source:  speaker.spec.Name,
			Role:    entities.RoleUser,
			Content: reply.Content,
		})

		if reply.Mentions(t.opts.TerminationPhrase) {
			t.result.StopReason = fmt.Sprintf("Text '%s' mentioned", t.opts.TerminationPhrase)
			return t.result, nil
		}
	}

	t.result.StopReason = fmt.Sprintf("Maximum number of turns %d reached.", t.opts.MaxTurns)
	return t.result, nil
}

// speak runs one agent turn, resolving tool calls until the model answers
// with text or the tool iterations are exhausted.
func (t *roundRobinTeam) speak(ctx context.Context, agent *teamAgent) (entities.Message, error) {
	var toolOutputs []string

	for iteration := 0; iteration < t.opts.MaxToolIterations; iteration++ {
		messages := make([]entities.Message, 0, len(agent.context)+1)
		messages = append(messages, entities.Message{Role: entities.RoleSystem, Content: agent.spec.SystemMessage})
		messages = append(messages, agent.context...)

		reply, err := t.model.Complete(ctx, messages, t.toolbox.Specs())
		if err != nil {
			return entities.Message{}, err
		}
		reply.Source = agent.spec.Name
		reply.Role = entities.RoleAssistant
		agent.context = append(agent.context, reply)
		t.emit(reply)

		if len(reply.ToolCalls) == 0 {
			return reply, nil
		}

		toolOutputs = toolOutputs[:0]
		for _, call := range reply.ToolCalls {
			logger.Debugf("%s calls %s(%s)", agent.spec.Name, call.Name, call.Arguments)
			output := t.toolbox.Call(ctx, call)
			toolMessage := entities.Message{
				Source:     agent.spec.Name,
				Role:       entities.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
			}
			agent.context = append(agent.context, toolMessage)
			t.emit(toolMessage)
			toolOutputs = append(toolOutputs, output)
		}
	}

	// out of iterations: the last tool outputs stand in for the reply
	summary := entities.Message{
		Source:  agent.spec.Name,
		Role:    entities.RoleAssistant,
		Content: strings.Join(toolOutputs, "\n"),
	}
	agent.context = append(agent.context, summary)
	t.emit(summary)
	return summary, nil
}

func (t *roundRobinTeam) broadcast(from *teamAgent, message entities.Message) {
	for _, agent := range t.agents {
		if agent == from {
			continue
		}
		agent.context = append(agent.context, message)
	}
}

func (t *roundRobinTeam) emit(message entities.Message) {
	t.result.Messages = append(t.result.Messages, message)
	if t.opts.OnMessage != nil {
		t.opts.OnMessage(message)
	}
}
