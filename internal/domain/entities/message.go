package entities

import "strings"

// Message roles understood by chat models.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// ToolCall is a request from a chat model to invoke a tool.
// Arguments holds the raw JSON object produced by the model.
type ToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// Message is one item of a conversation.
type Message struct {
	Source     string     `json:"source"`
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

// Mentions reports whether the message content contains phrase.
func (m Message) Mentions(phrase string) bool {
	return phrase != "" && strings.Contains(m.Content, phrase)
}

// Agent is a role-played participant of a team.
type Agent struct {
	Name          string
	SystemMessage string
}
