package entities

// ToolResult is the tagged outcome of a tool invocation.
// Transports only ever forward Text; IsError is informational.
type ToolResult struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

// TextResult builds a successful result.
func TextResult(text string) ToolResult {
	return ToolResult{Text: text}
}

// ErrorResult builds a failed result.
func ErrorResult(text string) ToolResult {
	return ToolResult{Text: text, IsError: true}
}

// ToolSpec describes a tool to transports and to the chat model.
// Parameters is a JSON schema object.
type ToolSpec struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ToolParam is a single string parameter of a tool.
type ToolParam struct {
	Name        string
	Description string
	Required    bool
	Default     string
}

// NewStringParamsSchema builds an object schema whose properties are all strings.
func NewStringParamsSchema(params ...ToolParam) map[string]any {
	properties := make(map[string]any, len(params))
	required := make([]string, 0, len(params))
	for _, p := range params {
		property := map[string]any{
			"type":        "string",
			"description": p.Description,
		}
		if !p.Required {
			property["default"] = p.Default
		} else {
			required = append(required, p.Name)
		}
		properties[p.Name] = property
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
