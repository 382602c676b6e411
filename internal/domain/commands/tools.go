package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// Tool names exposed to agents.
const (
	ToolListDirectory = "list_directory"
	ToolReadFile      = "read_file"
	ToolSaveReport    = "save_report"
)

// Argument names of the tools.
const (
	ArgRepositoryID = "repository_id"
	ArgPath         = "path"
	ArgFilePath     = "file_path"
	ArgContent      = "content"
)

// ErrUnknownTool is returned when a tool name is not registered.
var ErrUnknownTool = errors.New("unknown tool")

// ListDirectoryToolSpec describes the list_directory tool.
func ListDirectoryToolSpec() entities.ToolSpec {
	return entities.ToolSpec{
		Name:        ToolListDirectory,
		Description: "Lists files in a specific directory of a repository.",
		Parameters: entities.NewStringParamsSchema(
			entities.ToolParam{Name: ArgRepositoryID, Description: `Repository as "owner/repo"`, Required: true},
			entities.ToolParam{Name: ArgPath, Description: `Folder path (leave empty "" for root)`},
		),
	}
}

// ReadFileToolSpec describes the read_file tool.
func ReadFileToolSpec() entities.ToolSpec {
	return entities.ToolSpec{
		Name:        ToolReadFile,
		Description: "Reads a file of a repository. Truncates if too large.",
		Parameters: entities.NewStringParamsSchema(
			entities.ToolParam{Name: ArgRepositoryID, Description: `Repository as "owner/repo"`, Required: true},
			entities.ToolParam{Name: ArgFilePath, Description: "Path to file", Required: true},
		),
	}
}

// SaveReportToolSpec describes the local save_report tool.
func SaveReportToolSpec(location string) entities.ToolSpec {
	return entities.ToolSpec{
		Name:        ToolSaveReport,
		Description: "Saves the final analysis to a local file named " + location,
		Parameters: entities.NewStringParamsSchema(
			entities.ToolParam{Name: ArgContent, Description: "Markdown report", Required: true},
		),
	}
}

// RepositoryTools binds the façade operations to their tool names so that
// every transport dispatches them the same way.
type RepositoryTools struct {
	listDirectory ListDirectory
	readFile      ReadFile
}

// NewRepositoryTools creates a new RepositoryTools.
func NewRepositoryTools(listDirectory ListDirectory, readFile ReadFile) *RepositoryTools {
	return &RepositoryTools{
		listDirectory: listDirectory,
		readFile:      readFile,
	}
}

// Specs returns the exposed tools in a stable order.
func (it *RepositoryTools) Specs() []entities.ToolSpec {
	return []entities.ToolSpec{ListDirectoryToolSpec(), ReadFileToolSpec()}
}

// Call runs the named tool. Only an unknown name is an error; every
// operation failure is carried by the returned result text.
func (it *RepositoryTools) Call(
	ctx context.Context,
	name string,
	arguments map[string]any,
) (entities.ToolResult, error) {
	switch name {
	case ToolListDirectory:
		return it.listDirectory.Execute(ctx, StringArgument(arguments, ArgRepositoryID), StringArgument(arguments, ArgPath)), nil
	case ToolReadFile:
		return it.readFile.Execute(ctx, StringArgument(arguments, ArgRepositoryID), StringArgument(arguments, ArgFilePath)), nil
	default:
		return entities.ToolResult{}, fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// StringArgument returns the named argument as a string, "" when absent.
func StringArgument(arguments map[string]any, name string) string {
	value, ok := arguments[name]
	if !ok || value == nil {
		return ""
	}
	if s, isString := value.(string); isString {
		return s
	}
	return fmt.Sprint(value)
}
