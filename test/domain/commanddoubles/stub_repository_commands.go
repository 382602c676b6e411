//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// StubListDirectoryCommand is a stub implementation of commands.ListDirectory.
type StubListDirectoryCommand struct {
	Result           entities.ToolResult
	ExecuteCallCount int
	LastRepositoryID string
	LastPath         string
}

var _ commands.ListDirectory = (*StubListDirectoryCommand)(nil)

func (s *StubListDirectoryCommand) Execute(_ context.Context, repositoryID, path string) entities.ToolResult {
	s.ExecuteCallCount++
	s.LastRepositoryID = repositoryID
	s.LastPath = path
	return s.Result
}

// StubReadFileCommand is a stub implementation of commands.ReadFile.
type StubReadFileCommand struct {
	Result           entities.ToolResult
	ExecuteCallCount int
	LastRepositoryID string
	LastFilePath     string
}

var _ commands.ReadFile = (*StubReadFileCommand)(nil)

func (s *StubReadFileCommand) Execute(_ context.Context, repositoryID, filePath string) entities.ToolResult {
	s.ExecuteCallCount++
	s.LastRepositoryID = repositoryID
	s.LastFilePath = filePath
	return s.Result
}

// StubSaveReportCommand is a stub implementation of commands.SaveReport.
type StubSaveReportCommand struct {
	Result           entities.ToolResult
	ExecuteCallCount int
	LastContent      string
}

var _ commands.SaveReport = (*StubSaveReportCommand)(nil)

func (s *StubSaveReportCommand) Execute(_ context.Context, content string) entities.ToolResult {
	s.ExecuteCallCount++
	s.LastContent = content
	return s.Result
}

// StubHistoryCommand is a stub implementation of commands.History.
type StubHistoryCommand struct {
	Runs             []entities.AnalysisRun
	ExecuteErr       error
	ExecuteCallCount int
	LastLimit        int
}

var _ commands.History = (*StubHistoryCommand)(nil)

func (s *StubHistoryCommand) Execute(_ context.Context, limit int) ([]entities.AnalysisRun, error) {
	s.ExecuteCallCount++
	s.LastLimit = limit
	return s.Runs, s.ExecuteErr
}
