package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// SaveReport is the interface for the local report sink tool.
type SaveReport interface {
	Execute(ctx context.Context, content string) entities.ToolResult
}

// SaveReportCommand writes the final analysis to the local report file.
type SaveReportCommand struct {
	reports repositories.ReportRepository
}

// NewSaveReportCommand creates a new SaveReportCommand.
func NewSaveReportCommand(reports repositories.ReportRepository) *SaveReportCommand {
	return &SaveReportCommand{reports: reports}
}

// Execute saves content and reports the outcome as text.
func (it *SaveReportCommand) Execute(ctx context.Context, content string) entities.ToolResult {
	if err := it.reports.Save(ctx, content); err != nil {
		logger.Errorf("Failed to save report to %s: %v", it.reports.Location(), err)
		return entities.ErrorResult(fmt.Sprintf("Error saving report: %v", err))
	}
	logger.Infof("Report saved to %s (%d bytes)", it.reports.Location(), len(content))
	return entities.TextResult("SUCCESS: Report saved to " + it.reports.Location())
}
