package controllers

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

const defaultHistoryLimit = 20

// HistoryController handles the "history" subcommand.
type HistoryController struct {
	command commands.History
}

// NewHistoryController creates a new HistoryController.
func NewHistoryController(command commands.History) *HistoryController {
	return &HistoryController{command: command}
}

// GetBind returns the Cobra command metadata for the history controller.
func (it *HistoryController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "history",
		Short: "Show previous analysis runs",
	}
}

// AddFlags adds history-specific flags to the given command.
func (it *HistoryController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", defaultHistoryLimit, "Maximum number of runs to show (0 for all)")
}

// Execute prints the recorded runs, newest first.
func (it *HistoryController) Execute(cmd *cobra.Command, _ []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	runs, err := it.command.Execute(context.Background(), limit)
	if err != nil {
		logger.Errorf("Cannot read run history: %v", err)
		return
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No analysis runs recorded yet.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	fmt.Fprintln(w, "ID\tREPOSITORY\tSTARTED\tDURATION\tTURNS\tREPORT\tSTOP REASON")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			shortID(run.ID),
			run.Repository,
			run.StartedAt.Local().Format(time.DateTime),
			run.Duration().Round(time.Second),
			run.Turns,
			reportStatus(run),
			run.StopReason,
		)
	}
	_ = w.Flush()
}

func shortID(id string) string {
	const length = 8
	if len(id) > length {
		return id[:length]
	}
	return id
}

func reportStatus(run entities.AnalysisRun) string {
	if run.ReportSaved {
		return color.GreenString("saved")
	}
	if run.Error != "" {
		return color.RedString("failed")
	}
	return color.YellowString("missing")
}
