package controllers

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fatih/color"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

const separatorWidth = 60

// AnalyzeController handles the "analyze" subcommand.
type AnalyzeController struct {
	settings *entities.Settings
	command  commands.Analyze
	reports  repositories.ReportRepository
}

// NewAnalyzeController creates a new AnalyzeController.
func NewAnalyzeController(
	settings *entities.Settings,
	command commands.Analyze,
	reports repositories.ReportRepository,
) *AnalyzeController {
	return &AnalyzeController{settings: settings, command: command, reports: reports}
}

// GetBind returns the Cobra command metadata for the analyze controller.
func (it *AnalyzeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "analyze [owner/repo]",
		Short: "Review a repository with the Navigator and Analyst agents",
		Long: `Start the tool server, then let two agents take turns on the repository:
the Navigator explores the file tree and picks the core files, the Analyst
reads them and writes a Markdown report of bugs, security risks and
performance issues. The repository is asked for when not given.`,
	}
}

// AddFlags adds analyze-specific flags to the given command.
func (it *AnalyzeController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-turns", 0, "Maximum number of agent turns (default from config)")
	cmd.Flags().Bool("print", false, "Print the saved report when the analysis finishes")
}

// Preflight refuses to start an analysis without a chat model API key.
func (it *AnalyzeController) Preflight() error {
	if err := it.settings.RequireAPIKey(); err != nil {
		return fmt.Errorf("cannot start analysis: %w", err)
	}
	return nil
}

// Execute runs one analysis and reports where the result landed.
func (it *AnalyzeController) Execute(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	maxTurns, _ := cmd.Flags().GetInt("max-turns")
	printReport, _ := cmd.Flags().GetBool("print")

	repositoryID := ""
	if len(args) > 0 {
		repositoryID = args[0]
	} else {
		repositoryID = promptRepository(cmd.InOrStdin(), out)
	}
	repositoryID = strings.TrimSpace(repositoryID)
	if repositoryID == "" {
		fmt.Fprintln(out, commands.ErrEmptyRepository.Error())
		return
	}

	color.New(color.FgCyan, color.Bold).Fprintf(out, "Starting analysis of %s...\n", repositoryID)

	run, err := it.command.Execute(ctx, commands.AnalyzeOptions{
		Repository: repositoryID,
		MaxTurns:   maxTurns,
		OnMessage:  func(message entities.Message) { printMessage(out, message) },
	})
	if err != nil {
		logger.Errorf("Analysis failed: %v", err)
	}
	if run == nil {
		return
	}

	fmt.Fprintln(out, strings.Repeat("=", separatorWidth))
	if it.reports.Exists(ctx) {
		color.New(color.FgGreen).Fprintf(out, "DONE! Open '%s' to see the results.\n", it.reports.Location())
		if printReport {
			it.printReport(ctx, out)
		}
		return
	}
	color.New(color.FgYellow).Fprintf(out, "Process finished, but '%s' was not found.\n", it.reports.Location())
}

func (it *AnalyzeController) printReport(ctx context.Context, out io.Writer) {
	report, err := it.reports.Read(ctx)
	if err != nil {
		logger.Warnf("Cannot read report: %v", err)
		return
	}
	if err = quick.Highlight(out, report, "markdown", "terminal256", "dracula"); err != nil {
		fmt.Fprintln(out, report)
	}
}

func promptRepository(in io.Reader, out io.Writer) string {
	fmt.Fprint(out, "Enter GitHub repository (e.g., owner/repo): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return ""
	}
	return line
}

// printMessage renders one team message with a speaker header.
func printMessage(out io.Writer, message entities.Message) {
	header := color.New(color.FgMagenta, color.Bold)
	switch {
	case len(message.ToolCalls) > 0:
		for _, call := range message.ToolCalls {
			header.Fprintf(out, "---------- %s -> %s ----------\n", message.Source, call.Name)
			fmt.Fprintln(out, call.Arguments)
		}
	case message.Role == entities.RoleTool:
		header.Fprintf(out, "---------- %s (tool result) ----------\n", message.Source)
		fmt.Fprintln(out, message.Content)
	default:
		header.Fprintf(out, "---------- %s ----------\n", message.Source)
		fmt.Fprintln(out, message.Content)
	}
}
