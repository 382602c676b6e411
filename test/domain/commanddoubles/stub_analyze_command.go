//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// StubAnalyzeCommand is a stub implementation of commands.Analyze. Messages
// are replayed to the observer before the run is returned.
type StubAnalyzeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Run              *entities.AnalysisRun
	Messages         []entities.Message
	LastOpts         commands.AnalyzeOptions
}

var _ commands.Analyze = (*StubAnalyzeCommand)(nil)

func (s *StubAnalyzeCommand) Execute(
	_ context.Context,
	opts commands.AnalyzeOptions,
) (*entities.AnalysisRun, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	if opts.OnMessage != nil {
		for _, message := range s.Messages {
			opts.OnMessage(message)
		}
	}
	return s.Run, s.ExecuteErr
}
