package commands

import (
	"context"
	"time"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/internal/domain/repositories"
)

// RunTeam runs a round-robin team for testing.
func RunTeam(
	ctx context.Context,
	agents []entities.Agent,
	model repositories.ChatModelRepository,
	toolbox *Toolbox,
	opts TeamOptions,
	task string,
) (TeamResult, error) {
	return newRoundRobinTeam(agents, model, toolbox, opts).Run(ctx, task)
}

// SetClock replaces the ID generator and clock of an AnalyzeCommand for testing.
func (it *AnalyzeCommand) SetClock(newID func() string, now func() time.Time) {
	it.newID = newID
	it.now = now
}
