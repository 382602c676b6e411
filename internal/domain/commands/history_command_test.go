//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodoctor/internal/domain/commands"
	"github.com/rios0rios0/repodoctor/internal/domain/entities"
	"github.com/rios0rios0/repodoctor/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/repodoctor/test/infrastructure/repositorydoubles"
)

func TestHistoryCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should return the newest runs up to the limit", func(t *testing.T) {
		t.Parallel()

		// given
		builder := entitybuilders.NewAnalysisRunBuilder()
		runs := &doubles.InMemoryRunRepository{Runs: []entities.AnalysisRun{
			builder.WithID("a").BuildAnalysisRun(),
			builder.WithID("b").BuildAnalysisRun(),
			builder.WithID("c").BuildAnalysisRun(),
		}}
		cmd := commands.NewHistoryCommand(runs)

		// when
		result, err := cmd.Execute(context.Background(), 2)

		// then
		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "c", result[0].ID)
		assert.Equal(t, "b", result[1].ID)
	})

	t.Run("should return everything without a limit", func(t *testing.T) {
		t.Parallel()

		// given
		runs := &doubles.InMemoryRunRepository{Runs: []entities.AnalysisRun{
			entitybuilders.NewAnalysisRunBuilder().BuildAnalysisRun(),
		}}
		cmd := commands.NewHistoryCommand(runs)

		// when
		result, err := cmd.Execute(context.Background(), 0)

		// then
		require.NoError(t, err)
		assert.Len(t, result, 1)
	})

	t.Run("should propagate store errors", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewHistoryCommand(&doubles.InMemoryRunRepository{ListErr: errors.New("corrupt")})

		// when
		_, err := cmd.Execute(context.Background(), 5)

		// then
		require.Error(t, err)
	})
}
