//go:build unit

package bolt_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodoctor/internal/infrastructure/repositories/bolt"
	"github.com/rios0rios0/repodoctor/test/domain/entitybuilders"
)

func TestBoltRunRepository(t *testing.T) {
	t.Parallel()

	t.Run("should list saved runs newest first", func(t *testing.T) {
		t.Parallel()

		// given
		repo := bolt.NewRunRepositoryAt(filepath.Join(t.TempDir(), "nested", "runs.db"))
		t.Cleanup(func() { _ = repo.Close() })
		base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
		builder := entitybuilders.NewAnalysisRunBuilder()
		older := builder.WithID("older").WithStartedAt(base).BuildAnalysisRun()
		newer := builder.WithID("newer").WithStartedAt(base.Add(time.Hour)).BuildAnalysisRun()

		// when
		require.NoError(t, repo.Save(context.Background(), older))
		require.NoError(t, repo.Save(context.Background(), newer))
		runs, err := repo.List(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "newer", runs[0].ID)
		assert.Equal(t, "older", runs[1].ID)
		assert.True(t, runs[1].StartedAt.Equal(base))
		assert.Equal(t, older.StopReason, runs[1].StopReason)
	})

	t.Run("should replace a run saved twice", func(t *testing.T) {
		t.Parallel()

		// given
		repo := bolt.NewRunRepositoryAt(filepath.Join(t.TempDir(), "runs.db"))
		t.Cleanup(func() { _ = repo.Close() })
		run := entitybuilders.NewAnalysisRunBuilder().WithTurns(2).BuildAnalysisRun()
		require.NoError(t, repo.Save(context.Background(), run))

		// when
		run.Turns = 7
		require.NoError(t, repo.Save(context.Background(), run))
		runs, err := repo.List(context.Background())

		// then
		require.NoError(t, err)
		require.Len(t, runs, 1)
		assert.Equal(t, 7, runs[0].Turns)
	})

	t.Run("should keep runs across reopen", func(t *testing.T) {
		t.Parallel()

		// given
		path := filepath.Join(t.TempDir(), "runs.db")
		first := bolt.NewRunRepositoryAt(path)
		require.NoError(t, first.Save(context.Background(), entitybuilders.NewAnalysisRunBuilder().BuildAnalysisRun()))
		require.NoError(t, first.Close())

		// when
		second := bolt.NewRunRepositoryAt(path)
		t.Cleanup(func() { _ = second.Close() })
		runs, err := second.List(context.Background())

		// then
		require.NoError(t, err)
		assert.Len(t, runs, 1)
	})

	t.Run("should return nothing for a new store", func(t *testing.T) {
		t.Parallel()

		// given
		repo := bolt.NewRunRepositoryAt(filepath.Join(t.TempDir(), "runs.db"))
		t.Cleanup(func() { _ = repo.Close() })

		// when
		runs, err := repo.List(context.Background())

		// then
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}
