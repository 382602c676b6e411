//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repodoctor/internal/domain/entities"
)

// AnalysisRunBuilder helps create test analysis runs with a fluent interface.
type AnalysisRunBuilder struct {
	*testkit.BaseBuilder
	id          string
	repository  string
	startedAt   time.Time
	duration    time.Duration
	turns       int
	stopReason  string
	reportSaved bool
	err         string
}

// NewAnalysisRunBuilder creates a new analysis run builder with sensible defaults.
func NewAnalysisRunBuilder() *AnalysisRunBuilder {
	b := &AnalysisRunBuilder{BaseBuilder: testkit.NewBaseBuilder()}
	b.defaults()
	return b
}

func (b *AnalysisRunBuilder) defaults() {
	b.id = "run-1"
	b.repository = "octocat/hello-world"
	b.startedAt = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b.duration = time.Minute
	b.turns = 4
	b.stopReason = "Text 'TERMINATE' mentioned"
	b.reportSaved = true
	b.err = ""
}

// WithID sets the run identifier.
func (b *AnalysisRunBuilder) WithID(id string) *AnalysisRunBuilder {
	b.id = id
	return b
}

// WithRepository sets the analyzed repository.
func (b *AnalysisRunBuilder) WithRepository(repository string) *AnalysisRunBuilder {
	b.repository = repository
	return b
}

// WithStartedAt sets the start time.
func (b *AnalysisRunBuilder) WithStartedAt(startedAt time.Time) *AnalysisRunBuilder {
	b.startedAt = startedAt
	return b
}

// WithTurns sets the number of agent turns.
func (b *AnalysisRunBuilder) WithTurns(turns int) *AnalysisRunBuilder {
	b.turns = turns
	return b
}

// WithFailure marks the run as failed with the given error.
func (b *AnalysisRunBuilder) WithFailure(err string) *AnalysisRunBuilder {
	b.stopReason = "error"
	b.reportSaved = false
	b.err = err
	return b
}

// Build creates the run (satisfies testkit.Builder interface).
func (b *AnalysisRunBuilder) Build() interface{} {
	return b.BuildAnalysisRun()
}

// BuildAnalysisRun creates the run with a concrete return type.
func (b *AnalysisRunBuilder) BuildAnalysisRun() entities.AnalysisRun {
	return entities.AnalysisRun{
		ID:          b.id,
		Repository:  b.repository,
		Model:       "stub-model",
		StartedAt:   b.startedAt,
		FinishedAt:  b.startedAt.Add(b.duration),
		Turns:       b.turns,
		StopReason:  b.stopReason,
		ReportPath:  "IMPROVEMENTS.md",
		ReportSaved: b.reportSaved,
		Error:       b.err,
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *AnalysisRunBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.defaults()
	return b
}

// Clone creates a deep copy of the AnalysisRunBuilder.
func (b *AnalysisRunBuilder) Clone() testkit.Builder {
	return &AnalysisRunBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		id:          b.id,
		repository:  b.repository,
		startedAt:   b.startedAt,
		duration:    b.duration,
		turns:       b.turns,
		stopReason:  b.stopReason,
		reportSaved: b.reportSaved,
		err:         b.err,
	}
}
