package repositories

import "context"

// ReportRepository is the local sink of the final Markdown report.
type ReportRepository interface {
	// Save writes the report, replacing any previous one.
	Save(ctx context.Context, content string) error

	// Exists reports whether a report has been written.
	Exists(ctx context.Context) bool

	// Read returns the saved report.
	Read(ctx context.Context) (string, error)

	// Location returns where the report is written.
	Location() string
}
