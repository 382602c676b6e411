package entities

import "time"

// AnalysisRun records the outcome of one orchestrated analysis.
type AnalysisRun struct {
	ID          string    `json:"id"`
	Repository  string    `json:"repository"`
	Model       string    `json:"model"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Turns       int       `json:"turns"`
	StopReason  string    `json:"stop_reason"`
	ReportPath  string    `json:"report_path"`
	ReportSaved bool      `json:"report_saved"`
	Error       string    `json:"error,omitempty"`
}

// Duration returns how long the run took.
func (r AnalysisRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
