package batch

import (
	"time"

	"imgconv/internal/codec"
)

// Status is the terminal state of one conversion attempt.
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// Request describes one batch: the ordered source paths, the target format,
// and the destination directory. Duplicate source paths are processed
// independently; they derive the same destination path, so the later
// conversion wins.
type Request struct {
	Sources []string
	Target  codec.Format
	DestDir string
}

// Outcome records the result of converting a single source file.
type Outcome struct {
	Source     string
	Dest       string
	Status     Status
	Reason     string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Succeeded reports whether the conversion completed.
func (o Outcome) Succeeded() bool {
	return o.Status == StatusSuccess
}

// Duration returns the wall-clock time the conversion took.
func (o Outcome) Duration() time.Duration {
	if o.StartedAt.IsZero() || o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// Report aggregates the outcomes of one batch, in request order. It is
// created fresh per invocation and immutable once returned.
type Report struct {
	ID         string
	Target     codec.Format
	DestDir    string
	Outcomes   []Outcome
	StartedAt  time.Time
	FinishedAt time.Time
}

// Counts returns the number of succeeded and failed outcomes.
func (r *Report) Counts() (succeeded, failed int) {
	for _, outcome := range r.Outcomes {
		if outcome.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
