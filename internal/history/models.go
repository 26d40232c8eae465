package history

import "time"

// BatchSummary is the journal's aggregate view of one finished batch.
type BatchSummary struct {
	ID         string
	Target     string
	DestDir    string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Succeeded  int
	Failed     int
}

// Duration returns the wall-clock time the batch took.
func (b BatchSummary) Duration() time.Duration {
	if b.StartedAt.IsZero() || b.FinishedAt.IsZero() {
		return 0
	}
	return b.FinishedAt.Sub(b.StartedAt)
}
