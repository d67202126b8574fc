package scrape

import (
	"sync"

	"github.com/google/uuid"
)

// Status describes the lifecycle of a scrape job.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Progress is a point-in-time snapshot of a scrape job.
type Progress struct {
	JobID       string
	Total       int
	Processed   int
	Matched     int
	Unmatched   int
	Status      Status
	CurrentItem string
}

// Tracker records scrape progress. It is safe for concurrent use; the
// pipeline writes while callers poll snapshots.
type Tracker struct {
	mu        sync.Mutex
	progress  Progress
	cancelled bool
}

// NewTracker creates a tracker for a job over total items, starting idle.
func NewTracker(total int) *Tracker {
	return &Tracker{
		progress: Progress{
			JobID:  uuid.New().String(),
			Total:  total,
			Status: StatusIdle,
		},
	}
}

// Start transitions the job to running.
func (t *Tracker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Status = StatusRunning
}

// BeginItem records the item about to be processed.
func (t *Tracker) BeginItem(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.CurrentItem = name
}

// FinishItem counts one processed item and whether it matched.
func (t *Tracker) FinishItem(matched bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.Processed++
	if matched {
		t.progress.Matched++
	} else {
		t.progress.Unmatched++
	}
}

// Complete marks the job finished. A cancelled job stays cancelled.
func (t *Tracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.progress.CurrentItem = ""
	if t.cancelled {
		t.progress.Status = StatusCancelled
		return
	}
	t.progress.Status = StatusCompleted
}

// Cancel requests cooperative cancellation. The pipeline observes it between
// items; the in-flight item finishes.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelled = true
}

// Cancelled reports whether cancellation was requested.
func (t *Tracker) Cancelled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancelled
}

// Snapshot returns a copy of the current progress.
func (t *Tracker) Snapshot() Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.progress
}
