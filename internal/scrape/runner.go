package scrape

import (
	"context"
	"errors"
	"sync"

	"reelmatch/internal/scanner"
)

// ErrJobRunning is returned when a scrape is started while another is active.
var ErrJobRunning = errors.New("a scrape job is already running")

// Runner serializes scrape jobs: at most one runs at a time. Progress of the
// active (or most recent) job can be polled while it runs in the background.
type Runner struct {
	orchestrator *Orchestrator

	mu      sync.Mutex
	tracker *Tracker
	cancel  context.CancelFunc
	done    chan struct{}
	results []ItemResult
}

// NewRunner wraps an orchestrator.
func NewRunner(orchestrator *Orchestrator) *Runner {
	return &Runner{orchestrator: orchestrator}
}

// Start launches a scrape over items in the background and returns the job
// id. It fails with ErrJobRunning when a job is still active.
func (r *Runner) Start(ctx context.Context, items []scanner.MediaFile) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running() {
		return "", ErrJobRunning
	}

	jobCtx, cancel := context.WithCancel(ctx)
	tracker := NewTracker(len(items))
	done := make(chan struct{})

	r.tracker = tracker
	r.cancel = cancel
	r.done = done
	r.results = nil

	go func() {
		defer close(done)
		defer cancel()
		results := r.orchestrator.ScrapeItems(jobCtx, items, tracker)

		r.mu.Lock()
		r.results = results
		r.mu.Unlock()
	}()

	return tracker.Snapshot().JobID, nil
}

// running must be called with mu held.
func (r *Runner) running() bool {
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Progress returns the snapshot of the active or most recent job. The second
// return is false when no job was ever started.
func (r *Runner) Progress() (Progress, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tracker == nil {
		return Progress{Status: StatusIdle}, false
	}
	return r.tracker.Snapshot(), true
}

// Cancel requests cancellation of the active job. The in-flight item
// finishes before the job stops.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tracker != nil {
		r.tracker.Cancel()
	}
	if r.cancel != nil {
		r.cancel()
	}
}

// Wait blocks until the active job finishes and returns its results. It
// returns immediately when no job is active.
func (r *Runner) Wait() []ItemResult {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()

	if done != nil {
		<-done
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.results
}
