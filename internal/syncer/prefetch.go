package syncer

import (
	"context"
	"time"

	"github.com/julianstephens/timegrid/internal/dateutil"
	"github.com/julianstephens/timegrid/internal/models"
)

// PrefetchTask is a handle on one detached background warm-up. The task is
// fire-and-forget: its failures are logged, never surfaced, and it races
// harmlessly with further navigation because per-date ingest is
// last-write-wins. Superseded tasks are not cancelled; their results only
// touch dates that remain correct.
type PrefetchTask struct {
	done chan struct{}
}

// Wait blocks until the warm-up has finished.
func (t *PrefetchTask) Wait() {
	<-t.done
}

// Done reports completion without blocking.
func (t *PrefetchTask) Done() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// startPrefetch launches the background warm-up for a pivot and mode: every
// date of the prefetch range not yet resident is fetched and ingested,
// swallowing failures. This is the explicit detached code path; it never
// blocks the caller.
func (co *Coordinator) startPrefetch(ctx context.Context, pivot time.Time, mode models.DisplayMode) *PrefetchTask {
	task := &PrefetchTask{done: make(chan struct{})}

	co.mu.Lock()
	co.lastPrefetch = task
	co.mu.Unlock()

	go func() {
		defer close(task.done)

		missing := co.cache.MissingDates(dateutil.PrefetchRange(pivot, mode))
		if len(missing) == 0 {
			return
		}
		if err := co.fetchAndIngest(ctx, missing, false); err != nil {
			co.logf("background prefetch: %v", err)
		}
	}()

	return task
}
