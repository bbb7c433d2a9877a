package app

import (
	"sort"
	"sync"
	"time"

	"github.com/example/taller/internal/core/deadline"
	"github.com/example/taller/internal/ports/primary"
)

// deadlineTracker holds the in-memory countdown state for every intake
// with an active deadline, keyed by intake ID. The persisted deadline
// fields are the source of truth; the tracker is rebuilt from them on
// startup so a restart never resets elapsed time.
type deadlineTracker struct {
	mu      sync.RWMutex
	entries map[string]trackerEntry
}

type trackerEntry struct {
	start  time.Time
	budget time.Duration
}

func newDeadlineTracker() *deadlineTracker {
	return &deadlineTracker{
		entries: make(map[string]trackerEntry),
	}
}

func (t *deadlineTracker) set(intakeID string, start time.Time, budget time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[intakeID] = trackerEntry{start: start, budget: budget}
}

func (t *deadlineTracker) remove(intakeID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, intakeID)
}

func (t *deadlineTracker) reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = make(map[string]trackerEntry)
}

// snapshot derives the current reading for every tracked intake against
// the given instant. Read-only; the tick path never mutates state.
func (t *deadlineTracker) snapshot(now time.Time) []primary.DeadlineReading {
	t.mu.RLock()
	defer t.mu.RUnlock()

	readings := make([]primary.DeadlineReading, 0, len(t.entries))
	for id, e := range t.entries {
		elapsed := now.Sub(e.start)
		pct := deadline.Percent(elapsed, e.budget)
		readings = append(readings, primary.DeadlineReading{
			IntakeID:  id,
			Percent:   pct,
			Band:      string(deadline.BandFor(pct)),
			Remaining: e.budget - elapsed,
		})
	}

	sort.Slice(readings, func(i, j int) bool {
		return readings[i].IntakeID < readings[j].IntakeID
	})
	return readings
}
