package traversal

import (
	"sync"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
)

// Tracker is a mutex-guarded snapshot of walk progress for the status
// API. The engine writes to it from the single traversal thread; the
// HTTP handlers read concurrently.
type Tracker struct {
	mu   sync.Mutex
	snap models.StatusResponse
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// StartPass resets per-pass counters.
func (t *Tracker) StartPass(pass, seedsTotal int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap = models.StatusResponse{
		Pass:       pass,
		SeedsTotal: seedsTotal,
	}
}

// StartSeed marks the beginning of one seed's walk.
func (t *Tracker) StartSeed(seed string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.CurrentSeed = seed
	t.snap.CurrentPage = seed
	t.snap.Hops = 0
}

// Visit records the page currently being fetched.
func (t *Tracker) Visit(page string, hops int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.CurrentPage = page
	t.snap.Hops = hops
}

// SeedDone tallies a finished walk.
func (t *Tracker) SeedDone(term Termination) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.SeedsDone++
	switch term {
	case ReachedTarget:
		t.snap.Outcomes.ReachedTarget++
	case CycleDetected:
		t.snap.Outcomes.CycleDetected++
	case DeadEnd:
		t.snap.Outcomes.DeadEnd++
	}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() models.StatusResponse {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}
