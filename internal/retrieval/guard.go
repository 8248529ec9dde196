package retrieval

import (
	"context"
	"time"
)

// DefaultDuplicateWindow is how long a location stays blocked after a retrieval.
const DefaultDuplicateWindow = 24 * time.Hour

// DuplicateGuard answers "was this location already recorded in the trailing window?".
// Every call goes to the store; nothing is cached.
type DuplicateGuard struct {
	store  Store
	window time.Duration
	clock  Clock
}

func NewDuplicateGuard(store Store, window time.Duration, clock Clock) *DuplicateGuard {
	if window <= 0 {
		window = DefaultDuplicateWindow
	}
	return &DuplicateGuard{store: store, window: window, clock: clock}
}

func (g *DuplicateGuard) Window() time.Duration {
	return g.window
}

// AlreadySubmitted reports whether a record exists for location with a
// timestamp at or after now minus the window.
func (g *DuplicateGuard) AlreadySubmitted(ctx context.Context, location string) (bool, error) {
	since := g.clock.now().Add(-g.window)
	n, err := g.store.CountSince(ctx, location, since)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
