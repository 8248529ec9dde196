package retrieval

import (
	"context"
	"time"

	"waste-retrieval-api-server/internal/models"
)

// Store persists retrieval records. Implementations assign ID and Timestamp
// at write time; the values passed in for those fields are ignored.
type Store interface {
	Insert(ctx context.Context, rec models.RetrievalRecord) (models.RetrievalRecord, error)
	// CountSince counts records at location with timestamp >= since.
	// Implementations may stop counting after the first match.
	CountSince(ctx context.Context, location string, since time.Time) (int64, error)
	ListNewestFirst(ctx context.Context) ([]models.RetrievalRecord, error)
}

// Clock returns the current instant. Tests substitute a fixed clock.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now()
	}
	return c()
}

// BSON datetimes keep milliseconds, so every store rounds to that.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
