package retrieval

import (
	"context"
	"sort"
	"sync"
	"time"

	"waste-retrieval-api-server/internal/models"

	"github.com/google/uuid"
)

// MemoryStore keeps records in process. Used by the "memory" store driver
// for local runs and by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.RetrievalRecord
	clock   Clock
}

func NewMemoryStore(clock Clock) *MemoryStore {
	return &MemoryStore{clock: clock}
}

func (s *MemoryStore) Insert(ctx context.Context, rec models.RetrievalRecord) (models.RetrievalRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.RetrievalRecord{}, err
	}
	rec.ID = uuid.New().String()
	rec.Timestamp = storedTime(s.clock.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *MemoryStore) CountSince(ctx context.Context, location string, since time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for _, rec := range s.records {
		if rec.Location == location && !rec.Timestamp.Before(since) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) ListNewestFirst(ctx context.Context) ([]models.RetrievalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	out := make([]models.RetrievalRecord, 0, len(s.records))
	for i := len(s.records) - 1; i >= 0; i-- {
		out = append(out, s.records[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// Len reports how many records have been written.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
