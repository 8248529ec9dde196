package retrieval

import (
	"context"
	"time"

	"waste-retrieval-api-server/internal/models"
	"waste-retrieval-api-server/internal/qrcode"

	"github.com/op/go-logging"
)

// SubmitRequest is one scan to be recorded.
type SubmitRequest struct {
	Payload   qrcode.Payload
	UserID    string
	UserEmail string
}

// Service records waste retrievals and serves them back for display.
type Service struct {
	store    Store
	guard    *DuplicateGuard
	log      *logging.Logger
	location *time.Location
}

func NewService(store Store, guard *DuplicateGuard, log *logging.Logger, displayLocation *time.Location) *Service {
	if displayLocation == nil {
		displayLocation = time.UTC
	}
	return &Service{store: store, guard: guard, log: log, location: displayLocation}
}

// Window is the duplicate window enforced by Submit.
func (s *Service) Window() time.Duration {
	return s.guard.Window()
}

// Submit checks the duplicate window for the payload's location and, if the
// location is free, writes exactly one record.
//
// The check and the write are two separate store calls with no transaction
// around them. Two concurrent submissions for the same location can both
// pass the check and both be written. This is accepted: the window only
// throttles repeat scans, it is not a uniqueness constraint.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (models.RetrievalRecord, error) {
	if req.UserID == "" {
		return models.RetrievalRecord{}, ErrUnauthenticated
	}

	submitted, err := s.guard.AlreadySubmitted(ctx, req.Payload.Location)
	if err != nil {
		s.log.Errorf("Duplicate check failed for location %q: %v", req.Payload.Location, err)
		return models.RetrievalRecord{}, &StoreError{Op: "duplicate check", Err: err}
	}
	if submitted {
		s.log.Infof("Rejected duplicate retrieval at %q by %s", req.Payload.Location, req.UserID)
		return models.RetrievalRecord{}, &DuplicateSubmissionError{Location: req.Payload.Location, Window: s.guard.Window()}
	}

	rec, err := s.store.Insert(ctx, models.RetrievalRecord{
		WasteType: req.Payload.WasteType,
		Location:  req.Payload.Location,
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		s.log.Errorf("Failed to insert retrieval at %q: %v", req.Payload.Location, err)
		return models.RetrievalRecord{}, &StoreError{Op: "insert", Err: err}
	}

	s.log.Infof("Recorded %s retrieval %s at %q by %s", rec.WasteType, rec.ID, rec.Location, rec.UserID)
	return rec, nil
}

// SubmitRaw parses a scanned QR string and submits it. A malformed string
// returns ErrInvalidPayload without touching the store.
func (s *Service) SubmitRaw(ctx context.Context, qrData, userID, userEmail string) (models.RetrievalRecord, error) {
	if userID == "" {
		return models.RetrievalRecord{}, ErrUnauthenticated
	}
	payload, ok := qrcode.Parse(qrData)
	if !ok {
		s.log.Warningf("Rejected malformed QR payload %q", qrData)
		return models.RetrievalRecord{}, ErrInvalidPayload
	}
	return s.Submit(ctx, SubmitRequest{Payload: payload, UserID: userID, UserEmail: userEmail})
}
