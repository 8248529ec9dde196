package retrieval

import (
	"context"
	"time"

	"waste-retrieval-api-server/internal/models"
)

// DisplayTimeLayout matches the dashboard table, e.g. "Mar 4, 2025, 09:15 AM".
const DisplayTimeLayout = "Jan 2, 2006, 03:04 PM"

// UnknownUser is shown when a record has no email label.
const UnknownUser = "Unknown"

// Project turns a stored record into its display form.
func Project(rec models.RetrievalRecord, loc *time.Location) models.RetrievalView {
	if loc == nil {
		loc = time.UTC
	}
	ts := storedTime(rec.Timestamp)
	displayUser := rec.UserEmail
	if displayUser == "" {
		displayUser = UnknownUser
	}
	return models.RetrievalView{
		ID:          rec.ID,
		WasteType:   rec.WasteType,
		Location:    rec.Location,
		Timestamp:   ts,
		DisplayTime: ts.In(loc).Format(DisplayTimeLayout),
		UserID:      rec.UserID,
		UserEmail:   rec.UserEmail,
		DisplayUser: displayUser,
	}
}

// Recent returns every record newest-first, projected for display. A store
// failure is logged and yields an empty list.
func (s *Service) Recent(ctx context.Context) []models.RetrievalView {
	views, err := s.History(ctx)
	if err != nil {
		s.log.Errorf("Failed to list retrievals: %v", err)
		return []models.RetrievalView{}
	}
	return views
}

// History is Recent without the fallback: store errors are returned.
func (s *Service) History(ctx context.Context) ([]models.RetrievalView, error) {
	records, err := s.store.ListNewestFirst(ctx)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	views := make([]models.RetrievalView, 0, len(records))
	for _, rec := range records {
		views = append(views, s.View(rec))
	}
	return views, nil
}

// FilterByType keeps the views of type t in their original order.
// An empty t keeps everything.
func FilterByType(views []models.RetrievalView, t models.WasteType) []models.RetrievalView {
	if t == "" {
		return views
	}
	out := make([]models.RetrievalView, 0, len(views))
	for _, v := range views {
		if v.WasteType == t {
			out = append(out, v)
		}
	}
	return out
}

// View projects rec using the service's display time zone.
func (s *Service) View(rec models.RetrievalRecord) models.RetrievalView {
	return Project(rec, s.location)
}
