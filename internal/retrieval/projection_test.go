package retrieval_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"waste-retrieval-api-server/internal/models"
	"waste-retrieval-api-server/internal/retrieval"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentNewestFirstAndFilter(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	submissions := []struct {
		wasteType models.WasteType
		location  string
	}{
		{models.WastePlastic, "building-a"},
		{models.WasteOrganic, "building-b"},
		{models.WastePlastic, "building-c"},
	}
	for _, s := range submissions {
		_, err := svc.Submit(ctx, retrieval.SubmitRequest{Payload: payload(s.wasteType, s.location), UserID: "uid-1"})
		require.Nil(t, err)
		clock.Advance(time.Minute)
	}

	views := svc.Recent(ctx)
	require.Len(t, views, 3)
	assert.Equal(t, "building-c", views[0].Location)
	assert.Equal(t, "building-b", views[1].Location)
	assert.Equal(t, "building-a", views[2].Location)
	for i := 1; i < len(views); i++ {
		assert.True(t, views[i-1].Timestamp.After(views[i].Timestamp))
	}

	plastic := retrieval.FilterByType(views, models.WastePlastic)
	require.Len(t, plastic, 2)
	assert.Equal(t, "building-c", plastic[0].Location)
	assert.Equal(t, "building-a", plastic[1].Location)

	assert.Empty(t, retrieval.FilterByType(views, models.WasteNonOrganic))
	assert.Equal(t, views, retrieval.FilterByType(views, ""))
}

func TestRecentDegradesToEmptyOnStoreFailure(t *testing.T) {
	store := &failingStore{err: errors.New("unavailable")}
	guard := retrieval.NewDuplicateGuard(store, time.Hour, nil)
	svc := retrieval.NewService(store, guard, logging.MustGetLogger("retrieval_test"), nil)

	views := svc.Recent(context.Background())
	assert.NotNil(t, views)
	assert.Empty(t, views)

	_, err := svc.History(context.Background())
	var storeErr *retrieval.StoreError
	require.True(t, errors.As(err, &storeErr))
	assert.Equal(t, "list", storeErr.Op)
}

func TestProject(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	rec := models.RetrievalRecord{
		ID:        "abc",
		WasteType: models.WasteNonOrganic,
		Location:  "canteen",
		Timestamp: time.Date(2025, 3, 4, 2, 15, 30, 123456789, time.UTC),
		UserID:    "uid-9",
	}

	view := retrieval.Project(rec, jakarta)
	assert.Equal(t, "abc", view.ID)
	assert.Equal(t, models.WasteNonOrganic, view.WasteType)
	assert.Equal(t, "canteen", view.Location)
	assert.Equal(t, time.Date(2025, 3, 4, 2, 15, 30, 123000000, time.UTC), view.Timestamp)
	assert.Equal(t, "Mar 4, 2025, 09:15 AM", view.DisplayTime)
	assert.Equal(t, retrieval.UnknownUser, view.DisplayUser)

	rec.UserEmail = "driver@example.com"
	view = retrieval.Project(rec, nil)
	assert.Equal(t, "Mar 4, 2025, 02:15 AM", view.DisplayTime)
	assert.Equal(t, "driver@example.com", view.DisplayUser)
}
