package memory

import (
	"context"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librecal/librecal/recur"
	"github.com/librecal/librecal/store"
)

func seedSeries(t *testing.T, s *Store) []recur.Event {
	t.Helper()

	rule := recur.Rule{Kind: recur.KindWeekly, Interval: 1, End: recur.EndsAfter(3)}
	events := []recur.Event{
		{ID: "a-1", SeriesID: "s1", Date: recur.Date(2024, time.July, 1), Title: "Standup", Rule: rule},
		{ID: "a-2", SeriesID: "s1", Date: recur.Date(2024, time.July, 8), Title: "Standup", Rule: rule},
		{ID: "a-3", SeriesID: "s1", Date: recur.Date(2024, time.July, 15), Title: "Standup", Rule: rule},
		{ID: "b", Date: recur.Date(2024, time.July, 2), Title: "Dentist", Rule: recur.NoRepeat},
	}
	require.NoError(t, s.CreateEvents(context.Background(), events))
	return events
}

func TestStore_CreateAndList(t *testing.T) {
	s := New()
	seedSeries(t, s)

	got, err := s.ListEvents(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Ordered by date.
	assert.Equal(t, "a-1", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Equal(t, "a-2", got[2].ID)
	assert.Equal(t, "a-3", got[3].ID)
}

func TestStore_CreateRejectsDuplicates(t *testing.T) {
	s := New()
	seedSeries(t, s)

	err := s.CreateEvents(context.Background(), []recur.Event{
		{ID: "a-1", Date: recur.Date(2024, time.August, 1)},
	})
	var serr *store.Error
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, store.ErrAlreadyExists, serr.Type)

	// The failed batch must not be partially applied.
	got, err := s.ListEvents(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 4)
}

func TestStore_GetUpdateDelete(t *testing.T) {
	s := New()
	seedSeries(t, s)
	ctx := context.Background()

	ev, err := s.GetEvent(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Dentist", ev.Title)

	ev.Title = "Dentist (moved)"
	require.NoError(t, s.UpdateEvent(ctx, *ev))
	updated, err := s.GetEvent(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "Dentist (moved)", updated.Title)

	require.NoError(t, s.DeleteEvent(ctx, "b"))
	_, err = s.GetEvent(ctx, "b")
	assert.True(t, store.IsNotFound(err))

	assert.True(t, store.IsNotFound(s.DeleteEvent(ctx, "b")))
	assert.True(t, store.IsNotFound(s.UpdateEvent(ctx, recur.Event{ID: "nope"})))
}

func TestStore_UpdateSeries(t *testing.T) {
	s := New()
	seedSeries(t, s)
	ctx := context.Background()

	patch := recur.Patch{Location: mo.Some("Room B")}
	updated, err := s.UpdateSeries(ctx, "s1", patch)
	require.NoError(t, err)
	require.Len(t, updated, 3)
	for _, ev := range updated {
		assert.Equal(t, "Room B", ev.Location)
		assert.Equal(t, "s1", ev.SeriesID)
	}

	// The standalone event is untouched.
	b, err := s.GetEvent(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, b.Location)

	_, err = s.UpdateSeries(ctx, "", patch)
	assert.Error(t, err)
}

func TestStore_DeleteSeries(t *testing.T) {
	s := New()
	seedSeries(t, s)
	ctx := context.Background()

	removed, err := s.DeleteSeries(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	got, err := s.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	removed, err = s.DeleteSeries(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}
