package recur

import (
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []Event {
	rule := Rule{Kind: KindWeekly, Interval: 1, End: EndsAfter(4)}
	return []Event{
		{ID: "1", SeriesID: "repeat-1", Date: Date(2024, time.July, 1), Title: "Standup", Rule: rule},
		{ID: "2", SeriesID: "repeat-1", Date: Date(2024, time.July, 8), Title: "Standup", Rule: rule},
		{ID: "3", Date: Date(2024, time.July, 2), Title: "Dentist", Rule: NoRepeat},
		{ID: "4", Date: Date(2024, time.July, 3), Title: "Lunch", Rule: NoRepeat},
	}
}

func TestEngine_Permissions(t *testing.T) {
	engine := fixedEngine() // today is 2024-06-15
	rule := Rule{Kind: KindDaily, Interval: 1, End: NeverEnds()}

	tests := []struct {
		name     string
		event    Event
		expected Permissions
	}{
		{
			name:     "future recurring instance",
			event:    Event{Date: Date(2024, time.July, 1), Rule: rule},
			expected: Permissions{CanSingle: true, CanAll: true, RequiresConfirmation: true},
		},
		{
			name:     "recurring instance later today is not past",
			event:    Event{Date: Date(2024, time.June, 15), Rule: rule},
			expected: Permissions{CanSingle: true, CanAll: true, RequiresConfirmation: true},
		},
		{
			name:     "past recurring instance cannot be bulk-edited",
			event:    Event{Date: Date(2024, time.June, 14), Rule: rule},
			expected: Permissions{CanSingle: true, CanAll: false, RequiresConfirmation: true},
		},
		{
			name:     "standalone instance never needs confirmation",
			event:    Event{Date: Date(2024, time.July, 1), Rule: NoRepeat},
			expected: Permissions{CanSingle: true, CanAll: false, RequiresConfirmation: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, engine.DeletePermissions(tt.event))
			assert.Equal(t, tt.expected, engine.EditPermissions(tt.event))
		})
	}
}

func TestDeleteSingle(t *testing.T) {
	events := sampleEvents()

	got := DeleteSingle(events, "3")
	require.Len(t, got, 3)
	for _, ev := range got {
		assert.NotEqual(t, "3", ev.ID)
	}

	// Idempotent: deleting the same id again changes nothing.
	again := DeleteSingle(got, "3")
	assert.Equal(t, got, again)

	// Missing id leaves the list as it was.
	assert.Equal(t, events, DeleteSingle(events, "nope"))
	assert.Len(t, events, 4, "input must not be modified")
}

func TestDeleteSeries(t *testing.T) {
	events := sampleEvents()

	got := DeleteSeries(events, "repeat-1")
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "4", got[1].ID)

	assert.Equal(t, events, DeleteSeries(events, ""))
	assert.Len(t, events, 4, "input must not be modified")
}

func TestEventsInSeries(t *testing.T) {
	events := sampleEvents()

	got := EventsInSeries(events, "repeat-1")
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	assert.Empty(t, EventsInSeries(events, "repeat-9"))
	assert.Empty(t, EventsInSeries(events, ""))
}

func TestConvertToStandalone(t *testing.T) {
	original := sampleEvents()[0]

	standalone, err := ConvertToStandalone(&original)
	require.NoError(t, err)
	assert.Empty(t, standalone.SeriesID)
	assert.False(t, IsRecurring(standalone.Rule))
	assert.Equal(t, original.ID, standalone.ID)
	assert.Equal(t, original.Title, standalone.Title)

	// The original keeps its series link.
	assert.Equal(t, "repeat-1", original.SeriesID)

	_, err = ConvertToStandalone(nil)
	assert.ErrorIs(t, err, ErrNilEvent)
}

func TestUpdateSeries(t *testing.T) {
	events := sampleEvents()

	t.Run("applies patch to every series instance", func(t *testing.T) {
		patch := Patch{
			Title:    mo.Some("Daily sync"),
			Location: mo.Some("Room B"),
		}
		got := UpdateSeries(events, "repeat-1", patch)
		require.Len(t, got, 4)
		assert.Equal(t, "Daily sync", got[0].Title)
		assert.Equal(t, "Room B", got[0].Location)
		assert.Equal(t, "Daily sync", got[1].Title)
		assert.Equal(t, "Dentist", got[2].Title, "other events untouched")

		// Identity and recurrence survive the patch.
		assert.Equal(t, "1", got[0].ID)
		assert.Equal(t, "repeat-1", got[0].SeriesID)
		assert.True(t, IsRecurring(got[0].Rule))

		// Input list is unchanged.
		assert.Equal(t, "Standup", events[0].Title)
	})

	t.Run("empty patch returns the input", func(t *testing.T) {
		got := UpdateSeries(events, "repeat-1", Patch{})
		assert.Equal(t, events, got)
	})

	t.Run("no matching series returns the input", func(t *testing.T) {
		got := UpdateSeries(events, "repeat-9", Patch{Title: mo.Some("X")})
		assert.Equal(t, events, got)
	})
}

func TestPatch_IsZero(t *testing.T) {
	assert.True(t, Patch{}.IsZero())
	assert.False(t, Patch{Title: mo.Some("x")}.IsZero())
	assert.False(t, Patch{NotifyMinutes: mo.Some(0)}.IsZero())
	assert.False(t, Patch{Date: mo.Some(Date(2024, time.June, 1))}.IsZero())
}
