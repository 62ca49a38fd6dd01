package recur

import (
	"time"

	"github.com/samber/mo"
)

// Permissions describes which edit/delete operations are allowed for one
// instance. Single operations are always allowed; bulk operations over the
// whole series require the instance to be recurring and not already in the
// past. Any operation on a recurring instance asks for confirmation first.
type Permissions struct {
	CanSingle            bool `json:"canSingle"`
	CanAll               bool `json:"canAll"`
	RequiresConfirmation bool `json:"requiresConfirmation"`
}

// permissions implements the shared rule: "past" compares calendar dates
// only, so an occurrence later today is not yet past and stays bulk-editable.
func (e *Engine) permissions(instance Event) Permissions {
	recurring := IsRecurring(instance.Rule)
	past := truncateToDay(instance.Date).Before(e.today())
	return Permissions{
		CanSingle:            true,
		CanAll:               recurring && !past,
		RequiresConfirmation: recurring,
	}
}

// DeletePermissions returns the delete permissions for one instance.
func (e *Engine) DeletePermissions(instance Event) Permissions {
	return e.permissions(instance)
}

// EditPermissions returns the edit permissions for one instance. The rule
// is identical to DeletePermissions.
func (e *Engine) EditPermissions(instance Event) Permissions {
	return e.permissions(instance)
}

// DeleteSingle returns events without the instance matching id. A missing
// id leaves the result equal to the input. The input slice is never
// modified.
func DeleteSingle(events []Event, id string) []Event {
	remaining := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.ID != id {
			remaining = append(remaining, ev)
		}
	}
	return remaining
}

// DeleteSeries returns events without any instance sharing seriesID. An
// empty seriesID returns the input unchanged.
func DeleteSeries(events []Event, seriesID string) []Event {
	if seriesID == "" {
		return events
	}
	remaining := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.SeriesID != seriesID {
			remaining = append(remaining, ev)
		}
	}
	return remaining
}

// EventsInSeries returns every instance sharing seriesID, in input order.
func EventsInSeries(events []Event, seriesID string) []Event {
	if seriesID == "" {
		return nil
	}
	var matched []Event
	for _, ev := range events {
		if ev.SeriesID == seriesID {
			matched = append(matched, ev)
		}
	}
	return matched
}

// ConvertToStandalone returns a copy of the instance severed from its
// series: no series identifier and the NoRepeat rule. The severing is
// permanent; nothing links the copy back to the series. The original is
// not modified.
func ConvertToStandalone(instance *Event) (Event, error) {
	if instance == nil {
		return Event{}, ErrNilEvent
	}
	standalone := *instance
	standalone.SeriesID = ""
	standalone.Rule = NoRepeat
	return standalone, nil
}

// Patch is a partial update applied to every instance of a series. Absent
// fields are left untouched. Identity and recurrence fields are deliberately
// not patchable: a bulk edit never moves an instance out of its series.
type Patch struct {
	Title         mo.Option[string]    `json:"title"`
	Description   mo.Option[string]    `json:"description"`
	Location      mo.Option[string]    `json:"location"`
	Category      mo.Option[string]    `json:"category"`
	StartTime     mo.Option[string]    `json:"startTime"`
	EndTime       mo.Option[string]    `json:"endTime"`
	NotifyMinutes mo.Option[int]       `json:"notifyMinutes"`
	Date          mo.Option[time.Time] `json:"date"`
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.Title.IsAbsent() &&
		p.Description.IsAbsent() &&
		p.Location.IsAbsent() &&
		p.Category.IsAbsent() &&
		p.StartTime.IsAbsent() &&
		p.EndTime.IsAbsent() &&
		p.NotifyMinutes.IsAbsent() &&
		p.Date.IsAbsent()
}

// apply returns a copy of ev with the patch's present fields replaced.
func (p Patch) apply(ev Event) Event {
	if v, ok := p.Title.Get(); ok {
		ev.Title = v
	}
	if v, ok := p.Description.Get(); ok {
		ev.Description = v
	}
	if v, ok := p.Location.Get(); ok {
		ev.Location = v
	}
	if v, ok := p.Category.Get(); ok {
		ev.Category = v
	}
	if v, ok := p.StartTime.Get(); ok {
		ev.StartTime = v
	}
	if v, ok := p.EndTime.Get(); ok {
		ev.EndTime = v
	}
	if v, ok := p.NotifyMinutes.Get(); ok {
		ev.NotifyMinutes = v
	}
	if v, ok := p.Date.Get(); ok {
		ev.Date = v
	}
	return ev
}

// UpdateSeries applies patch to every instance sharing seriesID, keeping
// each instance's own id, series identifier, and rule. The input is
// returned unchanged when the patch is empty or no instance matches; the
// input slice itself is never modified.
func UpdateSeries(events []Event, seriesID string, patch Patch) []Event {
	if patch.IsZero() || seriesID == "" {
		return events
	}

	matches := false
	for _, ev := range events {
		if ev.SeriesID == seriesID {
			matches = true
			break
		}
	}
	if !matches {
		return events
	}

	updated := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.SeriesID == seriesID {
			ev = patch.apply(ev)
		}
		updated = append(updated, ev)
	}
	return updated
}
