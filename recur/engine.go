package recur

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Expand generates the ordered occurrence dates of a series starting at
// base under the given rule.
//
// The first element is always base itself, unless base already lies past
// the effective end boundary (or the horizon), in which case the result is
// empty. Every later occurrence is computed by stepping from base by
// k*interval rather than from the previous occurrence, so a clamped month
// end never drags subsequent occurrences down with it. Occurrences whose
// day-of-month had to be clamped are skipped entirely: a series anchored on
// the 31st occurs only in months that have a 31st, and a Feb 29 yearly
// series only in leap years. Skipped occurrences do not count toward a
// count end condition.
//
// A KindNone rule yields just the base date. Unrecognized kinds and
// non-positive intervals return an error.
func (e *Engine) Expand(base time.Time, rule Rule) ([]time.Time, error) {
	if base.After(e.config.Horizon) {
		return nil, nil
	}

	byDate := rule.End.Type != EndAfterCount
	limit := e.config.Horizon
	if rule.End.Type == EndOnDate {
		if d, ok := rule.End.Date.Get(); ok {
			limit = d
		}
	}
	if byDate && base.After(limit) {
		return nil, nil
	}

	if rule.Kind == KindNone {
		return []time.Time{base}, nil
	}
	if !knownKind(rule.Kind) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidKind, rule.Kind)
	}
	if rule.Interval < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidInterval, rule.Interval)
	}

	wanted := 0
	if rule.End.Type == EndAfterCount {
		c, ok := rule.End.Count.Get()
		if !ok || c < 1 {
			return nil, fmt.Errorf("end condition %q requires a count of at least 1", EndAfterCount)
		}
		wanted = c
	}

	occurrences := []time.Time{base}
	for step := 1; step <= e.config.HardCap && len(occurrences) < e.config.HardCap; step++ {
		if wanted > 0 && len(occurrences) >= wanted {
			break
		}

		next, err := NextOccurrence(base, rule.Kind, rule.Interval*step)
		if err != nil {
			return nil, err
		}
		if byDate && next.After(limit) {
			break
		}
		if skipOccurrence(base, next, rule.Kind) {
			continue
		}
		occurrences = append(occurrences, next)
	}
	return occurrences, nil
}

// ExpandEvent materializes a full series of event instances from a template
// event and a rule. Each instance gets its own id derived from the template
// id, and all instances share one series identifier (the template's, or a
// fresh one). The template itself is not modified.
//
// A KindNone rule yields a single standalone copy with no series id.
func (e *Engine) ExpandEvent(template Event, rule Rule) ([]Event, error) {
	dates, err := e.Expand(template.Date, rule)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}

	if rule.Kind == KindNone {
		single := template
		single.SeriesID = ""
		single.Rule = NoRepeat
		if single.ID == "" {
			single.ID = uuid.NewString()
		}
		return []Event{single}, nil
	}

	baseID := template.ID
	if baseID == "" {
		baseID = uuid.NewString()
	}
	seriesID := template.SeriesID
	if seriesID == "" {
		seriesID = uuid.NewString()
	}

	instances := make([]Event, 0, len(dates))
	for i, date := range dates {
		instance := template
		instance.ID = fmt.Sprintf("%s-%d", baseID, i+1)
		instance.SeriesID = seriesID
		instance.Date = date
		instance.Rule = rule
		instances = append(instances, instance)
	}
	return instances, nil
}

// FilterInRange returns the events whose date falls within [start, end]
// inclusive. An invalid range yields an empty result. The input is never
// modified.
func FilterInRange(events []Event, start, end time.Time) []Event {
	if !IsValidDateRange(start, end) {
		return nil
	}
	var matched []Event
	for _, ev := range events {
		if !ev.Date.Before(start) && !ev.Date.After(end) {
			matched = append(matched, ev)
		}
	}
	return matched
}
