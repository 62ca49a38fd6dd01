package recur

import (
	"fmt"
	"time"
)

// ValidationResult aggregates the outcome of rule validation. Errors make
// the rule unusable; warnings flag concerns (like very large series) that
// the caller may surface to the user without blocking generation.
type ValidationResult struct {
	IsValid        bool     `json:"isValid"`
	Errors         []string `json:"errors"`
	Warnings       []string `json:"warnings"`
	MaxOccurrences int      `json:"maxOccurrences"`
}

// RangeInfo describes a validated date range.
type RangeInfo struct {
	TotalDays       int  `json:"totalDays"`
	TotalWeeks      int  `json:"totalWeeks"`
	TotalMonths     int  `json:"totalMonths"`
	TotalYears      int  `json:"totalYears"`
	IsValid         bool `json:"isValid"`
	IsWithinHorizon bool `json:"isWithinHorizon"`
}

// IsValidDateRange reports whether both dates are set and end does not
// precede start.
func IsValidDateRange(start, end time.Time) bool {
	if start.IsZero() || end.IsZero() {
		return false
	}
	return !end.Before(start)
}

// IsValidEndDate reports whether date is usable as a series end date:
// strictly after today (today itself excluded) and no later than the
// configured horizon.
func (e *Engine) IsValidEndDate(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	return date.After(e.today()) && !date.After(e.config.Horizon)
}

// CountOccurrencesInRange counts the occurrences a rule of the given kind
// and interval produces between start and end inclusive, under the same
// stepping and skip logic as Expand but without materializing instances.
// An invalid range counts 0; start == end counts 1 for any kind.
func (e *Engine) CountOccurrencesInRange(start, end time.Time, kind Kind, interval int) int {
	if !IsValidDateRange(start, end) {
		return 0
	}
	if kind == KindNone || !knownKind(kind) || interval < 1 {
		return 1
	}

	count := 1 // the base occurrence
	for step := 1; step <= e.config.HardCap; step++ {
		next, err := NextOccurrence(start, kind, interval*step)
		if err != nil || next.After(end) {
			break
		}
		if skipOccurrence(start, next, kind) {
			continue
		}
		count++
	}
	return count
}

// DescribeRange returns descriptive statistics over a date range. All
// fields are zeroed when the range is invalid. TotalDays is inclusive of
// both endpoints; months use the mean Gregorian month length.
func (e *Engine) DescribeRange(start, end time.Time) RangeInfo {
	if !IsValidDateRange(start, end) {
		return RangeInfo{}
	}

	days := int(truncateToDay(end).Sub(truncateToDay(start))/(24*time.Hour)) + 1
	return RangeInfo{
		TotalDays:       days,
		TotalWeeks:      days / 7,
		TotalMonths:     int(float64(days) / 30.44),
		TotalYears:      days / 365,
		IsValid:         true,
		IsWithinHorizon: !end.After(e.config.Horizon),
	}
}

// ValidateRule checks a proposed recurrence against its end condition and
// the engine's boundaries, and estimates how many occurrences it produces.
// It never mutates its inputs and never fails; problems are reported inside
// the result.
func (e *Engine) ValidateRule(base time.Time, kind Kind, interval int, end EndCondition) ValidationResult {
	result := ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}

	if kind != KindNone && !knownKind(kind) {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unknown repeat kind %q", kind))
		return result
	}
	if interval < 1 {
		result.IsValid = false
		result.Errors = append(result.Errors, "interval must be at least 1")
		return result
	}

	switch end.Type {
	case EndOnDate:
		date, ok := end.Date.Get()
		if !ok {
			result.IsValid = false
			result.Errors = append(result.Errors, "an end date is required")
			break
		}
		if !IsValidDateRange(base, date) {
			result.IsValid = false
			result.Errors = append(result.Errors, "the end date is before the start date")
			break
		}
		if date.After(e.config.Horizon) {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("the end date exceeds the allowed horizon (%s)", e.config.Horizon.Format(time.DateOnly)))
			break
		}
		result.MaxOccurrences = e.CountOccurrencesInRange(base, date, kind, interval)

	case EndAfterCount:
		count, ok := end.Count.Get()
		if !ok || count < 1 {
			result.IsValid = false
			result.Errors = append(result.Errors, "the occurrence count must be at least 1")
			break
		}
		result.MaxOccurrences = count

	case EndNever:
		result.MaxOccurrences = e.CountOccurrencesInRange(base, e.config.Horizon, kind, interval)

	default:
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unknown end condition type %q", end.Type))
	}

	if result.IsValid && result.MaxOccurrences > e.config.WarnThreshold {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("this rule produces a large number of occurrences (%d)", result.MaxOccurrences))
	}
	return result
}

// ValidateEvent checks a full event template before generation: the rule
// shape, the day-of-month fitness for the kind, and the time fields.
// Oversized intervals draw a warning rather than an error.
func (e *Engine) ValidateEvent(template Event) ValidationResult {
	result := ValidationResult{
		IsValid:  true,
		Errors:   []string{},
		Warnings: []string{},
	}

	rule := template.Rule
	if rule.Kind != KindNone && !knownKind(rule.Kind) {
		result.IsValid = false
		result.Errors = append(result.Errors, fmt.Sprintf("unknown repeat kind %q", rule.Kind))
	}
	if rule.Kind != KindNone && rule.Interval < 1 {
		result.IsValid = false
		result.Errors = append(result.Errors, "interval must be at least 1")
	} else if rule.Interval > 50 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("the interval is unusually large (%d)", rule.Interval))
	}
	if template.Date.IsZero() {
		result.IsValid = false
		result.Errors = append(result.Errors, "an event date is required")
	}
	return result
}

// OccursOn reports whether target is a date on which a series anchored at
// base could occur under the given kind, ignoring interval and end
// conditions: daily matches any date, weekly the same weekday, monthly the
// same day-of-month, yearly the same month and day. Calendar views use this
// as a cheap membership test before consulting the generator.
func OccursOn(base, target time.Time, kind Kind) bool {
	if base.IsZero() || target.IsZero() {
		return false
	}
	switch kind {
	case KindDaily:
		return true
	case KindWeekly:
		return base.Weekday() == target.Weekday()
	case KindMonthly:
		return base.Day() == target.Day()
	case KindYearly:
		return base.Day() == target.Day() && base.Month() == target.Month()
	}
	return false
}
