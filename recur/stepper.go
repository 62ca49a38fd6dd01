package recur

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidKind is returned when a repeat kind is not one of
	// daily/weekly/monthly/yearly.
	ErrInvalidKind = errors.New("invalid repeat kind")
	// ErrInvalidInterval is returned when a repeat interval is not positive.
	ErrInvalidInterval = errors.New("invalid repeat interval")
	// ErrNilEvent is returned when a required event argument is nil.
	ErrNilEvent = errors.New("nil event")
)

// NextOccurrence computes the calendar date one step after date for the
// given kind and interval.
//
// Monthly steps that land in a month without the original day-of-month are
// clamped to that month's last day (Jan 31 + 1 month = Feb 28/29). Yearly
// steps from Feb 29 into a non-leap year are clamped to Feb 28. Whether a
// clamped date is kept or skipped in a generated series is the generator's
// decision, not this function's.
func NextOccurrence(date time.Time, kind Kind, interval int) (time.Time, error) {
	if interval < 1 {
		return time.Time{}, fmt.Errorf("%w: %d", ErrInvalidInterval, interval)
	}

	switch kind {
	case KindDaily:
		return date.AddDate(0, 0, interval), nil
	case KindWeekly:
		return date.AddDate(0, 0, interval*7), nil
	case KindMonthly:
		return addMonthsClamped(date, interval), nil
	case KindYearly:
		return addYearsClamped(date, interval), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
}

// addMonthsClamped adds months to t, clamping the day-of-month to the last
// day of the target month. time.AddDate is unsuitable here: it normalizes
// Jan 31 + 1 month to Mar 2/3 instead of the end of February.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + months
	ty, tm := y+total/12, time.Month(total%12+1)
	if last := DaysInMonth(ty, tm); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// addYearsClamped adds years to t, clamping Feb 29 to Feb 28 in non-leap
// target years.
func addYearsClamped(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	ty := y + years
	if last := DaysInMonth(ty, m); d > last {
		d = last
	}
	return time.Date(ty, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// skipOccurrence reports whether a clamped occurrence must be omitted from a
// generated series: a monthly rule anchored on the 29th/30th/31st does not
// occur in months too short for that day, and a yearly rule anchored on
// Feb 29 occurs only in leap years. Clamping always moves the day-of-month
// down, so a day mismatch against the base date is exactly the clamped case.
func skipOccurrence(base, occurrence time.Time, kind Kind) bool {
	switch kind {
	case KindMonthly:
		return occurrence.Day() != base.Day()
	case KindYearly:
		return IsFeb29(base) && occurrence.Day() != base.Day()
	}
	return false
}
