package recur

import "time"

// IsLeapYear reports whether year is a leap year in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInMonth returns the number of days in the given month of the given
// year, accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsMonthEnd reports whether t falls on the last day of its month.
// Covers the 28/29/30/31 cases uniformly.
func IsMonthEnd(t time.Time) bool {
	return t.Day() == DaysInMonth(t.Year(), t.Month())
}

// IsFeb29 reports whether t is February 29th.
func IsFeb29(t time.Time) bool {
	return t.Month() == time.February && t.Day() == 29
}

// Date builds a calendar date at midnight UTC. All engine computations
// treat dates as local calendar dates without offset reconciliation, so
// midnight UTC is the canonical representation throughout.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// truncateToDay drops the time-of-day component, keeping the calendar date.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
