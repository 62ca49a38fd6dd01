// Package recur implements the recurring-event calculation engine: pure
// calendar arithmetic, next-occurrence stepping with clamp-or-skip handling
// of month-length irregularities and leap years, bounded series generation
// under never/date/count end conditions, rule and range validation, and the
// pure mutation primitives for editing or deleting series instances.
//
// The package performs no I/O and holds no shared mutable state. All
// functions take immutable inputs and return new values, so everything here
// is safe for concurrent use. Boundaries that depend on the environment
// (the generation horizon, the hard generation cap, the warning threshold,
// and the clock) are injected through Config:
//
//	engine := recur.NewEngineWithConfig(recur.Config{
//		Horizon: recur.Date(2025, time.December, 31),
//	})
//	dates, err := engine.Expand(recur.Date(2024, time.January, 31), recur.Rule{
//		Kind:     recur.KindMonthly,
//		Interval: 1,
//		End:      recur.EndsOn(recur.Date(2024, time.May, 31)),
//	})
//
// The example above yields Jan 31, Mar 31, and May 31: a series anchored on
// the 31st simply does not occur in shorter months, rather than degrading
// to their last day.
package recur
