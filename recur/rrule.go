package recur

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

var kindFrequencies = map[Kind]rrule.Frequency{
	KindDaily:   rrule.DAILY,
	KindWeekly:  rrule.WEEKLY,
	KindMonthly: rrule.MONTHLY,
	KindYearly:  rrule.YEARLY,
}

// RRuleOption translates a rule anchored at base into an RFC 5545 rrule
// option. The translation is faithful: RFC 5545 omits monthly occurrences
// in months without the anchor's day-of-month and yearly Feb 29 occurrences
// in non-leap years, exactly matching the engine's skip policy. A never-
// ending rule maps to an unbounded RRULE; use Engine.RRule to have the
// horizon applied.
func RRuleOption(base time.Time, rule Rule) (rrule.ROption, error) {
	freq, ok := kindFrequencies[rule.Kind]
	if !ok {
		return rrule.ROption{}, fmt.Errorf("%w: %q", ErrInvalidKind, rule.Kind)
	}
	if rule.Interval < 1 {
		return rrule.ROption{}, fmt.Errorf("%w: %d", ErrInvalidInterval, rule.Interval)
	}

	opt := rrule.ROption{
		Freq:     freq,
		Interval: rule.Interval,
		Dtstart:  base.UTC(),
	}
	switch rule.End.Type {
	case EndOnDate:
		if until, ok := rule.End.Date.Get(); ok {
			opt.Until = until.UTC()
		}
	case EndAfterCount:
		if count, ok := rule.End.Count.Get(); ok {
			opt.Count = count
		}
	}
	return opt, nil
}

// RRule builds the rrule for a series, bounding never-ending rules by the
// engine's horizon so expansion through the rrule matches Expand.
func (e *Engine) RRule(base time.Time, rule Rule) (*rrule.RRule, error) {
	opt, err := RRuleOption(base, rule)
	if err != nil {
		return nil, err
	}
	if rule.End.Type == EndNever {
		opt.Until = e.config.Horizon.UTC()
	}
	r, err := rrule.NewRRule(opt)
	if err != nil {
		return nil, fmt.Errorf("build rrule: %w", err)
	}
	return r, nil
}

// RRuleString renders the RRULE property value for a series, e.g.
// "FREQ=MONTHLY;UNTIL=20251231T000000Z".
func (e *Engine) RRuleString(base time.Time, rule Rule) (string, error) {
	r, err := e.RRule(base, rule)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
