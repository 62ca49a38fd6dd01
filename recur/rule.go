package recur

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Kind identifies how often a series repeats.
type Kind string

const (
	KindNone    Kind = "none"
	KindDaily   Kind = "daily"
	KindWeekly  Kind = "weekly"
	KindMonthly Kind = "monthly"
	KindYearly  Kind = "yearly"
)

// knownKind reports whether k is one of the four repeating kinds.
func knownKind(k Kind) bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly, KindYearly:
		return true
	}
	return false
}

// EndConditionType discriminates the three ways a series can end.
type EndConditionType string

const (
	// EndNever leaves the series unbounded; generation is clamped to the
	// configured horizon instead.
	EndNever EndConditionType = "never"
	// EndOnDate bounds the series by an explicit last permissible date.
	EndOnDate EndConditionType = "date"
	// EndAfterCount bounds the series by a number of emitted occurrences.
	EndAfterCount EndConditionType = "count"
)

// EndCondition is a tagged union over the three end kinds. Only the payload
// matching Type is meaningful; the constructors below keep the two in sync.
type EndCondition struct {
	Type  EndConditionType     `json:"type"`
	Date  mo.Option[time.Time] `json:"date"`
	Count mo.Option[int]       `json:"count"`
}

// NeverEnds returns an unbounded end condition.
func NeverEnds() EndCondition {
	return EndCondition{Type: EndNever}
}

// EndsOn returns an end condition bounded by the given date (inclusive).
func EndsOn(date time.Time) EndCondition {
	return EndCondition{Type: EndOnDate, Date: mo.Some(date)}
}

// EndsAfter returns an end condition bounded by a number of occurrences.
func EndsAfter(count int) EndCondition {
	return EndCondition{Type: EndAfterCount, Count: mo.Some(count)}
}

// Rule describes the recurrence of a series: how often it repeats, the step
// between occurrences, and when it stops.
type Rule struct {
	Kind     Kind         `json:"kind"`
	Interval int          `json:"interval"`
	End      EndCondition `json:"end"`
}

// NoRepeat is the rule carried by standalone events.
var NoRepeat = Rule{Kind: KindNone}

// Validate checks the structural invariants of the rule: a recognized kind,
// a positive interval, and an end-condition payload matching its type.
// It does not consult the horizon; Engine.ValidateRule does.
func (r Rule) Validate() error {
	if r.Kind == KindNone {
		return nil
	}
	if !knownKind(r.Kind) {
		return fmt.Errorf("%w: %q", ErrInvalidKind, r.Kind)
	}
	if r.Interval < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidInterval, r.Interval)
	}
	switch r.End.Type {
	case EndNever:
	case EndOnDate:
		if r.End.Date.IsAbsent() {
			return fmt.Errorf("end condition %q requires a date", EndOnDate)
		}
	case EndAfterCount:
		if c, ok := r.End.Count.Get(); !ok || c < 1 {
			return fmt.Errorf("end condition %q requires a count of at least 1", EndAfterCount)
		}
	default:
		return fmt.Errorf("unknown end condition type %q", r.End.Type)
	}
	return nil
}

// Event is one concrete calendar occurrence. Instances generated from the
// same rule share a SeriesID; standalone events carry an empty SeriesID and
// the NoRepeat rule.
type Event struct {
	ID       string    `json:"id"`
	SeriesID string    `json:"seriesId,omitempty"`
	Date     time.Time `json:"date"`

	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`

	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Location      string `json:"location,omitempty"`
	Category      string `json:"category,omitempty"`
	NotifyMinutes int    `json:"notifyMinutes,omitempty"`

	Rule Rule `json:"repeat"`
}
