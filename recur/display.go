package recur

import "fmt"

// Classification is the display descriptor of a recurrence rule: a fixed
// icon token per kind and a natural-language label incorporating the
// interval. Non-recurring rules classify as empty.
type Classification struct {
	Icon  string `json:"icon"`
	Label string `json:"label"`
}

var kindIcons = map[Kind]string{
	KindDaily:   "🔁",
	KindWeekly:  "📆",
	KindMonthly: "🗓️",
	KindYearly:  "🎂",
}

var kindUnits = map[Kind]string{
	KindDaily:   "day",
	KindWeekly:  "week",
	KindMonthly: "month",
	KindYearly:  "year",
}

// IsRecurring reports whether the rule describes a repeating series.
// KindNone and unrecognized kinds are not recurring.
func IsRecurring(rule Rule) bool {
	return knownKind(rule.Kind)
}

// Classify derives the icon and label for a rule, e.g. "every day" for a
// daily rule with interval 1 and "every 3 days" for interval 3.
func Classify(rule Rule) Classification {
	if !IsRecurring(rule) {
		return Classification{}
	}

	unit := kindUnits[rule.Kind]
	label := "every " + unit
	if rule.Interval > 1 {
		label = fmt.Sprintf("every %d %ss", rule.Interval, unit)
	}
	return Classification{Icon: kindIcons[rule.Kind], Label: label}
}
