package core

import (
	"time"
)

// RuleKind selects the active variant of a Rule.
type RuleKind string

const (
	// KindWeekdays matches on a fixed set of weekdays (0=Sunday..6=Saturday).
	KindWeekdays RuleKind = "weekdays"
	// KindIntervalDays matches every N days, counted by day-of-year.
	KindIntervalDays RuleKind = "interval_days"
	// KindNthWeekday matches the Nth occurrence of a weekday in a month.
	KindNthWeekday RuleKind = "nth_weekday"
	// KindMonthlyDate matches a fixed day-of-month.
	KindMonthlyDate RuleKind = "monthly_date"
)

// Rule is a tagged union describing when a template recurs. Kind
// selects the active variant; fields outside the active variant are
// ignored.
type Rule struct {
	Kind RuleKind `json:"kind" yaml:"kind"`

	// Days applies to KindWeekdays. 0=Sunday .. 6=Saturday.
	Days []int `json:"days,omitempty" yaml:"days,omitempty"`

	// Every applies to KindIntervalDays. Must be >= 1.
	Every int `json:"every,omitempty" yaml:"every,omitempty"`

	// Week and Weekday apply to KindNthWeekday. Week is 1..5,
	// Weekday 0=Sunday .. 6=Saturday.
	Week    int `json:"week,omitempty" yaml:"week,omitempty"`
	Weekday int `json:"weekday,omitempty" yaml:"weekday,omitempty"`

	// Day applies to KindMonthlyDate. 1..31; a day that a month does
	// not have never matches in that month (no clamping to month-end).
	Day int `json:"day,omitempty" yaml:"day,omitempty"`
}

// Weekdays creates a rule matching the given weekdays (0=Sunday..6=Saturday).
func Weekdays(days ...int) Rule {
	return Rule{Kind: KindWeekdays, Days: days}
}

// EveryNDays creates a rule matching every n days, computed from
// day-of-year modulo n. The count resets at each year boundary rather
// than rolling from an anchor date.
func EveryNDays(n int) Rule {
	return Rule{Kind: KindIntervalDays, Every: n}
}

// NthWeekday creates a rule matching the week-th occurrence (1..5) of
// the given weekday in each month.
func NthWeekday(week, weekday int) Rule {
	return Rule{Kind: KindNthWeekday, Week: week, Weekday: weekday}
}

// MonthlyDate creates a rule matching a fixed day-of-month (1..31).
func MonthlyDate(day int) Rule {
	return Rule{Kind: KindMonthlyDate, Day: day}
}

// Matches reports whether the rule recurs on the given calendar date.
// It is pure and total: no I/O, no side effects, and malformed values
// simply never match.
func (r Rule) Matches(date time.Time) bool {
	switch r.Kind {
	case KindWeekdays:
		wd := int(date.Weekday())
		for _, d := range r.Days {
			if d == wd {
				return true
			}
		}
		return false

	case KindIntervalDays:
		if r.Every < 1 {
			return false
		}
		return date.YearDay()%r.Every == 0

	case KindNthWeekday:
		if int(date.Weekday()) != r.Weekday {
			return false
		}
		week := (date.Day() + 6) / 7
		return week == r.Week

	case KindMonthlyDate:
		return date.Day() == r.Day

	default:
		return false
	}
}
