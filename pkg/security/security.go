// Package security provides validation, sanitization, and limits for
// the recurring-tasks package.
//
// Templates cross a trust boundary: they are authored in an external
// settings UI and persisted as opaque blobs, so everything is
// validated here at the store boundary. The engine itself treats
// malformed values as a caller contract violation and soft-fails.
package security

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

// Limits
const (
	// MaxTemplateIDLength is the maximum length for template ids.
	MaxTemplateIDLength = 255

	// MaxTemplateNameLength is the maximum length for template names
	// and macro task titles.
	MaxTemplateNameLength = 255

	// MaxMinutes caps durations and estimates at one day.
	MaxMinutes = 24 * 60

	// MaxErrorMessageLength is the maximum length for stored error
	// messages.
	MaxErrorMessageLength = 4096
)

// validTemplateID matches alphanumeric, hyphens, underscores, and dots.
// The id is embedded in markers, so ':', '[' and ']' must stay out.
var validTemplateID = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_\-\.]*$`)

// validStartTime matches a HH:MM wall-clock value.
var validStartTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// ValidateTemplateID validates a template id.
func ValidateTemplateID(id string) error {
	if id == "" {
		return core.ErrInvalidTemplateID
	}
	if len(id) > MaxTemplateIDLength {
		return core.ErrTemplateIDTooLong
	}
	if !validTemplateID.MatchString(id) {
		return core.ErrInvalidTemplateID
	}
	return nil
}

// ValidateRule checks that the fields of the active variant are in
// range.
func ValidateRule(r core.Rule) error {
	switch r.Kind {
	case core.KindWeekdays:
		if len(r.Days) == 0 {
			return core.ErrInvalidRule
		}
		for _, d := range r.Days {
			if d < 0 || d > 6 {
				return core.ErrInvalidRule
			}
		}
	case core.KindIntervalDays:
		if r.Every < 1 {
			return core.ErrInvalidRule
		}
	case core.KindNthWeekday:
		if r.Week < 1 || r.Week > 5 || r.Weekday < 0 || r.Weekday > 6 {
			return core.ErrInvalidRule
		}
	case core.KindMonthlyDate:
		if r.Day < 1 || r.Day > 31 {
			return core.ErrInvalidRule
		}
	default:
		return core.ErrInvalidRule
	}
	return nil
}

// ValidateFixedEvent validates a fixed event template.
func ValidateFixedEvent(ev core.FixedEvent) error {
	if err := ValidateTemplateID(ev.ID); err != nil {
		return err
	}
	if len(ev.Name) > MaxTemplateNameLength {
		return core.ErrTemplateNameTooLong
	}
	if !validStartTime.MatchString(ev.StartTime) {
		return core.ErrInvalidStartTime
	}
	return ValidateRule(ev.Rule)
}

// ValidateMacroTask validates a macro task template. Window bounds are
// not validated here: a macro task without a usable window is legal
// and simply never materializes.
func ValidateMacroTask(mt core.MacroTask) error {
	if err := ValidateTemplateID(mt.ID); err != nil {
		return err
	}
	if len(mt.Title) > MaxTemplateNameLength {
		return core.ErrTemplateNameTooLong
	}
	return ValidateRule(mt.Rule)
}

// ClampMinutes ensures a minute count is within [0, MaxMinutes].
func ClampMinutes(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxMinutes {
		return MaxMinutes
	}
	return n
}

// SanitizeErrorMessage truncates and cleans error messages before they
// are stored or logged alongside task rows.
func SanitizeErrorMessage(msg string) string {
	msg = strings.ToValidUTF8(msg, "")
	msg = strings.ReplaceAll(msg, "\x00", "")
	if utf8.RuneCountInString(msg) > MaxErrorMessageLength {
		runes := []rune(msg)
		msg = string(runes[:MaxErrorMessageLength]) + "... (truncated)"
	}
	return msg
}
