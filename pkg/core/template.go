package core

// Cadence is the informational recurrence granularity on a macro task.
// Date matching is governed by the task's Rule, not its Cadence.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// FixedEvent is a daily-anchored recurring block (e.g. lunch). Start
// time is a local wall-clock value; the event materializes on each
// date its Rule matches.
type FixedEvent struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	StartTime       string `json:"startTime" yaml:"start_time"` // HH:MM local
	DurationMinutes int    `json:"durationMinutes" yaml:"duration_minutes"`
	Rule            Rule   `json:"rule" yaml:"rule"`
	Enabled         bool   `json:"enabled" yaml:"enabled"`
}

// MacroTask is a periodic task materialized centered within a time
// window. WindowStartAt and WindowEndAt are RFC3339 timestamps and may
// be empty; a macro task without a usable window produces no instance.
type MacroTask struct {
	ID               string  `json:"id" yaml:"id"`
	Title            string  `json:"title" yaml:"title"`
	Cadence          Cadence `json:"cadence" yaml:"cadence"`
	WindowStartAt    string  `json:"windowStartAt,omitempty" yaml:"window_start_at,omitempty"`
	WindowEndAt      string  `json:"windowEndAt,omitempty" yaml:"window_end_at,omitempty"`
	EstimatedMinutes int     `json:"estimatedMinutes" yaml:"estimated_minutes"`
	Rule             Rule    `json:"rule" yaml:"rule"`
	Enabled          bool    `json:"enabled" yaml:"enabled"`
}

// LifeTemplate defines the daily frame: wake/sleep times and the fixed
// events anchored inside it.
type LifeTemplate struct {
	WakeUp      string       `json:"wakeUp" yaml:"wake_up"` // HH:MM local
	Sleep       string       `json:"sleep" yaml:"sleep"`    // HH:MM local
	FixedEvents []FixedEvent `json:"fixedEvents" yaml:"fixed_events"`
}
