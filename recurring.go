// Package recurring materializes user-authored recurrence templates
// (fixed daily events and periodic macro tasks) into concrete, dated
// task instances, exactly once per calendar day, safely across process
// restarts and overlapping re-evaluations.
//
// This is the main package users should import. It re-exports the
// public types from the internal pkg/ packages for a clean API
// surface.
//
// Basic usage:
//
//	// Create storage backing both tasks and template blobs
//	db, _ := gorm.Open(sqlite.Open("recurring.db"), &gorm.Config{})
//	store := recurring.NewGormStorage(db)
//	store.Migrate(context.Background())
//
//	// Author templates through the accessor
//	tmpl := recurring.NewTemplateStore(store)
//	tmpl.SaveLifeTemplate(ctx, recurring.LifeTemplate{
//	    FixedEvents: []recurring.FixedEvent{{
//	        ID: "lunch", Name: "Lunch", StartTime: "12:00",
//	        DurationMinutes: 30,
//	        Rule: recurring.Weekdays(1, 2, 3, 4, 5), Enabled: true,
//	    }},
//	})
//
//	// Materialize today's instances
//	pipeline := recurring.NewPipeline(store, tmpl)
//	pipeline.MaterializeDate(ctx, time.Now())
//
//	// Or run continuously on day rollover
//	sched := recurring.NewScheduler(pipeline)
//	sched.Start(ctx)
package recurring

import (
	"time"

	"gorm.io/gorm"

	"github.com/jdziat/recurring-tasks/pkg/core"
	"github.com/jdziat/recurring-tasks/pkg/engine"
	"github.com/jdziat/recurring-tasks/pkg/scheduler"
	"github.com/jdziat/recurring-tasks/pkg/security"
	"github.com/jdziat/recurring-tasks/pkg/storage"
	"github.com/jdziat/recurring-tasks/pkg/templates"
)

// Type aliases
type (
	// Rule is the recurrence rule union; Kind selects the variant.
	Rule = core.Rule

	// RuleKind selects the active variant of a Rule.
	RuleKind = core.RuleKind

	// FixedEvent is a daily-anchored recurring block template.
	FixedEvent = core.FixedEvent

	// MacroTask is a window-based periodic task template.
	MacroTask = core.MacroTask

	// LifeTemplate is the daily frame: wake/sleep plus fixed events.
	LifeTemplate = core.LifeTemplate

	// Cadence is the informational granularity on a macro task.
	Cadence = core.Cadence

	// Task is a materialized instance.
	Task = core.Task

	// TaskKind distinguishes fixed-event from macro instances.
	TaskKind = core.TaskKind

	// Draft is a proposed instance before persistence.
	Draft = core.Draft

	// TaskStore is the persistence interface consumed by the engine.
	TaskStore = core.TaskStore

	// Guard is the session-lifetime claimed-marker set.
	Guard = engine.Guard

	// Materializer proposes drafts for a date; it never claims.
	Materializer = engine.Materializer

	// Pipeline wires materializer, guard, and janitor over the stores.
	Pipeline = engine.Pipeline

	// Report summarizes one janitor sweep.
	Report = engine.Report

	// TemplateSource provides templates to the pipeline.
	TemplateSource = engine.TemplateSource

	// TemplateStore is the blob-backed template accessor.
	TemplateStore = templates.Store

	// GormStorage implements TaskStore and the template blob KV.
	GormStorage = storage.GormStorage

	// Scheduler triggers the pipeline on local-day rollover.
	Scheduler = scheduler.Scheduler
)

// Rule kind constants
const (
	KindWeekdays     = core.KindWeekdays
	KindIntervalDays = core.KindIntervalDays
	KindNthWeekday   = core.KindNthWeekday
	KindMonthlyDate  = core.KindMonthlyDate
)

// Task kind constants
const (
	KindFixedEventTask = core.KindFixedEventTask
	KindMacroTask      = core.KindMacroTask
)

// Cadence constants
const (
	CadenceDaily   = core.CadenceDaily
	CadenceWeekly  = core.CadenceWeekly
	CadenceMonthly = core.CadenceMonthly
)

// Error variables
var (
	ErrInvalidTemplateID   = core.ErrInvalidTemplateID
	ErrTemplateIDTooLong   = core.ErrTemplateIDTooLong
	ErrTemplateNameTooLong = core.ErrTemplateNameTooLong
	ErrInvalidRule         = core.ErrInvalidRule
	ErrInvalidStartTime    = core.ErrInvalidStartTime
	ErrTaskNotFound        = core.ErrTaskNotFound
)

// Rule constructors

// Weekdays creates a rule matching the given weekdays (0=Sunday..6=Saturday).
func Weekdays(days ...int) Rule {
	return core.Weekdays(days...)
}

// EveryNDays creates a rule matching every n days by day-of-year
// modulo; the count resets at each year boundary.
func EveryNDays(n int) Rule {
	return core.EveryNDays(n)
}

// NthWeekday creates a rule matching the week-th occurrence (1..5) of
// a weekday in each month.
func NthWeekday(week, weekday int) Rule {
	return core.NthWeekday(week, weekday)
}

// MonthlyDate creates a rule matching a fixed day-of-month (1..31).
func MonthlyDate(day int) Rule {
	return core.MonthlyDate(day)
}

// Marker helpers

// Marker builds the recurring marker for a template on a date.
func Marker(templateID string, date time.Time) string {
	return core.Marker(templateID, date)
}

// DateKey formats a date as the local calendar day key (YYYY-MM-DD).
func DateKey(date time.Time) string {
	return core.DateKey(date)
}

// ExtractMarker returns the recurring marker embedded in a task
// description, if any.
func ExtractMarker(description string) (string, bool) {
	return core.ExtractMarker(description)
}

// Constructors

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return storage.NewGormStorage(db)
}

// NewTemplateStore creates a template accessor over a blob KV.
func NewTemplateStore(kv templates.KV) *TemplateStore {
	return templates.NewStore(kv)
}

// NewGuard creates an empty guard.
func NewGuard() *Guard {
	return engine.NewGuard()
}

// NewMaterializer creates a materializer anchored in loc (nil means
// time.Local).
func NewMaterializer(loc *time.Location) *Materializer {
	return engine.NewMaterializer(loc)
}

// NewPipeline creates a pipeline with a fresh guard.
func NewPipeline(store TaskStore, source TemplateSource, opts ...engine.Option) *Pipeline {
	return engine.New(store, source, opts...)
}

// NewScheduler creates a rollover scheduler for the pipeline.
func NewScheduler(p *Pipeline, opts ...scheduler.Option) *Scheduler {
	return scheduler.New(p, opts...)
}

// FindDuplicates scans tasks for redundant instances sharing a marker,
// returning the ids to delete (one survivor kept per marker).
func FindDuplicates(tasks []Task) []string {
	return engine.FindDuplicates(tasks)
}

// Validation helpers

// ValidateFixedEvent validates a fixed event template.
func ValidateFixedEvent(ev FixedEvent) error {
	return security.ValidateFixedEvent(ev)
}

// ValidateMacroTask validates a macro task template.
func ValidateMacroTask(mt MacroTask) error {
	return security.ValidateMacroTask(mt)
}

// ValidateRule checks that the active variant's fields are in range.
func ValidateRule(r Rule) error {
	return security.ValidateRule(r)
}
