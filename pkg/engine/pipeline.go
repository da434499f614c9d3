package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

// TemplateSource provides the recurrence templates. The template
// store accessor in pkg/templates implements it; storage stays opaque
// to the engine.
type TemplateSource interface {
	LifeTemplate(ctx context.Context) (core.LifeTemplate, error)
	MacroTasks(ctx context.Context) ([]core.MacroTask, error)
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithLocation sets the zone used for date keys and anchored times.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Pipeline) { p.loc = loc }
}

// WithSnapshot provides the live in-memory task set. It is consulted
// for guard seeding and janitor scans ahead of the persisted store,
// covering state that has not been written back yet.
func WithSnapshot(fn func() []core.Task) Option {
	return func(p *Pipeline) { p.snapshot = fn }
}

// OnMaterialized registers a hook called after each successful create.
func OnMaterialized(fn func(context.Context, *core.Task)) Option {
	return func(p *Pipeline) { p.onMaterialized = append(p.onMaterialized, fn) }
}

// OnSwept registers a hook called after a sweep that deleted
// duplicates, with the deleted ids.
func OnSwept(fn func(context.Context, []string)) Option {
	return func(p *Pipeline) { p.onSwept = append(p.onSwept, fn) }
}

// Pipeline wires the Materializer, Guard, and Janitor against a task
// store and a template source. One Pipeline owns one Guard; both live
// for the process session.
//
// Failure policy: no error escalates. Seeding and template read
// failures degrade to "no instance produced this cycle"; a failed
// create leaves its marker claimed, so the same session will not retry
// it — only a restart (fresh Guard) re-attempts that template/date.
type Pipeline struct {
	store     core.TaskStore
	templates TemplateSource
	guard     *Guard
	mat       *Materializer
	loc       *time.Location
	logger    *slog.Logger
	snapshot  func() []core.Task

	onMaterialized []func(context.Context, *core.Task)
	onSwept        []func(context.Context, []string)
}

// New creates a pipeline with a fresh Guard.
func New(store core.TaskStore, templates TemplateSource, opts ...Option) *Pipeline {
	p := &Pipeline{
		store:     store,
		templates: templates,
		guard:     NewGuard(),
		loc:       time.Local,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.mat = NewMaterializer(p.loc)
	return p
}

// Guard exposes the pipeline's guard, mainly for pre-seeding in tests
// and embedding callers.
func (p *Pipeline) Guard() *Guard {
	return p.guard
}

// SeedGuard loads known markers into the guard from the in-memory
// snapshot and from a full persisted task query. The persisted query
// covers the window right after process restart, before in-memory
// state has loaded. If storage is unreachable the failure is logged
// and seeding proceeds with whatever it has; under-guarding is
// preferred over blocking startup.
func (p *Pipeline) SeedGuard(ctx context.Context) {
	var markers []string

	if p.snapshot != nil {
		for _, t := range p.snapshot() {
			if m := t.Marker(); m != "" {
				markers = append(markers, m)
			}
		}
	}

	persisted, err := p.store.ListTasks(ctx)
	if err != nil {
		p.logger.Error("guard seeding: persisted task list unreachable", "error", err)
	} else {
		for _, t := range persisted {
			if m := t.Marker(); m != "" {
				markers = append(markers, m)
			}
		}
	}

	p.guard.Seed(markers)
}

// MaterializeDate runs one materialization pass for the given date:
// seed the guard, load templates, propose drafts, then claim each
// marker synchronously before issuing its create. Returns the number
// of instances created.
func (p *Pipeline) MaterializeDate(ctx context.Context, date time.Time) int {
	p.SeedGuard(ctx)

	var life []core.FixedEvent
	lt, err := p.templates.LifeTemplate(ctx)
	if err != nil {
		p.logger.Error("load life template", "error", err)
	} else {
		life = lt.FixedEvents
	}

	macros, err := p.templates.MacroTasks(ctx)
	if err != nil {
		p.logger.Error("load macro tasks", "error", err)
	}

	drafts := p.mat.Materialize(date, life, macros, p.guard)

	created := 0
	for _, d := range drafts {
		// Claim before the create call. An overlapping pass sees the
		// marker as taken and skips; the claim is never rolled back on
		// create failure.
		if !p.guard.Claim(d.Marker) {
			continue
		}
		task := d.Task()
		if err := p.store.CreateTask(ctx, &task); err != nil {
			p.logger.Error("create instance failed; not retried this session",
				"marker", d.Marker, "error", err)
			continue
		}
		created++
		for _, fn := range p.onMaterialized {
			fn(ctx, &task)
		}
	}

	if created > 0 {
		p.logger.Info("materialized instances", "date", core.DateKey(date.In(p.loc)), "created", created)
	}
	return created
}

// Sweep runs the janitor over the live task set, deleting redundant
// instances that share a marker. Deletions are independent per id; a
// failure is counted and the sweep continues.
func (p *Pipeline) Sweep(ctx context.Context) Report {
	var tasks []core.Task
	if p.snapshot != nil {
		tasks = p.snapshot()
	} else {
		var err error
		tasks, err = p.store.ListTasks(ctx)
		if err != nil {
			p.logger.Error("sweep: task list unreachable", "error", err)
			return Report{}
		}
	}

	report := Report{
		Scanned:    len(tasks),
		Duplicates: FindDuplicates(tasks),
	}

	deleted := make([]string, 0, len(report.Duplicates))
	for _, id := range report.Duplicates {
		if err := p.store.DeleteTask(ctx, id); err != nil {
			p.logger.Error("sweep: delete duplicate failed", "id", id, "error", err)
			report.Failed++
			continue
		}
		report.Deleted++
		deleted = append(deleted, id)
	}

	if len(deleted) > 0 {
		for _, fn := range p.onSwept {
			fn(ctx, deleted)
		}
		p.logger.Info("janitor sweep", "summary", report.Message())
	}
	return report
}
