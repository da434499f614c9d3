package engine

import (
	"time"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

// MarkerSet is the read side of the Guard consulted while proposing
// drafts.
type MarkerSet interface {
	Has(marker string) bool
}

// Materializer proposes task drafts for a target date from recurrence
// templates. It performs no creation and no I/O, and it does not
// deduplicate on its own: markers already present in the given
// MarkerSet are skipped, but nothing is claimed. Claiming belongs to
// the caller.
type Materializer struct {
	loc *time.Location
}

// NewMaterializer creates a materializer anchored in the given
// location. If loc is nil, time.Local is used. Date keys and anchored
// start/end times are computed in this zone.
func NewMaterializer(loc *time.Location) *Materializer {
	if loc == nil {
		loc = time.Local
	}
	return &Materializer{loc: loc}
}

// Materialize returns drafts for every enabled template whose rule
// matches date and whose marker is not already known. Output order
// follows template declaration order, fixed events before macro tasks.
//
// A macro task whose window is missing or unparseable is silently
// skipped: no instance, no error. The same soft-fail applies to a
// fixed event with a malformed start time.
func (m *Materializer) Materialize(date time.Time, life []core.FixedEvent, macros []core.MacroTask, known MarkerSet) []core.Draft {
	date = date.In(m.loc)
	drafts := make([]core.Draft, 0)

	for _, ev := range life {
		if !ev.Enabled || !ev.Rule.Matches(date) {
			continue
		}
		marker := core.Marker(ev.ID, date)
		if known != nil && known.Has(marker) {
			continue
		}
		d, ok := m.fixedEventDraft(ev, date, marker)
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}

	for _, mt := range macros {
		if !mt.Enabled || !mt.Rule.Matches(date) {
			continue
		}
		marker := core.Marker(mt.ID, date)
		if known != nil && known.Has(marker) {
			continue
		}
		d, ok := m.macroDraft(mt, date, marker)
		if !ok {
			continue
		}
		drafts = append(drafts, d)
	}

	return drafts
}

// fixedEventDraft anchors the event at date@startTime for its
// configured duration.
func (m *Materializer) fixedEventDraft(ev core.FixedEvent, date time.Time, marker string) (core.Draft, bool) {
	clock, err := time.Parse("15:04", ev.StartTime)
	if err != nil {
		return core.Draft{}, false
	}

	start := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), 0, 0, m.loc)
	end := start.Add(time.Duration(ev.DurationMinutes) * time.Minute)

	return core.Draft{
		Title:            ev.Name,
		Description:      marker,
		Kind:             core.KindFixedEventTask,
		Marker:           marker,
		StartAt:          start,
		EndAt:            end,
		EstimatedMinutes: ev.DurationMinutes,
	}, true
}

// macroDraft centers the task's estimate within its window's clock
// times on the target date.
func (m *Materializer) macroDraft(mt core.MacroTask, date time.Time, marker string) (core.Draft, bool) {
	ws, err := time.Parse(time.RFC3339, mt.WindowStartAt)
	if err != nil {
		return core.Draft{}, false
	}
	we, err := time.Parse(time.RFC3339, mt.WindowEndAt)
	if err != nil {
		return core.Draft{}, false
	}

	ws = ws.In(m.loc)
	we = we.In(m.loc)

	winStart := time.Date(date.Year(), date.Month(), date.Day(), ws.Hour(), ws.Minute(), 0, 0, m.loc)
	winEnd := time.Date(date.Year(), date.Month(), date.Day(), we.Hour(), we.Minute(), 0, 0, m.loc)
	if !winEnd.After(winStart) {
		return core.Draft{}, false
	}

	est := time.Duration(mt.EstimatedMinutes) * time.Minute
	center := winStart.Add(winEnd.Sub(winStart) / 2)
	start := center.Add(-est / 2)
	end := start.Add(est)

	return core.Draft{
		Title:            mt.Title,
		Description:      marker,
		Kind:             core.KindMacroTask,
		Marker:           marker,
		StartAt:          start,
		EndAt:            end,
		EstimatedMinutes: mt.EstimatedMinutes,
	}, true
}
