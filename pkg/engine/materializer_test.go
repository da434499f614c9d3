package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

var (
	// 2024-06-01 is a Saturday, 2024-06-04 a Tuesday.
	saturday = time.Date(2024, time.June, 1, 8, 0, 0, 0, time.UTC)
	tuesday  = time.Date(2024, time.June, 4, 8, 0, 0, 0, time.UTC)
)

func lunchTemplate() core.FixedEvent {
	return core.FixedEvent{
		ID:              "lunch-1",
		Name:            "Lunch",
		StartTime:       "12:00",
		DurationMinutes: 30,
		Rule:            core.Weekdays(1, 2, 3, 4, 5),
		Enabled:         true,
	}
}

func TestMaterialize_FixedEvent_Weekday(t *testing.T) {
	m := NewMaterializer(time.UTC)

	drafts := m.Materialize(tuesday, []core.FixedEvent{lunchTemplate()}, nil, nil)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, "Lunch", d.Title)
	assert.Equal(t, core.KindFixedEventTask, d.Kind)
	assert.Equal(t, time.Date(2024, time.June, 4, 12, 0, 0, 0, time.UTC), d.StartAt)
	assert.Equal(t, time.Date(2024, time.June, 4, 12, 30, 0, 0, time.UTC), d.EndAt)
	assert.Equal(t, "[recurring:lunch-1:2024-06-04]", d.Marker)
	assert.Contains(t, d.Description, "[recurring:lunch-1:2024-06-04]")
}

func TestMaterialize_FixedEvent_WeekendSkipped(t *testing.T) {
	m := NewMaterializer(time.UTC)

	drafts := m.Materialize(saturday, []core.FixedEvent{lunchTemplate()}, nil, nil)
	assert.Empty(t, drafts)
}

func TestMaterialize_DisabledTemplateNeverProduces(t *testing.T) {
	m := NewMaterializer(time.UTC)

	ev := lunchTemplate()
	ev.Enabled = false
	drafts := m.Materialize(tuesday, []core.FixedEvent{ev}, nil, nil)
	assert.Empty(t, drafts)
}

func TestMaterialize_KnownMarkerSkipped(t *testing.T) {
	m := NewMaterializer(time.UTC)
	g := NewGuard()
	g.Seed([]string{"[recurring:lunch-1:2024-06-04]"})

	drafts := m.Materialize(tuesday, []core.FixedEvent{lunchTemplate()}, nil, g)
	assert.Empty(t, drafts)
}

func TestMaterialize_DoesNotClaim(t *testing.T) {
	// The Materializer alone does not deduplicate; calling it twice
	// against an unseeded guard yields two drafts with identical
	// markers. Only the Guard dedupes.
	m := NewMaterializer(time.UTC)
	g := NewGuard()

	first := m.Materialize(tuesday, []core.FixedEvent{lunchTemplate()}, nil, g)
	second := m.Materialize(tuesday, []core.FixedEvent{lunchTemplate()}, nil, g)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, first[0].Marker, second[0].Marker)
	assert.Equal(t, 0, g.Len())
}

func TestMaterialize_MacroCenteredInWindow(t *testing.T) {
	m := NewMaterializer(time.UTC)

	mt := core.MacroTask{
		ID:               "review-1",
		Title:            "Weekly review",
		Cadence:          core.CadenceWeekly,
		WindowStartAt:    "2024-01-01T10:00:00Z",
		WindowEndAt:      "2024-01-01T12:00:00Z",
		EstimatedMinutes: 30,
		Rule:             core.Weekdays(2),
		Enabled:          true,
	}

	drafts := m.Materialize(tuesday, nil, []core.MacroTask{mt}, nil)
	require.Len(t, drafts, 1)

	d := drafts[0]
	assert.Equal(t, core.KindMacroTask, d.Kind)
	assert.Equal(t, time.Date(2024, time.June, 4, 10, 45, 0, 0, time.UTC), d.StartAt)
	assert.Equal(t, time.Date(2024, time.June, 4, 11, 15, 0, 0, time.UTC), d.EndAt)
	assert.Equal(t, "[recurring:review-1:2024-06-04]", d.Marker)
}

func TestMaterialize_MacroWithoutWindowSoftFails(t *testing.T) {
	m := NewMaterializer(time.UTC)

	missing := core.MacroTask{
		ID:      "m1",
		Title:   "no window",
		Rule:    core.EveryNDays(1),
		Enabled: true,
	}
	garbled := core.MacroTask{
		ID:            "m2",
		Title:         "bad window",
		WindowStartAt: "not-a-timestamp",
		WindowEndAt:   "2024-01-01T12:00:00Z",
		Rule:          core.EveryNDays(1),
		Enabled:       true,
	}

	drafts := m.Materialize(tuesday, nil, []core.MacroTask{missing, garbled}, nil)
	assert.Empty(t, drafts)
}

func TestMaterialize_MalformedStartTimeSoftFails(t *testing.T) {
	m := NewMaterializer(time.UTC)

	ev := lunchTemplate()
	ev.StartTime = "25:99"
	drafts := m.Materialize(tuesday, []core.FixedEvent{ev}, nil, nil)
	assert.Empty(t, drafts)
}

func TestMaterialize_DeclarationOrder(t *testing.T) {
	m := NewMaterializer(time.UTC)

	a := lunchTemplate()
	b := lunchTemplate()
	b.ID = "standup-1"
	b.Name = "Standup"
	b.StartTime = "09:00"

	mt := core.MacroTask{
		ID:               "review-1",
		Title:            "Weekly review",
		WindowStartAt:    "2024-01-01T10:00:00Z",
		WindowEndAt:      "2024-01-01T12:00:00Z",
		EstimatedMinutes: 60,
		Rule:             core.Weekdays(2),
		Enabled:          true,
	}

	drafts := m.Materialize(tuesday, []core.FixedEvent{a, b}, []core.MacroTask{mt}, nil)
	require.Len(t, drafts, 3)
	assert.Equal(t, "Lunch", drafts[0].Title)
	assert.Equal(t, "Standup", drafts[1].Title)
	assert.Equal(t, "Weekly review", drafts[2].Title)
}

func TestMaterialize_DateKeyFollowsLocation(t *testing.T) {
	// Just past midnight in UTC+9, while UTC still says the previous
	// day: the marker must use the local calendar date.
	seoul := time.FixedZone("KST", 9*60*60)
	m := NewMaterializer(seoul)

	// 2024-06-04 00:30 KST == 2024-06-03 15:30 UTC.
	at := time.Date(2024, time.June, 3, 15, 30, 0, 0, time.UTC)

	ev := lunchTemplate()
	drafts := m.Materialize(at, []core.FixedEvent{ev}, nil, nil)
	require.Len(t, drafts, 1)
	assert.Equal(t, "[recurring:lunch-1:2024-06-04]", drafts[0].Marker)
}
