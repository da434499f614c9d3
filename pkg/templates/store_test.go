package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdziat/recurring-tasks/pkg/core"
	"github.com/jdziat/recurring-tasks/pkg/security"
)

// mapKV is an in-memory blob store.
type mapKV struct {
	blobs  map[string][]byte
	getErr error
}

func newMapKV() *mapKV {
	return &mapKV{blobs: make(map[string][]byte)}
}

func (m *mapKV) GetBlob(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.blobs[key], nil
}

func (m *mapKV) PutBlob(ctx context.Context, key string, data []byte) error {
	m.blobs[key] = data
	return nil
}

func TestLifeTemplate_MissingBlobIsEmpty(t *testing.T) {
	s := NewStore(newMapKV())

	lt, err := s.LifeTemplate(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lt.FixedEvents)
}

func TestLifeTemplate_RoundTrip(t *testing.T) {
	s := NewStore(newMapKV())
	ctx := context.Background()

	in := core.LifeTemplate{
		WakeUp: "07:00",
		Sleep:  "23:00",
		FixedEvents: []core.FixedEvent{{
			ID:              "lunch-1",
			Name:            "Lunch",
			StartTime:       "12:00",
			DurationMinutes: 30,
			Rule:            core.Weekdays(1, 2, 3, 4, 5),
			Enabled:         true,
		}},
	}
	require.NoError(t, s.SaveLifeTemplate(ctx, in))

	out, err := s.LifeTemplate(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMacroTasks_RoundTrip(t *testing.T) {
	s := NewStore(newMapKV())
	ctx := context.Background()

	in := []core.MacroTask{{
		ID:               "review-1",
		Title:            "Weekly review",
		Cadence:          core.CadenceWeekly,
		WindowStartAt:    "2024-01-01T10:00:00Z",
		WindowEndAt:      "2024-01-01T12:00:00Z",
		EstimatedMinutes: 30,
		Rule:             core.Weekdays(1),
		Enabled:          true,
	}}
	require.NoError(t, s.SaveMacroTasks(ctx, in))

	out, err := s.MacroTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveLifeTemplate_RejectsInvalidEvent(t *testing.T) {
	s := NewStore(newMapKV())

	bad := core.LifeTemplate{
		FixedEvents: []core.FixedEvent{{
			ID:        "lunch:1", // colon would corrupt the marker
			Name:      "Lunch",
			StartTime: "12:00",
			Rule:      core.Weekdays(1),
		}},
	}
	err := s.SaveLifeTemplate(context.Background(), bad)
	assert.ErrorIs(t, err, core.ErrInvalidTemplateID)
}

func TestSaveMacroTasks_ClampsEstimate(t *testing.T) {
	kv := newMapKV()
	s := NewStore(kv)
	ctx := context.Background()

	in := []core.MacroTask{{
		ID:               "review-1",
		Title:            "Weekly review",
		EstimatedMinutes: 100000,
		Rule:             core.Weekdays(1),
		Enabled:          true,
	}}
	require.NoError(t, s.SaveMacroTasks(ctx, in))

	out, err := s.MacroTasks(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, security.MaxMinutes, out[0].EstimatedMinutes)
}

func TestLifeTemplate_ReadErrorWrapped(t *testing.T) {
	kv := newMapKV()
	kv.getErr = errors.New("db closed")
	s := NewStore(kv)

	_, err := s.LifeTemplate(context.Background())
	assert.ErrorContains(t, err, "read life template")
}

func TestMacroTasks_DecodeErrorWrapped(t *testing.T) {
	kv := newMapKV()
	kv.blobs[KeyMacroTasks] = []byte("{not json")
	s := NewStore(kv)

	_, err := s.MacroTasks(context.Background())
	assert.ErrorContains(t, err, "decode macro tasks")
}
