// Package templates provides the accessor for persisted recurrence
// templates. Templates are stored as opaque blobs in a key-value
// settings store; this package owns the encoding and validation, and
// the engine only ever sees decoded values.
package templates

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jdziat/recurring-tasks/pkg/core"
	"github.com/jdziat/recurring-tasks/pkg/security"
)

// Blob keys in the settings store.
const (
	KeyLifeTemplate = "life_template"
	KeyMacroTasks   = "macro_tasks"
)

// KV is the opaque blob store backing the templates. GetBlob returns
// nil data (and no error) when the key has never been written.
type KV interface {
	GetBlob(ctx context.Context, key string) ([]byte, error)
	PutBlob(ctx context.Context, key string, data []byte) error
}

// Store reads and writes recurrence templates through a blob KV.
type Store struct {
	kv KV
}

// NewStore creates a template store over the given KV.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// LifeTemplate loads the life template blob. A missing blob yields an
// empty template, not an error.
func (s *Store) LifeTemplate(ctx context.Context) (core.LifeTemplate, error) {
	var lt core.LifeTemplate

	data, err := s.kv.GetBlob(ctx, KeyLifeTemplate)
	if err != nil {
		return lt, fmt.Errorf("read life template: %w", err)
	}
	if data == nil {
		return lt, nil
	}
	if err := json.Unmarshal(data, &lt); err != nil {
		return lt, fmt.Errorf("decode life template: %w", err)
	}
	return lt, nil
}

// MacroTasks loads the macro task list blob. A missing blob yields an
// empty list.
func (s *Store) MacroTasks(ctx context.Context) ([]core.MacroTask, error) {
	data, err := s.kv.GetBlob(ctx, KeyMacroTasks)
	if err != nil {
		return nil, fmt.Errorf("read macro tasks: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var macros []core.MacroTask
	if err := json.Unmarshal(data, &macros); err != nil {
		return nil, fmt.Errorf("decode macro tasks: %w", err)
	}
	return macros, nil
}

// SaveLifeTemplate validates and persists the life template. Fixed
// event durations are clamped into range before writing.
func (s *Store) SaveLifeTemplate(ctx context.Context, lt core.LifeTemplate) error {
	for i := range lt.FixedEvents {
		ev := &lt.FixedEvents[i]
		if err := security.ValidateFixedEvent(*ev); err != nil {
			return err
		}
		ev.DurationMinutes = security.ClampMinutes(ev.DurationMinutes)
	}

	data, err := json.Marshal(lt)
	if err != nil {
		return fmt.Errorf("encode life template: %w", err)
	}
	return s.kv.PutBlob(ctx, KeyLifeTemplate, data)
}

// SaveMacroTasks validates and persists the macro task list.
func (s *Store) SaveMacroTasks(ctx context.Context, macros []core.MacroTask) error {
	for i := range macros {
		mt := &macros[i]
		if err := security.ValidateMacroTask(*mt); err != nil {
			return err
		}
		mt.EstimatedMinutes = security.ClampMinutes(mt.EstimatedMinutes)
	}

	data, err := json.Marshal(macros)
	if err != nil {
		return fmt.Errorf("encode macro tasks: %w", err)
	}
	return s.kv.PutBlob(ctx, KeyMacroTasks, data)
}
