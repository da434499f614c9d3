package core

import (
	"time"
)

// TaskKind distinguishes fixed-event instances from window-based
// macro instances.
type TaskKind string

const (
	KindFixedEventTask TaskKind = "fixed_event"
	KindMacroTask      TaskKind = "macro"
)

// Task is a materialized instance. Once created it is an ordinary
// mutable task, independent of its template: editing or deleting it
// does not alter the template, and the engine never re-materializes it
// for the same date.
type Task struct {
	ID          string   `gorm:"primaryKey;size:36"`
	Title       string   `gorm:"size:255;not null"`
	Description string   `gorm:"type:text"`
	Kind        TaskKind `gorm:"index;size:20"`

	// RecurringMarker links the instance to its generating template
	// and date. Older builds embedded the marker only in Description;
	// Marker() falls back to extraction so both generations dedupe
	// identically.
	RecurringMarker string `gorm:"index;size:255"`

	StartAt          *time.Time `gorm:"index"`
	EndAt            *time.Time
	EstimatedMinutes int

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// Marker returns the task's recurring marker, preferring the
// first-class column and falling back to extraction from the
// description. Returns "" for tasks that are not recurring instances.
func (t Task) Marker() string {
	if t.RecurringMarker != "" {
		return t.RecurringMarker
	}
	if m, ok := ExtractMarker(t.Description); ok {
		return m
	}
	return ""
}

// Draft is a proposed instance produced by the Materializer. It holds
// everything needed to create a Task; the id is assigned by the store
// on create.
type Draft struct {
	Title            string
	Description      string
	Kind             TaskKind
	Marker           string
	StartAt          time.Time
	EndAt            time.Time
	EstimatedMinutes int
}

// Task converts the draft into a Task value ready for creation.
func (d Draft) Task() Task {
	start := d.StartAt
	end := d.EndAt
	return Task{
		Title:            d.Title,
		Description:      d.Description,
		Kind:             d.Kind,
		RecurringMarker:  d.Marker,
		StartAt:          &start,
		EndAt:            &end,
		EstimatedMinutes: d.EstimatedMinutes,
	}
}
