package core

import (
	"context"
)

// TaskStore defines the persistence layer for task instances. The
// engine consumes it for guard seeding (ListTasks), materialization
// (CreateTask), and janitorial cleanup (DeleteTask); everything else
// about task lifecycle belongs to the surrounding application.
type TaskStore interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// ListTasks returns the full persisted task list.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask persists a new task, assigning an id if unset.
	CreateTask(ctx context.Context, task *Task) error

	// DeleteTask removes a task by id. Returns ErrTaskNotFound if no
	// such task exists.
	DeleteTask(ctx context.Context, id string) error
}
