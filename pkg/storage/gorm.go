package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jdziat/recurring-tasks/pkg/core"
)

// Setting is an opaque key-value blob row. Template blobs live here;
// their contents are decoded by pkg/templates, never by this package.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:255"`
	Value     []byte    `gorm:"type:bytes"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// GormStorage implements core.TaskStore and the templates blob KV
// using GORM.
type GormStorage struct {
	db *gorm.DB
}

// NewGormStorage creates a new GORM-backed storage.
func NewGormStorage(db *gorm.DB) *GormStorage {
	return &GormStorage{db: db}
}

// DB exposes the underlying gorm handle for embedding applications.
func (s *GormStorage) DB() *gorm.DB {
	return s.db
}

// Migrate creates the necessary tables.
func (s *GormStorage) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(&core.Task{}, &Setting{})
}

// ListTasks returns the full persisted task list in stable order
// (creation time, then id).
func (s *GormStorage) ListTasks(ctx context.Context) ([]core.Task, error) {
	var tasks []core.Task
	err := s.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	return tasks, err
}

// CreateTask persists a new task, assigning an id if unset.
func (s *GormStorage) CreateTask(ctx context.Context, task *core.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(task).Error
}

// DeleteTask removes a task by id. Returns core.ErrTaskNotFound when
// no row matches.
func (s *GormStorage) DeleteTask(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&core.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// GetBlob reads a settings blob. A key that has never been written
// returns nil data and no error.
func (s *GormStorage) GetBlob(ctx context.Context, key string) ([]byte, error) {
	var setting Setting
	err := s.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return setting.Value, nil
}

// PutBlob writes a settings blob, replacing any existing value.
func (s *GormStorage) PutBlob(ctx context.Context, key string, data []byte) error {
	setting := Setting{Key: key, Value: data}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&setting).Error
}
