package model

import (
	"github.com/google/uuid"
)

// TaskLabel is a per-task label row. At most one label per distinct name
// exists on a task, enforced by a unique index on (task_id, name).
type TaskLabel struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_task_label_name"`
	Name   string    `gorm:"not null;uniqueIndex:idx_task_label_name"`
	Color  string    `gorm:"not null"`
}

func (TaskLabel) TableName() string {
	return "task_labels"
}
