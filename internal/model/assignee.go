package model

import (
	"github.com/google/uuid"
)

// TaskAssignee links a user to a task. Membership is keyed by user_id.
type TaskAssignee struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignee_user"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_task_assignee_user"`
	UserInitials string    `gorm:"not null"`
}

func (TaskAssignee) TableName() string {
	return "task_assignees"
}
