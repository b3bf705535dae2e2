package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type AssigneeRepository struct {
	db *gorm.DB
}

func NewAssigneeRepository(db *gorm.DB) *AssigneeRepository {
	return &AssigneeRepository{db: db}
}

// Add assigns a user to a task, keyed by (task_id, user_id), and returns
// the stored row with its server-assigned id. A conflicting add fetches
// the existing assignment instead.
func (r *AssigneeRepository) Add(ctx context.Context, taskID, userID uuid.UUID, initials string) (*model.TaskAssignee, error) {
	assignee := model.TaskAssignee{
		TaskID:       taskID,
		UserID:       userID,
		UserInitials: initials,
	}
	err := r.db.WithContext(ctx).Raw(
		"INSERT INTO task_assignees (task_id, user_id, user_initials) VALUES (?, ?, ?) ON CONFLICT DO NOTHING RETURNING id",
		taskID, userID, initials,
	).Scan(&assignee.ID).Error
	if err != nil {
		return nil, err
	}
	if assignee.ID == uuid.Nil {
		if err := r.db.WithContext(ctx).
			Where("task_id = ? AND user_id = ?", taskID, userID).
			First(&assignee).Error; err != nil {
			return nil, err
		}
	}
	return &assignee, nil
}

// Remove unassigns a user from a task
func (r *AssigneeRepository) Remove(ctx context.Context, taskID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_assignees WHERE task_id = ? AND user_id = ?",
		taskID, userID,
	).Error
}

// GetByTaskID retrieves all assignees of a task
func (r *AssigneeRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.TaskAssignee, error) {
	var assignees []model.TaskAssignee
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&assignees)
	if result.Error != nil {
		return nil, result.Error
	}
	return assignees, nil
}
