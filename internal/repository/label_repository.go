package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type LabelRepository struct {
	db *gorm.DB
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{db: db}
}

// Add attaches a label to a task and returns the stored row. The unique
// index on (task_id, name) makes repeated adds of the same name a no-op;
// the conflict path yields no RETURNING row, so the existing row is
// fetched instead. Either way the caller gets the server-assigned id.
func (r *LabelRepository) Add(ctx context.Context, taskID uuid.UUID, name, color string) (*model.TaskLabel, error) {
	label := model.TaskLabel{
		TaskID: taskID,
		Name:   name,
		Color:  color,
	}
	err := r.db.WithContext(ctx).Raw(
		"INSERT INTO task_labels (task_id, name, color) VALUES (?, ?, ?) ON CONFLICT DO NOTHING RETURNING id",
		taskID, name, color,
	).Scan(&label.ID).Error
	if err != nil {
		return nil, err
	}
	if label.ID == uuid.Nil {
		if err := r.db.WithContext(ctx).
			Where("task_id = ? AND name = ?", taskID, name).
			First(&label).Error; err != nil {
			return nil, err
		}
	}
	return &label, nil
}

// RemoveByName detaches a label from a task, keyed by name.
func (r *LabelRepository) RemoveByName(ctx context.Context, taskID uuid.UUID, name string) error {
	return r.db.WithContext(ctx).Exec(
		"DELETE FROM task_labels WHERE task_id = ? AND name = ?",
		taskID, name,
	).Error
}

// GetByTaskID retrieves all labels attached to a task
func (r *LabelRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.TaskLabel, error) {
	var labels []model.TaskLabel
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&labels)
	if result.Error != nil {
		return nil, result.Error
	}
	return labels, nil
}
