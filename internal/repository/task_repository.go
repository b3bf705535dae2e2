package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID retrieves a task by its ID
func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	result := r.db.WithContext(ctx).First(&task, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}
	return &task, nil
}

// GetWithDetails retrieves all tasks in the given columns with their
// labels, assignees, checklist, attachments and comments preloaded,
// ordered by position. One call per board load.
func (r *TaskRepository) GetWithDetails(ctx context.Context, columnIDs []uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	result := r.db.WithContext(ctx).
		Preload("Labels").
		Preload("Assignees").
		Preload("Checklist").
		Preload("Attachments").
		Preload("Comments").
		Where("column_id IN ?", columnIDs).
		Order("position").
		Find(&tasks)
	if result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

// UpdateFields applies a partial update to a task. Keys are store column
// names (title, description, priority, due_date).
func (r *TaskRepository) UpdateFields(ctx context.Context, taskID uuid.UUID, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Move updates the column and position of a task in one write. Positions
// of other tasks are not reordered here; the board always appends moved
// tasks at the end of the destination column.
func (r *TaskRepository) Move(ctx context.Context, taskID, columnID uuid.UUID, position int) error {
	result := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"column_id": columnID,
			"position":  position,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
