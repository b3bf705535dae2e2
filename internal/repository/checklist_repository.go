package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type ChecklistRepository struct {
	db *gorm.DB
}

func NewChecklistRepository(db *gorm.DB) *ChecklistRepository {
	return &ChecklistRepository{db: db}
}

func (r *ChecklistRepository) Add(ctx context.Context, item *model.ChecklistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// SetCompleted flips the completed flag of a checklist item
func (r *ChecklistRepository) SetCompleted(ctx context.Context, itemID uuid.UUID, completed bool) error {
	result := r.db.WithContext(ctx).Model(&model.ChecklistItem{}).
		Where("id = ?", itemID).
		Update("completed", completed)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrChecklistItemNotFound
	}
	return nil
}

func (r *ChecklistRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.ChecklistItem, error) {
	var items []model.ChecklistItem
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&items).Error
	return items, err
}
