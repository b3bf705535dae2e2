package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"qualiboard/internal/model"
)

type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// Create persists an attachment row. The binary itself lives in the blob
// store; only the resolved URL is recorded here.
func (r *AttachmentRepository) Create(ctx context.Context, attachment *model.Attachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

func (r *AttachmentRepository) GetByTaskID(ctx context.Context, taskID uuid.UUID) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.db.WithContext(ctx).Where("task_id = ?", taskID).Find(&attachments).Error
	return attachments, err
}
