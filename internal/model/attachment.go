package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment references a blob already uploaded to the object store.
// The URL points outside this service's relational schema.
type Attachment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"not null"`
	URL       string    `gorm:"not null"`
	Type      string
	Size      int64
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Attachment) TableName() string {
	return "task_attachments"
}
