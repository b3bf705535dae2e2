package model

import (
	"time"

	"github.com/google/uuid"
)

// Task priorities as shown on the plant floor.
const (
	PriorityBaja    = "Baja"
	PriorityMedia   = "Media"
	PriorityAlta    = "Alta"
	PriorityCritica = "Crítica"
)

func ValidPriority(p string) bool {
	switch p {
	case PriorityBaja, PriorityMedia, PriorityAlta, PriorityCritica:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BoardID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null;default:'Media'"`
	DueDate     *time.Time
	Position    int       `gorm:"not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Labels      []TaskLabel     `gorm:"foreignKey:TaskID"`
	Assignees   []TaskAssignee  `gorm:"foreignKey:TaskID"`
	Checklist   []ChecklistItem `gorm:"foreignKey:TaskID"`
	Attachments []Attachment    `gorm:"foreignKey:TaskID"`
	Comments    []Comment       `gorm:"foreignKey:TaskID"`
}

func (Task) TableName() string {
	return "board_tasks"
}

// HasLabel reports whether the task already carries a label with the given name.
func (t *Task) HasLabel(name string) bool {
	for _, l := range t.Labels {
		if l.Name == name {
			return true
		}
	}
	return false
}

// HasAssignee reports whether the user is already assigned to the task.
func (t *Task) HasAssignee(userID uuid.UUID) bool {
	for _, a := range t.Assignees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
