package model

import (
	"time"

	"github.com/google/uuid"
)

// Board types known to the plant. One board row exists per type; clients
// never create boards beyond first-use column seeding.
const (
	BoardTypeProjects    = "projects"
	BoardTypeMaintenance = "maintenance"
)

type Board struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Type      string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
