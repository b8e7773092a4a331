package entity

import (
	"time"

	"github.com/google/uuid"
)

// Experience is a work-history entry on a profile.
type Experience struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"profile_id"`
	Company     string     `gorm:"size:250;not null" json:"company"`
	Title       string     `gorm:"size:250;not null" json:"title"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"` // nil while current
	Description string     `gorm:"type:text" json:"description"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Experience) TableName() string {
	return "user_experience"
}
