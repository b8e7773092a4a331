package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Job is an opening posted under a startup. Created, edited and deleted
// only by the owning founder.
type Job struct {
	ID           uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	StartupID    uuid.UUID                   `gorm:"type:uuid;not null;index" json:"startup_id"`
	Startup      *Startup                    `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE" json:"startup,omitempty"`
	Title        string                      `gorm:"size:250;not null" json:"title"`
	Description  string                      `gorm:"type:text" json:"description"`
	Requirements string                      `gorm:"type:text" json:"requirements"`
	Skills       datatypes.JSONSlice[string] `json:"skills"`
	Experience   string                      `gorm:"size:50" json:"experience"`
	Equity       float64                     `json:"equity"` // percentage
	Type         string                      `gorm:"size:50" json:"type"`
	CreatedAt    time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}

// JobUpdate is used for partial updates of a job posting.
type JobUpdate struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Requirements *string   `json:"requirements"`
	Skills       *[]string `json:"skills"`
	Experience   *string   `json:"experience"`
	Equity       *float64  `json:"equity"`
	Type         *string   `json:"type"`
}
