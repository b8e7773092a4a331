package entity

import (
	"time"

	"github.com/google/uuid"
)

// Startup is a venture listing owned by a founder profile. Only the
// founder may mutate or delete it; deletion is immediate, there is no
// soft delete.
type Startup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:250;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Problem     string    `gorm:"type:text" json:"problem"`
	Solution    string    `gorm:"type:text" json:"solution"`
	Industry    string    `gorm:"size:250" json:"industry"`
	Location    string    `gorm:"size:250" json:"location"`
	TeamSize    int       `gorm:"not null" json:"team_size"`
	Patent      *string   `gorm:"size:250" json:"patent,omitempty"`
	Funding     float64   `gorm:"not null;default:0" json:"funding"`
	FounderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"founder_id"`
	Founder     *Profile  `gorm:"foreignKey:FounderID" json:"founder,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Startup) TableName() string {
	return "startups"
}

// StartupUpdate is used for partial updates of a startup.
type StartupUpdate struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Problem     *string  `json:"problem"`
	Solution    *string  `json:"solution"`
	Industry    *string  `json:"industry"`
	Location    *string  `json:"location"`
	TeamSize    *int     `json:"team_size"`
	Patent      *string  `json:"patent"`
	Funding     *float64 `json:"funding"`
}
