package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobRole is a lookup entity naming a collaboration role.
type JobRole struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

func (JobRole) TableName() string {
	return "job_roles"
}

// Collaboration is an informal (non-job) association between a profile
// and a startup via a named role.
type Collaboration struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"profile_id"`
	Profile   *Profile  `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	StartupID uuid.UUID `gorm:"type:uuid;not null;index" json:"startup_id"`
	Startup   *Startup  `gorm:"foreignKey:StartupID;constraint:OnDelete:CASCADE" json:"startup,omitempty"`
	JobRoleID uuid.UUID `gorm:"type:uuid;not null" json:"job_role_id"`
	JobRole   *JobRole  `gorm:"foreignKey:JobRoleID" json:"job_role,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Collaboration) TableName() string {
	return "collaborations"
}
