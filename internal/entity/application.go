package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/constants"
)

// JobApplication joins a profile to a job. The composite unique index
// makes the store reject a second application for the same (profile,
// job) pair, closing the race between an existence check and the
// insert.
type JobApplication struct {
	ID        uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	JobID     uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_applications_profile_job" json:"job_id"`
	Job       *Job                        `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE" json:"job,omitempty"`
	ProfileID uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_applications_profile_job" json:"profile_id"`
	Profile   *Profile                    `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	Status    constants.ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}
