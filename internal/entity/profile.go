package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/engin-hq/engin/constants"
)

// Profile represents an onboarded user. The primary key equals the
// authenticated identity id, so the store itself guarantees at most one
// profile per identity. Absence of the row routes the identity into
// onboarding.
type Profile struct {
	ID             uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Email          string                         `gorm:"size:250;not null;uniqueIndex" json:"email"`
	Username       string                         `gorm:"size:50;not null;uniqueIndex" json:"username"`
	FullName       string                         `gorm:"size:250" json:"full_name"`
	Bio            string                         `gorm:"type:text" json:"bio"`
	AvatarURL      string                         `gorm:"size:500" json:"avatar_url"`
	Location       string                         `gorm:"size:250" json:"location"`
	Skills         datatypes.JSONSlice[string]    `json:"skills"`
	Interests      datatypes.JSONSlice[string]    `json:"interests"`
	UserType       constants.UserType             `gorm:"type:varchar(20)" json:"user_type"`
	EmploymentType constants.EmploymentType       `gorm:"type:varchar(20)" json:"employment_type"`
	GitHubURL      string                         `gorm:"size:500" json:"github_url"`
	LinkedInURL    string                         `gorm:"size:500" json:"linkedin_url"`
	CreatedAt      time.Time                      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

// ProfileUpdate is used for partial updates of a profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Email          *string   `json:"email"`
	Username       *string   `json:"username"`
	FullName       *string   `json:"full_name"`
	Bio            *string   `json:"bio"`
	AvatarURL      *string   `json:"avatar_url"`
	Location       *string   `json:"location"`
	Skills         *[]string `json:"skills"`
	Interests      *[]string `json:"interests"`
	UserType       *string   `json:"user_type"`
	EmploymentType *string   `json:"employment_type"`
	GitHubURL      *string   `json:"github_url"`
	LinkedInURL    *string   `json:"linkedin_url"`
}
