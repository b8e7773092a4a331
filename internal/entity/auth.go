package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthIdentity is what the OAuth callback persists: the subject the
// provider vouched for. Profile.ID equals AuthIdentity.ID once the
// user finishes onboarding.
type AuthIdentity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Provider  string    `gorm:"size:50;not null;uniqueIndex:idx_identities_subject" json:"provider"`
	Subject   string    `gorm:"size:250;not null;uniqueIndex:idx_identities_subject" json:"subject"`
	Email     string    `gorm:"size:250;not null" json:"email"`
	Name      string    `gorm:"size:250" json:"name"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AuthIdentity) TableName() string {
	return "auth_identities"
}

// Session is a server-side login session referenced by the cookie token.
type Session struct {
	Token      string    `gorm:"size:64;primaryKey" json:"-"`
	IdentityID uuid.UUID `gorm:"type:uuid;not null;index" json:"identity_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	ExpiresAt  time.Time `gorm:"not null" json:"expires_at"`
}

func (Session) TableName() string {
	return "sessions"
}
