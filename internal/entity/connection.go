package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/engin-hq/engin/constants"
)

// Connection is a directed, status-tracked relationship request. One
// row per request, unique on the ordered (sender, receiver) pair; the
// reverse pair is rejected at request time. An accepted edge is read
// bidirectionally: both sides list each other as connected.
type Connection struct {
	ID         uuid.UUID                  `gorm:"type:uuid;primaryKey" json:"id"`
	SenderID   uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"sender_id"`
	Sender     *Profile                   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair" json:"receiver_id"`
	Receiver   *Profile                   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Status     constants.ConnectionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt  time.Time                  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Connection) TableName() string {
	return "connections"
}
