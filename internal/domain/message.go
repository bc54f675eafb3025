package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat message inside a match. Rows are insert-only: no edits,
// no deletes. Sender and receiver are always the two participants of the
// match, with the receiver derived server-side from the match row.
type Message struct {
	ID         uint64    `json:"id" gorm:"primaryKey;autoIncrement"`
	MatchID    uuid.UUID `json:"matchId" gorm:"type:uuid;not null;index"`
	SenderID   uuid.UUID `json:"senderId" gorm:"type:uuid;not null"`
	ReceiverID uuid.UUID `json:"receiverId" gorm:"type:uuid;not null"`
	Content    string    `json:"content" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`

	// Relations
	Match *Match `json:"-" gorm:"foreignKey:MatchID"`
}
