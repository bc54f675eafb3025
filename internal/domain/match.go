package domain

import (
	"time"

	"github.com/google/uuid"
)

// Match is a symmetric relationship between two distinct users. Rows are
// created when both sides of a swipe pair liked each other and are immutable
// afterwards. The pair is stored in normalized order (smaller UUID first) so
// the unique index catches duplicates regardless of who swiped last.
type Match struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserAID   uuid.UUID `json:"userAId" gorm:"type:uuid;not null;uniqueIndex:idx_match_pair,priority:1"`
	UserBID   uuid.UUID `json:"userBId" gorm:"type:uuid;not null;uniqueIndex:idx_match_pair,priority:2"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	UserA *User `json:"userA,omitempty" gorm:"foreignKey:UserAID"`
	UserB *User `json:"userB,omitempty" gorm:"foreignKey:UserBID"`
}

// Involves reports whether userID is one of the two participants. The pair is
// unordered; both columns are checked.
func (m *Match) Involves(userID uuid.UUID) bool {
	return m.UserAID == userID || m.UserBID == userID
}

// Counterpart returns the other participant for a given member of the match.
// The boolean is false when userID is not a participant at all.
func (m *Match) Counterpart(userID uuid.UUID) (uuid.UUID, bool) {
	switch userID {
	case m.UserAID:
		return m.UserBID, true
	case m.UserBID:
		return m.UserAID, true
	}
	return uuid.Nil, false
}

// NormalizePair orders two user ids for storage in a Match row.
func NormalizePair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if a.String() > b.String() {
		return b, a
	}
	return a, b
}

// Swipe records a like/pass decision by one user on another. One row per
// ordered (actor, target) pair; a repeat swipe overwrites the previous one.
type Swipe struct {
	ActorID   uuid.UUID `json:"actorId" gorm:"type:uuid;primaryKey"`
	TargetID  uuid.UUID `json:"targetId" gorm:"type:uuid;primaryKey"`
	Liked     bool      `json:"liked" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
