package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserRole string

const (
	RoleMember UserRole = "member"
	RoleAdmin  UserRole = "admin"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Name         string    `json:"name" gorm:"not null"`
	Bio          string    `json:"bio"`
	Gender       Gender    `json:"gender"`
	Age          int       `json:"age"`
	JobTitle     string    `json:"jobTitle"`
	School       string    `json:"school"`
	// Photos holds an ordered JSON array of image URLs. Upload/storage of the
	// images themselves is handled outside this service.
	Photos    datatypes.JSON `json:"photos" gorm:"type:jsonb"`
	Latitude  *float64       `json:"latitude"`
	Longitude *float64       `json:"longitude"`
	Role      UserRole       `json:"role" gorm:"not null;default:'member'"`
	Locked    bool           `json:"locked" gorm:"not null;default:false"`
	// FirstLogin stays true until the user replaces the generated password
	// they were emailed at registration.
	FirstLogin bool      `json:"firstLogin" gorm:"not null;default:true"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (u *User) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}

type UserSession struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"userId" gorm:"type:uuid;not null"`
	RefreshTokenHash string    `json:"-" gorm:"not null"`
	ExpiresAt        time.Time `json:"expiresAt" gorm:"not null"`
	CreatedAt        time.Time `json:"createdAt"`
}
