package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email     string    `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Username  string    `gorm:"size:150;not null;uniqueIndex" json:"username"`
	FirstName string    `gorm:"size:150;not null" json:"first_name"`
	LastName  string    `gorm:"size:150;not null" json:"last_name"`
	Password  string    `gorm:"not null" json:"-"`
	Avatar    string    `json:"avatar,omitempty"`
	Role      string    `gorm:"size:20;not null;default:user" json:"role"`

	Timestamp
}

// AuthToken is an issued bearer token. A token stays valid only while its
// row exists.
type AuthToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"type:timestamp;not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
