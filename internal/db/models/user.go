package models

import (
	"time"
)

// User is the local record of a person signed in through the identity provider.
// Rows are created lazily on the first authenticated request and never deleted;
// deactivation goes through IsActive.
type User struct {
	// ID is the identity provider's subject identifier. It never changes.
	ID string `gorm:"primaryKey;size:191" json:"id"`
	// Email is the primary email address reported by the identity provider.
	Email string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	// Name is derived from the provider profile at creation time.
	Name string `gorm:"size:255;not null" json:"name"`
	// AvatarURL is the profile image, if the provider has one.
	AvatarURL *string `gorm:"column:avatar_url;size:2048" json:"avatarUrl"`
	// GoogleID is the linked Google account identifier, if any.
	GoogleID *string `gorm:"column:google_id;uniqueIndex;size:191" json:"googleId,omitempty"`
	// Role is changed only by an explicit role update.
	Role Role `gorm:"type:varchar(32);not null;default:'employee'" json:"role"`
	// IsActive is false for deactivated accounts.
	IsActive bool `gorm:"not null" json:"isActive"`
	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}
