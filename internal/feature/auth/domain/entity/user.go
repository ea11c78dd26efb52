// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Users are created implicitly the first time an accepted address requests a magic link.
type User struct {
	// ID is the unique identifier for the user (UUID string).
	ID string `gorm:"primaryKey;size:36"`

	// Email is the user's email address used as the login key.
	// It is stored lower-cased and must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	FirstName string `gorm:"size:150;not null;default:''"`
	LastName  string `gorm:"size:150;not null;default:''"`

	// IsActive reports whether the user may sign in.
	IsActive bool `gorm:"not null;default:true"`

	// IsStaff grants access to administrative endpoints such as the user list.
	IsStaff bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user joined.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
