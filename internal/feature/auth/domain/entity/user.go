// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// Users are created by registration and are never updated or deleted.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID uint `gorm:"primaryKey;autoIncrement"`

	// Email is the user's email address used for authentication.
	// It is unique and compared case-sensitively as stored.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// PasswordHash is the bcrypt hash of the user's password.
	// This should never store plaintext passwords.
	PasswordHash string `gorm:"column:password_hash;size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}
