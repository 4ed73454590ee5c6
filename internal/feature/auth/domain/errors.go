// Package domain defines domain-level errors for the auth feature.
package domain

import "todo_backend/internal/shared/apperr"

// Domain errors for authentication operations.
// They carry the client-facing message and the failure kind used by both transports.
var (
	// ErrCredentialsRequired is returned when email or password is empty.
	ErrCredentialsRequired = apperr.Validation("email and password are required")

	// ErrUserAlreadyExists indicates that a user with the given email already exists.
	ErrUserAlreadyExists = apperr.Conflict("user already exists")

	// ErrUserNotFound indicates that no user was found with the given criteria.
	// It never reaches clients: login maps it to ErrInvalidCredentials.
	ErrUserNotFound = apperr.NotFound("user not found")

	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike, so callers cannot tell which part was wrong.
	ErrInvalidCredentials = apperr.Authentication("invalid credentials")
)

// MsgRegistered is the success message returned by registration.
const MsgRegistered = "user registered successfully"
