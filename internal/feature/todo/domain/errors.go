// Package domain はtodoフィーチャーのドメインエラーを定義します。
package domain

import "todo_backend/internal/shared/apperr"

var (
	// ErrTitleRequired is returned when a title is missing on create or
	// supplied as an empty string on update.
	ErrTitleRequired = apperr.Validation("title is required")

	// ErrTodoNotFound covers both a missing todo and one owned by another user.
	ErrTodoNotFound = apperr.NotFound("todo not found")

	// ErrAuthenticationRequired is returned when the context carries no principal,
	// or the principal's user no longer exists.
	ErrAuthenticationRequired = apperr.Authentication("authentication required")
)

// MsgDeleted is the success message returned by the GraphQL deleteTodo mutation.
const MsgDeleted = "todo deleted successfully"
