package domain

import "errors"

var (
	// ErrInvalidCredentials covers every credential sign-in failure: unknown
	// email, identity without a password hash, and hash mismatch all collapse
	// into this one error so callers cannot enumerate registered emails.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrAccountNotFound = errors.New("account link not found")
	ErrAccountConflict = errors.New("account link already exists")
	ErrTodoNotFound    = errors.New("todo not found")
	ErrForbidden       = errors.New("access forbidden")
	ErrNothingToUpdate = errors.New("nothing to update")
	ErrInvalidRole     = errors.New("invalid role")
	ErrInvalidInput    = errors.New("invalid input")
)
