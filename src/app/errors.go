package app

import "errors"

// Failure categories the handlers translate into status codes. Stores and
// core services return these wrapped with context; transport code matches
// with errors.Is and never leaks the wrapped detail to clients.
var (
	ErrNotFound     = errors.New("not found")
	ErrNoChange     = errors.New("no changes were made")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidToken = errors.New("invalid token")
	ErrEmailTaken   = errors.New("email is already in use")
)
