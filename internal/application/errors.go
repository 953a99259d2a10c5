package application

import "errors"

// Failure taxonomy shared by the services. Handlers map these onto
// HTTP statuses; every failure renders the same envelope shape.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("missing permission")
	ErrConflict     = errors.New("already exists")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrDependency   = errors.New("dependency failure")
)
