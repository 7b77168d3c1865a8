package port

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidState  = errors.New("invalid state")
	ErrInvalidTarget = errors.New("invalid target")
	ErrAuthFailed    = errors.New("authentication failed")
)
