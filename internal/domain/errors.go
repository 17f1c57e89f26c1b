package domain

import "errors"

var (
	// ErrPlayerNotFound signals a missing player record.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrForbidden signals an operation outside the caller's fund scope.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument signals a malformed request parameter.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable signals that the search backend cannot be reached.
	ErrUnavailable = errors.New("search backend unavailable")
	// ErrDegraded signals a recoverable backend condition (index absent,
	// query rejected). Callers serve an empty page and must not cache it.
	ErrDegraded = errors.New("search degraded")
)
