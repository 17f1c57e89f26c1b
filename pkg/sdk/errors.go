package sdk

import (
	"errors"
	"fmt"
)

// Sentinel errors mapped from API error codes. Use errors.Is() to check.
var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrForbidden       = errors.New("forbidden")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("search unavailable")
)

// APIError carries the raw error envelope returned by the server.
// It unwraps to one of the sentinel errors when the code is known.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("playersearch: %s (%d %s)", e.Message, e.Status, e.Code)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case "player_not_found":
		return ErrPlayerNotFound
	case "forbidden":
		return ErrForbidden
	case "unauthorized", "missing_scope":
		return ErrUnauthorized
	case "invalid_argument":
		return ErrInvalidArgument
	case "search_unavailable":
		return ErrUnavailable
	default:
		return nil
	}
}
