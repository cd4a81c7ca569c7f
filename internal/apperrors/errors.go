package apperrors

import (
	"errors"
)

var (
	// Session can't be recovered: refresh failed, retried request got 401 again or upstream is unavailable
	ErrSessionExpired   = errors.New("session expired")
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("user role is not allowed to do this")

	ErrNoEventSelected = errors.New("no event selected, please choose an event")

	ErrValidation   = errors.New("validation failed")
	ErrNameRequired = errors.New("name is required")

	ErrStorageNotMigrated = errors.New("storage schema is not migrated")
)
