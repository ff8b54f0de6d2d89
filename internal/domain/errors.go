package domain

import "errors"

// Error kinds surfaced by the admin API. Wrap them with fmt.Errorf("...: %w").
var (
	ErrValidation       = errors.New("validation error")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyCompleted = errors.New("transaction already completed")
	ErrBackend          = errors.New("backend error")
	ErrConfiguration    = errors.New("configuration error")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
)
