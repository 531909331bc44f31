package repository

import "errors"

// Sentinel kinds for event store errors.
var (
	ErrNotFound     = errors.New("event not found")
	ErrDuplicateID  = errors.New("duplicate event id")
	ErrInvalidLimit = errors.New("invalid history limit")
)
