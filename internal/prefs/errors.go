package prefs

import "errors"

var (
	ErrEmptyIdentifier = errors.New("identifier must not be empty")
	ErrUnknownBackend  = errors.New("unknown preference backend")
)
