package flow

import "errors"

var (
	ErrInvalidForm    = errors.New("form is invalid")
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	ErrViewClosed     = errors.New("view is closed")
	ErrStaleResponse  = errors.New("response arrived after the view was closed")
)
