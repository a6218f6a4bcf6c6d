package provider

import "errors"

// Error kinds surfaced by the lifecycle services. Callers classify with
// errors.Is; the HTTP layer maps them to status codes.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrStorage    = errors.New("storage failure")
)
