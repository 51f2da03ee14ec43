package places

import "errors"

var (
	ErrInvalidQuery  = errors.New("invalid places query")
	ErrUpstream      = errors.New("places upstream failed")
	ErrNotConfigured = errors.New("places provider not configured")
	// ErrSuperseded is returned by Latest when a newer lookup replaced this one.
	ErrSuperseded = errors.New("lookup superseded by a newer one")
)
