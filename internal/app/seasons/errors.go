package seasons

import "errors"

var (
	// ErrUnknownDomain is returned for a domain neither stored nor built in.
	ErrUnknownDomain = errors.New("unknown domain")
	// ErrInvalidDomain is returned for a domain name that cannot be stored.
	ErrInvalidDomain = errors.New("invalid domain name")
	// ErrNoActiveWindow is returned by End when nothing is active.
	ErrNoActiveWindow = errors.New("no active window")
	// ErrUnknownSeason is returned by RemoveSeason for a missing key.
	ErrUnknownSeason = errors.New("unknown season")
)
