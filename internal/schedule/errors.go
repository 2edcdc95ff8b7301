package schedule

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected status code")
	ErrMalformedGame    = errors.New("malformed game record")
	ErrInvalidDate      = errors.New("invalid date")
	ErrMissingColumn    = errors.New("missing CSV column")
	ErrWeekNotFound     = errors.New("week not found")
)
