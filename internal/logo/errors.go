package logo

import (
	"errors"
	"fmt"
)

// ErrNoLogo means every candidate URL missed.
var ErrNoLogo = errors.New("no logo candidate succeeded")

// MissError describes a single candidate that did not return a logo.
type MissError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *MissError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
}

func (e *MissError) Unwrap() error {
	return e.Err
}
