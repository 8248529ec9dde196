package retrieval

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidPayload is returned when the scanned string is not "<wasteType>:<location>".
	ErrInvalidPayload = errors.New("invalid QR code format")
	// ErrUnauthenticated is returned before any store access when no caller identity is given.
	ErrUnauthenticated = errors.New("caller identity is required")
	// ErrDuplicateSubmission matches every *DuplicateSubmissionError via errors.Is.
	ErrDuplicateSubmission = errors.New("location already submitted within the duplicate window")
)

// DuplicateSubmissionError carries what the user needs to see when a location
// was already recorded inside the window.
type DuplicateSubmissionError struct {
	Location string
	Window   time.Duration
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("Location %s has already been submitted in the last %s", e.Location, describeWindow(e.Window))
}

func (e *DuplicateSubmissionError) Is(target error) bool {
	return target == ErrDuplicateSubmission
}

// StoreError wraps a failure of the underlying document store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("retrieval store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func describeWindow(d time.Duration) string {
	if d > 0 && d%time.Hour == 0 {
		hours := int(d / time.Hour)
		if hours == 1 {
			return "1 hour"
		}
		return fmt.Sprintf("%d hours", hours)
	}
	return d.String()
}
