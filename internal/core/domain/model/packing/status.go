package packing

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of a packing session.
//
//	InProgress ──> Completed
//	     │
//	     └───────> Cancelled
//
// Both terminal states are final; a session is never reactivated.
type Status int

const (
	Unknown Status = iota
	InProgress
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "unknown",
		InProgress: "in_progress",
		Completed:  "completed",
		Cancelled:  "cancelled",
	}
}

func AllStatuses() []Status {
	return []Status{InProgress, Completed, Cancelled}
}

// ParseStatus converts a stored status name back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if status != Unknown && name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if !slices.Contains(AllStatuses(), s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsActive reports whether the session still accepts scans.
func (s Status) IsActive() bool {
	return s == InProgress
}
