// Package status implements result aggregation across multiple sub-operations.
// A Status carries zero or more recoverable errors plus an optional summary
// message; callers must check IsValid before trusting the message.
package status

import (
	"fmt"
	"strings"
)

// Status combines a validity flag, a list of error messages and an optional
// summary message. The zero value is valid and carries no message.
type Status struct {
	errs    []error
	message string
}

// New returns an empty, valid Status.
func New() *Status {
	return &Status{}
}

// AddError records a recoverable error and returns the Status for chaining.
// A nil error is ignored.
func (s *Status) AddError(err error) *Status {
	if err != nil {
		s.errs = append(s.errs, err)
	}

	return s
}

// AddErrorf records a recoverable error built from the given format and
// returns the Status for chaining.
func (s *Status) AddErrorf(format string, args ...any) *Status {
	return s.AddError(fmt.Errorf(format, args...)) //nolint:err113 // message-carrying status errors
}

// IsValid reports whether no errors have been recorded.
func (s *Status) IsValid() bool {
	return len(s.errs) == 0
}

// Errors returns the recorded errors in the order they were added.
func (s *Status) Errors() []error {
	return s.errs
}

// SetMessage sets the human-readable summary message and returns the Status
// for chaining.
func (s *Status) SetMessage(format string, args ...any) *Status {
	s.message = fmt.Sprintf(format, args...)

	return s
}

// Message returns the summary message.
func (s *Status) Message() string {
	return s.message
}

// Combine merges another Status into this one: errors concatenate, validity
// is the logical AND and the other's message wins when it is set.
func (s *Status) Combine(other *Status) *Status {
	if other == nil {
		return s
	}

	s.errs = append(s.errs, other.errs...)

	if other.message != "" {
		s.message = other.message
	}

	return s
}

// ErrorSummary returns all recorded error messages joined by "; ".
// It returns the empty string for a valid Status.
func (s *Status) ErrorSummary() string {
	if s.IsValid() {
		return ""
	}

	msgs := make([]string, len(s.errs))
	for i, err := range s.errs {
		msgs[i] = err.Error()
	}

	return strings.Join(msgs, "; ")
}
