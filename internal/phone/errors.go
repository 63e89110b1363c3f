package phone

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Reason is why a parseable number was rejected
type Reason string

const (
	ReasonNotPossible      Reason = "not possible"
	ReasonInvalidForRegion Reason = "invalid for region"
)

// Message returns the user-facing sentence for a reason
func (r Reason) Message() string {
	switch r {
	case ReasonNotPossible:
		return "Number is not possible (e.g., wrong length)."
	case ReasonInvalidForRegion:
		return "Number is invalid for the detected region."
	}
	return string(r)
}

// ParseError is returned when the input cannot be parsed as a phone number at all
type ParseError struct {
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	return "Error parsing phone number. Ensure correct format (e.g., +1234567890)."
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when the input parses but is not a real, assignable number
type ValidationError struct {
	Input   string
	Reasons []Reason
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Reasons))
	for i, r := range e.Reasons {
		msgs[i] = r.Message()
	}
	return fmt.Sprintf("Invalid phone number: %s", strings.Join(msgs, ", "))
}

// Has reports whether the error carries the given reason
func (e *ValidationError) Has(r Reason) bool {
	return lo.Contains(e.Reasons, r)
}
