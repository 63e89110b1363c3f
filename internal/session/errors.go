package session

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyInput is returned when a lookup is submitted without a number
var ErrEmptyInput = errors.New("Please enter a phone number.")

// RequiredFieldError is returned when a contribution is missing required fields
type RequiredFieldError struct {
	Fields []string // "phone number", "carrier"
}

func (e *RequiredFieldError) Error() string {
	if len(e.Fields) == 0 {
		return "Phone number and carrier are required fields."
	}
	return fmt.Sprintf("Required field missing: %s. Phone number and carrier are required fields.", strings.Join(e.Fields, ", "))
}
