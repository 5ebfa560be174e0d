package models

import (
	"errors"
	"fmt"
	"strconv"
)

// ValidationError describes input rejected before it reaches the balance engine.
type ValidationError struct {
	Field  string
	Reason string
	Index  int // position within a list field, when relevant
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func quote(s string) string {
	return strconv.Quote(s)
}
