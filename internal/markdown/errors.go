package markdown

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedHeader indicates the front-matter delimiters are missing or
	// unbalanced, so the header block could not be split from the body.
	ErrMalformedHeader = errors.New("frontmatter: malformed header")
	// ErrMissingRequiredField indicates the header parsed but a required
	// field (title, date, or draft) is absent.
	ErrMissingRequiredField = errors.New("frontmatter: missing required field")
)

// MissingRequiredFieldError reports which required header field is absent.
type MissingRequiredFieldError struct {
	Field string
}

func (e *MissingRequiredFieldError) Error() string {
	if e == nil {
		return ErrMissingRequiredField.Error()
	}
	field := strings.TrimSpace(e.Field)
	if field == "" {
		return ErrMissingRequiredField.Error()
	}
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField.Error(), field)
}

func (e *MissingRequiredFieldError) Unwrap() error {
	return ErrMissingRequiredField
}
