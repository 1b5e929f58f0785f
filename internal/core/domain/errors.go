package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidState = errors.New("invalid state")
	ErrInvalidInput = errors.New("invalid input")
)

var (
	ErrBookNotFound       = fmt.Errorf("book %w", ErrNotFound)
	ErrAlreadyCheckedOut  = fmt.Errorf("%w: book already checked out", ErrInvalidState)
	ErrNotBorrowed        = fmt.Errorf("%w: book not borrowed by you", ErrInvalidState)
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// fieldSeparator delimits fields in the flat-file stores.
const fieldSeparator = "|"

// ValidateField rejects values the line-oriented stores cannot hold.
func ValidateField(name, value string) error {
	if strings.ContainsAny(value, fieldSeparator+"\r\n") {
		return fmt.Errorf("%w: %s must not contain '|' or line breaks", ErrInvalidInput, name)
	}
	return nil
}
