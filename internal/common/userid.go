package common

import (
	"fmt"
	"regexp"
)

// MaxUserIDLength bounds the user id so it stays a valid file name and
// object key on every backend.
const MaxUserIDLength = 128

// userIDPattern admits letters, digits, '.', '_' and '-', and requires an
// alphanumeric first character, which rules out "." and "..".
var userIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateUserID rejects ids that could escape the per-user storage
// location. Ids are never rewritten: an unsafe id is an error.
func ValidateUserID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidUserID)
	}
	if len(id) > MaxUserIDLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidUserID, MaxUserIDLength)
	}
	if !userIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidUserID, id)
	}
	return nil
}
