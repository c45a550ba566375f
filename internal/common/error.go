// Package common defines the sentinel errors and identifiers shared by the
// backup server layers. Callers match them with errors.Is.
package common

import "errors"

var (
	// ErrNotFound is returned by stores when no document exists for a key.
	ErrNotFound = errors.New("not found")

	// ErrStorageWrite marks a failure to persist a backup document.
	ErrStorageWrite = errors.New("storage write failed")

	// ErrStorageRead marks a failure to load a backup document.
	ErrStorageRead = errors.New("storage read failed")

	// ErrInvalidUserID is returned for user ids that are not safe storage keys.
	ErrInvalidUserID = errors.New("invalid user id")
)
