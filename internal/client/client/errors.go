package client

import (
	"errors"
	"fmt"
	"net"
)

// ErrBackupNotFound is returned by Restore when the server holds no backup
// for the user.
var ErrBackupNotFound = errors.New("no backup for this user")

// SyncReason is the user-facing cause of a failed backup or restore.
type SyncReason string

const (
	ReasonConnectionFailed SyncReason = "connection failed"
	ReasonServerRejected   SyncReason = "server rejected"
	ReasonInvalidResponse  SyncReason = "invalid response"
)

// SyncError describes a failed backup or restore round trip.
type SyncError struct {
	Op     string
	Reason SyncReason
	// StatusCode is set when the server answered.
	StatusCode int
	// Message is the server's {"error": ...} text, if any.
	Message string
	Err     error
}

func (e *SyncError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Op, e.Reason)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request ran out of time.
func (e *SyncError) Timeout() bool {
	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}
