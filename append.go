package imap

import (
	"fmt"
	"time"
)

// AppendOptions specifies options for the APPEND command.
type AppendOptions struct {
	// Flags is the list of flags to set on the message.
	Flags []Flag
	// InternalDate is the internal date to set on the message. The zero
	// value omits it.
	InternalDate time.Time
}

// AppendData represents the result of an APPEND command on a server with
// UIDPLUS (RFC 4315). Without the extension both fields are zero.
type AppendData struct {
	// UIDValidity is the UID validity of the destination mailbox.
	UIDValidity uint32
	// UID is the UID assigned to the appended message.
	UID UID
}

// AppendError reports a failed APPEND. It wraps the underlying server
// completion or transport error, so IsNo, IsBad and errors.Is still see
// through it.
type AppendError struct {
	// Mailbox is the destination mailbox.
	Mailbox string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *AppendError) Error() string {
	return fmt.Sprintf("imap: append to %q: %v", e.Mailbox, e.Err)
}

// Unwrap returns the underlying error.
func (e *AppendError) Unwrap() error { return e.Err }
