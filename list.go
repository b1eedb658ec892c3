package imap

import "strings"

// ListData represents a single LIST or LSUB response line.
type ListData struct {
	// Attrs is the list of mailbox attributes.
	Attrs []MailboxAttr
	// Delim is the hierarchy delimiter character (0 if NIL).
	Delim rune
	// Mailbox is the mailbox name.
	Mailbox string
	// Status is filled in when LIST-STATUS was requested (RFC 5819); the
	// accompanying untagged STATUS line is attached to this entry.
	Status *StatusData
}

func (*ListData) respUnit() {}

// HasAttr reports whether the entry carries the given attribute. The
// comparison is case-insensitive.
func (l *ListData) HasAttr(attr MailboxAttr) bool {
	for _, a := range l.Attrs {
		if strings.EqualFold(string(a), string(attr)) {
			return true
		}
	}
	return false
}
