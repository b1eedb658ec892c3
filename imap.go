// Package imap contains the shared types of an IMAP4rev1 client
// (RFC 3501), plus the extensions IDLE (RFC 2177), METADATA (RFC 5464),
// LIST-STATUS (RFC 5819), SORT (RFC 5256), ACL (RFC 4314), QUOTA
// (RFC 2087), UIDPLUS (RFC 4315) and the QRESYNC VANISHED response
// (RFC 7162, read path only).
//
// The wire subpackage implements the response grammar; the client
// subpackage implements the command/response engine. This package holds
// the typed values both sides exchange.
package imap

import (
	"fmt"
	"time"
)

// Flag represents an IMAP message flag.
type Flag string

// Standard message flags defined in RFC 3501.
const (
	FlagSeen     Flag = "\\Seen"
	FlagAnswered Flag = "\\Answered"
	FlagFlagged  Flag = "\\Flagged"
	FlagDeleted  Flag = "\\Deleted"
	FlagDraft    Flag = "\\Draft"
	FlagRecent   Flag = "\\Recent"
	FlagWildcard Flag = "\\*" // permanent flags wildcard
)

// MailboxAttr represents a mailbox attribute in a LIST/LSUB response.
type MailboxAttr string

// Standard mailbox attributes.
const (
	MailboxAttrNoInferiors   MailboxAttr = "\\Noinferiors"
	MailboxAttrNoSelect      MailboxAttr = "\\Noselect"
	MailboxAttrMarked        MailboxAttr = "\\Marked"
	MailboxAttrUnmarked      MailboxAttr = "\\Unmarked"
	MailboxAttrHasChildren   MailboxAttr = "\\HasChildren"
	MailboxAttrHasNoChildren MailboxAttr = "\\HasNoChildren"
	MailboxAttrSubscribed    MailboxAttr = "\\Subscribed"

	// Special-use attributes (RFC 6154)
	MailboxAttrAll     MailboxAttr = "\\All"
	MailboxAttrArchive MailboxAttr = "\\Archive"
	MailboxAttrDrafts  MailboxAttr = "\\Drafts"
	MailboxAttrFlagged MailboxAttr = "\\Flagged"
	MailboxAttrJunk    MailboxAttr = "\\Junk"
	MailboxAttrSent    MailboxAttr = "\\Sent"
	MailboxAttrTrash   MailboxAttr = "\\Trash"
)

// Address represents an email address in an envelope.
type Address struct {
	Name    string
	Mailbox string
	Host    string
}

// String returns the email address in "Name <mailbox@host>" format.
func (a *Address) String() string {
	addr := a.Mailbox + "@" + a.Host
	if a.Name != "" {
		return fmt.Sprintf("%s <%s>", a.Name, addr)
	}
	return addr
}

// Envelope is the server-computed envelope structure of a message
// (RFC 2822 header fields as parsed by the server).
type Envelope struct {
	Date      time.Time
	Subject   string
	From      []*Address
	Sender    []*Address
	ReplyTo   []*Address
	To        []*Address
	Cc        []*Address
	Bcc       []*Address
	InReplyTo string
	MessageID string
}

// InternalDateLayout is the time layout used for IMAP internal dates.
const InternalDateLayout = "_2-Jan-2006 15:04:05 -0700"

// SectionPartial represents a partial fetch byte range (<offset.count>).
type SectionPartial struct {
	Offset int64
	Count  int64
}
