package client

import (
	"fmt"

	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// Session is an authenticated IMAP connection. It is produced by
// Client.Login, Client.Authenticate or Client.PreauthSession and carries
// the full authenticated command set.
type Session struct {
	c *conn
}

// Unsolicited returns the channel of untagged responses that did not
// belong to any command: expunges, new-message notifications, flag
// updates, metadata change notices and informational status lines. The
// channel is bounded; when the consumer falls behind, the oldest entries
// are dropped.
func (s *Session) Unsolicited() <-chan imap.UnsolicitedResponse {
	return s.c.unsolicited
}

// Capability requests the server's capability list. The result is
// request-scoped: capabilities may change after STARTTLS or
// authentication.
func (s *Session) Capability() (imap.CapabilityData, error) {
	return capability(s.c)
}

// Noop sends a NOOP, giving the server a chance to deliver pending
// unsolicited responses.
func (s *Session) Noop() error {
	_, err := s.c.execute(catNone, "NOOP", nil)
	return err
}

// Logout sends LOGOUT and closes the stream.
func (s *Session) Logout() error {
	return logout(s.c)
}

// Close drops the stream without a LOGOUT.
func (s *Session) Close() error {
	return s.c.close()
}

// Select opens a mailbox read-write and returns its snapshot.
func (s *Session) Select(mailbox string) (*imap.Mailbox, error) {
	return s.selectExamine("SELECT", mailbox)
}

// Examine opens a mailbox read-only and returns its snapshot.
func (s *Session) Examine(mailbox string) (*imap.Mailbox, error) {
	return s.selectExamine("EXAMINE", mailbox)
}

// selectExamine rebuilds the Mailbox snapshot wholesale from the
// responses of one SELECT or EXAMINE exchange.
func (s *Session) selectExamine(cmd, mailbox string) (*imap.Mailbox, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().Mailbox(mailbox)
	res, err := s.c.execute(catSelect, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}

	mb := &imap.Mailbox{Name: mailbox, ReadOnly: cmd == "EXAMINE"}
	for _, r := range res.data {
		switch d := r.(type) {
		case imap.ExistsData:
			mb.Exists = uint32(d)
		case imap.RecentData:
			mb.Recent = uint32(d)
		case imap.FlagsData:
			mb.Flags = []imap.Flag(d)
		case *imap.StatusResponse:
			applyMailboxCode(mb, d)
		}
	}
	applyMailboxCode(mb, res.status)
	return mb, nil
}

func applyMailboxCode(mb *imap.Mailbox, status *imap.StatusResponse) {
	if status == nil {
		return
	}
	switch status.Code {
	case imap.ResponseCodeUnseen:
		if status.Arg != nil {
			mb.Unseen = status.Arg.Num
		}
	case imap.ResponseCodeUIDNext:
		if status.Arg != nil {
			mb.UIDNext = status.Arg.Num
		}
	case imap.ResponseCodeUIDValidity:
		if status.Arg != nil {
			mb.UIDValidity = status.Arg.Num
		}
	case imap.ResponseCodePermanentFlags:
		if status.Arg != nil {
			mb.PermanentFlags = status.Arg.Flags
		}
	case imap.ResponseCodeHighestModSeq:
		if status.Arg != nil {
			mb.HighestModSeq = status.Arg.ModSeq
		}
	case imap.ResponseCodeReadOnly:
		mb.ReadOnly = true
	case imap.ResponseCodeReadWrite:
		mb.ReadOnly = false
	}
}

// single extracts the lone typed data response of a command, e.g. the
// SEARCH line of a SEARCH exchange.
func single[T imap.Response](res *result, cmd string) (T, error) {
	var zero T
	for _, r := range res.data {
		if v, ok := r.(T); ok {
			return v, nil
		}
	}
	return zero, fmt.Errorf("imap: server sent no %s data", cmd)
}
