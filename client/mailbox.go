package client

import (
	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// Create creates a new mailbox.
func (s *Session) Create(mailbox string) error {
	return s.simpleMailboxCmd("CREATE", mailbox)
}

// Delete permanently removes a mailbox.
func (s *Session) Delete(mailbox string) error {
	return s.simpleMailboxCmd("DELETE", mailbox)
}

// Rename renames a mailbox.
func (s *Session) Rename(from, to string) error {
	if err := checkArgs("from", from, "to", to); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.Atom("RENAME").SP().Mailbox(from).SP().Mailbox(to)
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}

// Subscribe adds a mailbox to the subscription list.
func (s *Session) Subscribe(mailbox string) error {
	return s.simpleMailboxCmd("SUBSCRIBE", mailbox)
}

// Unsubscribe removes a mailbox from the subscription list.
func (s *Session) Unsubscribe(mailbox string) error {
	return s.simpleMailboxCmd("UNSUBSCRIBE", mailbox)
}

func (s *Session) simpleMailboxCmd(cmd, mailbox string) error {
	if err := checkArg("mailbox", mailbox); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().Mailbox(mailbox)
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}

// List lists mailboxes matching pattern under the reference name.
func (s *Session) List(ref, pattern string) ([]*imap.ListData, error) {
	return s.list("LIST", ref, pattern)
}

// Lsub lists subscribed mailboxes matching pattern.
func (s *Session) Lsub(ref, pattern string) ([]*imap.ListData, error) {
	return s.list("LSUB", ref, pattern)
}

func (s *Session) list(cmd, ref, pattern string) ([]*imap.ListData, error) {
	if err := checkArgs("reference", ref, "pattern", pattern); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().String(ref).SP().String(pattern)
	res, err := s.c.execute(catList, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return collectList(res), nil
}

// ListStatus lists mailboxes and folds the requested STATUS items into
// each entry (LIST-STATUS, RFC 5819).
func (s *Session) ListStatus(ref, pattern string, items []imap.StatusItem) ([]*imap.ListData, error) {
	if err := checkArgs("reference", ref, "pattern", pattern); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("LIST").SP().String(ref).SP().String(pattern)
	enc.SP().Atom("RETURN").SP().BeginList().Atom("STATUS").SP()
	enc.BeginList()
	for i, item := range items {
		if i > 0 {
			enc.SP()
		}
		enc.Atom(string(item))
	}
	enc.EndList().EndList()

	res, err := s.c.execute(catListStatus, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}

	entries := collectList(res)
	byName := make(map[string]*imap.ListData, len(entries))
	for _, e := range entries {
		byName[e.Mailbox] = e
	}
	for _, r := range res.data {
		if st, ok := r.(*imap.StatusData); ok {
			if e, ok := byName[st.Mailbox]; ok {
				e.Status = st
			}
		}
	}
	return entries, nil
}

func collectList(res *result) []*imap.ListData {
	var entries []*imap.ListData
	for _, r := range res.data {
		if l, ok := r.(*imap.ListData); ok {
			entries = append(entries, l)
		}
	}
	return entries
}

// Status queries the given attributes of a mailbox without selecting it.
func (s *Session) Status(mailbox string, items []imap.StatusItem) (*imap.StatusData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("STATUS").SP().Mailbox(mailbox).SP().BeginList()
	for i, item := range items {
		if i > 0 {
			enc.SP()
		}
		enc.Atom(string(item))
	}
	enc.EndList()

	res, err := s.c.execute(catStatus, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.StatusData](res, "STATUS")
}
