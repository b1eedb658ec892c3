package client

import (
	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// GetACL fetches the access control list of a mailbox (RFC 4314).
func (s *Session) GetACL(mailbox string) (*imap.ACLData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("GETACL").SP().Mailbox(mailbox)
	res, err := s.c.execute(catACL, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.ACLData](res, "ACL")
}

// SetACL changes the rights of an identifier on a mailbox. A rights
// string starting with '+' or '-' modifies the existing rights instead of
// replacing them.
func (s *Session) SetACL(mailbox, identifier, rights string) error {
	if err := checkArgs("mailbox", mailbox, "identifier", identifier, "rights", rights); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.Atom("SETACL").SP().Mailbox(mailbox).SP().String(identifier).SP().String(rights)
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}

// DeleteACL removes all rights of an identifier from a mailbox.
func (s *Session) DeleteACL(mailbox, identifier string) error {
	if err := checkArgs("mailbox", mailbox, "identifier", identifier); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.Atom("DELETEACL").SP().Mailbox(mailbox).SP().String(identifier)
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}

// ListRights asks which rights may be granted to an identifier.
func (s *Session) ListRights(mailbox, identifier string) (*imap.ACLListRightsData, error) {
	if err := checkArgs("mailbox", mailbox, "identifier", identifier); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("LISTRIGHTS").SP().Mailbox(mailbox).SP().String(identifier)
	res, err := s.c.execute(catListRights, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.ACLListRightsData](res, "LISTRIGHTS")
}

// MyRights asks for the rights the logged-in user has on a mailbox.
func (s *Session) MyRights(mailbox string) (*imap.ACLMyRightsData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("MYRIGHTS").SP().Mailbox(mailbox)
	res, err := s.c.execute(catMyRights, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.ACLMyRightsData](res, "MYRIGHTS")
}
