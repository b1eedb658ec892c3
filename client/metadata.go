package client

import (
	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// GetMetadata fetches annotation entries of a mailbox (RFC 5464). An
// empty mailbox name addresses server annotations.
func (s *Session) GetMetadata(mailbox string, entries []string, options *imap.MetadataOptions) (*imap.MetadataData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := checkArg("entry", e); err != nil {
			return nil, err
		}
	}

	enc := wire.NewEncoder()
	enc.Atom("GETMETADATA")
	if options != nil && (options.MaxSize != nil || options.Depth != "") {
		enc.SP().BeginList()
		sep := false
		if options.MaxSize != nil {
			enc.Atom("MAXSIZE").SP().Number(*options.MaxSize)
			sep = true
		}
		if options.Depth != "" {
			if sep {
				enc.SP()
			}
			enc.Atom("DEPTH").SP().Atom(options.Depth)
		}
		enc.EndList()
	}
	enc.SP().Mailbox(mailbox).SP().List(entries)

	res, err := s.c.execute(catMetadata, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}

	// Servers may split the entries over several METADATA lines.
	data := &imap.MetadataData{Mailbox: mailbox, Entries: make(map[string]*string)}
	for _, r := range res.data {
		if md, ok := r.(*imap.MetadataData); ok {
			for k, v := range md.Entries {
				data.Entries[k] = v
			}
		}
	}
	return data, nil
}

// SetMetadata sets annotation entries on a mailbox. A nil value removes
// the entry.
func (s *Session) SetMetadata(mailbox string, entries map[string]*string) error {
	if err := checkArg("mailbox", mailbox); err != nil {
		return err
	}
	enc := wire.NewEncoder()
	enc.Atom("SETMETADATA").SP().Mailbox(mailbox).SP().BeginList()
	sep := false
	for entry, value := range entries {
		if err := checkArg("entry", entry); err != nil {
			return err
		}
		if sep {
			enc.SP()
		}
		sep = true
		enc.String(entry).SP()
		if value == nil {
			enc.Atom("NIL")
		} else {
			if err := checkArg("value", *value); err != nil {
				return err
			}
			enc.QuotedString(*value)
		}
	}
	enc.EndList()
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}
