package imap

import "time"

// FetchOptions specifies what message data items to fetch.
type FetchOptions struct {
	// BodySection specifies BODY[] sections to fetch.
	BodySection []*FetchItemBodySection
	// BodyStructure fetches the raw BODYSTRUCTURE list.
	BodyStructure bool
	// Envelope fetches the message envelope.
	Envelope bool
	// Flags fetches message flags.
	Flags bool
	// InternalDate fetches the internal date.
	InternalDate bool
	// RFC822Size fetches the message size in octets.
	RFC822Size bool
	// UID fetches the UID. UID FETCH implies it.
	UID bool
	// ModSeq fetches the modification sequence (RFC 7162).
	ModSeq bool
	// ChangedSince restricts the fetch to messages whose mod-sequence is
	// greater than this value (CONDSTORE).
	ChangedSince uint64
}

// FetchItemBodySection represents a BODY[section] fetch item.
type FetchItemBodySection struct {
	// Specifier is the section specifier, e.g. "HEADER", "TEXT",
	// "HEADER.FIELDS". Empty means the whole message.
	Specifier string
	// Part is the MIME part number, e.g. []int{1, 2} for "1.2".
	Part []int
	// Fields is the header field list for HEADER.FIELDS[.NOT].
	Fields []string
	// NotFields marks Fields as a HEADER.FIELDS.NOT list.
	NotFields bool
	// Peek fetches without setting the \Seen flag (BODY.PEEK).
	Peek bool
	// Partial requests a byte range of the section.
	Partial *SectionPartial
}

// FetchData is one message's attribute bundle from a FETCH response.
// Absent attributes keep their zero value; body payloads are owned copies
// of the server's raw octets.
type FetchData struct {
	// SeqNum is the message sequence number.
	SeqNum uint32
	// UID is the unique identifier, 0 when not fetched.
	UID UID
	// Flags is the flag list; FlagsSet distinguishes an empty list from
	// an absent FLAGS attribute.
	Flags    []Flag
	FlagsSet bool
	// RFC822Size is the message size in octets, 0 when not fetched.
	RFC822Size int64
	// InternalDate is the server's internal date, zero when not fetched.
	InternalDate time.Time
	// Envelope is the server-computed envelope, nil when not fetched.
	Envelope *Envelope
	// ModSeq is the message's modification sequence (RFC 7162).
	ModSeq uint64
	// BodyStructure carries the raw BODYSTRUCTURE list text.
	BodyStructure string
	// BodySections maps the requested section, as written in the
	// response (e.g. "BODY[]", "BODY[HEADER.FIELDS (SUBJECT)]"), to its
	// raw octets. A section the server reported as NIL is absent.
	BodySections map[string][]byte
}

func (*FetchData) respUnit()    {}
func (*FetchData) unsolicited() {}
