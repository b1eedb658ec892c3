package imap

// MetadataOptions specifies options for GETMETADATA (RFC 5464).
type MetadataOptions struct {
	// MaxSize limits the size of returned values; the server reports
	// truncation with a METADATA LONGENTRIES response code.
	MaxSize *uint32
	// Depth extends the query to descendant entries: "0", "1" or
	// "infinity". Empty omits the option.
	Depth string
}

// MetadataData represents the entries of one METADATA response.
type MetadataData struct {
	// Mailbox is the mailbox name, empty for server annotations.
	Mailbox string
	// Entries maps entry names to values. A nil value reports an entry
	// without a value.
	Entries map[string]*string
}

func (*MetadataData) respUnit()    {}
func (*MetadataData) unsolicited() {}
