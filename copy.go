package imap

// CopyData represents the COPYUID result of a COPY or MOVE command on a
// server with UIDPLUS (RFC 4315).
type CopyData struct {
	// UIDValidity is the UID validity of the destination mailbox.
	UIDValidity uint32
	// SourceUIDs is the set of UIDs that were copied from the source.
	SourceUIDs UIDSet
	// DestUIDs is the set of corresponding UIDs in the destination.
	DestUIDs UIDSet
}
