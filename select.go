package imap

// Mailbox is the snapshot of mailbox metadata produced by SELECT or
// EXAMINE. It is rebuilt wholesale on every such command, never merged
// with a previous snapshot. Optional fields are nil when the server did
// not report them.
type Mailbox struct {
	// Name is the mailbox name as given to SELECT/EXAMINE.
	Name string
	// Flags is the list of flags defined in the mailbox.
	Flags []Flag
	// PermanentFlags is the list of flags that can be changed permanently.
	PermanentFlags []Flag
	// Exists is the number of messages in the mailbox.
	Exists uint32
	// Recent is the number of messages with the \Recent flag.
	Recent uint32
	// Unseen is the sequence number of the first unseen message.
	Unseen *uint32
	// UIDNext is the predicted next UID.
	UIDNext *uint32
	// UIDValidity is the UID validity value.
	UIDValidity *uint32
	// HighestModSeq is the highest modification sequence (RFC 7162). Nil
	// when the server did not report one or sent NOMODSEQ.
	HighestModSeq *uint64
	// ReadOnly reports whether the mailbox was opened read-only.
	ReadOnly bool
}
