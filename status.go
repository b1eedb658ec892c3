package imap

// StatusItem is a STATUS attribute name.
type StatusItem string

// Status attributes defined by RFC 3501 and CONDSTORE (RFC 7162).
const (
	StatusMessages      StatusItem = "MESSAGES"
	StatusRecent        StatusItem = "RECENT"
	StatusUIDNext       StatusItem = "UIDNEXT"
	StatusUIDValidity   StatusItem = "UIDVALIDITY"
	StatusUnseen        StatusItem = "UNSEEN"
	StatusHighestModSeq StatusItem = "HIGHESTMODSEQ"
)

// StatusData represents the data returned by a STATUS command (or a
// LIST-STATUS response line). Fields are nil when not requested or not
// reported.
type StatusData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// NumMessages is the number of messages.
	NumMessages *uint32
	// NumRecent is the number of recent messages.
	NumRecent *uint32
	// UIDNext is the predicted next UID.
	UIDNext *uint32
	// UIDValidity is the UID validity.
	UIDValidity *uint32
	// NumUnseen is the number of unseen messages.
	NumUnseen *uint32
	// HighestModSeq is the highest modification sequence (RFC 7162).
	HighestModSeq *uint64
}

func (*StatusData) respUnit()    {}
func (*StatusData) unsolicited() {}
