package imap

// SearchData represents the result of a SEARCH or UID SEARCH command.
type SearchData struct {
	// AllNums contains the matching sequence numbers, or UIDs for a
	// UID SEARCH, in server order.
	AllNums []uint32
}

func (*SearchData) respUnit() {}
