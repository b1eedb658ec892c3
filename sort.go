package imap

// SortKey represents a sort criterion key (RFC 5256).
type SortKey string

const (
	SortKeyArrival SortKey = "ARRIVAL"
	SortKeyCc      SortKey = "CC"
	SortKeyDate    SortKey = "DATE"
	SortKeyFrom    SortKey = "FROM"
	SortKeySize    SortKey = "SIZE"
	SortKeySubject SortKey = "SUBJECT"
	SortKeyTo      SortKey = "TO"
)

// SortCriterion represents a single sort criterion.
type SortCriterion struct {
	Key     SortKey
	Reverse bool
}

// SortData represents the result of a SORT or UID SORT command.
type SortData struct {
	// AllNums contains the sorted sequence numbers or UIDs.
	AllNums []uint32
}

func (*SortData) respUnit() {}
