package imap

import (
	"fmt"
	"strconv"
	"strings"
)

// UID represents an IMAP unique identifier.
type UID uint32

// NumRange represents a range of numbers (sequence or UID). If Start ==
// Stop it is a single number; a zero Stop means "Start:*".
type NumRange struct {
	Start uint32
	Stop  uint32
}

// Contains checks whether num is within this range.
func (r NumRange) Contains(num uint32) bool {
	if r.Stop == 0 {
		return num >= r.Start
	}
	start, stop := r.Start, r.Stop
	if start > stop {
		start, stop = stop, start
	}
	return num >= start && num <= stop
}

// String returns the IMAP representation of the range.
func (r NumRange) String() string {
	if r.Start == 0 && r.Stop == 0 {
		return "*"
	}
	if r.Start == r.Stop {
		return strconv.FormatUint(uint64(r.Start), 10)
	}
	start := strconv.FormatUint(uint64(r.Start), 10)
	stop := "*"
	if r.Stop != 0 {
		stop = strconv.FormatUint(uint64(r.Stop), 10)
	}
	return start + ":" + stop
}

// NumSet is the interface implemented by SeqSet and UIDSet.
type NumSet interface {
	// String returns the IMAP representation of the number set.
	String() string
	// Ranges returns the underlying ranges.
	Ranges() []NumRange
}

// SeqSet represents a set of message sequence numbers.
type SeqSet struct {
	Set []NumRange
}

// SeqSetNum returns a set containing the given sequence numbers.
func SeqSetNum(nums ...uint32) *SeqSet {
	var ss SeqSet
	for _, n := range nums {
		ss.Set = append(ss.Set, NumRange{Start: n, Stop: n})
	}
	return &ss
}

// SeqSetRange returns a set containing the range start:stop. A zero stop
// means "*".
func SeqSetRange(start, stop uint32) *SeqSet {
	return &SeqSet{Set: []NumRange{{Start: start, Stop: stop}}}
}

// String returns the IMAP representation, e.g. "1,3:5,9:*".
func (ss *SeqSet) String() string { return formatNumSet(ss.Set) }

// Ranges returns the underlying ranges.
func (ss *SeqSet) Ranges() []NumRange { return ss.Set }

// Contains checks whether num is in the set.
func (ss *SeqSet) Contains(num uint32) bool {
	for _, r := range ss.Set {
		if r.Contains(num) {
			return true
		}
	}
	return false
}

// AddNum adds single numbers to the set.
func (ss *SeqSet) AddNum(nums ...uint32) {
	for _, n := range nums {
		ss.Set = append(ss.Set, NumRange{Start: n, Stop: n})
	}
}

// AddRange adds the range start:stop to the set.
func (ss *SeqSet) AddRange(start, stop uint32) {
	ss.Set = append(ss.Set, NumRange{Start: start, Stop: stop})
}

// IsEmpty reports whether the set contains no ranges.
func (ss *SeqSet) IsEmpty() bool { return len(ss.Set) == 0 }

// UIDSet represents a set of UIDs.
type UIDSet struct {
	Set []NumRange
}

// UIDSetNum returns a set containing the given UIDs.
func UIDSetNum(uids ...UID) *UIDSet {
	var us UIDSet
	for _, u := range uids {
		us.Set = append(us.Set, NumRange{Start: uint32(u), Stop: uint32(u)})
	}
	return &us
}

// String returns the IMAP representation.
func (us *UIDSet) String() string { return formatNumSet(us.Set) }

// Ranges returns the underlying ranges.
func (us *UIDSet) Ranges() []NumRange { return us.Set }

// Contains checks whether uid is in the set.
func (us *UIDSet) Contains(uid UID) bool {
	for _, r := range us.Set {
		if r.Contains(uint32(uid)) {
			return true
		}
	}
	return false
}

// AddNum adds single UIDs to the set.
func (us *UIDSet) AddNum(uids ...UID) {
	for _, u := range uids {
		us.Set = append(us.Set, NumRange{Start: uint32(u), Stop: uint32(u)})
	}
}

// AddRange adds the range start:stop to the set.
func (us *UIDSet) AddRange(start, stop UID) {
	us.Set = append(us.Set, NumRange{Start: uint32(start), Stop: uint32(stop)})
}

// Nums returns every UID in the set. Ranges ending in "*" contribute only
// their start.
func (us *UIDSet) Nums() []UID {
	var out []UID
	for _, r := range us.Set {
		if r.Stop == 0 || r.Stop == r.Start {
			out = append(out, UID(r.Start))
			continue
		}
		start, stop := r.Start, r.Stop
		if start > stop {
			start, stop = stop, start
		}
		for n := start; n <= stop; n++ {
			out = append(out, UID(n))
		}
	}
	return out
}

// ParseSeqSet parses a sequence set string like "1,2:5,10:*".
func ParseSeqSet(s string) (*SeqSet, error) {
	ranges, err := parseNumSet(s)
	if err != nil {
		return nil, err
	}
	return &SeqSet{Set: ranges}, nil
}

// ParseUIDSet parses a UID set string like "1,2:5,10:*".
func ParseUIDSet(s string) (*UIDSet, error) {
	ranges, err := parseNumSet(s)
	if err != nil {
		return nil, err
	}
	return &UIDSet{Set: ranges}, nil
}

func parseNumSet(s string) ([]NumRange, error) {
	if s == "" {
		return nil, fmt.Errorf("imap: empty number set")
	}
	var ranges []NumRange
	for _, part := range strings.Split(s, ",") {
		r, err := parseNumRange(part)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return ranges, nil
}

func parseNumRange(s string) (NumRange, error) {
	start, stop, ok := strings.Cut(s, ":")
	var r NumRange
	var err error
	if r.Start, err = parseSetNum(start); err != nil {
		return r, err
	}
	if !ok {
		r.Stop = r.Start
		return r, nil
	}
	if r.Stop, err = parseSetNum(stop); err != nil {
		return r, err
	}
	return r, nil
}

// parseSetNum parses one number of a set; "*" parses to 0.
func parseSetNum(s string) (uint32, error) {
	if s == "*" {
		return 0, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("imap: invalid number set element %q", s)
	}
	return uint32(n), nil
}

func formatNumSet(ranges []NumRange) string {
	var b strings.Builder
	for i, r := range ranges {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(r.String())
	}
	return b.String()
}
