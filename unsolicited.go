package imap

// ExistsData is an untagged "* n EXISTS" response: the mailbox now holds
// n messages.
type ExistsData uint32

func (ExistsData) respUnit()    {}
func (ExistsData) unsolicited() {}

// RecentData is an untagged "* n RECENT" response.
type RecentData uint32

func (RecentData) respUnit()    {}
func (RecentData) unsolicited() {}

// ExpungeData is an untagged "* n EXPUNGE" response: the message with
// sequence number n has been removed.
type ExpungeData uint32

func (ExpungeData) respUnit()    {}
func (ExpungeData) unsolicited() {}

// FlagsData is an untagged "* FLAGS (...)" response.
type FlagsData []Flag

func (FlagsData) respUnit()    {}
func (FlagsData) unsolicited() {}

// VanishedData is an untagged "* VANISHED [(EARLIER)] uid-set" response
// (RFC 7162). It reports UIDs removed from the mailbox.
type VanishedData struct {
	// Earlier is true for VANISHED (EARLIER), reporting historic removals
	// during a QRESYNC resynchronization.
	Earlier bool
	// UIDs is the set of vanished UIDs.
	UIDs UIDSet
}

func (VanishedData) respUnit()    {}
func (VanishedData) unsolicited() {}

// UnknownData is an untagged response this client does not recognize. It
// carries the raw unit so callers can inspect extension data without the
// engine treating it as a protocol error.
type UnknownData struct {
	// Name is the first atom after "* " (or the second, for numeric
	// responses like "* 5 FOO").
	Name string
	// Raw is the complete response unit including CRLF.
	Raw []byte
}

func (*UnknownData) respUnit()    {}
func (*UnknownData) unsolicited() {}
