package imap

// ACLRight represents a single ACL right character (RFC 4314).
type ACLRight rune

// Standard ACL rights.
const (
	ACLRightLookup  ACLRight = 'l'
	ACLRightRead    ACLRight = 'r'
	ACLRightSeen    ACLRight = 's'
	ACLRightWrite   ACLRight = 'w'
	ACLRightInsert  ACLRight = 'i'
	ACLRightPost    ACLRight = 'p'
	ACLRightCreate  ACLRight = 'k'
	ACLRightDelete  ACLRight = 'x'
	ACLRightExpunge ACLRight = 't'
	ACLRightAdmin   ACLRight = 'a'
)

// ACLRights is a string of ACL right characters.
type ACLRights string

// Contains checks whether the rights string contains right.
func (r ACLRights) Contains(right ACLRight) bool {
	for _, c := range string(r) {
		if ACLRight(c) == right {
			return true
		}
	}
	return false
}

// ACLData represents a GETACL response.
type ACLData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// Rights maps identifiers to their rights.
	Rights map[string]ACLRights
}

func (*ACLData) respUnit() {}

// ACLListRightsData represents a LISTRIGHTS response.
type ACLListRightsData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// Identifier is the identifier the rights apply to.
	Identifier string
	// Required are the rights always granted to the identifier.
	Required ACLRights
	// Optional are groups of rights that may be granted together.
	Optional []ACLRights
}

func (*ACLListRightsData) respUnit() {}

// ACLMyRightsData represents a MYRIGHTS response.
type ACLMyRightsData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// Rights are the rights of the logged-in user.
	Rights ACLRights
}

func (*ACLMyRightsData) respUnit() {}
