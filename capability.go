package imap

import "strings"

// Common capability names.
const (
	CapIMAP4rev1     = "IMAP4REV1"
	CapIdle          = "IDLE"
	CapMetadata      = "METADATA"
	CapSort          = "SORT"
	CapACL           = "ACL"
	CapQuota         = "QUOTA"
	CapListStatus    = "LIST-STATUS"
	CapUIDPlus       = "UIDPLUS"
	CapCondStore     = "CONDSTORE"
	CapQResync       = "QRESYNC"
	CapMove          = "MOVE"
	CapStartTLS      = "STARTTLS"
	CapLoginDisabled = "LOGINDISABLED"
)

// CapabilityData is the set of capabilities reported by one CAPABILITY
// command or response code. It is request-scoped: issue CAPABILITY again
// after any command that may change it (STARTTLS, LOGIN, AUTHENTICATE).
type CapabilityData []string

func (CapabilityData) respUnit() {}

// Has reports whether the capability name is advertised. The comparison
// is case-insensitive.
func (c CapabilityData) Has(name string) bool {
	for _, s := range c {
		if strings.EqualFold(s, name) {
			return true
		}
	}
	return false
}

// AuthMechanisms returns the advertised AUTH= mechanisms.
func (c CapabilityData) AuthMechanisms() []string {
	var mechs []string
	for _, s := range c {
		if rest, ok := strings.CutPrefix(strings.ToUpper(s), "AUTH="); ok {
			mechs = append(mechs, rest)
		}
	}
	return mechs
}
