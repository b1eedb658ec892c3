package imap

// QuotaResource represents a quota resource type (RFC 2087).
type QuotaResource string

const (
	QuotaResourceStorage QuotaResource = "STORAGE"
	QuotaResourceMessage QuotaResource = "MESSAGE"
)

// QuotaResourceData contains usage and limit for a single resource.
type QuotaResourceData struct {
	Name  QuotaResource
	Usage uint32
	Limit uint32
}

// QuotaResourceLimit is one resource limit for SETQUOTA.
type QuotaResourceLimit struct {
	Name  QuotaResource
	Limit uint32
}

// QuotaData represents one QUOTA response.
type QuotaData struct {
	// Root is the quota root name.
	Root string
	// Resources lists the resource limits and usage.
	Resources []QuotaResourceData
}

func (*QuotaData) respUnit() {}

// QuotaRootData represents one QUOTAROOT response.
type QuotaRootData struct {
	// Mailbox is the mailbox name.
	Mailbox string
	// Roots is the list of quota root names.
	Roots []string
}

func (*QuotaRootData) respUnit() {}
