package imap

// StoreAction specifies how a STORE command modifies flags.
type StoreAction int

const (
	// StoreFlagsSet replaces existing flags.
	StoreFlagsSet StoreAction = iota
	// StoreFlagsAdd adds to existing flags.
	StoreFlagsAdd
	// StoreFlagsDel removes from existing flags.
	StoreFlagsDel
)

// String returns the IMAP item name of the store action.
func (a StoreAction) String() string {
	switch a {
	case StoreFlagsAdd:
		return "+FLAGS"
	case StoreFlagsDel:
		return "-FLAGS"
	default:
		return "FLAGS"
	}
}

// StoreFlags specifies the flag changes for a STORE command. Only the
// command text changes with Action and Silent; the response path is the
// same for all modes.
type StoreFlags struct {
	// Action specifies how to modify flags.
	Action StoreAction
	// Silent suppresses the server's untagged FETCH replies.
	Silent bool
	// Flags is the list of flags to set, add or remove.
	Flags []Flag
}

// StoreOptions contains additional STORE modifiers.
type StoreOptions struct {
	// UnchangedSince only stores if the message's mod-sequence is at most
	// this value (CONDSTORE, RFC 7162). Zero disables the modifier.
	UnchangedSince uint64
}
