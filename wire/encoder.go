package wire

import (
	"strconv"
	"strings"
	"time"

	imap "github.com/halcyonmail/go-imap"
)

// Encoder builds the text of one IMAP command. It provides a fluent API;
// the assembled text excludes the tag and the trailing CRLF, which the
// connection adds when the command is sent.
type Encoder struct {
	sb strings.Builder
}

// NewEncoder creates an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// CommandText returns the assembled command text.
func (e *Encoder) CommandText() string {
	return e.sb.String()
}

// Raw appends raw text.
func (e *Encoder) Raw(s string) *Encoder {
	e.sb.WriteString(s)
	return e
}

// Atom appends an atom.
func (e *Encoder) Atom(s string) *Encoder {
	e.sb.WriteString(s)
	return e
}

// SP appends a space.
func (e *Encoder) SP() *Encoder {
	e.sb.WriteByte(' ')
	return e
}

// Number appends an unsigned 32-bit number.
func (e *Encoder) Number(n uint32) *Encoder {
	e.sb.WriteString(strconv.FormatUint(uint64(n), 10))
	return e
}

// Number64 appends an unsigned 64-bit number.
func (e *Encoder) Number64(n uint64) *Encoder {
	e.sb.WriteString(strconv.FormatUint(n, 10))
	return e
}

// QuotedString appends a quoted string, escaping quote and backslash.
func (e *Encoder) QuotedString(s string) *Encoder {
	e.sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if isQuotedSpecial(s[i]) {
			e.sb.WriteByte('\\')
		}
		e.sb.WriteByte(s[i])
	}
	e.sb.WriteByte('"')
	return e
}

// String appends a string as an atom when possible, quoted otherwise.
// Arguments are validated against CR, LF and NUL before encoding, so a
// quoted string can always represent the value.
func (e *Encoder) String(s string) *Encoder {
	if needsQuoting(s) {
		return e.QuotedString(s)
	}
	return e.Atom(s)
}

// Mailbox appends a mailbox name, with INBOX normalized to its canonical
// spelling.
func (e *Encoder) Mailbox(name string) *Encoder {
	if strings.EqualFold(name, "INBOX") {
		return e.Atom("INBOX")
	}
	return e.String(name)
}

// BeginList appends an opening parenthesis.
func (e *Encoder) BeginList() *Encoder {
	e.sb.WriteByte('(')
	return e
}

// EndList appends a closing parenthesis.
func (e *Encoder) EndList() *Encoder {
	e.sb.WriteByte(')')
	return e
}

// List appends a parenthesized list of strings.
func (e *Encoder) List(items []string) *Encoder {
	e.sb.WriteByte('(')
	for i, item := range items {
		if i > 0 {
			e.sb.WriteByte(' ')
		}
		e.String(item)
	}
	e.sb.WriteByte(')')
	return e
}

// Flags appends a parenthesized flag list.
func (e *Encoder) Flags(flags []imap.Flag) *Encoder {
	e.sb.WriteByte('(')
	for i, f := range flags {
		if i > 0 {
			e.sb.WriteByte(' ')
		}
		e.sb.WriteString(string(f))
	}
	e.sb.WriteByte(')')
	return e
}

// NumSet appends a sequence or UID set.
func (e *Encoder) NumSet(set imap.NumSet) *Encoder {
	e.sb.WriteString(set.String())
	return e
}

// Date appends a quoted date in DD-Mon-YYYY format.
func (e *Encoder) Date(t time.Time) *Encoder {
	return e.QuotedString(t.Format("2-Jan-2006"))
}

// DateTime appends a quoted date-time in internal date format.
func (e *Encoder) DateTime(t time.Time) *Encoder {
	return e.QuotedString(t.Format(imap.InternalDateLayout))
}

// LiteralHeader appends a literal size header {n}. The payload follows in
// a separate write, after the server's continuation request.
func (e *Encoder) LiteralHeader(size int64) *Encoder {
	e.sb.WriteByte('{')
	e.sb.WriteString(strconv.FormatInt(size, 10))
	e.sb.WriteByte('}')
	return e
}

func isQuotedSpecial(b byte) bool {
	return b == '"' || b == '\\'
}

// needsQuoting reports whether s cannot be sent as a bare atom.
func needsQuoting(s string) bool {
	if s == "" {
		return true
	}
	for i := 0; i < len(s); i++ {
		if !isAtomChar(s[i]) {
			return true
		}
	}
	return false
}
