package wire

import (
	"fmt"
	"strconv"

	imap "github.com/halcyonmail/go-imap"
)

// Decoder is a cursor over the bytes of one (or several concatenated)
// response units. All methods are deterministic and never block; grammar
// violations come back as plain errors which ParseResponse wraps into an
// *imap.ParseError.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder creates a Decoder over data.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// EOF reports whether the cursor is at the end of the input.
func (d *Decoder) EOF() bool {
	return d.pos >= len(d.data)
}

// Rest returns the unconsumed remainder of the input.
func (d *Decoder) Rest() []byte {
	return d.data[d.pos:]
}

// Peek returns the next byte without consuming it.
func (d *Decoder) Peek() (byte, bool) {
	if d.EOF() {
		return 0, false
	}
	return d.data[d.pos], true
}

// ReadByte consumes and returns the next byte.
func (d *Decoder) ReadByte() (byte, error) {
	if d.EOF() {
		return 0, fmt.Errorf("unexpected end of response")
	}
	b := d.data[d.pos]
	d.pos++
	return b, nil
}

// Expect consumes the next byte and fails unless it equals want.
func (d *Decoder) Expect(want byte) error {
	b, err := d.ReadByte()
	if err != nil {
		return err
	}
	if b != want {
		return fmt.Errorf("expected %q, got %q", want, b)
	}
	return nil
}

// ReadSP consumes a single space.
func (d *Decoder) ReadSP() error {
	return d.Expect(' ')
}

// ReadCRLF consumes a CRLF. A bare LF is accepted for robustness.
func (d *Decoder) ReadCRLF() error {
	b, err := d.ReadByte()
	if err != nil {
		return err
	}
	if b == '\n' {
		return nil
	}
	if b != '\r' {
		return fmt.Errorf("expected CRLF, got %q", b)
	}
	return d.Expect('\n')
}

// isAtomChar returns true if b may appear in an atom. Atom characters are
// any CHAR except atom-specials (RFC 3501 §9).
func isAtomChar(b byte) bool {
	if b < 0x20 || b > 0x7e {
		return false
	}
	switch b {
	case '(', ')', '{', ' ', '%', '*', '"', '\\', ']':
		return false
	}
	return true
}

// ReadAtom reads an atom.
func (d *Decoder) ReadAtom() (string, error) {
	start := d.pos
	for !d.EOF() && isAtomChar(d.data[d.pos]) {
		d.pos++
	}
	if d.pos == start {
		return "", fmt.Errorf("expected atom")
	}
	return string(d.data[start:d.pos]), nil
}

// ReadQuotedString reads a quoted string, unescaping \" and \\.
func (d *Decoder) ReadQuotedString() (string, error) {
	if err := d.Expect('"'); err != nil {
		return "", err
	}
	var buf []byte
	for {
		b, err := d.ReadByte()
		if err != nil {
			return "", fmt.Errorf("unterminated quoted string")
		}
		switch b {
		case '"':
			return string(buf), nil
		case '\\':
			esc, err := d.ReadByte()
			if err != nil {
				return "", fmt.Errorf("unterminated quoted string")
			}
			buf = append(buf, esc)
		default:
			buf = append(buf, b)
		}
	}
}

// ReadLiteral reads a literal: the {n} header, its CRLF, and exactly n
// payload bytes, which are present inline because ReadResponseUnit has
// already assembled the unit.
func (d *Decoder) ReadLiteral() ([]byte, error) {
	if err := d.Expect('{'); err != nil {
		return nil, err
	}
	var digits []byte
	for {
		b, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		if b == '}' {
			break
		}
		if b == '+' {
			continue
		}
		if b < '0' || b > '9' {
			return nil, fmt.Errorf("unexpected %q in literal header", b)
		}
		digits = append(digits, b)
	}
	size, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid literal size: %v", err)
	}
	if err := d.ReadCRLF(); err != nil {
		return nil, fmt.Errorf("expected CRLF after literal header: %v", err)
	}
	if int64(len(d.data)-d.pos) < size {
		return nil, fmt.Errorf("literal of %d bytes exceeds remaining input", size)
	}
	payload := d.data[d.pos : d.pos+int(size)]
	d.pos += int(size)
	return payload, nil
}

// ReadString reads an atom, quoted string or literal.
func (d *Decoder) ReadString() (string, error) {
	b, ok := d.Peek()
	if !ok {
		return "", fmt.Errorf("expected string")
	}
	switch b {
	case '"':
		return d.ReadQuotedString()
	case '{':
		payload, err := d.ReadLiteral()
		if err != nil {
			return "", err
		}
		return string(payload), nil
	default:
		return d.ReadAtom()
	}
}

// ReadNString reads a string or NIL. The second return is false for NIL.
func (d *Decoder) ReadNString() (string, bool, error) {
	if d.hasNIL() {
		return "", false, nil
	}
	s, err := d.ReadString()
	return s, true, err
}

// ReadNStringBytes is ReadNString returning an owned byte copy, for
// binary-safe payloads such as body sections.
func (d *Decoder) ReadNStringBytes() ([]byte, bool, error) {
	if d.hasNIL() {
		return nil, false, nil
	}
	b, ok := d.Peek()
	if !ok {
		return nil, false, fmt.Errorf("expected string")
	}
	if b == '{' {
		payload, err := d.ReadLiteral()
		if err != nil {
			return nil, false, err
		}
		out := make([]byte, len(payload))
		copy(out, payload)
		return out, true, nil
	}
	s, err := d.ReadString()
	if err != nil {
		return nil, false, err
	}
	return []byte(s), true, nil
}

// hasNIL consumes a NIL token if one is next.
func (d *Decoder) hasNIL() bool {
	if len(d.data)-d.pos < 3 {
		return false
	}
	if !asciiEqualFold(d.data[d.pos:d.pos+3], "NIL") {
		return false
	}
	if len(d.data)-d.pos > 3 && isAtomChar(d.data[d.pos+3]) {
		return false
	}
	d.pos += 3
	return true
}

// ReadNumber reads an unsigned 32-bit number. Out-of-range values are
// errors, not wrapped.
func (d *Decoder) ReadNumber() (uint32, error) {
	atom, err := d.readDigits()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(atom, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %v", atom, err)
	}
	return uint32(n), nil
}

// ReadNumber64 reads an unsigned 64-bit number (mod-sequence values).
func (d *Decoder) ReadNumber64() (uint64, error) {
	atom, err := d.readDigits()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(atom, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %v", atom, err)
	}
	return n, nil
}

func (d *Decoder) readDigits() (string, error) {
	start := d.pos
	for !d.EOF() && d.data[d.pos] >= '0' && d.data[d.pos] <= '9' {
		d.pos++
	}
	if d.pos == start {
		return "", fmt.Errorf("expected number")
	}
	return string(d.data[start:d.pos]), nil
}

// ReadList reads a parenthesized list, calling fn once per element.
func (d *Decoder) ReadList(fn func() error) error {
	if err := d.Expect('('); err != nil {
		return err
	}
	first := true
	for {
		b, ok := d.Peek()
		if !ok {
			return fmt.Errorf("unterminated list")
		}
		if b == ')' {
			d.pos++
			return nil
		}
		if !first {
			if err := d.ReadSP(); err != nil {
				return err
			}
		}
		if err := fn(); err != nil {
			return err
		}
		first = false
	}
}

// ReadFlag reads a single flag or mailbox attribute: an atom with an
// optional leading backslash.
func (d *Decoder) ReadFlag() (string, error) {
	prefix := ""
	if b, ok := d.Peek(); ok && b == '\\' {
		d.pos++
		prefix = "\\"
		// "\*" is the permanent-flags wildcard.
		if b, ok := d.Peek(); ok && b == '*' {
			d.pos++
			return "\\*", nil
		}
	}
	atom, err := d.ReadAtom()
	if err != nil {
		return "", err
	}
	return prefix + atom, nil
}

// ReadFlags reads a parenthesized flag list.
func (d *Decoder) ReadFlags() ([]imap.Flag, error) {
	var flags []imap.Flag
	err := d.ReadList(func() error {
		f, err := d.ReadFlag()
		if err != nil {
			return err
		}
		flags = append(flags, imap.Flag(f))
		return nil
	})
	return flags, err
}

// ReadLine consumes and returns the rest of the current line, without its
// CRLF terminator.
func (d *Decoder) ReadLine() string {
	start := d.pos
	for !d.EOF() && d.data[d.pos] != '\r' && d.data[d.pos] != '\n' {
		d.pos++
	}
	line := string(d.data[start:d.pos])
	_ = d.discardCRLF()
	return line
}

func (d *Decoder) discardCRLF() error {
	if d.EOF() {
		return nil
	}
	return d.ReadCRLF()
}

// ReadRawList consumes a balanced parenthesized list and returns its
// verbatim text, quoted strings and literals included. Used for
// BODYSTRUCTURE, which this client exposes as raw octets.
func (d *Decoder) ReadRawList() (string, error) {
	start := d.pos
	if err := d.Expect('('); err != nil {
		return "", err
	}
	depth := 1
	for depth > 0 {
		b, ok := d.Peek()
		if !ok {
			return "", fmt.Errorf("unterminated list")
		}
		switch b {
		case '(':
			depth++
			d.pos++
		case ')':
			depth--
			d.pos++
		case '"':
			if _, err := d.ReadQuotedString(); err != nil {
				return "", err
			}
		case '{':
			if _, err := d.ReadLiteral(); err != nil {
				return "", err
			}
		default:
			d.pos++
		}
	}
	return string(d.data[start:d.pos]), nil
}

func asciiEqualFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		cb, cs := b[i], s[i]
		if 'a' <= cb && cb <= 'z' {
			cb -= 'a' - 'A'
		}
		if 'a' <= cs && cs <= 'z' {
			cs -= 'a' - 'A'
		}
		if cb != cs {
			return false
		}
	}
	return true
}
