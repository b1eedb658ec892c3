// Package wire implements the IMAP response grammar and command encoding
// for the client in this module.
//
// The package is split along the protocol's framing: ReadResponseUnit
// assembles one logical response line (including byte-counted literals)
// from a stream, and ParseResponse decodes an assembled unit into a typed
// response. Parsing is pure and performs no I/O.
package wire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	imap "github.com/halcyonmail/go-imap"
)

// ReadResponseUnit reads exactly one logical response line from r,
// including any inline {n} literal payloads, and returns an owned buffer
// ending with the line's final CRLF.
//
// Literal payloads are consumed as raw bytes: CR and LF inside a literal
// are data, not terminators. After a literal, line scanning resumes on
// the same logical line, so a line may carry several literals.
//
// An EOF in the middle of a unit (including a truncated literal) returns
// imap.ErrConnectionLost. An EOF on a unit boundary returns io.EOF.
// Deadline expiries are passed through unchanged so the caller can
// distinguish them with imap.IsTimeout.
func ReadResponseUnit(r *bufio.Reader) ([]byte, error) {
	var unit []byte
	for {
		line, err := r.ReadBytes('\n')
		unit = append(unit, line...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				if len(unit) == 0 {
					return nil, io.EOF
				}
				return nil, fmt.Errorf("%w: stream ended mid-line", imap.ErrConnectionLost)
			}
			if errors.Is(err, os.ErrDeadlineExceeded) && len(unit) > 0 {
				// A deadline hit mid-unit cannot be resumed; the buffered
				// prefix is gone and the stream is no longer framed.
				return nil, fmt.Errorf("%w: read deadline expired mid-line", imap.ErrConnectionLost)
			}
			return nil, err
		}

		n, ok := literalTail(line)
		if !ok {
			return unit, nil
		}

		payload := make([]byte, n)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: truncated literal of %d bytes", imap.ErrConnectionLost, n)
		}
		unit = append(unit, payload...)
		// The logical line continues after the literal.
	}
}

// literalTail reports whether line ends with a literal opener "{n}" (or
// the non-synchronizing "{n+}") immediately before its CRLF, returning
// the declared length.
func literalTail(line []byte) (int64, bool) {
	i := len(line)
	if i >= 1 && line[i-1] == '\n' {
		i--
	}
	if i >= 1 && line[i-1] == '\r' {
		i--
	}
	if i < 3 || line[i-1] != '}' {
		return 0, false
	}
	j := i - 2
	if line[j] == '+' {
		j--
	}
	end := j
	for j >= 0 && line[j] >= '0' && line[j] <= '9' {
		j--
	}
	if j < 0 || j == end || line[j] != '{' {
		return 0, false
	}
	var n int64
	for _, c := range line[j+1 : end+1] {
		n = n*10 + int64(c-'0')
		if n > 1<<40 {
			return 0, false
		}
	}
	return n, true
}
