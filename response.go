package imap

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
)

// Response is one decoded server response unit: a status line (tagged or
// untagged), an untagged data line, or a continuation request. Values are
// produced by wire.ParseResponse and are immutable once decoded.
type Response interface {
	respUnit()
}

// UnsolicitedResponse is an untagged server response that was not consumed
// as part of the in-flight command's own result. The engine forwards these
// to the session's side channel.
type UnsolicitedResponse interface {
	unsolicited()
}

// ContinuationRequest is a "+" command continuation request, used during
// AUTHENTICATE, APPEND and IDLE.
type ContinuationRequest struct {
	// Text is the server text after "+", base64 during AUTHENTICATE.
	Text string
}

func (ContinuationRequest) respUnit() {}

// StatusResponseType represents the type of a status response.
type StatusResponseType string

const (
	StatusResponseTypeOK      StatusResponseType = "OK"
	StatusResponseTypeNO      StatusResponseType = "NO"
	StatusResponseTypeBAD     StatusResponseType = "BAD"
	StatusResponseTypeBYE     StatusResponseType = "BYE"
	StatusResponseTypePREAUTH StatusResponseType = "PREAUTH"
)

// ResponseCode represents a bracketed response code.
type ResponseCode string

// Standard response codes.
const (
	ResponseCodeAlert          ResponseCode = "ALERT"
	ResponseCodeBadCharset     ResponseCode = "BADCHARSET"
	ResponseCodeCapability     ResponseCode = "CAPABILITY"
	ResponseCodeParse          ResponseCode = "PARSE"
	ResponseCodePermanentFlags ResponseCode = "PERMANENTFLAGS"
	ResponseCodeReadOnly       ResponseCode = "READ-ONLY"
	ResponseCodeReadWrite      ResponseCode = "READ-WRITE"
	ResponseCodeTryCreate      ResponseCode = "TRYCREATE"
	ResponseCodeUIDNext        ResponseCode = "UIDNEXT"
	ResponseCodeUIDValidity    ResponseCode = "UIDVALIDITY"
	ResponseCodeUnseen         ResponseCode = "UNSEEN"
	ResponseCodeAppendUID      ResponseCode = "APPENDUID"
	ResponseCodeCopyUID        ResponseCode = "COPYUID"
	ResponseCodeUIDNotSticky   ResponseCode = "UIDNOTSTICKY"
	ResponseCodeHighestModSeq  ResponseCode = "HIGHESTMODSEQ"
	ResponseCodeNoModSeq       ResponseCode = "NOMODSEQ"
	ResponseCodeClosed         ResponseCode = "CLOSED"
	ResponseCodeOverQuota      ResponseCode = "OVERQUOTA"
	ResponseCodeMetadata       ResponseCode = "METADATA"
	ResponseCodeCannot         ResponseCode = "CANNOT"
	ResponseCodeLimit          ResponseCode = "LIMIT"
)

// CodeArg holds the decoded argument of a response code. Only the field
// matching the code is set; Raw always carries the verbatim argument text.
type CodeArg struct {
	// Num is set for UIDNEXT, UIDVALIDITY, UNSEEN and METADATA MAXSIZE.
	Num *uint32
	// ModSeq is set for HIGHESTMODSEQ.
	ModSeq *uint64
	// Flags is set for PERMANENTFLAGS.
	Flags []Flag
	// Caps is set for CAPABILITY.
	Caps []string
	// AppendUID is set for APPENDUID (RFC 4315).
	AppendUID *AppendData
	// CopyUID is set for COPYUID (RFC 4315).
	CopyUID *CopyData
	// Raw is the verbatim argument text.
	Raw string
}

// StatusResponse represents an IMAP status response line. An empty Tag
// means the response was untagged.
type StatusResponse struct {
	Tag  string
	Type StatusResponseType
	Code ResponseCode
	Arg  *CodeArg
	Text string
}

func (*StatusResponse) respUnit()    {}
func (*StatusResponse) unsolicited() {}

// String renders the status response without its tag.
func (r *StatusResponse) String() string {
	var b strings.Builder
	b.WriteString(string(r.Type))
	if r.Code != "" {
		b.WriteString(" [")
		b.WriteString(string(r.Code))
		if r.Arg != nil && r.Arg.Raw != "" {
			b.WriteByte(' ')
			b.WriteString(r.Arg.Raw)
		}
		b.WriteByte(']')
	}
	if r.Text != "" {
		b.WriteByte(' ')
		b.WriteString(r.Text)
	}
	return b.String()
}

// IMAPError is the error returned when the server completes a command with
// NO or BAD. The connection remains usable after an IMAPError.
type IMAPError struct {
	*StatusResponse
}

// Error implements the error interface.
func (e *IMAPError) Error() string {
	return "imap: server responded " + e.StatusResponse.String()
}

// IsNo reports whether err is a NO completion from the server.
func IsNo(err error) bool {
	var ie *IMAPError
	return errors.As(err, &ie) && ie.Type == StatusResponseTypeNO
}

// IsBad reports whether err is a BAD completion from the server.
func IsBad(err error) bool {
	var ie *IMAPError
	return errors.As(err, &ie) && ie.Type == StatusResponseTypeBAD
}

// ParseError is returned when a server response does not match the IMAP
// grammar. It carries the offending bytes. A parse failure is fatal for
// the command; the connection may not be salvageable.
type ParseError struct {
	// Data is the response unit that failed to decode.
	Data []byte
	// Msg describes what was expected.
	Msg string
	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	s := "imap: cannot parse response"
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	if len(e.Data) > 0 {
		data := e.Data
		if len(data) > 256 {
			data = data[:256]
		}
		s += fmt.Sprintf(" in %q", data)
	}
	return s
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// ValidateError is returned when a caller-supplied argument contains a
// character that would break command framing. It is raised before any
// bytes are written, so the connection is untouched.
type ValidateError struct {
	// Arg names the offending argument.
	Arg string
	// Char is the forbidden character.
	Char rune
}

// Error implements the error interface.
func (e *ValidateError) Error() string {
	return fmt.Sprintf("imap: %s contains forbidden character %q", e.Arg, e.Char)
}

// ErrConnectionLost is returned when the stream ends in the middle of a
// response, for example inside a declared literal.
var ErrConnectionLost = errors.New("imap: connection lost")

// IsTimeout reports whether err is a read-deadline expiry rather than a
// hard transport failure. Timeouts are surfaced only where a deadline was
// configured, notably during IDLE.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
