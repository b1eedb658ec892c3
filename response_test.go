package imap

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
)

func TestStatusResponseString(t *testing.T) {
	tests := []struct {
		name string
		resp *StatusResponse
		want string
	}{
		{
			name: "plain",
			resp: &StatusResponse{Type: StatusResponseTypeOK, Text: "LOGIN completed"},
			want: "OK LOGIN completed",
		},
		{
			name: "code without arg",
			resp: &StatusResponse{Type: StatusResponseTypeNO, Code: "TRYCREATE", Text: "no such mailbox"},
			want: "NO [TRYCREATE] no such mailbox",
		},
		{
			name: "code with arg",
			resp: &StatusResponse{
				Type: StatusResponseTypeOK,
				Code: ResponseCodeUIDNext,
				Arg:  &CodeArg{Raw: "4392"},
				Text: "predicted next UID",
			},
			want: "OK [UIDNEXT 4392] predicted next UID",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsNoIsBad(t *testing.T) {
	no := fmt.Errorf("wrapped: %w", &IMAPError{&StatusResponse{Type: StatusResponseTypeNO}})
	bad := &IMAPError{&StatusResponse{Type: StatusResponseTypeBAD}}

	if !IsNo(no) || IsBad(no) {
		t.Error("NO misclassified")
	}
	if !IsBad(bad) || IsNo(bad) {
		t.Error("BAD misclassified")
	}
	if IsNo(errors.New("other")) || IsBad(nil) {
		t.Error("non-IMAP error classified")
	}
}

func TestParseErrorTruncatesData(t *testing.T) {
	e := &ParseError{
		Data: []byte(strings.Repeat("x", 1000)),
		Msg:  "expected number",
	}
	msg := e.Error()
	if len(msg) > 400 {
		t.Errorf("message length %d, want offending bytes truncated", len(msg))
	}
	if !strings.Contains(msg, "expected number") {
		t.Errorf("message %q lacks description", msg)
	}
}

func TestParseErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	e := &ParseError{Msg: "bad quota", Err: inner}
	if !errors.Is(e, inner) {
		t.Error("Unwrap does not reach inner error")
	}
}

type fakeTimeout struct{ timeout bool }

func (e *fakeTimeout) Error() string   { return "fake" }
func (e *fakeTimeout) Timeout() bool   { return e.timeout }
func (e *fakeTimeout) Temporary() bool { return false }

func TestIsTimeout(t *testing.T) {
	if !IsTimeout(os.ErrDeadlineExceeded) {
		t.Error("os.ErrDeadlineExceeded not a timeout")
	}
	if !IsTimeout(fmt.Errorf("read: %w", os.ErrDeadlineExceeded)) {
		t.Error("wrapped deadline not a timeout")
	}
	if !IsTimeout(&fakeTimeout{timeout: true}) {
		t.Error("net.Error timeout not detected")
	}
	if IsTimeout(&fakeTimeout{}) {
		t.Error("non-timeout net.Error detected as timeout")
	}
	if IsTimeout(ErrConnectionLost) {
		t.Error("connection loss is not a timeout")
	}
}
