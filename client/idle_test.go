package client

import (
	"testing"
	"time"

	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/imaptest"
)

// notExists keeps an IDLE wait running until the server reports EXISTS.
func notExists(u imap.UnsolicitedResponse) bool {
	_, ok := u.(imap.ExistsData)
	return !ok
}

func TestIdle(t *testing.T) {
	sess := session(t, []imaptest.Step{
		{Expect: "a1 IDLE", Send: []string{"+ idling"}},
		{Send: []string{"* 4 EXISTS"}, Delay: 20 * time.Millisecond},
		{Expect: "DONE", Send: []string{"a1 OK IDLE terminated"}},
		{Expect: "a2 NOOP", Send: []string{"a2 OK done"}},
	})
	h, err := sess.Idle()
	if err != nil {
		t.Fatalf("Idle: %v", err)
	}

	// The session is borrowed while idling.
	if err := sess.Noop(); err == nil {
		t.Error("Noop succeeded during IDLE")
	}

	res, err := h.WaitWhile(notExists)
	if err != nil {
		t.Fatalf("WaitWhile: %v", err)
	}
	if res != IdleMailboxChanged {
		t.Fatalf("result = %v, want IdleMailboxChanged", res)
	}
	select {
	case u := <-sess.Unsolicited():
		if u != imap.ExistsData(4) {
			t.Errorf("unsolicited = %#v, want ExistsData(4)", u)
		}
	default:
		t.Error("EXISTS was not forwarded to the channel")
	}

	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := sess.Noop(); err != nil {
		t.Fatalf("Noop after IDLE: %v", err)
	}
}

func TestIdleTimeout(t *testing.T) {
	sess := session(t, []imaptest.Step{
		{Expect: "a1 IDLE", Send: []string{"+ idling"}},
		{Expect: "DONE", Send: []string{"a1 OK IDLE terminated"}},
	}, WithIdleTimeout(30*time.Millisecond), WithIdleKeepalive(false))

	h, err := sess.Idle()
	if err != nil {
		t.Fatalf("Idle: %v", err)
	}
	res, err := h.WaitWhile(nil)
	if err != nil {
		t.Fatalf("WaitWhile: %v", err)
	}
	if res != IdleTimedOut {
		t.Fatalf("result = %v, want IdleTimedOut", res)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestIdleKeepalive(t *testing.T) {
	sess := session(t, []imaptest.Step{
		{Expect: "a1 IDLE", Send: []string{"+ idling"}},
		{Expect: "DONE", Send: []string{"a1 OK IDLE terminated"}},
		{Expect: "a2 IDLE", Send: []string{"+ idling", "* 7 EXISTS"}},
		{Expect: "DONE", Send: []string{"a2 OK IDLE terminated"}},
	}, WithIdleTimeout(30*time.Millisecond))

	h, err := sess.Idle()
	if err != nil {
		t.Fatalf("Idle: %v", err)
	}
	res, err := h.WaitWhile(notExists)
	if err != nil {
		t.Fatalf("WaitWhile: %v", err)
	}
	if res != IdleMailboxChanged {
		t.Fatalf("result = %v, want IdleMailboxChanged", res)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestIdleRefused(t *testing.T) {
	sess := session(t, []imaptest.Step{
		{Expect: "a1 IDLE", Send: []string{"a1 NO IDLE not supported"}},
		{Expect: "a2 NOOP", Send: []string{"a2 OK done"}},
	})
	h, err := sess.Idle()
	if h != nil {
		t.Fatal("Idle returned a handle on NO")
	}
	if !imap.IsNo(err) {
		t.Fatalf("Idle error = %v, want NO", err)
	}
	if err := sess.Noop(); err != nil {
		t.Fatalf("Noop after refused IDLE: %v", err)
	}
}
