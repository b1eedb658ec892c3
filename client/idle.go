package client

import (
	"fmt"
	"time"

	imap "github.com/halcyonmail/go-imap"
)

// IdleResult reports why WaitWhile returned.
type IdleResult int

const (
	// IdleMailboxChanged means the wait predicate stopped the wait after
	// an unsolicited response.
	IdleMailboxChanged IdleResult = iota
	// IdleTimedOut means the idle deadline expired with keepalive
	// disabled.
	IdleTimedOut
)

// IdleHandle is an in-progress IDLE command (RFC 2177). While the handle
// is open it exclusively borrows the session: every other command fails
// until Close.
type IdleHandle struct {
	s    *Session
	tag  string
	done bool
}

// Idle enters IDLE mode. The server starts pushing mailbox changes, which
// WaitWhile observes; they are also forwarded to the unsolicited channel.
func (s *Session) Idle() (*IdleHandle, error) {
	if err := s.c.usable(); err != nil {
		return nil, err
	}
	h := &IdleHandle{s: s}
	if err := h.start(); err != nil {
		return nil, err
	}
	s.c.idling = true
	return h, nil
}

// start sends IDLE and waits for the continuation request.
func (h *IdleHandle) start() error {
	c := h.s.c
	h.tag = c.nextTag()
	line := h.tag + " IDLE\r\n"
	c.debugSend(line)
	if err := c.writeRaw(line); err != nil {
		return err
	}

	var deadline time.Time
	if c.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(c.opts.ReadTimeout)
	}
	for {
		resp, err := c.readUnit(deadline)
		if err != nil {
			if imap.IsTimeout(err) {
				return c.poison(err)
			}
			return err
		}
		switch r := resp.(type) {
		case *imap.ContinuationRequest:
			return nil
		case *imap.StatusResponse:
			if r.Tag == h.tag {
				// The server refused IDLE; the connection stays usable.
				return &imap.IMAPError{StatusResponse: r}
			}
			if r.Tag != "" {
				return c.poison(fmt.Errorf("imap: response for unknown tag %q", r.Tag))
			}
			c.forward(r)
		default:
			if u, ok := resp.(imap.UnsolicitedResponse); ok {
				c.forward(u)
			}
		}
	}
}

// WaitWhile blocks until the server reports a change that makes pred
// return false, or until the idle deadline expires. Every observed
// response is also forwarded to the unsolicited channel. With keepalive
// enabled (the default) a deadline expiry transparently restarts the IDLE
// instead of returning IdleTimedOut.
//
// A nil pred waits for the first unsolicited response.
func (h *IdleHandle) WaitWhile(pred func(imap.UnsolicitedResponse) bool) (IdleResult, error) {
	if h.done {
		return 0, fmt.Errorf("imap: idle handle is closed")
	}
	c := h.s.c
	for {
		resp, err := c.readUnit(time.Now().Add(c.opts.IdleTimeout))
		if err != nil {
			if imap.IsTimeout(err) {
				if c.opts.IdleKeepalive {
					if err := h.restart(); err != nil {
						return 0, err
					}
					continue
				}
				return IdleTimedOut, nil
			}
			h.finish()
			return 0, err
		}
		switch r := resp.(type) {
		case *imap.ContinuationRequest:
			// Some servers repeat the continuation; harmless.
			continue
		case *imap.StatusResponse:
			if r.Tag == h.tag {
				h.finish()
				if r.Type != imap.StatusResponseTypeOK {
					return 0, &imap.IMAPError{StatusResponse: r}
				}
				return 0, fmt.Errorf("imap: server ended IDLE")
			}
			if r.Tag != "" {
				h.finish()
				return 0, c.poison(fmt.Errorf("imap: response for unknown tag %q", r.Tag))
			}
			c.forward(r)
			if pred != nil && pred(r) {
				continue
			}
			return IdleMailboxChanged, nil
		default:
			u, ok := resp.(imap.UnsolicitedResponse)
			if !ok {
				continue
			}
			c.forward(u)
			if pred != nil && pred(u) {
				continue
			}
			return IdleMailboxChanged, nil
		}
	}
}

// restart terminates the current IDLE and immediately issues a fresh one,
// keeping the connection alive across server-side idle limits.
func (h *IdleHandle) restart() error {
	if err := h.terminate(); err != nil {
		h.finish()
		return err
	}
	if err := h.start(); err != nil {
		h.finish()
		return err
	}
	return nil
}

// terminate sends DONE and drains responses up to the tagged completion.
func (h *IdleHandle) terminate() error {
	c := h.s.c
	c.debugSend("DONE\r\n")
	if err := c.writeRaw("DONE\r\n"); err != nil {
		return err
	}
	var deadline time.Time
	if c.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(c.opts.ReadTimeout)
	}
	for {
		resp, err := c.readUnit(deadline)
		if err != nil {
			if imap.IsTimeout(err) {
				return c.poison(err)
			}
			return err
		}
		switch r := resp.(type) {
		case *imap.StatusResponse:
			if r.Tag == h.tag {
				if r.Type != imap.StatusResponseTypeOK {
					return &imap.IMAPError{StatusResponse: r}
				}
				return nil
			}
			if r.Tag != "" {
				return c.poison(fmt.Errorf("imap: response for unknown tag %q", r.Tag))
			}
			c.forward(r)
		default:
			if u, ok := resp.(imap.UnsolicitedResponse); ok {
				c.forward(u)
			}
		}
	}
}

// Close ends the IDLE with DONE and returns the session to normal
// command mode. It is idempotent.
func (h *IdleHandle) Close() error {
	if h.done {
		return nil
	}
	err := h.terminate()
	h.finish()
	return err
}

// finish releases the session and clears the idle read deadline.
func (h *IdleHandle) finish() {
	if h.done {
		return
	}
	h.done = true
	h.s.c.idling = false
	_ = h.s.c.stream.SetReadDeadline(time.Time{})
}
