// Package client implements an IMAP4rev1 client.
//
// The engine is half-duplex: one command is in flight at a time, and
// every server response is read, parsed and routed before the next
// command is written. Untagged responses that do not belong to the
// running command are delivered on a bounded side channel, see
// Session.Unsolicited.
//
// The connection state is expressed in the type system: NewClient returns
// an unauthenticated *Client, and Login or Authenticate consume it,
// returning a *Session with the authenticated command set. A Client and a
// Session are not safe for concurrent use by multiple goroutines.
package client

import (
	"crypto/tls"
	"fmt"
	"net"
	"time"

	imap "github.com/halcyonmail/go-imap"
)

// Client is an unauthenticated IMAP connection. Its method set is limited
// to what the protocol allows before login.
type Client struct {
	c       *conn
	preauth bool
}

// NewClient wraps an established stream and consumes the server greeting.
// A BYE greeting means the server refused the connection.
func NewClient(stream Stream, opts ...Option) (*Client, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	c := newConn(stream, options)

	var deadline time.Time
	if options.ReadTimeout > 0 {
		deadline = time.Now().Add(options.ReadTimeout)
	}
	resp, err := c.readUnit(deadline)
	if err != nil {
		return nil, fmt.Errorf("imap: reading greeting: %w", err)
	}
	greeting, ok := resp.(*imap.StatusResponse)
	if !ok || greeting.Tag != "" {
		return nil, c.poison(fmt.Errorf("imap: unexpected greeting %T", resp))
	}

	client := &Client{c: c}
	switch greeting.Type {
	case imap.StatusResponseTypeOK:
	case imap.StatusResponseTypePREAUTH:
		client.preauth = true
	case imap.StatusResponseTypeBYE:
		_ = c.close()
		return nil, &imap.IMAPError{StatusResponse: greeting}
	default:
		return nil, c.poison(fmt.Errorf("imap: unexpected greeting type %s", greeting.Type))
	}
	return client, nil
}

// Dial connects to an IMAP server at addr over plain TCP.
func Dial(addr string, opts ...Option) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("imap: dial: %w", err)
	}
	return NewClient(conn, opts...)
}

// DialTLS connects to an IMAP server at addr over implicit TLS.
func DialTLS(addr string, config *tls.Config, opts ...Option) (*Client, error) {
	conn, err := tls.Dial("tcp", addr, config)
	if err != nil {
		return nil, fmt.Errorf("imap: dial TLS: %w", err)
	}
	return NewClient(conn, opts...)
}

// PreauthSession returns the authenticated Session for a connection the
// server greeted with PREAUTH, consuming the Client. It returns nil when
// the greeting was a plain OK and authentication is still required.
func (cl *Client) PreauthSession() *Session {
	if !cl.preauth {
		return nil
	}
	cl.preauth = false
	return &Session{c: cl.c}
}

// Capability requests the server's capability list.
func (cl *Client) Capability() (imap.CapabilityData, error) {
	return capability(cl.c)
}

// Noop sends a NOOP.
func (cl *Client) Noop() error {
	_, err := cl.c.execute(catNone, "NOOP", nil)
	return err
}

// Logout sends LOGOUT and closes the stream.
func (cl *Client) Logout() error {
	return logout(cl.c)
}

// Close drops the stream without a LOGOUT.
func (cl *Client) Close() error {
	return cl.c.close()
}

func capability(c *conn) (imap.CapabilityData, error) {
	res, err := c.execute(catCapability, "CAPABILITY", nil)
	if err != nil {
		return nil, err
	}
	for _, r := range res.data {
		if caps, ok := r.(imap.CapabilityData); ok {
			return caps, nil
		}
	}
	return nil, fmt.Errorf("imap: server sent no CAPABILITY data")
}

func logout(c *conn) error {
	_, err := c.execute(catNone, "LOGOUT", nil)
	closeErr := c.close()
	if err != nil {
		return err
	}
	return closeErr
}
