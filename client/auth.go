package client

import (
	"encoding/base64"
	"fmt"

	"github.com/emersion/go-sasl"
	"github.com/sqs/go-xoauth2"

	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// Login authenticates with a username and password, consuming the Client.
// On NO or BAD the Client remains usable, so the caller can retry with
// different credentials without reconnecting.
func (cl *Client) Login(username, password string) (*Session, error) {
	if err := checkArgs("username", username, "password", password); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom("LOGIN").SP().String(username).SP().String(password)
	if _, err := cl.c.execute(catNone, enc.CommandText(), nil); err != nil {
		return nil, err
	}
	return &Session{c: cl.c}, nil
}

// Authenticate runs a SASL exchange, consuming the Client on success. The
// engine base64-encodes and decodes around the mechanism and cancels the
// exchange with "*" when the mechanism fails mid-handshake.
func (cl *Client) Authenticate(mech sasl.Client) (*Session, error) {
	mechName, ir, err := mech.Start()
	if err != nil {
		return nil, fmt.Errorf("imap: SASL start: %w", err)
	}
	if err := checkArg("mechanism", mechName); err != nil {
		return nil, err
	}

	sentIR := false
	var mechErr error
	onCont := func(cont *imap.ContinuationRequest) error {
		// An empty continuation asks for the initial response. A
		// server-first mechanism carries its challenge in the very first
		// continuation, which goes to the mechanism untouched.
		if cont.Text == "" && !sentIR {
			sentIR = true
			return cl.c.writeRaw(base64.StdEncoding.EncodeToString(ir) + "\r\n")
		}
		sentIR = true
		challenge, err := base64.StdEncoding.DecodeString(cont.Text)
		if err != nil {
			mechErr = fmt.Errorf("imap: decoding SASL challenge: %w", err)
			return cl.c.writeRaw("*\r\n")
		}
		resp, err := mech.Next(challenge)
		if err != nil {
			mechErr = fmt.Errorf("imap: SASL next: %w", err)
			return cl.c.writeRaw("*\r\n")
		}
		return cl.c.writeRaw(base64.StdEncoding.EncodeToString(resp) + "\r\n")
	}

	_, err = cl.c.execute(catNone, "AUTHENTICATE "+mechName, onCont)
	if mechErr != nil {
		return nil, mechErr
	}
	if err != nil {
		return nil, err
	}
	return &Session{c: cl.c}, nil
}

type xoauth2Client struct {
	username    string
	accessToken string
}

// XOAuth2 returns a sasl.Client for the XOAUTH2 mechanism, for use with
// Authenticate. AuthenticateXOAuth2 is the shorthand for the common case.
func XOAuth2(username, accessToken string) sasl.Client {
	return &xoauth2Client{username: username, accessToken: accessToken}
}

func (m *xoauth2Client) Start() (string, []byte, error) {
	ir := fmt.Sprintf("user=%s\x01auth=Bearer %s\x01\x01", m.username, m.accessToken)
	return "XOAUTH2", []byte(ir), nil
}

// Next acknowledges the server's error blob; the server then completes
// the command with NO.
func (m *xoauth2Client) Next([]byte) ([]byte, error) {
	return []byte{}, nil
}

// AuthenticateXOAuth2 authenticates with an OAuth 2.0 access token, the
// scheme used by Gmail and Office 365. The SASL payload is sent as the
// initial response on the AUTHENTICATE line.
func (cl *Client) AuthenticateXOAuth2(username, accessToken string) (*Session, error) {
	if err := checkArgs("username", username, "accessToken", accessToken); err != nil {
		return nil, err
	}
	payload := xoauth2.XOAuth2String(username, accessToken)

	// On failure the server sends a continuation carrying a base64 JSON
	// error blob; answering with an empty line makes it finish with NO.
	onCont := func(*imap.ContinuationRequest) error {
		return cl.c.writeRaw("\r\n")
	}
	if _, err := cl.c.execute(catNone, "AUTHENTICATE XOAUTH2 "+payload, onCont); err != nil {
		return nil, err
	}
	return &Session{c: cl.c}, nil
}
