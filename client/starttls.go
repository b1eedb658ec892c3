package client

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"net"
)

// StartTLS upgrades a plain connection to TLS before authentication. The
// capability list must be requested again afterwards, since the server's
// offer changes across the upgrade.
func (cl *Client) StartTLS(config *tls.Config) error {
	if config == nil {
		config = cl.c.opts.TLSConfig
	}
	if config == nil {
		return fmt.Errorf("imap: TLS config required")
	}
	netConn, ok := cl.c.stream.(net.Conn)
	if !ok {
		return fmt.Errorf("imap: stream does not support TLS upgrade")
	}

	if _, err := cl.c.execute(catNone, "STARTTLS", nil); err != nil {
		return err
	}

	tlsConn := tls.Client(netConn, config)
	if err := tlsConn.Handshake(); err != nil {
		return cl.c.poison(fmt.Errorf("imap: TLS handshake: %w", err))
	}
	cl.c.stream = tlsConn
	cl.c.br = bufio.NewReader(tlsConn)
	return nil
}
