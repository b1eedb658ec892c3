// Package imaptest provides a scripted in-memory IMAP server for driving
// the client in tests. A script is an ordered list of exchanges: the
// exact line the client must send and the raw response lines the server
// answers with. Command tags are deterministic (a1, a2, ...), so scripts
// can spell them out.
package imaptest

import (
	"bufio"
	"net"
	"strings"
	"testing"
	"time"
)

// Step is one exchange in a scripted conversation.
type Step struct {
	// Expect is the line the client must send, without CRLF. An empty
	// Expect skips the read, for server-initiated pushes.
	Expect string
	// Send holds the response lines written back, each without CRLF.
	Send []string
	// Delay postpones the response, for deadline tests.
	Delay time.Duration
}

// Server runs one scripted conversation over an in-memory pipe.
type Server struct {
	t    *testing.T
	conn net.Conn
	done chan struct{}
}

// NewServer starts a scripted server and returns the client half of the
// pipe. The greeting is sent immediately; the conversation then follows
// the script. Deviations fail the test.
func NewServer(t *testing.T, greeting string, steps []Step) net.Conn {
	t.Helper()

	clientConn, serverConn := net.Pipe()
	s := &Server{
		t:    t,
		conn: serverConn,
		done: make(chan struct{}),
	}
	go s.run(greeting, steps)

	t.Cleanup(func() {
		_ = clientConn.Close()
		_ = serverConn.Close()
		<-s.done
	})
	return clientConn
}

func (s *Server) run(greeting string, steps []Step) {
	defer close(s.done)
	// Exhausting the script closes the server side, so a client that
	// keeps reading sees a clean EOF instead of hanging.
	defer s.conn.Close()

	if err := s.send(greeting); err != nil {
		return
	}
	br := bufio.NewReader(s.conn)
	for i, step := range steps {
		if step.Expect != "" {
			line, err := br.ReadString('\n')
			if err != nil {
				s.t.Errorf("imaptest: step %d: reading %q: %v", i, step.Expect, err)
				return
			}
			got := strings.TrimRight(line, "\r\n")
			if got != step.Expect {
				s.t.Errorf("imaptest: step %d: client sent %q, want %q", i, got, step.Expect)
				return
			}
		}
		if step.Delay > 0 {
			time.Sleep(step.Delay)
		}
		for _, resp := range step.Send {
			if err := s.send(resp); err != nil {
				return
			}
		}
	}
}

func (s *Server) send(line string) error {
	_, err := s.conn.Write([]byte(line + "\r\n"))
	return err
}
