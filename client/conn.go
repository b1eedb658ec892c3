package client

import (
	"bufio"
	"fmt"
	"strconv"
	"time"

	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// Stream is the transport the engine runs on. net.Conn satisfies it; the
// engine never dials or reconnects on its own.
type Stream interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

// cmdCategory identifies the shape of the in-flight command's result. The
// engine uses it to decide which untagged responses belong to the command
// and which are unsolicited.
type cmdCategory int

const (
	catNone cmdCategory = iota
	catSelect
	catFetch
	catList
	catListStatus
	catStatus
	catSearch
	catSort
	catCapability
	catACL
	catListRights
	catMyRights
	catQuota
	catQuotaRoot
	catMetadata
)

// claims reports whether an untagged response forms part of the result
// for a command of this category. Everything not claimed is either
// forwarded to the unsolicited channel or ignored.
//
// EXISTS, RECENT, FLAGS and EXPUNGE are claimed only during SELECT and
// EXAMINE, which rebuild the mailbox snapshot; at any other time they
// describe mailbox changes and go to the side channel.
func (cat cmdCategory) claims(resp imap.Response) bool {
	switch cat {
	case catSelect:
		switch r := resp.(type) {
		case imap.ExistsData, imap.RecentData, imap.FlagsData:
			return true
		case *imap.StatusResponse:
			return r.Tag == "" && r.Type == imap.StatusResponseTypeOK
		}
	case catFetch:
		_, ok := resp.(*imap.FetchData)
		return ok
	case catList:
		_, ok := resp.(*imap.ListData)
		return ok
	case catListStatus:
		switch resp.(type) {
		case *imap.ListData, *imap.StatusData:
			return true
		}
	case catStatus:
		_, ok := resp.(*imap.StatusData)
		return ok
	case catSearch:
		_, ok := resp.(*imap.SearchData)
		return ok
	case catSort:
		_, ok := resp.(*imap.SortData)
		return ok
	case catCapability:
		_, ok := resp.(imap.CapabilityData)
		return ok
	case catACL:
		_, ok := resp.(*imap.ACLData)
		return ok
	case catListRights:
		_, ok := resp.(*imap.ACLListRightsData)
		return ok
	case catMyRights:
		_, ok := resp.(*imap.ACLMyRightsData)
		return ok
	case catQuota:
		_, ok := resp.(*imap.QuotaData)
		return ok
	case catQuotaRoot:
		// GETQUOTAROOT answers with both QUOTAROOT and QUOTA lines.
		switch resp.(type) {
		case *imap.QuotaRootData, *imap.QuotaData:
			return true
		}
	case catMetadata:
		_, ok := resp.(*imap.MetadataData)
		return ok
	}
	return false
}

// conn is the half-duplex command/response engine shared by Client and
// Session. At most one command is in flight; a Client or Session must not
// be used from multiple goroutines at once.
type conn struct {
	stream Stream
	br     *bufio.Reader
	opts   *Options

	tag         uint64
	unsolicited chan imap.UnsolicitedResponse

	// broken poisons the connection after an I/O or parse failure. No
	// command runs on a broken connection.
	broken error
	idling bool
	closed bool
}

func newConn(stream Stream, opts *Options) *conn {
	return &conn{
		stream:      stream,
		br:          bufio.NewReader(stream),
		opts:        opts,
		unsolicited: make(chan imap.UnsolicitedResponse, opts.UnsolicitedCapacity),
	}
}

// nextTag returns the next command tag. Tags are "a" plus a counter
// starting at 1.
func (c *conn) nextTag() string {
	c.tag++
	return "a" + strconv.FormatUint(c.tag, 10)
}

func (c *conn) usable() error {
	if c.closed {
		return fmt.Errorf("imap: connection closed")
	}
	if c.broken != nil {
		return fmt.Errorf("imap: connection is broken: %w", c.broken)
	}
	if c.idling {
		return fmt.Errorf("imap: connection is idling")
	}
	return nil
}

func (c *conn) poison(err error) error {
	if c.broken == nil {
		c.broken = err
	}
	return err
}

// writeRaw writes bytes to the stream under the write deadline.
func (c *conn) writeRaw(data string) error {
	if c.opts.WriteTimeout > 0 {
		_ = c.stream.SetWriteDeadline(time.Now().Add(c.opts.WriteTimeout))
		defer c.stream.SetWriteDeadline(time.Time{})
	}
	if _, err := c.stream.Write([]byte(data)); err != nil {
		return c.poison(fmt.Errorf("imap: write: %w", err))
	}
	return nil
}

// readUnit reads and parses one response unit under the given deadline. A
// zero deadline means no deadline.
func (c *conn) readUnit(deadline time.Time) (imap.Response, error) {
	if err := c.stream.SetReadDeadline(deadline); err != nil {
		return nil, c.poison(err)
	}
	unit, err := wire.ReadResponseUnit(c.br)
	if err != nil {
		if imap.IsTimeout(err) {
			return nil, err
		}
		return nil, c.poison(err)
	}
	c.debugRecv(unit)
	resp, _, err := wire.ParseResponse(unit)
	if err != nil {
		return nil, c.poison(err)
	}
	return resp, nil
}

// forward hands an unsolicited response to the side channel without ever
// blocking the engine: when the channel is full the oldest entry is
// dropped. The engine is the only producer.
func (c *conn) forward(r imap.UnsolicitedResponse) {
	for {
		select {
		case c.unsolicited <- r:
			return
		default:
		}
		select {
		case <-c.unsolicited:
		default:
		}
	}
}

// result holds a completed command's claimed data responses and its
// tagged completion.
type result struct {
	data   []imap.Response
	status *imap.StatusResponse
}

// execute runs one command to completion: write, then read units until
// the tagged status arrives. onCont, when non-nil, handles continuation
// requests (AUTHENTICATE, APPEND); a continuation without a handler is a
// protocol error.
func (c *conn) execute(cat cmdCategory, text string, onCont func(*imap.ContinuationRequest) error) (*result, error) {
	if err := c.usable(); err != nil {
		return nil, err
	}
	tag := c.nextTag()
	line := tag + " " + text + "\r\n"
	c.debugSend(line)
	if err := c.writeRaw(line); err != nil {
		return nil, err
	}
	return c.await(cat, tag, onCont)
}

// await reads responses until the completion for tag.
func (c *conn) await(cat cmdCategory, tag string, onCont func(*imap.ContinuationRequest) error) (*result, error) {
	res := &result{}
	var deadline time.Time
	if c.opts.ReadTimeout > 0 {
		deadline = time.Now().Add(c.opts.ReadTimeout)
	}
	for {
		resp, err := c.readUnit(deadline)
		if err != nil {
			if imap.IsTimeout(err) {
				// A deadline mid-command leaves the stream desynced.
				return nil, c.poison(err)
			}
			return nil, err
		}

		switch r := resp.(type) {
		case *imap.ContinuationRequest:
			if onCont == nil {
				return nil, c.poison(fmt.Errorf("imap: unexpected continuation request"))
			}
			if err := onCont(r); err != nil {
				return nil, err
			}
		case *imap.StatusResponse:
			if r.Tag == tag {
				return c.complete(res, r)
			}
			if r.Tag != "" {
				return nil, c.poison(fmt.Errorf("imap: response for unknown tag %q", r.Tag))
			}
			if cat.claims(r) {
				res.data = append(res.data, r)
				continue
			}
			// Untagged BYE and informational status lines go to the
			// side channel; LOGOUT still completes with its tagged OK.
			c.forward(r)
		default:
			if cat.claims(resp) {
				res.data = append(res.data, resp)
				continue
			}
			if u, ok := resp.(imap.UnsolicitedResponse); ok {
				c.forward(u)
			}
		}
	}
}

func (c *conn) complete(res *result, status *imap.StatusResponse) (*result, error) {
	res.status = status
	switch status.Type {
	case imap.StatusResponseTypeOK:
		return res, nil
	case imap.StatusResponseTypeNO, imap.StatusResponseTypeBAD:
		// The command failed but the exchange stayed in sync; the
		// connection remains usable.
		return res, &imap.IMAPError{StatusResponse: status}
	default:
		return nil, c.poison(fmt.Errorf("imap: %s in completion position", status.Type))
	}
}

func (c *conn) close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.stream.Close()
}
