package client

import (
	"bytes"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/logrusorgru/aurora/v4"
)

// debugSend logs one outgoing command line when wire logging is enabled.
func (c *conn) debugSend(line string) {
	if !c.opts.DebugLog {
		return
	}
	c.opts.Logger.Debug(aurora.Green("C: ").String() + strings.TrimRight(line, "\r\n"))
}

// debugRecv logs one incoming response unit. Units carrying literal
// payloads are summarized by size rather than dumped.
func (c *conn) debugRecv(unit []byte) {
	if !c.opts.DebugLog {
		return
	}
	line := unit
	if i := bytes.IndexByte(unit, '\n'); i >= 0 {
		line = unit[:i]
	}
	msg := aurora.Cyan("S: ").String() + string(bytes.TrimRight(line, "\r"))
	if len(line)+2 < len(unit) {
		msg += aurora.Gray(12, " ("+humanize.Bytes(uint64(len(unit)))+" unit)").String()
	}
	c.opts.Logger.Debug(msg)
}
