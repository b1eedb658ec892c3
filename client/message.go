package client

import (
	"fmt"
	"strconv"
	"strings"

	imap "github.com/halcyonmail/go-imap"
	"github.com/halcyonmail/go-imap/wire"
)

// Fetch retrieves message data for the messages in seqSet.
func (s *Session) Fetch(seqSet *imap.SeqSet, options *imap.FetchOptions) ([]*imap.FetchData, error) {
	return s.fetch("FETCH", seqSet, options)
}

// UIDFetch retrieves message data addressed by UID. The UID attribute is
// always included in the result.
func (s *Session) UIDFetch(uidSet *imap.UIDSet, options *imap.FetchOptions) ([]*imap.FetchData, error) {
	return s.fetch("UID FETCH", uidSet, options)
}

func (s *Session) fetch(cmd string, set imap.NumSet, options *imap.FetchOptions) ([]*imap.FetchData, error) {
	if options == nil {
		options = &imap.FetchOptions{}
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().NumSet(set).SP()
	writeFetchItems(enc, options)
	if options.ChangedSince > 0 {
		enc.SP().BeginList().Atom("CHANGEDSINCE").SP().Number64(options.ChangedSince).EndList()
	}

	res, err := s.c.execute(catFetch, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	msgs := collectFetch(res)
	s.decodeEnvelopes(msgs)
	return msgs, nil
}

func writeFetchItems(enc *wire.Encoder, options *imap.FetchOptions) {
	var items []string
	if options.Flags {
		items = append(items, "FLAGS")
	}
	if options.UID {
		items = append(items, "UID")
	}
	if options.RFC822Size {
		items = append(items, "RFC822.SIZE")
	}
	if options.InternalDate {
		items = append(items, "INTERNALDATE")
	}
	if options.Envelope {
		items = append(items, "ENVELOPE")
	}
	if options.BodyStructure {
		items = append(items, "BODYSTRUCTURE")
	}
	if options.ModSeq || options.ChangedSince > 0 {
		items = append(items, "MODSEQ")
	}
	for _, sec := range options.BodySection {
		items = append(items, formatBodySection(sec))
	}
	if len(items) == 0 {
		items = append(items, "FLAGS", "UID")
	}

	enc.BeginList()
	for i, item := range items {
		if i > 0 {
			enc.SP()
		}
		enc.Atom(item)
	}
	enc.EndList()
}

// formatBodySection renders one BODY[section]<partial> fetch item.
func formatBodySection(sec *imap.FetchItemBodySection) string {
	var sb strings.Builder
	sb.WriteString("BODY")
	if sec.Peek {
		sb.WriteString(".PEEK")
	}
	sb.WriteByte('[')

	var parts []string
	for _, n := range sec.Part {
		parts = append(parts, strconv.Itoa(n))
	}
	if spec := sec.Specifier; spec != "" {
		parts = append(parts, spec)
	}
	sb.WriteString(strings.Join(parts, "."))

	if len(sec.Fields) > 0 {
		if sec.NotFields {
			sb.WriteString(".NOT")
		}
		sb.WriteString(" (")
		for i, f := range sec.Fields {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(f)
		}
		sb.WriteByte(')')
	}
	sb.WriteByte(']')

	if p := sec.Partial; p != nil {
		fmt.Fprintf(&sb, "<%d.%d>", p.Offset, p.Count)
	}
	return sb.String()
}

func collectFetch(res *result) []*imap.FetchData {
	var msgs []*imap.FetchData
	for _, r := range res.data {
		if f, ok := r.(*imap.FetchData); ok {
			msgs = append(msgs, f)
		}
	}
	return msgs
}

// decodeEnvelopes applies the configured RFC 2047 word decoder to the
// human-readable envelope fields.
func (s *Session) decodeEnvelopes(msgs []*imap.FetchData) {
	dec := s.c.opts.WordDecoder
	if dec == nil {
		return
	}
	decode := func(v string) string {
		if d, err := dec.DecodeHeader(v); err == nil {
			return d
		}
		return v
	}
	for _, m := range msgs {
		env := m.Envelope
		if env == nil {
			continue
		}
		env.Subject = decode(env.Subject)
		for _, addrs := range [][]*imap.Address{env.From, env.Sender, env.ReplyTo, env.To, env.Cc, env.Bcc} {
			for _, a := range addrs {
				a.Name = decode(a.Name)
			}
		}
	}
}

// Store alters message flags. Non-silent stores return the resulting
// FETCH updates; silent stores return nil data.
func (s *Session) Store(seqSet *imap.SeqSet, flags *imap.StoreFlags, options *imap.StoreOptions) ([]*imap.FetchData, error) {
	return s.store("STORE", seqSet, flags, options)
}

// UIDStore alters message flags addressed by UID.
func (s *Session) UIDStore(uidSet *imap.UIDSet, flags *imap.StoreFlags, options *imap.StoreOptions) ([]*imap.FetchData, error) {
	return s.store("UID STORE", uidSet, flags, options)
}

func (s *Session) store(cmd string, set imap.NumSet, flags *imap.StoreFlags, options *imap.StoreOptions) ([]*imap.FetchData, error) {
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().NumSet(set).SP()
	if options != nil && options.UnchangedSince > 0 {
		enc.BeginList().Atom("UNCHANGEDSINCE").SP().Number64(options.UnchangedSince).EndList().SP()
	}
	item := flags.Action.String()
	if flags.Silent {
		item += ".SILENT"
	}
	enc.Atom(item).SP().Flags(flags.Flags)

	cat := catFetch
	if flags.Silent {
		cat = catNone
	}
	res, err := s.c.execute(cat, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return collectFetch(res), nil
}

// Search runs a SEARCH with the given criteria, e.g. "UNSEEN SINCE
// 1-Feb-2024". The criteria text is passed through as written.
func (s *Session) Search(criteria string) (*imap.SearchData, error) {
	return s.search("SEARCH", criteria)
}

// UIDSearch runs a UID SEARCH; the result numbers are UIDs.
func (s *Session) UIDSearch(criteria string) (*imap.SearchData, error) {
	return s.search("UID SEARCH", criteria)
}

func (s *Session) search(cmd, criteria string) (*imap.SearchData, error) {
	if err := checkArg("criteria", criteria); err != nil {
		return nil, err
	}
	res, err := s.c.execute(catSearch, cmd+" "+criteria, nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.SearchData](res, "SEARCH")
}

// Sort runs a server-side SORT (RFC 5256) over the messages matching the
// search criteria.
func (s *Session) Sort(sortCrit []imap.SortCriterion, charset, criteria string) (*imap.SortData, error) {
	return s.sort("SORT", sortCrit, charset, criteria)
}

// UIDSort runs a UID SORT; the result numbers are UIDs.
func (s *Session) UIDSort(sortCrit []imap.SortCriterion, charset, criteria string) (*imap.SortData, error) {
	return s.sort("UID SORT", sortCrit, charset, criteria)
}

func (s *Session) sort(cmd string, sortCrit []imap.SortCriterion, charset, criteria string) (*imap.SortData, error) {
	if err := checkArgs("charset", charset, "criteria", criteria); err != nil {
		return nil, err
	}
	if charset == "" {
		charset = "UTF-8"
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().BeginList()
	for i, crit := range sortCrit {
		if i > 0 {
			enc.SP()
		}
		if crit.Reverse {
			enc.Atom("REVERSE").SP()
		}
		enc.Atom(string(crit.Key))
	}
	enc.EndList().SP().Atom(charset).SP().Raw(criteria)

	res, err := s.c.execute(catSort, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	return single[*imap.SortData](res, "SORT")
}

// Copy copies messages to another mailbox. On a UIDPLUS server the
// returned CopyData maps source to destination UIDs; otherwise it is nil.
func (s *Session) Copy(seqSet *imap.SeqSet, mailbox string) (*imap.CopyData, error) {
	return s.copyMove("COPY", seqSet, mailbox)
}

// UIDCopy copies messages addressed by UID.
func (s *Session) UIDCopy(uidSet *imap.UIDSet, mailbox string) (*imap.CopyData, error) {
	return s.copyMove("UID COPY", uidSet, mailbox)
}

// Move moves messages to another mailbox (RFC 6851).
func (s *Session) Move(seqSet *imap.SeqSet, mailbox string) (*imap.CopyData, error) {
	return s.copyMove("MOVE", seqSet, mailbox)
}

// UIDMove moves messages addressed by UID.
func (s *Session) UIDMove(uidSet *imap.UIDSet, mailbox string) (*imap.CopyData, error) {
	return s.copyMove("UID MOVE", uidSet, mailbox)
}

func (s *Session) copyMove(cmd string, set imap.NumSet, mailbox string) (*imap.CopyData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	enc := wire.NewEncoder()
	enc.Atom(cmd).SP().NumSet(set).SP().Mailbox(mailbox)
	res, err := s.c.execute(catNone, enc.CommandText(), nil)
	if err != nil {
		return nil, err
	}
	if res.status.Code == imap.ResponseCodeCopyUID && res.status.Arg != nil {
		return res.status.Arg.CopyUID, nil
	}
	return nil, nil
}

// Append adds a message to a mailbox. The message must be a full RFC 2822
// message including headers. On a UIDPLUS server the returned AppendData
// carries the assigned UID.
func (s *Session) Append(mailbox string, msg []byte, options *imap.AppendOptions) (*imap.AppendData, error) {
	if err := checkArg("mailbox", mailbox); err != nil {
		return nil, err
	}
	if options == nil {
		options = &imap.AppendOptions{}
	}
	enc := wire.NewEncoder()
	enc.Atom("APPEND").SP().Mailbox(mailbox).SP()
	if len(options.Flags) > 0 {
		enc.Flags(options.Flags).SP()
	}
	if !options.InternalDate.IsZero() {
		enc.DateTime(options.InternalDate).SP()
	}
	enc.LiteralHeader(int64(len(msg)))

	// The literal payload is written once the server asks for it.
	onCont := func(*imap.ContinuationRequest) error {
		return s.c.writeRaw(string(msg) + "\r\n")
	}
	res, err := s.c.execute(catNone, enc.CommandText(), onCont)
	if err != nil {
		return nil, &imap.AppendError{Mailbox: mailbox, Err: err}
	}
	if res.status.Code == imap.ResponseCodeAppendUID && res.status.Arg != nil {
		return res.status.Arg.AppendUID, nil
	}
	return &imap.AppendData{}, nil
}

// Expunge permanently removes messages flagged \Deleted. The untagged
// EXPUNGE lines arrive on the unsolicited channel.
func (s *Session) Expunge() error {
	_, err := s.c.execute(catNone, "EXPUNGE", nil)
	return err
}

// UIDExpunge removes only the flagged messages within uidSet (UIDPLUS,
// RFC 4315).
func (s *Session) UIDExpunge(uidSet *imap.UIDSet) error {
	enc := wire.NewEncoder()
	enc.Atom("UID EXPUNGE").SP().NumSet(uidSet)
	_, err := s.c.execute(catNone, enc.CommandText(), nil)
	return err
}

// CloseMailbox closes the selected mailbox, expunging flagged messages
// without reporting them.
func (s *Session) CloseMailbox() error {
	_, err := s.c.execute(catNone, "CLOSE", nil)
	return err
}

// Check requests a server checkpoint of the selected mailbox.
func (s *Session) Check() error {
	_, err := s.c.execute(catNone, "CHECK", nil)
	return err
}
