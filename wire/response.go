package wire

import (
	"bytes"
	"fmt"
	"net/mail"
	"strings"
	"time"

	imap "github.com/halcyonmail/go-imap"
)

// ParseResponse decodes one response unit from data and returns the typed
// response together with the unconsumed remainder. data is expected to
// start at a unit boundary, normally the output of ReadResponseUnit.
//
// Grammar violations come back as a *imap.ParseError carrying the
// offending bytes; the remainder is returned unchanged in that case.
func ParseResponse(data []byte) (imap.Response, []byte, error) {
	dec := NewDecoder(data)
	resp, err := readResponse(dec)
	if err != nil {
		if pe, ok := err.(*imap.ParseError); ok {
			return nil, data, pe
		}
		return nil, data, &imap.ParseError{Data: data, Err: err}
	}
	return resp, dec.Rest(), nil
}

func readResponse(dec *Decoder) (imap.Response, error) {
	b, ok := dec.Peek()
	if !ok {
		return nil, fmt.Errorf("empty response")
	}
	switch b {
	case '+':
		dec.pos++
		if b, ok := dec.Peek(); ok && b == ' ' {
			dec.pos++
		}
		return &imap.ContinuationRequest{Text: dec.ReadLine()}, nil
	case '*':
		dec.pos++
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		return readUntagged(dec)
	default:
		tag, err := dec.ReadAtom()
		if err != nil {
			return nil, fmt.Errorf("expected response tag: %v", err)
		}
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		typ, err := dec.ReadAtom()
		if err != nil {
			return nil, fmt.Errorf("expected status type: %v", err)
		}
		return readStatus(dec, tag, typ)
	}
}

func readUntagged(dec *Decoder) (imap.Response, error) {
	if b, ok := dec.Peek(); ok && b >= '0' && b <= '9' {
		return readUntaggedNumeric(dec)
	}

	name, err := dec.ReadAtom()
	if err != nil {
		return nil, fmt.Errorf("expected untagged response name: %v", err)
	}
	switch strings.ToUpper(name) {
	case "OK", "NO", "BAD", "BYE", "PREAUTH":
		return readStatus(dec, "", name)
	case "CAPABILITY":
		return readCapability(dec)
	case "FLAGS":
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		flags, err := dec.ReadFlags()
		if err != nil {
			return nil, fmt.Errorf("in FLAGS response: %v", err)
		}
		return imap.FlagsData(flags), dec.ReadCRLF()
	case "LIST", "LSUB":
		return readList(dec)
	case "STATUS":
		return readStatusData(dec)
	case "SEARCH":
		nums, err := readNumList(dec)
		if err != nil {
			return nil, fmt.Errorf("in SEARCH response: %v", err)
		}
		return &imap.SearchData{AllNums: nums}, nil
	case "SORT":
		nums, err := readNumList(dec)
		if err != nil {
			return nil, fmt.Errorf("in SORT response: %v", err)
		}
		return &imap.SortData{AllNums: nums}, nil
	case "ACL":
		return readACL(dec)
	case "LISTRIGHTS":
		return readListRights(dec)
	case "MYRIGHTS":
		return readMyRights(dec)
	case "QUOTA":
		return readQuota(dec)
	case "QUOTAROOT":
		return readQuotaRoot(dec)
	case "METADATA":
		return readMetadata(dec)
	case "VANISHED":
		return readVanished(dec)
	default:
		return readUnknown(dec, name)
	}
}

func readUntaggedNumeric(dec *Decoder) (imap.Response, error) {
	num, err := dec.ReadNumber()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	name, err := dec.ReadAtom()
	if err != nil {
		return nil, fmt.Errorf("expected response name after number: %v", err)
	}
	switch strings.ToUpper(name) {
	case "EXISTS":
		return imap.ExistsData(num), dec.ReadCRLF()
	case "RECENT":
		return imap.RecentData(num), dec.ReadCRLF()
	case "EXPUNGE":
		return imap.ExpungeData(num), dec.ReadCRLF()
	case "FETCH":
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		return readFetch(dec, num)
	default:
		return readUnknown(dec, name)
	}
}

// readUnknown consumes the rest of the unit and wraps it for the
// unsolicited channel. Extension responses must never be fatal.
func readUnknown(dec *Decoder, name string) (imap.Response, error) {
	dec.skipUnitTail()
	raw := make([]byte, dec.pos)
	copy(raw, dec.data[:dec.pos])
	return &imap.UnknownData{Name: name, Raw: raw}, nil
}

// skipUnitTail consumes the remainder of the current unit, stepping over
// quoted strings and literals so their payloads are not mistaken for the
// start of the next unit.
func (d *Decoder) skipUnitTail() {
	for !d.EOF() {
		switch d.data[d.pos] {
		case '\r', '\n':
			_ = d.ReadCRLF()
			return
		case '"':
			if _, err := d.ReadQuotedString(); err != nil {
				d.pos = len(d.data)
				return
			}
		case '{':
			if _, err := d.ReadLiteral(); err != nil {
				d.pos = len(d.data)
				return
			}
		default:
			d.pos++
		}
	}
}

func readStatus(dec *Decoder, tag, typ string) (imap.Response, error) {
	resp := &imap.StatusResponse{Tag: tag}
	switch strings.ToUpper(typ) {
	case "OK":
		resp.Type = imap.StatusResponseTypeOK
	case "NO":
		resp.Type = imap.StatusResponseTypeNO
	case "BAD":
		resp.Type = imap.StatusResponseTypeBAD
	case "BYE":
		resp.Type = imap.StatusResponseTypeBYE
	case "PREAUTH":
		resp.Type = imap.StatusResponseTypePREAUTH
	default:
		return nil, fmt.Errorf("unknown status type %q", typ)
	}

	if b, ok := dec.Peek(); ok && (b == '\r' || b == '\n') {
		return resp, dec.ReadCRLF()
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	if b, ok := dec.Peek(); ok && b == '[' {
		dec.pos++
		code, arg, err := readCode(dec)
		if err != nil {
			return nil, fmt.Errorf("in response code: %v", err)
		}
		resp.Code = code
		resp.Arg = arg
		if b, ok := dec.Peek(); ok && b == ' ' {
			dec.pos++
		}
	}
	resp.Text = dec.ReadLine()
	return resp, nil
}

func readCode(dec *Decoder) (imap.ResponseCode, *imap.CodeArg, error) {
	atom, err := dec.ReadAtom()
	if err != nil {
		return "", nil, err
	}
	code := imap.ResponseCode(strings.ToUpper(atom))

	b, ok := dec.Peek()
	if !ok {
		return "", nil, fmt.Errorf("unterminated response code")
	}
	if b == ']' {
		dec.pos++
		return code, nil, nil
	}
	if err := dec.ReadSP(); err != nil {
		return "", nil, err
	}

	// The argument cannot itself contain "]", so the closing bracket
	// delimits the raw text.
	end := bytes.IndexByte(dec.Rest(), ']')
	if end < 0 {
		return "", nil, fmt.Errorf("unterminated response code")
	}
	raw := string(dec.Rest()[:end])
	arg := &imap.CodeArg{Raw: raw}
	if err := readCodeArg(NewDecoder([]byte(raw)), code, arg); err != nil {
		return "", nil, fmt.Errorf("in %s argument: %v", code, err)
	}
	dec.pos += end + 1
	return code, arg, nil
}

func readCodeArg(dec *Decoder, code imap.ResponseCode, arg *imap.CodeArg) error {
	switch code {
	case imap.ResponseCodeUIDNext, imap.ResponseCodeUIDValidity, imap.ResponseCodeUnseen:
		n, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		arg.Num = &n
	case imap.ResponseCodeHighestModSeq:
		n, err := dec.ReadNumber64()
		if err != nil {
			return err
		}
		arg.ModSeq = &n
	case imap.ResponseCodePermanentFlags:
		flags, err := dec.ReadFlags()
		if err != nil {
			return err
		}
		arg.Flags = flags
	case imap.ResponseCodeCapability:
		for !dec.EOF() {
			name, err := dec.ReadAtom()
			if err != nil {
				return err
			}
			arg.Caps = append(arg.Caps, name)
			if b, ok := dec.Peek(); ok && b == ' ' {
				dec.pos++
			}
		}
	case imap.ResponseCodeAppendUID:
		validity, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		uid, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		arg.AppendUID = &imap.AppendData{UIDValidity: validity, UID: imap.UID(uid)}
	case imap.ResponseCodeCopyUID:
		validity, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		src, err := readUIDSetAtom(dec)
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		dst, err := readUIDSetAtom(dec)
		if err != nil {
			return err
		}
		arg.CopyUID = &imap.CopyData{UIDValidity: validity, SourceUIDs: *src, DestUIDs: *dst}
	case imap.ResponseCodeMetadata:
		// "MAXSIZE n", "TOOMANY" or "NOPRIVATE". Only MAXSIZE carries a
		// number worth decoding.
		word, err := dec.ReadAtom()
		if err != nil {
			return err
		}
		if strings.EqualFold(word, "MAXSIZE") {
			if err := dec.ReadSP(); err != nil {
				return err
			}
			n, err := dec.ReadNumber()
			if err != nil {
				return err
			}
			arg.Num = &n
		}
	}
	return nil
}

func readUIDSetAtom(dec *Decoder) (*imap.UIDSet, error) {
	atom, err := dec.ReadAtom()
	if err != nil {
		return nil, err
	}
	return imap.ParseUIDSet(atom)
}

func readCapability(dec *Decoder) (imap.Response, error) {
	var caps imap.CapabilityData
	for {
		b, ok := dec.Peek()
		if !ok || b == '\r' || b == '\n' {
			break
		}
		if b == ' ' {
			dec.pos++
			continue
		}
		name, err := dec.ReadAtom()
		if err != nil {
			return nil, fmt.Errorf("in CAPABILITY response: %v", err)
		}
		caps = append(caps, name)
	}
	return caps, dec.ReadCRLF()
}

func readList(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data := &imap.ListData{}
	err := dec.ReadList(func() error {
		attr, err := dec.ReadFlag()
		if err != nil {
			return err
		}
		data.Attrs = append(data.Attrs, imap.MailboxAttr(attr))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("in LIST attributes: %v", err)
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	delim, ok, err := dec.ReadNString()
	if err != nil {
		return nil, fmt.Errorf("in LIST delimiter: %v", err)
	}
	if ok && delim != "" {
		data.Delim = rune(delim[0])
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data.Mailbox, err = dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in LIST mailbox: %v", err)
	}
	return data, dec.ReadCRLF()
}

func readStatusData(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in STATUS mailbox: %v", err)
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data := &imap.StatusData{Mailbox: mailbox}
	err = dec.ReadList(func() error {
		item, err := dec.ReadAtom()
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		switch imap.StatusItem(strings.ToUpper(item)) {
		case imap.StatusHighestModSeq:
			n, err := dec.ReadNumber64()
			if err != nil {
				return err
			}
			data.HighestModSeq = &n
			return nil
		default:
			n, err := dec.ReadNumber()
			if err != nil {
				return err
			}
			switch imap.StatusItem(strings.ToUpper(item)) {
			case imap.StatusMessages:
				data.NumMessages = &n
			case imap.StatusRecent:
				data.NumRecent = &n
			case imap.StatusUIDNext:
				data.UIDNext = &n
			case imap.StatusUIDValidity:
				data.UIDValidity = &n
			case imap.StatusUnseen:
				data.NumUnseen = &n
			}
			return nil
		}
	})
	if err != nil {
		return nil, fmt.Errorf("in STATUS items: %v", err)
	}
	return data, dec.ReadCRLF()
}

// readNumList reads the space-separated numbers of a SEARCH or SORT
// response. A trailing "(MODSEQ n)" group (CONDSTORE) is consumed and
// discarded.
func readNumList(dec *Decoder) ([]uint32, error) {
	var nums []uint32
	for {
		b, ok := dec.Peek()
		if !ok || b == '\r' || b == '\n' {
			break
		}
		if b == ' ' {
			dec.pos++
			continue
		}
		if b == '(' {
			if _, err := dec.ReadRawList(); err != nil {
				return nil, err
			}
			continue
		}
		n, err := dec.ReadNumber()
		if err != nil {
			return nil, err
		}
		nums = append(nums, n)
	}
	return nums, dec.ReadCRLF()
}

func readACL(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in ACL mailbox: %v", err)
	}
	data := &imap.ACLData{Mailbox: mailbox, Rights: make(map[string]imap.ACLRights)}
	for {
		b, ok := dec.Peek()
		if !ok || b != ' ' {
			break
		}
		dec.pos++
		ident, err := dec.ReadString()
		if err != nil {
			return nil, fmt.Errorf("in ACL identifier: %v", err)
		}
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		rights, err := dec.ReadAtom()
		if err != nil {
			return nil, fmt.Errorf("in ACL rights: %v", err)
		}
		data.Rights[ident] = imap.ACLRights(rights)
	}
	return data, dec.ReadCRLF()
}

func readListRights(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	ident, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	required, err := dec.ReadAtom()
	if err != nil {
		return nil, err
	}
	data := &imap.ACLListRightsData{
		Mailbox:    mailbox,
		Identifier: ident,
		Required:   imap.ACLRights(required),
	}
	for {
		b, ok := dec.Peek()
		if !ok || b != ' ' {
			break
		}
		dec.pos++
		opt, err := dec.ReadAtom()
		if err != nil {
			return nil, err
		}
		data.Optional = append(data.Optional, imap.ACLRights(opt))
	}
	return data, dec.ReadCRLF()
}

func readMyRights(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	rights, err := dec.ReadAtom()
	if err != nil {
		return nil, err
	}
	return &imap.ACLMyRightsData{Mailbox: mailbox, Rights: imap.ACLRights(rights)}, dec.ReadCRLF()
}

func readQuota(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	root, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in QUOTA root: %v", err)
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data := &imap.QuotaData{Root: root}
	err = dec.ReadList(func() error {
		name, err := dec.ReadAtom()
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		usage, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		if err := dec.ReadSP(); err != nil {
			return err
		}
		limit, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		data.Resources = append(data.Resources, imap.QuotaResourceData{
			Name:  imap.QuotaResource(strings.ToUpper(name)),
			Usage: usage,
			Limit: limit,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("in QUOTA resources: %v", err)
	}
	return data, dec.ReadCRLF()
}

func readQuotaRoot(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in QUOTAROOT mailbox: %v", err)
	}
	data := &imap.QuotaRootData{Mailbox: mailbox}
	for {
		b, ok := dec.Peek()
		if !ok || b != ' ' {
			break
		}
		dec.pos++
		root, err := dec.ReadString()
		if err != nil {
			return nil, fmt.Errorf("in QUOTAROOT root: %v", err)
		}
		data.Roots = append(data.Roots, root)
	}
	return data, dec.ReadCRLF()
}

func readMetadata(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, err := dec.ReadString()
	if err != nil {
		return nil, fmt.Errorf("in METADATA mailbox: %v", err)
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data := &imap.MetadataData{Mailbox: mailbox, Entries: make(map[string]*string)}

	if b, ok := dec.Peek(); ok && b == '(' {
		// GETMETADATA result: parenthesized entry/value pairs.
		err := dec.ReadList(func() error {
			entry, err := dec.ReadString()
			if err != nil {
				return err
			}
			if err := dec.ReadSP(); err != nil {
				return err
			}
			value, ok, err := dec.ReadNString()
			if err != nil {
				return err
			}
			if ok {
				data.Entries[entry] = &value
			} else {
				data.Entries[entry] = nil
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("in METADATA entries: %v", err)
		}
		return data, dec.ReadCRLF()
	}

	// Unsolicited change notification: a bare entry list without values.
	for {
		entry, err := dec.ReadString()
		if err != nil {
			return nil, fmt.Errorf("in METADATA entry list: %v", err)
		}
		data.Entries[entry] = nil
		if b, ok := dec.Peek(); !ok || b != ' ' {
			break
		}
		dec.pos++
	}
	return data, dec.ReadCRLF()
}

func readVanished(dec *Decoder) (imap.Response, error) {
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	data := imap.VanishedData{}
	if b, ok := dec.Peek(); ok && b == '(' {
		dec.pos++
		word, err := dec.ReadAtom()
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(word, "EARLIER") {
			return nil, fmt.Errorf("unknown VANISHED modifier %q", word)
		}
		if err := dec.Expect(')'); err != nil {
			return nil, err
		}
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		data.Earlier = true
	}
	set, err := readUIDSetAtom(dec)
	if err != nil {
		return nil, fmt.Errorf("in VANISHED uid set: %v", err)
	}
	data.UIDs = *set
	return data, dec.ReadCRLF()
}

func readFetch(dec *Decoder, seqNum uint32) (imap.Response, error) {
	data := &imap.FetchData{SeqNum: seqNum}
	if err := dec.Expect('('); err != nil {
		return nil, err
	}
	first := true
	for {
		b, ok := dec.Peek()
		if !ok {
			return nil, fmt.Errorf("unterminated FETCH list")
		}
		if b == ')' {
			dec.pos++
			break
		}
		if !first {
			if err := dec.ReadSP(); err != nil {
				return nil, err
			}
		}
		first = false
		if err := readFetchItem(dec, data); err != nil {
			return nil, fmt.Errorf("in FETCH item: %v", err)
		}
	}
	return data, dec.ReadCRLF()
}

func readFetchItem(dec *Decoder, data *imap.FetchData) error {
	item, err := dec.readFetchItemName()
	if err != nil {
		return err
	}
	upper := strings.ToUpper(item)
	if err := dec.ReadSP(); err != nil {
		return err
	}

	switch {
	case upper == "FLAGS":
		flags, err := dec.ReadFlags()
		if err != nil {
			return err
		}
		data.Flags = flags
		data.FlagsSet = true
	case upper == "UID":
		n, err := dec.ReadNumber()
		if err != nil {
			return err
		}
		data.UID = imap.UID(n)
	case upper == "RFC822.SIZE":
		n, err := dec.ReadNumber64()
		if err != nil {
			return err
		}
		data.RFC822Size = int64(n)
	case upper == "INTERNALDATE":
		s, err := dec.ReadQuotedString()
		if err != nil {
			return err
		}
		t, err := time.Parse(imap.InternalDateLayout, s)
		if err != nil {
			return fmt.Errorf("invalid INTERNALDATE %q: %v", s, err)
		}
		data.InternalDate = t
	case upper == "ENVELOPE":
		env, err := readEnvelope(dec)
		if err != nil {
			return err
		}
		data.Envelope = env
	case upper == "MODSEQ":
		if err := dec.Expect('('); err != nil {
			return err
		}
		n, err := dec.ReadNumber64()
		if err != nil {
			return err
		}
		if err := dec.Expect(')'); err != nil {
			return err
		}
		data.ModSeq = n
	case upper == "BODYSTRUCTURE" || upper == "BODY":
		raw, err := dec.ReadRawList()
		if err != nil {
			return err
		}
		data.BodyStructure = raw
	case strings.HasPrefix(upper, "BODY["):
		payload, ok, err := dec.ReadNStringBytes()
		if err != nil {
			return err
		}
		if ok {
			if data.BodySections == nil {
				data.BodySections = make(map[string][]byte)
			}
			data.BodySections[item] = payload
		}
	default:
		// Unknown attribute from an extension we do not model. Skip its
		// value so the rest of the list still decodes.
		if err := dec.skipValue(); err != nil {
			return err
		}
	}
	return nil
}

// readFetchItemName reads a FETCH attribute name. Unlike an atom it may
// contain a bracketed section with nested lists and quoted strings, e.g.
// BODY[HEADER.FIELDS ("Subject")]<0>.
func (d *Decoder) readFetchItemName() (string, error) {
	start := d.pos
	depth := 0
	for !d.EOF() {
		b := d.data[d.pos]
		if depth == 0 && (b == ' ' || b == ')' || b == '\r' || b == '\n') {
			break
		}
		switch b {
		case '[':
			depth++
			d.pos++
		case ']':
			depth--
			d.pos++
		case '"':
			if _, err := d.ReadQuotedString(); err != nil {
				return "", err
			}
		default:
			d.pos++
		}
	}
	if d.pos == start {
		return "", fmt.Errorf("expected attribute name")
	}
	return string(d.data[start:d.pos]), nil
}

// skipValue consumes one value of unknown shape: a list, a string, a
// literal or a bare atom.
func (d *Decoder) skipValue() error {
	b, ok := d.Peek()
	if !ok {
		return fmt.Errorf("expected value")
	}
	switch b {
	case '(':
		_, err := d.ReadRawList()
		return err
	case '"':
		_, err := d.ReadQuotedString()
		return err
	case '{':
		_, err := d.ReadLiteral()
		return err
	default:
		_, err := d.ReadAtom()
		return err
	}
}

func readEnvelope(dec *Decoder) (*imap.Envelope, error) {
	if err := dec.Expect('('); err != nil {
		return nil, err
	}
	env := &imap.Envelope{}

	date, ok, err := dec.ReadNString()
	if err != nil {
		return nil, fmt.Errorf("in envelope date: %v", err)
	}
	if ok {
		// Servers echo whatever Date header the message carried. An
		// unparseable date stays zero instead of failing the fetch.
		if t, err := mail.ParseDate(date); err == nil {
			env.Date = t
		}
	}

	fields := []struct {
		name string
		dst  *string
	}{
		{"subject", &env.Subject},
	}
	for _, f := range fields {
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		s, _, err := dec.ReadNString()
		if err != nil {
			return nil, fmt.Errorf("in envelope %s: %v", f.name, err)
		}
		*f.dst = s
	}

	addrLists := []struct {
		name string
		dst  *[]*imap.Address
	}{
		{"from", &env.From},
		{"sender", &env.Sender},
		{"reply-to", &env.ReplyTo},
		{"to", &env.To},
		{"cc", &env.Cc},
		{"bcc", &env.Bcc},
	}
	for _, l := range addrLists {
		if err := dec.ReadSP(); err != nil {
			return nil, err
		}
		addrs, err := readAddressList(dec)
		if err != nil {
			return nil, fmt.Errorf("in envelope %s: %v", l.name, err)
		}
		*l.dst = addrs
	}

	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	env.InReplyTo, _, err = dec.ReadNString()
	if err != nil {
		return nil, fmt.Errorf("in envelope in-reply-to: %v", err)
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	env.MessageID, _, err = dec.ReadNString()
	if err != nil {
		return nil, fmt.Errorf("in envelope message-id: %v", err)
	}
	return env, dec.Expect(')')
}

func readAddressList(dec *Decoder) ([]*imap.Address, error) {
	if dec.hasNIL() {
		return nil, nil
	}
	var addrs []*imap.Address
	err := dec.ReadList(func() error {
		addr, err := readAddress(dec)
		if err != nil {
			return err
		}
		if addr != nil {
			addrs = append(addrs, addr)
		}
		return nil
	})
	return addrs, err
}

// readAddress reads one parenthesized address quadruple. RFC 2822 group
// markers (a nil host) come back as nil.
func readAddress(dec *Decoder) (*imap.Address, error) {
	if err := dec.Expect('('); err != nil {
		return nil, err
	}
	name, _, err := dec.ReadNString()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	// Source route, obsolete.
	if _, _, err := dec.ReadNString(); err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	mailbox, _, err := dec.ReadNString()
	if err != nil {
		return nil, err
	}
	if err := dec.ReadSP(); err != nil {
		return nil, err
	}
	host, hostSet, err := dec.ReadNString()
	if err != nil {
		return nil, err
	}
	if err := dec.Expect(')'); err != nil {
		return nil, err
	}
	if !hostSet {
		return nil, nil
	}
	return &imap.Address{Name: name, Mailbox: mailbox, Host: host}, nil
}
