package wire

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	imap "github.com/halcyonmail/go-imap"
)

func u32(n uint32) *uint32 { return &n }
func u64(n uint64) *uint64 { return &n }
func str(s string) *string { return &s }

func parseOne(t *testing.T, input string) imap.Response {
	t.Helper()
	resp, rest, err := ParseResponse([]byte(input))
	if err != nil {
		t.Fatalf("ParseResponse(%q) error = %v", input, err)
	}
	if len(rest) != 0 {
		t.Fatalf("ParseResponse(%q) left %q unconsumed", input, rest)
	}
	return resp
}

func TestParseStatusResponses(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *imap.StatusResponse
	}{
		{
			name:  "tagged OK",
			input: "a1 OK LOGIN completed\r\n",
			want: &imap.StatusResponse{
				Tag:  "a1",
				Type: imap.StatusResponseTypeOK,
				Text: "LOGIN completed",
			},
		},
		{
			name:  "tagged NO",
			input: "a2 NO [TRYCREATE] no such mailbox\r\n",
			want: &imap.StatusResponse{
				Tag:  "a2",
				Type: imap.StatusResponseTypeNO,
				Code: imap.ResponseCodeTryCreate,
				Text: "no such mailbox",
			},
		},
		{
			name:  "untagged BYE",
			input: "* BYE shutting down\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeBYE,
				Text: "shutting down",
			},
		},
		{
			name:  "unseen code",
			input: "* OK [UNSEEN 12] first unseen\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeUnseen,
				Arg:  &imap.CodeArg{Num: u32(12), Raw: "12"},
				Text: "first unseen",
			},
		},
		{
			name:  "uidvalidity code",
			input: "* OK [UIDVALIDITY 3857529045] valid\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeUIDValidity,
				Arg:  &imap.CodeArg{Num: u32(3857529045), Raw: "3857529045"},
				Text: "valid",
			},
		},
		{
			name:  "permanentflags code",
			input: "* OK [PERMANENTFLAGS (\\Deleted \\Seen \\*)] limited\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodePermanentFlags,
				Arg: &imap.CodeArg{
					Flags: []imap.Flag{imap.FlagDeleted, imap.FlagSeen, imap.FlagWildcard},
					Raw:   "(\\Deleted \\Seen \\*)",
				},
				Text: "limited",
			},
		},
		{
			name:  "highestmodseq code",
			input: "* OK [HIGHESTMODSEQ 715194045007] ok\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeHighestModSeq,
				Arg:  &imap.CodeArg{ModSeq: u64(715194045007), Raw: "715194045007"},
				Text: "ok",
			},
		},
		{
			name:  "capability code in greeting",
			input: "* OK [CAPABILITY IMAP4rev1 IDLE STARTTLS] ready\r\n",
			want: &imap.StatusResponse{
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeCapability,
				Arg: &imap.CodeArg{
					Caps: []string{"IMAP4rev1", "IDLE", "STARTTLS"},
					Raw:  "IMAP4rev1 IDLE STARTTLS",
				},
				Text: "ready",
			},
		},
		{
			name:  "appenduid code",
			input: "a3 OK [APPENDUID 38505 3955] APPEND completed\r\n",
			want: &imap.StatusResponse{
				Tag:  "a3",
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeAppendUID,
				Arg: &imap.CodeArg{
					AppendUID: &imap.AppendData{UIDValidity: 38505, UID: 3955},
					Raw:       "38505 3955",
				},
				Text: "APPEND completed",
			},
		},
		{
			name:  "copyuid code",
			input: "a4 OK [COPYUID 38505 304,319:320 3956:3958] done\r\n",
			want: &imap.StatusResponse{
				Tag:  "a4",
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeCopyUID,
				Arg: &imap.CodeArg{
					CopyUID: &imap.CopyData{
						UIDValidity: 38505,
						SourceUIDs: imap.UIDSet{Set: []imap.NumRange{
							{Start: 304, Stop: 304},
							{Start: 319, Stop: 320},
						}},
						DestUIDs: imap.UIDSet{Set: []imap.NumRange{
							{Start: 3956, Stop: 3958},
						}},
					},
					Raw: "38505 304,319:320 3956:3958",
				},
				Text: "done",
			},
		},
		{
			name:  "metadata maxsize code",
			input: "a5 NO [METADATA MAXSIZE 1024] too big\r\n",
			want: &imap.StatusResponse{
				Tag:  "a5",
				Type: imap.StatusResponseTypeNO,
				Code: imap.ResponseCodeMetadata,
				Arg:  &imap.CodeArg{Num: u32(1024), Raw: "MAXSIZE 1024"},
				Text: "too big",
			},
		},
		{
			name:  "read-only completion",
			input: "a6 OK [READ-ONLY] EXAMINE completed\r\n",
			want: &imap.StatusResponse{
				Tag:  "a6",
				Type: imap.StatusResponseTypeOK,
				Code: imap.ResponseCodeReadOnly,
				Text: "EXAMINE completed",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %s\nwant %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
		})
	}
}

func TestParseContinuation(t *testing.T) {
	got := parseOne(t, "+ idling\r\n")
	want := &imap.ContinuationRequest{Text: "idling"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}

	got = parseOne(t, "+\r\n")
	want = &imap.ContinuationRequest{}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %#v, want %#v", got, want)
	}
}

func TestParseMailboxData(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  imap.Response
	}{
		{name: "exists", input: "* 23 EXISTS\r\n", want: imap.ExistsData(23)},
		{name: "recent", input: "* 5 RECENT\r\n", want: imap.RecentData(5)},
		{name: "expunge", input: "* 44 EXPUNGE\r\n", want: imap.ExpungeData(44)},
		{
			name:  "flags",
			input: "* FLAGS (\\Answered \\Flagged \\Deleted \\Seen \\Draft)\r\n",
			want: imap.FlagsData{
				imap.FlagAnswered, imap.FlagFlagged, imap.FlagDeleted,
				imap.FlagSeen, imap.FlagDraft,
			},
		},
		{
			name:  "capability",
			input: "* CAPABILITY IMAP4rev1 IDLE QUOTA ACL AUTH=PLAIN\r\n",
			want:  imap.CapabilityData{"IMAP4rev1", "IDLE", "QUOTA", "ACL", "AUTH=PLAIN"},
		},
		{
			name:  "list",
			input: "* LIST (\\HasNoChildren) \"/\" \"INBOX/Sent Mail\"\r\n",
			want: &imap.ListData{
				Attrs:   []imap.MailboxAttr{imap.MailboxAttrHasNoChildren},
				Delim:   '/',
				Mailbox: "INBOX/Sent Mail",
			},
		},
		{
			name:  "list nil delimiter",
			input: "* LIST (\\Noselect) NIL foo\r\n",
			want: &imap.ListData{
				Attrs:   []imap.MailboxAttr{imap.MailboxAttrNoSelect},
				Mailbox: "foo",
			},
		},
		{
			name:  "lsub",
			input: "* LSUB () \".\" INBOX.Drafts\r\n",
			want:  &imap.ListData{Delim: '.', Mailbox: "INBOX.Drafts"},
		},
		{
			name:  "status",
			input: "* STATUS blurdybloop (MESSAGES 231 UIDNEXT 44292 HIGHESTMODSEQ 7011231777)\r\n",
			want: &imap.StatusData{
				Mailbox:       "blurdybloop",
				NumMessages:   u32(231),
				UIDNext:       u32(44292),
				HighestModSeq: u64(7011231777),
			},
		},
		{
			name:  "search",
			input: "* SEARCH 2 3 6\r\n",
			want:  &imap.SearchData{AllNums: []uint32{2, 3, 6}},
		},
		{
			name:  "search empty",
			input: "* SEARCH\r\n",
			want:  &imap.SearchData{},
		},
		{
			name:  "search with modseq",
			input: "* SEARCH 2 5 6 (MODSEQ 917162500)\r\n",
			want:  &imap.SearchData{AllNums: []uint32{2, 5, 6}},
		},
		{
			name:  "sort",
			input: "* SORT 5 3 4 1 2\r\n",
			want:  &imap.SortData{AllNums: []uint32{5, 3, 4, 1, 2}},
		},
		{
			name:  "acl",
			input: "* ACL INBOX fred rwipsldexta bob lrs\r\n",
			want: &imap.ACLData{
				Mailbox: "INBOX",
				Rights: map[string]imap.ACLRights{
					"fred": "rwipsldexta",
					"bob":  "lrs",
				},
			},
		},
		{
			name:  "listrights",
			input: "* LISTRIGHTS INBOX fred lr w i\r\n",
			want: &imap.ACLListRightsData{
				Mailbox:    "INBOX",
				Identifier: "fred",
				Required:   "lr",
				Optional:   []imap.ACLRights{"w", "i"},
			},
		},
		{
			name:  "myrights",
			input: "* MYRIGHTS INBOX lrwipkxtea\r\n",
			want:  &imap.ACLMyRightsData{Mailbox: "INBOX", Rights: "lrwipkxtea"},
		},
		{
			name:  "quota",
			input: "* QUOTA \"\" (STORAGE 10 512 MESSAGE 20 100)\r\n",
			want: &imap.QuotaData{
				Root: "",
				Resources: []imap.QuotaResourceData{
					{Name: imap.QuotaResourceStorage, Usage: 10, Limit: 512},
					{Name: imap.QuotaResourceMessage, Usage: 20, Limit: 100},
				},
			},
		},
		{
			name:  "quotaroot",
			input: "* QUOTAROOT INBOX \"\"\r\n",
			want:  &imap.QuotaRootData{Mailbox: "INBOX", Roots: []string{""}},
		},
		{
			name:  "metadata with values",
			input: "* METADATA INBOX (/shared/comment \"my comment\" /private/color NIL)\r\n",
			want: &imap.MetadataData{
				Mailbox: "INBOX",
				Entries: map[string]*string{
					"/shared/comment": str("my comment"),
					"/private/color":  nil,
				},
			},
		},
		{
			name:  "metadata literal value",
			input: "* METADATA \"\" (/shared/vendor/name {4}\r\nacme)\r\n",
			want: &imap.MetadataData{
				Entries: map[string]*string{"/shared/vendor/name": str("acme")},
			},
		},
		{
			name:  "metadata change notification",
			input: "* METADATA INBOX /shared/comment /private/color\r\n",
			want: &imap.MetadataData{
				Mailbox: "INBOX",
				Entries: map[string]*string{
					"/shared/comment": nil,
					"/private/color":  nil,
				},
			},
		},
		{
			name:  "vanished",
			input: "* VANISHED 405,407,410:420\r\n",
			want: imap.VanishedData{
				UIDs: imap.UIDSet{Set: []imap.NumRange{
					{Start: 405, Stop: 405},
					{Start: 407, Stop: 407},
					{Start: 410, Stop: 420},
				}},
			},
		},
		{
			name:  "vanished earlier",
			input: "* VANISHED (EARLIER) 300:310\r\n",
			want: imap.VanishedData{
				Earlier: true,
				UIDs:    imap.UIDSet{Set: []imap.NumRange{{Start: 300, Stop: 310}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseOne(t, tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %s\nwant %s", spew.Sdump(got), spew.Sdump(tt.want))
			}
		})
	}
}

func TestParseFetch(t *testing.T) {
	t.Run("flags uid size", func(t *testing.T) {
		got := parseOne(t, "* 12 FETCH (FLAGS (\\Seen) UID 4827 RFC822.SIZE 44827)\r\n")
		want := &imap.FetchData{
			SeqNum:     12,
			Flags:      []imap.Flag{imap.FlagSeen},
			FlagsSet:   true,
			UID:        4827,
			RFC822Size: 44827,
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %s\nwant %s", spew.Sdump(got), spew.Sdump(want))
		}
	})

	t.Run("empty flag list", func(t *testing.T) {
		got := parseOne(t, "* 3 FETCH (FLAGS ())\r\n")
		want := &imap.FetchData{SeqNum: 3, FlagsSet: true}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %s\nwant %s", spew.Sdump(got), spew.Sdump(want))
		}
	})

	t.Run("internaldate", func(t *testing.T) {
		got := parseOne(t, "* 1 FETCH (INTERNALDATE \"17-Jul-1996 02:44:25 -0700\")\r\n").(*imap.FetchData)
		want := time.Date(1996, time.July, 17, 2, 44, 25, 0, time.FixedZone("", -7*3600))
		if !got.InternalDate.Equal(want) {
			t.Errorf("InternalDate = %v, want %v", got.InternalDate, want)
		}
	})

	t.Run("body section literal", func(t *testing.T) {
		got := parseOne(t, "* 2 FETCH (BODY[HEADER.FIELDS (SUBJECT)] {19}\r\nSubject: greetings\n)\r\n").(*imap.FetchData)
		body, ok := got.BodySections["BODY[HEADER.FIELDS (SUBJECT)]"]
		if !ok {
			t.Fatalf("section missing, have %v", got.BodySections)
		}
		if string(body) != "Subject: greetings\n" {
			t.Errorf("section = %q", body)
		}
	})

	t.Run("body section nil", func(t *testing.T) {
		got := parseOne(t, "* 2 FETCH (BODY[1] NIL)\r\n").(*imap.FetchData)
		if len(got.BodySections) != 0 {
			t.Errorf("NIL section stored: %v", got.BodySections)
		}
	})

	t.Run("modseq", func(t *testing.T) {
		got := parseOne(t, "* 7 FETCH (MODSEQ (12121231000))\r\n").(*imap.FetchData)
		if got.ModSeq != 12121231000 {
			t.Errorf("ModSeq = %d", got.ModSeq)
		}
	})

	t.Run("bodystructure raw", func(t *testing.T) {
		raw := `("TEXT" "PLAIN" ("CHARSET" "US-ASCII") NIL NIL "7BIT" 3028 92)`
		got := parseOne(t, "* 4 FETCH (BODYSTRUCTURE "+raw+")\r\n").(*imap.FetchData)
		if got.BodyStructure != raw {
			t.Errorf("BodyStructure = %q, want %q", got.BodyStructure, raw)
		}
	})

	t.Run("envelope", func(t *testing.T) {
		input := "* 8 FETCH (ENVELOPE (" +
			"\"Wed, 17 Jul 1996 02:23:25 -0700\" " +
			"\"IMAP4rev1 WG mtg summary\" " +
			"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
			"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
			"((\"Terry Gray\" NIL \"gray\" \"cac.washington.edu\")) " +
			"((NIL NIL \"imap\" \"cac.washington.edu\")) " +
			"NIL NIL NIL " +
			"\"<B27397-0100000@cac.washington.edu>\"))\r\n"
		got := parseOne(t, input).(*imap.FetchData)
		env := got.Envelope
		if env == nil {
			t.Fatal("nil envelope")
		}
		if env.Subject != "IMAP4rev1 WG mtg summary" {
			t.Errorf("Subject = %q", env.Subject)
		}
		if len(env.From) != 1 || env.From[0].Name != "Terry Gray" ||
			env.From[0].Mailbox != "gray" || env.From[0].Host != "cac.washington.edu" {
			t.Errorf("From = %s", spew.Sdump(env.From))
		}
		if len(env.To) != 1 || env.To[0].String() != "imap@cac.washington.edu" {
			t.Errorf("To = %s", spew.Sdump(env.To))
		}
		if env.MessageID != "<B27397-0100000@cac.washington.edu>" {
			t.Errorf("MessageID = %q", env.MessageID)
		}
		if env.Date.IsZero() {
			t.Error("Date is zero")
		}
	})

	t.Run("unknown attribute skipped", func(t *testing.T) {
		got := parseOne(t, "* 9 FETCH (X-GM-LABELS (\"\\\\Inbox\") UID 99)\r\n").(*imap.FetchData)
		if got.UID != 99 {
			t.Errorf("UID = %d, want 99", got.UID)
		}
	})
}

func TestParseUnknownUntagged(t *testing.T) {
	resp := parseOne(t, "* NAMESPACE ((\"\" \"/\")) NIL NIL\r\n")
	u, ok := resp.(*imap.UnknownData)
	if !ok {
		t.Fatalf("got %T, want *imap.UnknownData", resp)
	}
	if u.Name != "NAMESPACE" {
		t.Errorf("Name = %q", u.Name)
	}
	if string(u.Raw) != "* NAMESPACE ((\"\" \"/\")) NIL NIL\r\n" {
		t.Errorf("Raw = %q", u.Raw)
	}
}

func TestParseRest(t *testing.T) {
	input := "* 1 EXISTS\r\n* 2 RECENT\r\n"
	resp, rest, err := ParseResponse([]byte(input))
	if err != nil {
		t.Fatal(err)
	}
	if resp != imap.ExistsData(1) {
		t.Errorf("first = %#v", resp)
	}
	if string(rest) != "* 2 RECENT\r\n" {
		t.Fatalf("rest = %q", rest)
	}
	resp, rest, err = ParseResponse(rest)
	if err != nil {
		t.Fatal(err)
	}
	if resp != imap.RecentData(2) {
		t.Errorf("second = %#v", resp)
	}
	if len(rest) != 0 {
		t.Errorf("trailing rest = %q", rest)
	}
}

func TestParseDeterministic(t *testing.T) {
	// Decoding the same buffer twice yields structurally equal results:
	// the parser neither mutates its input nor keeps state across calls.
	inputs := []string{
		"a1 OK [APPENDUID 38505 3955] APPEND completed\r\n",
		"* LIST (\\Noselect) \"/\" foo\r\n",
		"* 12 FETCH (UID 101 FLAGS (\\Seen) BODY[] {3}\r\nabc)\r\n",
		"* STATUS INBOX (MESSAGES 231 UIDNEXT 44292)\r\n",
		"* VANISHED (EARLIER) 300:310,405\r\n",
	}
	for _, input := range inputs {
		buf := []byte(input)
		first, rest1, err := ParseResponse(buf)
		if err != nil {
			t.Fatalf("ParseResponse(%q): %v", input, err)
		}
		second, rest2, err := ParseResponse(buf)
		if err != nil {
			t.Fatalf("second ParseResponse(%q): %v", input, err)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("two decodes of %q differ:\nfirst: %ssecond: %s",
				input, spew.Sdump(first), spew.Sdump(second))
		}
		if !reflect.DeepEqual(rest1, rest2) {
			t.Errorf("remainders of %q differ: %q vs %q", input, rest1, rest2)
		}
		if string(buf) != input {
			t.Errorf("decoding mutated the input buffer: %q", buf)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "bad status type", input: "a1 WAT done\r\n"},
		{name: "overflow seq number", input: "* 4294967296 EXISTS\r\n"},
		{name: "unterminated code", input: "* OK [UIDNEXT 5 no bracket\r\n"},
		{name: "garbage fetch list", input: "* 3 FETCH FLAGS\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseResponse([]byte(tt.input))
			if err == nil {
				t.Fatalf("ParseResponse(%q) succeeded, want error", tt.input)
			}
			var pe *imap.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *imap.ParseError", err)
			}
			if tt.input != "" && len(pe.Data) == 0 {
				t.Error("ParseError carries no offending bytes")
			}
		})
	}
}
