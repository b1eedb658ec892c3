package wire

import (
	"testing"
)

func dec(s string) *Decoder {
	return NewDecoder([]byte(s))
}

func TestReadAtom(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple atom", input: "INBOX ", want: "INBOX"},
		{name: "atom with digits", input: "TAG123 ", want: "TAG123"},
		{name: "atom at EOF", input: "HELLO", want: "HELLO"},
		{name: "atom stops at space", input: "FOO BAR", want: "FOO"},
		{name: "atom stops at paren", input: "FLAGS(", want: "FLAGS"},
		{name: "atom stops at open brace", input: "DATA{10}", want: "DATA"},
		{name: "atom stops at bracket", input: "OK]", want: "OK"},
		{name: "atom with dash", input: "READ-WRITE]", want: "READ-WRITE"},
		{name: "atom with dot", input: "RFC822.SIZE ", want: "RFC822.SIZE"},
		{name: "backslash is not atom", input: "\\Seen ", wantErr: true},
		{name: "empty input", input: "", wantErr: true},
		{name: "starts with space", input: " FOO", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadAtom()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadAtom() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReadAtom() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadQuotedString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: `"hello"`, want: "hello"},
		{name: "empty", input: `""`, want: ""},
		{name: "with spaces", input: `"hello world"`, want: "hello world"},
		{name: "escaped quote", input: `"say \"hi\""`, want: `say "hi"`},
		{name: "escaped backslash", input: `"path\\dir"`, want: `path\dir`},
		{name: "no opening quote", input: `hello"`, wantErr: true},
		{name: "unterminated", input: `"hello`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadQuotedString()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadQuotedString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReadQuotedString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadLiteral(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "simple", input: "{5}\r\nhello rest", want: "hello"},
		{name: "empty literal", input: "{0}\r\n", want: ""},
		{name: "literal with CRLF", input: "{6}\r\na\r\nb\r\nx", want: "a\r\nb\r\n"},
		{name: "non-sync marker", input: "{5+}\r\nhello", want: "hello"},
		{name: "payload shorter than declared", input: "{10}\r\nhi", wantErr: true},
		{name: "missing CRLF", input: "{5}hello", wantErr: true},
		{name: "garbage size", input: "{5x}\r\nhello", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadLiteral()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadLiteral() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ReadLiteral() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "atom form", input: "INBOX ", want: "INBOX"},
		{name: "quoted form", input: `"My Mail"`, want: "My Mail"},
		{name: "literal form", input: "{4}\r\nWork", want: "Work"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadString()
			if err != nil {
				t.Fatalf("ReadString() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadNString(t *testing.T) {
	d := dec("NIL next")
	_, ok, err := d.ReadNString()
	if err != nil || ok {
		t.Fatalf("ReadNString(NIL) = ok=%v err=%v, want NIL", ok, err)
	}

	d = dec("NILE ")
	s, ok, err := d.ReadNString()
	if err != nil || !ok || s != "NILE" {
		t.Fatalf("ReadNString(NILE) = %q ok=%v err=%v, want atom NILE", s, ok, err)
	}
}

func TestReadNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{name: "zero", input: "0 ", want: 0},
		{name: "simple", input: "42 ", want: 42},
		{name: "max uint32", input: "4294967295", want: 4294967295},
		{name: "overflow", input: "4294967296", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadNumber()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadNumber() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReadNumber() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadFlags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "()", want: nil},
		{name: "single", input: `(\Seen)`, want: []string{`\Seen`}},
		{name: "several", input: `(\Seen \Flagged custom)`, want: []string{`\Seen`, `\Flagged`, "custom"}},
		{name: "wildcard", input: `(\Deleted \*)`, want: []string{`\Deleted`, `\*`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := dec(tt.input).ReadFlags()
			if err != nil {
				t.Fatalf("ReadFlags() error = %v", err)
			}
			if len(flags) != len(tt.want) {
				t.Fatalf("ReadFlags() = %v, want %v", flags, tt.want)
			}
			for i := range flags {
				if string(flags[i]) != tt.want[i] {
					t.Errorf("flag %d = %q, want %q", i, flags[i], tt.want[i])
				}
			}
		})
	}
}

func TestReadRawList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "flat", input: `("TEXT" "PLAIN") tail`, want: `("TEXT" "PLAIN")`},
		{name: "nested", input: `((a) (b (c)))`, want: `((a) (b (c)))`},
		{name: "paren inside quotes", input: `("a)b" c)`, want: `("a)b" c)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec(tt.input).ReadRawList()
			if err != nil {
				t.Fatalf("ReadRawList() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ReadRawList() = %q, want %q", got, tt.want)
			}
		})
	}
}
