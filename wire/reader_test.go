package wire

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	imap "github.com/halcyonmail/go-imap"
)

func TestReadResponseUnit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "simple line",
			input: "* OK ready\r\n",
			want:  "* OK ready\r\n",
		},
		{
			name:  "stops at unit boundary",
			input: "a1 OK done\r\n* 2 EXISTS\r\n",
			want:  "a1 OK done\r\n",
		},
		{
			name:  "literal with CRLF inside",
			input: "* 1 FETCH (BODY[] {12}\r\nline1\r\nline2)\r\n",
			want:  "* 1 FETCH (BODY[] {12}\r\nline1\r\nline2)\r\n",
		},
		{
			name:  "two literals on one logical line",
			input: "* METADATA \"\" ({3}\r\nfoo {3}\r\nbar)\r\n",
			want:  "* METADATA \"\" ({3}\r\nfoo {3}\r\nbar)\r\n",
		},
		{
			name:  "non-sync literal marker",
			input: "* 1 FETCH (BODY[] {5+}\r\nhello)\r\n",
			want:  "* 1 FETCH (BODY[] {5+}\r\nhello)\r\n",
		},
		{
			name:  "literal containing brace text",
			input: "* 1 FETCH (BODY[] {7}\r\nx {99}\r)\r\n",
			want:  "* 1 FETCH (BODY[] {7}\r\nx {99}\r)\r\n",
		},
		{
			name:    "EOF inside literal",
			input:   "* 1 FETCH (BODY[] {100}\r\nshort",
			wantErr: true,
		},
		{
			name:    "EOF mid line",
			input:   "* OK no terminator",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := bufio.NewReader(strings.NewReader(tt.input))
			got, err := ReadResponseUnit(br)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadResponseUnit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, imap.ErrConnectionLost) {
					t.Errorf("ReadResponseUnit() error = %v, want ErrConnectionLost", err)
				}
				return
			}
			if string(got) != tt.want {
				t.Errorf("ReadResponseUnit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadResponseUnitEOF(t *testing.T) {
	br := bufio.NewReader(strings.NewReader(""))
	_, err := ReadResponseUnit(br)
	if err != io.EOF {
		t.Fatalf("ReadResponseUnit() on empty stream = %v, want io.EOF", err)
	}
}

func TestReadResponseUnitSequence(t *testing.T) {
	input := "* 3 EXISTS\r\n* 1 RECENT\r\na1 OK [READ-WRITE] SELECT completed\r\n"
	br := bufio.NewReader(strings.NewReader(input))

	want := []string{
		"* 3 EXISTS\r\n",
		"* 1 RECENT\r\n",
		"a1 OK [READ-WRITE] SELECT completed\r\n",
	}
	for i, w := range want {
		got, err := ReadResponseUnit(br)
		if err != nil {
			t.Fatalf("unit %d: %v", i, err)
		}
		if string(got) != w {
			t.Errorf("unit %d = %q, want %q", i, got, w)
		}
	}
	if _, err := ReadResponseUnit(br); err != io.EOF {
		t.Errorf("after last unit: error = %v, want io.EOF", err)
	}
}
