package client

import (
	imap "github.com/halcyonmail/go-imap"
)

// checkArg rejects argument values containing control characters before
// any byte of the command is written. CR or LF inside an argument would
// otherwise desynchronize the command framing.
func checkArg(name, value string) error {
	for _, r := range value {
		if r < 0x20 || r == 0x7f {
			return &imap.ValidateError{Arg: name, Char: r}
		}
	}
	return nil
}

// checkArgs validates name/value pairs in order and reports the first
// offender.
func checkArgs(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if err := checkArg(pairs[i], pairs[i+1]); err != nil {
			return err
		}
	}
	return nil
}
