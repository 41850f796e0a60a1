package crc8

import (
	textunicode "golang.org/x/text/encoding/unicode"
)

// encodeText returns the UTF-8 bytes of s. Ill-formed sequences are replaced
// with U+FFFD so the result is always valid UTF-8.
func encodeText(s string) []byte {
	out, err := textunicode.UTF8.NewEncoder().String(s)
	if err != nil {
		return []byte(s)
	}
	return []byte(out)
}
