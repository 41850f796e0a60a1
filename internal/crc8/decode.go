package crc8

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Format tells Decode how to interpret the input string.
type Format string

const (
	FormatHex  Format = "hex"
	FormatText Format = "text"
)

var hexPrefix = regexp.MustCompile("(?i)0x")

// ParseFormat converts a user supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatHex, FormatText:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %q or %q)", ErrUnknownFormat, s, FormatHex, FormatText)
	}
}

// Decode converts input into the byte sequence the checksum is calculated over.
// It panics on a Format other than FormatHex or FormatText.
func Decode(input string, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return encodeText(input), nil
	case FormatHex:
		return decodeHex(input)
	default:
		panic(fmt.Sprintf("crc8: unknown format %q", string(format)))
	}
}

// CleanHex strips whitespace and every "0x" marker from a hex string.
func CleanHex(input string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '\uFEFF' {
			return -1
		}
		return r
	}, input)
	return hexPrefix.ReplaceAllString(stripped, "")
}

func decodeHex(input string) ([]byte, error) {
	cleaned := CleanHex(input)

	for i, r := range []rune(cleaned) {
		if !isHexDigit(r) {
			return nil, &DecodeError{Input: input, Char: r, Offset: i, Err: ErrInvalidHexFormat}
		}
	}

	// Odd length: the first digit is the low nibble of the first byte, "A" is 0x0A.
	if len(cleaned)%2 != 0 {
		cleaned = "0" + cleaned
	}

	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHexFormat, err)
	}
	return data, nil
}

func isHexDigit(r rune) bool {
	return ('0' <= r && r <= '9') || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}
