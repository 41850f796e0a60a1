package crc8

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidHexFormat is returned when hex input contains a non-hex character.
	ErrInvalidHexFormat = errors.New("invalid hex format")

	// ErrUnknownFormat is returned by ParseFormat for anything other than "hex" or "text".
	ErrUnknownFormat = errors.New("unknown input format")
)

// DecodeError describes why an input could not be turned into bytes.
// Char and Offset point at the first rejected character of the cleaned input.
type DecodeError struct {
	Input  string
	Char   rune
	Offset int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: unexpected character %q at offset %d", e.Err, e.Char, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeError checks if a given error is a DecodeError.
func IsDecodeError(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// AsDecodeError extracts a DecodeError from err, or returns nil.
func AsDecodeError(err error) *DecodeError {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	return nil
}
