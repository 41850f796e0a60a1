package cliutil

import (
	"fmt"
	"io"

	"github.com/daemonp/crc8calc/internal/crc8"
)

// PrintResult writes the human readable view of a successful result.
func PrintResult(w io.Writer, r crc8.Result) error {
	_, err := fmt.Fprintf(w,
		"Algorithm:  %s (%s)\nInput:      %d bytes\nHEX:        %s\nDEC:        %s\nBIN:        %s\nTime:       %.3f µs\n",
		r.Algorithm, r.Polynomial, r.DataLength, r.Hex, r.Dec, r.Bin, r.ElapsedMicros,
	)
	return err
}
