package crc8

import "time"

// Compute decodes input according to format and calculates its CRC-8/MAXIM.
// Decode failures are reported in the returned Result, never as a panic.
func Compute(input string, format Format) Result {
	start := time.Now()

	data, err := Decode(input, format)
	if err != nil {
		return Failure(err)
	}

	sum := Checksum(data, Maxim)
	elapsed := float64(time.Since(start).Nanoseconds()) / float64(time.Microsecond)

	return NewResult(sum, Maxim, len(data), elapsed)
}

var examples = []string{
	"C8 64 54 00 00 11 22 33",
	"01 64 FF E2 00 00 00 11",
	"48 65 6C 6C 6F 20 57 6F",
	"31 32 33 34 35 36 37 38",
	"C8 64 54 00 00",
	"01 64 FF E2 00 00 00 00 11",
	"01 64 00 1E 00 00 01 00 B3 AA",
}

// Examples returns the built-in sample inputs, in hex format.
func Examples() []string {
	out := make([]string, len(examples))
	copy(out, examples)
	return out
}
