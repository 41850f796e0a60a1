package crc8

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/daemonp/crc8calc/internal/util"
)

// Result is the outcome of one Compute call. When Success is false only
// Error is meaningful.
type Result struct {
	Success       bool    `json:"success" yaml:"success"`
	Value         uint8   `json:"result" yaml:"result"`
	Hex           string  `json:"hex" yaml:"hex"`
	Dec           string  `json:"dec" yaml:"dec"`
	Bin           string  `json:"bin" yaml:"bin"`
	Algorithm     string  `json:"algorithm" yaml:"algorithm"`
	Polynomial    string  `json:"polynomial" yaml:"polynomial"`
	DataLength    int     `json:"dataLength" yaml:"dataLength"`
	ElapsedMicros float64 `json:"processTime" yaml:"processTime"`
	Error         string  `json:"error,omitempty" yaml:"error,omitempty"`
}

type failure struct {
	Success bool   `json:"success" yaml:"success"`
	Error   string `json:"error" yaml:"error"`
}

// NewResult renders a checksum into its hex, decimal and binary forms.
func NewResult(sum uint8, p Params, dataLength int, elapsedMicros float64) Result {
	return Result{
		Success:       true,
		Value:         sum,
		Hex:           fmt.Sprintf("0x%02X", sum),
		Dec:           strconv.Itoa(int(sum)),
		Bin:           fmt.Sprintf("%08b", sum),
		Algorithm:     p.Name,
		Polynomial:    fmt.Sprintf("0x%X", p.Polynomial),
		DataLength:    dataLength,
		ElapsedMicros: util.Round(elapsedMicros, 3),
	}
}

// Failure builds a failed Result carrying err's message.
func Failure(err error) Result {
	return Result{Error: err.Error()}
}

// MarshalJSON drops the checksum fields of a failed result.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.Success {
		return json.Marshal(failure{Error: r.Error})
	}
	type plain Result
	return json.Marshal(plain(r))
}

// MarshalYAML mirrors MarshalJSON for yaml output.
func (r Result) MarshalYAML() (interface{}, error) {
	if !r.Success {
		return failure{Error: r.Error}, nil
	}
	type plain Result
	return plain(r), nil
}
