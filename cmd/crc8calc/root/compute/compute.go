package compute

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cliutil"
	"github.com/daemonp/crc8calc/internal/crc8"
)

func NewComputeCmd() *cobra.Command {
	var (
		formatFlag string
		pad        int
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "compute [input...]",
		Short: "Calculate the checksum of hex bytes or text",
		Long: heredoc.Doc(`
			Calculate the CRC-8/MAXIM checksum of the given input.

			In hex mode every argument is one or more bytes; whitespace and 0x
			markers are ignored and an odd digit count is padded on the left.
			In text mode the arguments are joined with spaces and encoded as UTF-8.
			With no arguments the input is read from stdin.
		`),
		Example: heredoc.Doc(`
			# Checksum of a byte grid
			$ crc8calc compute C8 64 54 00 00 11 22 33

			# Fill missing cells with 00 up to 9 bytes
			$ crc8calc compute --pad 9 01 64 FF E2

			# Checksum of text, as JSON
			$ crc8calc compute --format text -o json 123456789
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := crc8.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			if pad < 0 {
				return fmt.Errorf("--pad must not be negative, got %d", pad)
			}

			input, err := readInput(cmd, args, format)
			if err != nil {
				return err
			}
			if format == crc8.FormatHex {
				input = PadHex(input, pad)
			}

			app, err := cliutil.LoadApp(cmd)
			if err != nil {
				return err
			}

			result := crc8.Compute(input, format)
			app.Log.Debug("Computed %s over %d bytes in %.3f µs", result.Algorithm, result.DataLength, result.ElapsedMicros)

			if result.Success && !noHistory {
				h, err := app.OpenHistory()
				if err != nil {
					app.Log.Warning("History unavailable: %v", err)
				} else if _, err := h.Add(input, format, result); err != nil {
					app.Log.Warning("Failed to record result: %v", err)
				}
			}

			if err := cliutil.HandleOutput(cmd, result, func(w io.Writer) error {
				if !result.Success {
					return nil
				}
				return cliutil.PrintResult(w, result)
			}); err != nil {
				return err
			}

			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", string(crc8.FormatHex), "Input format, hex or text")
	cmd.Flags().IntVar(&pad, "pad", 0, "Pad hex input with 00 bytes up to this many bytes")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not record the result in the history")
	cliutil.AddOutputFlag(cmd)

	return cmd
}

func readInput(cmd *cobra.Command, args []string, format crc8.Format) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if format == crc8.FormatText {
		return strings.TrimSuffix(string(data), "\n"), nil
	}
	return string(data), nil
}

// PadHex appends "00" cells to a hex input until it holds at least size bytes.
func PadHex(input string, size int) string {
	cleaned := crc8.CleanHex(input)
	have := (len(cleaned) + 1) / 2
	if have >= size {
		return input
	}
	return input + strings.Repeat(" 00", size-have)
}
