package examples

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cliutil"
	"github.com/daemonp/crc8calc/internal/crc8"
)

type example struct {
	Input  string      `json:"input" yaml:"input"`
	Result crc8.Result `json:"result" yaml:"result"`
}

func NewExamplesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "examples",
		Short: "Show checksums of the built-in sample inputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var out []example
			for _, input := range crc8.Examples() {
				out = append(out, example{Input: input, Result: crc8.Compute(input, crc8.FormatHex)})
			}

			return cliutil.HandleOutput(cmd, out, func(w io.Writer) error {
				for _, e := range out {
					if _, err := fmt.Fprintf(w, "%-32s %s\n", e.Input, e.Result.Hex); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cliutil.AddOutputFlag(cmd)

	return cmd
}
