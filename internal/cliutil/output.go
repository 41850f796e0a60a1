package cliutil

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/daemonp/crc8calc/internal/util"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

var outputFormats = []string{OutputText, OutputJSON, OutputYAML}

// AddOutputFlag registers the --output flag shared by commands that print results.
func AddOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", OutputText, fmt.Sprintf("Output format. Accepts %s", util.JoinWithOr(outputFormats)))
}

// HandleOutput writes v as JSON or YAML according to --output, or calls
// text for the human readable form.
func HandleOutput(cmd *cobra.Command, v interface{}, text func(w io.Writer) error) error {
	formatFlag, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	switch formatFlag {
	case OutputText, "":
		return text(out)
	case OutputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal to JSON: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal to YAML: %w", err)
		}
		_, err = out.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q, expected %s", formatFlag, util.JoinWithOr(outputFormats))
	}
}
