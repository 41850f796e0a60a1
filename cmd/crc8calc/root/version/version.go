package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cliutil"
)

// Version is set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// NewVersionCmd creates a new command that displays version information
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  `Display the version, git commit, and build date of the CLI.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version":   Version,
				"gitCommit": GitCommit,
				"buildDate": BuildDate,
			}
			return cliutil.HandleOutput(cmd, info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "crc8calc %s (%s, %s)\n", Version, GitCommit, BuildDate)
				return err
			})
		},
	}

	cliutil.AddOutputFlag(cmd)

	return cmd
}
