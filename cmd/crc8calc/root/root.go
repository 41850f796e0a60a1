package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/cmd/crc8calc/root/compute"
	"github.com/daemonp/crc8calc/cmd/crc8calc/root/examples"
	"github.com/daemonp/crc8calc/cmd/crc8calc/root/history"
	"github.com/daemonp/crc8calc/cmd/crc8calc/root/serve"
	"github.com/daemonp/crc8calc/cmd/crc8calc/root/version"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crc8calc <command>",
		Short: "CRC-8/MAXIM checksum calculator",
		Long: heredoc.Doc(`
			Calculate the CRC-8/MAXIM checksum (reflected polynomial 0x8C,
			initial value 0x00, no final XOR) of hex bytes or text.
		`),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().String("config", "config.yml", "Path to configuration file")
	cmd.PersistentFlags().String("log-level", "", "Log level, overrides the configuration (trace, debug, info, warn, error)")

	cmd.AddCommand(compute.NewComputeCmd())
	cmd.AddCommand(examples.NewExamplesCmd())
	cmd.AddCommand(history.NewHistoryCmd())
	cmd.AddCommand(serve.NewServeCmd())
	cmd.AddCommand(version.NewVersionCmd())

	return cmd
}
