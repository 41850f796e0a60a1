package history

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cliutil"
)

func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <command>",
		Short: "Inspect recent results",
		Long: heredoc.Doc(`
			Commands for the list of the most recent successful results,
			newest first.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newClearCmd())

	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cliutil.LoadApp(cmd)
			if err != nil {
				return err
			}
			h, err := app.OpenHistory()
			if err != nil {
				return err
			}

			entries := h.List()
			return cliutil.HandleOutput(cmd, entries, func(w io.Writer) error {
				if len(entries) == 0 {
					_, err := fmt.Fprintln(w, "No history")
					return err
				}
				for _, e := range entries {
					if _, err := fmt.Fprintf(w, "%s  %s  %-4s  %-5s %s\n",
						e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.Format, e.Result, e.Input,
					); err != nil {
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

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the full result of a history entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cliutil.LoadApp(cmd)
			if err != nil {
				return err
			}
			h, err := app.OpenHistory()
			if err != nil {
				return err
			}

			entry, ok := h.Get(args[0])
			if !ok {
				return fmt.Errorf("no history entry with id %q", args[0])
			}

			return cliutil.HandleOutput(cmd, entry, func(w io.Writer) error {
				if _, err := fmt.Fprintf(w, "%s: %s\n", entry.Format, entry.Input); err != nil {
					return err
				}
				return cliutil.PrintResult(w, entry.Full)
			})
		},
	}

	cliutil.AddOutputFlag(cmd)

	return cmd
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all history entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cliutil.LoadApp(cmd)
			if err != nil {
				return err
			}
			h, err := app.OpenHistory()
			if err != nil {
				return err
			}

			if err := h.Clear(); err != nil {
				return err
			}
			app.Log.Info("History cleared")
			return nil
		},
	}
}
