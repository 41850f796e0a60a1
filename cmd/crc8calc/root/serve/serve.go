package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/daemonp/crc8calc/internal/cliutil"
	"github.com/daemonp/crc8calc/internal/homeassistant"
	"github.com/daemonp/crc8calc/internal/mqtt"
)

func NewServeCmd() *cobra.Command {
	var broker string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer checksum requests over MQTT",
		Long: heredoc.Doc(`
			Connect to an MQTT broker and compute checksums for every message
			published to <prefix>/compute/hex or <prefix>/compute/text. Results
			are published to <prefix>/result/crc-8-maxim and recorded in the
			history, which is published to <prefix>/history. Publishing "clear"
			to <prefix>/history/command empties it.
		`),
		Example: heredoc.Doc(`
			$ crc8calc serve --broker mqtt://localhost:1883
			$ mosquitto_pub -t crc8calc/compute/hex -m "C8 64 54 00 00 11 22 33"
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cliutil.LoadApp(cmd)
			if err != nil {
				return err
			}
			logger := app.Log

			if broker != "" {
				host, port, err := mqtt.ParseURL(broker)
				if err != nil {
					return err
				}
				app.Config.MQTT.Host = host
				app.Config.MQTT.Port = port
			}

			h, err := app.OpenHistory()
			if err != nil {
				return err
			}

			client := mqtt.NewMQTT(&app.Config.MQTT, h, logger.WithSource("mqtt"))

			// Setup graceful shutdown
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			if err := client.Connect(); err != nil {
				logger.Error("Failed to connect to MQTT broker: %v", err)
				return err
			}

			if app.Config.HomeAssistant.Discovery {
				ha := homeassistant.New(&app.Config.HomeAssistant, client, logger.WithSource("homeassistant"))
				ha.Start()
			}

			client.PublishHistory()

			// Wait for termination signal
			<-sigChan

			logger.Info("Shutting down...")
			client.Close()
			return nil
		},
	}

	cmd.Flags().StringVar(&broker, "broker", "", "Broker address (mqtt://host:port), overrides the configuration")

	return cmd
}
