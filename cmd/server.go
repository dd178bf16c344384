package cmd

import (
	"github.com/spf13/cobra"

	"github.com/praveen001/trailmap/internal/api"
	"github.com/praveen001/trailmap/internal/config"
	"github.com/praveen001/trailmap/internal/telemetry"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the roadmap server",
	Run: func(cmd *cobra.Command, args []string) {
		conf := config.ReadConfig()

		shutdownTelemetry := telemetry.NewProvider(conf.OTEL_EXPORTER_OTLP_ENDPOINT)
		defer shutdownTelemetry()

		s := api.New()
		s.Start()
	},
}

// Register the "server" command
func init() {
	rootCmd.AddCommand(serverCmd)
}
