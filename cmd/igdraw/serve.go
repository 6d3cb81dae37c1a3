package main

import (
	"os"

	"github.com/spf13/cobra"

	"igdraw/internal/api"
	"igdraw/pkg/config"
	"igdraw/pkg/logger"
	"igdraw/pkg/lottery"
)

var servePort string

// serveCmd runs the HTTP API server
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the giveaway HTTP API",
	Long: `Start the HTTP API server.

Endpoints:
  POST /api/v1/draws          start a draw from a post URL
  PUT  /api/v1/draws          complete a pending two-factor challenge
  POST /api/v1/draws/manual   draw from a pasted username list
  GET  /health                liveness probe

The Instagram account comes from INSTAGRAM_USERNAME and INSTAGRAM_PASSWORD
(or the config file); a missing account is reported per-request, not at
startup.`,
	Run: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "port to listen on (default 8080)")
}

func runServe(cmd *cobra.Command, args []string) {
	flags := map[string]interface{}{
		"log-level": logLevel,
	}
	if servePort != "" {
		flags["port"] = servePort
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		cmd.PrintErrf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(&cfg.Logging); err != nil {
		cmd.PrintErrf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.GetLogger()

	resolveCredentials(cfg, log)

	service := lottery.New(cfg, log)
	router := api.NewRouter(service, *log.GetZerolog())

	log.WithFields(map[string]interface{}{
		"addr":        cfg.Addr(),
		"credentials": cfg.HasCredentials(),
	}).Info("starting API server")

	if err := router.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("API server stopped")
	}
}
