package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sectorlab/sectorpulse/internal/api"
	"github.com/sectorlab/sectorpulse/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                      - Health check
  GET  /metrics                     - Prometheus metrics
  GET  /api/universe                - Configured universe
  GET  /api/weeks                   - Stored week ids
  GET  /api/classification/latest   - Latest classification
  GET  /api/classification/{week}   - Classification by week
  POST /api/classification/run      - Trigger a run

Example:
  go run ./cmd/sectorpulse api
  go run ./cmd/sectorpulse api --port 8089`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	handler := handlers.NewClassificationHandler(a.snapshots, a.runner, a.universe.Universe(), a.logger)
	router := api.NewRouter(handler, a.cfg.MetricsEnabled, a.logger)
	server := api.New(a.cfg, a.logger, router)

	go func() {
		if err := server.Start(); err != nil {
			a.logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
