package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/tariffmill/internal/logger"
	"github.com/rezonia/tariffmill/internal/refdata"
	"github.com/rezonia/tariffmill/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	logMode      string
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for processing invoices.

The API provides endpoints for:
  - POST /api/v1/process    - Process invoice line items
  - POST /api/v1/reload     - Reload the reference database
  - GET  /api/v1/parts/:id  - Look up a part record
  - GET  /api/v1/parts      - Search parts (?search=term)
  - GET  /api/v1/codes      - List declaration codes
  - GET  /health            - Health check

Examples:
  # Start server on default port
  tariffmill serve --db parts.db

  # Start on custom port in debug mode
  tariffmill serve --db parts.db --address :9090 --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().StringVar(&logMode, "log-mode", "dev", "Logging mode (dev, prod)")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 30*time.Second, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}

	log, err := logger.New(logMode)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	// Reload reopens the database so schema or file swaps on disk are
	// picked up without restarting.
	path := dbPath
	reload := func() (*refdata.Snapshot, error) {
		db, err := refdata.Open(path)
		if err != nil {
			return nil, err
		}
		return refdata.LoadSnapshot(db)
	}

	config := &server.Config{
		Address:         serverAddr,
		DomesticCountry: domestic,
		ReadTimeout:     readTimeout,
		WriteTimeout:    writeTimeout,
		Debug:           serverDebug,
	}

	srv := server.NewServer(config, store, reload, log)

	// Handle graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down")
		log.Sync()
		os.Exit(0)
	}()

	fmt.Printf("Starting server on %s\n", serverAddr)
	return srv.Run()
}
