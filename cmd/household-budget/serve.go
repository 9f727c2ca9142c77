package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/iwvelando/household-budget/internal/server"
	"github.com/iwvelando/household-budget/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var (
	flagServerConfig string
	flagAddress      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the budget HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServerConfig, "server-config", constants.DefaultServerConfigFile, "path to server configuration file")
	serveCmd.Flags().StringVar(&flagAddress, "address", "", "listen address override, e.g. :8080")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := server.LoadConfig(flagServerConfig)
	if err != nil {
		bootstrapError(fmt.Sprintf("failed to load server configuration at %s", flagServerConfig), err)
		return err
	}
	if flagAddress != "" {
		cfg.Address = flagAddress
	}

	logger, err := initializeLogger(cfg.Logging, flagLogLevel)
	if err != nil {
		bootstrapError("failed to initialize logger", err)
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      server.NewHandler(logger, cfg.UploadSizeBytes(), version),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	logger.Info("starting budget API",
		zap.String("op", "main.runServe"),
		zap.String("address", cfg.Address),
		zap.String("max_upload_size", humanize.IBytes(uint64(cfg.UploadSizeBytes()))),
		zap.String("version", version),
	)

	if err := serveUntilSignal(logger, srv, quit); err != nil {
		logger.Fatal("server failed",
			zap.String("op", "main.runServe"),
			zap.Error(err),
		)
	}
	return nil
}

// serveUntilSignal runs srv until it fails or a signal arrives on quit, then
// shuts it down gracefully.
func serveUntilSignal(logger *zap.Logger, srv *http.Server, quit <-chan os.Signal) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("error starting server: %w", err)
	case sig := <-quit:
		logger.Info("shutting down server",
			zap.String("op", "main.serveUntilSignal"),
			zap.String("signal", sig.String()),
		)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error during server shutdown: %w", err)
	}

	logger.Info("server exited", zap.String("op", "main.serveUntilSignal"))
	return nil
}
