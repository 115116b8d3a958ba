package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/bookline-dev/bookline/internal/httpapi"
)

func newServeCommand() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local dashboard API",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := booksDir(cmd)
			if err != nil {
				return err
			}
			return runServe(cmd, dir, port)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (default from config)")
	return cmd
}

func runServe(cmd *cobra.Command, dir string, port int) error {
	// .env is optional; real config comes from bookline.yaml plus env.
	_ = godotenv.Load()

	cfg, err := loadConfig(dir)
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	stores, err := httpapi.NewStores(dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := stores.Watch(ctx, logger); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("store watcher stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: httpapi.New(stores, cfg.Server.AllowedOrigins, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dashboard API listening", "addr", srv.Addr, "books", dir)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
