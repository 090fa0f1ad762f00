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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"dailyfeed/api"
	"dailyfeed/logger"
)

const (
	readHeaderTimeout      = 10 * time.Second
	defaultShutdownTimeout = 30 * time.Second
)

func newServeCommand() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if port == "" {
				port = a.Config.Port
			}
			gin.SetMode(gin.ReleaseMode)
			router := api.NewRouter(api.NewServer(a.Orchestrator, a.Log,
				api.WithAuthSecret(a.Config.APIJWTSecret),
			))
			server := &http.Server{
				Addr:              ":" + port,
				Handler:           router,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			a.Log.Info("starting API server",
				logger.String("addr", server.Addr),
				logger.Any("endpoints", []string{"GET /api/health", "GET /metrics", "POST /api/run", "GET /api/preview"}),
				logger.Bool("auth", a.Config.APIJWTSecret != ""),
			)
			return serveUntilInterrupt(cmd.Context(), server, a.Log)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "listen port (defaults to PORT or 8080)")
	return cmd
}

// serveUntilInterrupt runs server until SIGINT or SIGTERM, then shuts it down.
func serveUntilInterrupt(ctx context.Context, server *http.Server, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
