package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"todo-web/internal/config"
	"todo-web/internal/httpapi"
	"todo-web/internal/observability/jsonlog"
	"todo-web/internal/store"
	"todo-web/internal/task"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *configPath, cmd.ErrOrStderr())
		},
	}
}

func newEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "List the environment variables the server reads",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), config.Usage())
		},
	}
}

func runServe(ctx context.Context, configPath string, logOut io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.HTTP.Addr, err)
	}

	logger := jsonlog.New(logOut, cfg.LogLevel())
	return serve(ctx, cfg, ln, logger)
}

// serve runs the app on ln until ctx is cancelled, then shuts down within
// cfg.HTTP.ShutdownTimeout.
func serve(ctx context.Context, cfg config.Config, ln net.Listener, logger *jsonlog.Logger) error {
	repo := store.NewTaskStore()
	service := task.NewService(repo)
	handler := httpapi.NewServer(service, logger, httpapi.Options{
		RequestTimeout: cfg.HTTP.RequestTimeout,
		MaxFormBytes:   cfg.HTTP.MaxFormBytes,
	})

	httpServer := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", map[string]any{"addr": ln.Addr().String(), "debug": cfg.Debug})
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", nil)
	handler.SetDraining()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", map[string]any{"error": err})
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil {
		return fmt.Errorf("server: %w", err)
	}
	logger.Info("bye", nil)
	return nil
}
