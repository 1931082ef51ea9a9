package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
)

// Start serves HTTP on the configured address. The returned channel is
// closed once a termination signal arrives or the listener fails.
func (a *App) Start() <-chan struct{} {
	done := make(chan struct{})
	ctx, stop := signal.NotifyContext(a.ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			stop()
		}
	}()

	go func() {
		defer close(done)
		<-ctx.Done()
		stop()
		slog.Info("shutdown requested")
	}()

	return done
}

// Serve runs the HTTP server on l instead of the configured address.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)

	go func() {
		defer close(errChan)
		errChan <- a.httpServer.Serve(l)
	}()

	return errChan
}

// Stop shuts the server down, waits for consumers started on the goroutine
// manager, then releases resources.
func (a *App) Stop(ctx context.Context) {
	a.cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to shutdown http server", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "goroutines finished with errors", "error", err)
	}

	a.closeResources(ctx)
	slog.InfoContext(ctx, "application stopped")
}
