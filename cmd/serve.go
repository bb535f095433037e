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

	"github.com/desertthunder/shelf/internal/catalog"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/web"
	"github.com/urfave/cli/v3"
)

const shutdownTimeout = 5 * time.Second

// Serve runs the web front end until interrupted, then shuts down and closes the store.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.withCatalog(ctx, func(c *catalog.Catalog) error {
		handler, err := r.newWebApp(c)
		if err != nil {
			return err
		}

		addr := r.config.Server.Addr()
		srv := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errs := make(chan error, 1)
		go func() {
			r.logger.Info("web server listening", "addr", addr)
			errs <- srv.ListenAndServe()
		}()

		if cmd.Bool("open") {
			url := fmt.Sprintf("http://%s", addr)
			if err := shared.OpenBrowser(url); err != nil {
				r.logger.Warn("failed to open browser", "url", url, "error", err)
			}
		}

		select {
		case err := <-errs:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("web server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		r.logger.Info("shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down web server: %w", err)
		}
		return nil
	})
}

func (r *Runner) newWebApp(c *catalog.Catalog) (*web.App, error) {
	return web.New(c, web.Options{
		Logger:    r.logger,
		MinYear:   r.config.Validation.MinYear,
		RateLimit: r.config.Server.RateLimit,
		Burst:     r.config.Server.Burst,
	})
}
