// Package server wires configuration, services and routes into a running
// HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/RMahshie/filterscope/internal/api"
	"github.com/RMahshie/filterscope/internal/config"
	"github.com/RMahshie/filterscope/internal/designer"
	"github.com/RMahshie/filterscope/internal/render"
)

// New builds the HTTP server for cfg
func New(cfg *config.Config) *http.Server {
	designerSvc := designer.NewService(cfg.Response.Points,
		designer.WithLogger(log.With().Str("component", "designer").Logger()))
	renderer := render.NewRenderer(cfg.Chart.Width, cfg.Chart.Height)

	router, _ := api.NewRouter(cfg.Server.AllowedOrigins, designerSvc, renderer)

	return &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
}

// Run serves until ctx is canceled, then shuts down gracefully within
// cfg.Server.ShutdownTimeout.
func Run(ctx context.Context, cfg *config.Config) error {
	srv := New(cfg)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Env).Msg("Starting Filterscope server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("Server exited")
	return nil
}
