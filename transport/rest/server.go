package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-advisor/internal/config"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, conf *config.Config, advisor advisorUseCase) *Server {
	return &Server{
		logger: logger.With("component", "http"),
		srv: &http.Server{
			Addr:         ":" + conf.HTTPPort,
			Handler:      NewHandler(logger, conf, advisor),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewHandler - routes with the middleware chain applied.
func NewHandler(logger *slog.Logger, conf *config.Config, advisor advisorUseCase) http.Handler {
	moves := newMoveHandler(logger, advisor)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)
	mux.Handle("POST /api/ai-move/random", withAPIKey(logger, conf.APIKey, http.HandlerFunc(moves.RandomMove)))
	mux.Handle("POST /api/ai-move/minmax", withAPIKey(logger, conf.APIKey, http.HandlerFunc(moves.OptimalMove)))

	return withRequestID(withAccessLog(logger, withCORS(conf.CORS.AllowOrigins, mux)))
}

// Start - serves until ctx is canceled, then shuts down gracefully.
func (that *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	that.logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := that.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
