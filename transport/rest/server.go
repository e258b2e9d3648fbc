package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	logger *slog.Logger
	srv    *http.Server
}

func New(logger *slog.Logger, port string, game gameUseCase) *Server {
	return &Server{
		logger: logger.With("component", "http"),
		srv: &http.Server{
			Addr:         ":" + port,
			Handler:      NewHandler(logger, game),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
	}
}

// NewHandler builds the routes the UI calls into.
func NewHandler(logger *slog.Logger, game gameUseCase) http.Handler {
	handlers := &gameHandlers{
		logger: logger.With("component", "http"),
		game:   game,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", pingHandler)

	mux.HandleFunc("GET /game", handlers.state)
	mux.HandleFunc("GET /game/export", handlers.export)
	mux.HandleFunc("POST /game/reset", handlers.reset)
	mux.HandleFunc("POST /game/move", handlers.move)
	mux.HandleFunc("POST /game/quick-move", handlers.quickMove)
	mux.HandleFunc("POST /game/save", handlers.save)
	mux.HandleFunc("POST /game/load", handlers.load)

	return mux
}

// Start blocks until the server stops. A clean Shutdown is not an error.
func (that *Server) Start() error {
	that.logger.Info("Starting HTTP server", "addr", that.srv.Addr)

	if err := that.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
