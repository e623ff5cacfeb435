package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/tyrexapp/tyrex_client/internal/usecase"
	"go.uber.org/zap"
)

// Server exposes the store's normalized view-models as read-only JSON for the
// mini-app shell. It never mutates the store.
type Server struct {
	router *http.ServeMux
	server *http.Server
	store  *usecase.StoreService
	logger *zap.Logger
}

func NewServer(port int, store *usecase.StoreService, logger *zap.Logger) *Server {
	s := &Server{
		router: http.NewServeMux(),
		store:  store,
		logger: logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /status", s.handleStatus)

	s.router.HandleFunc("GET /api/state", s.handleState)
	s.router.HandleFunc("GET /api/balance", s.handleBalance)
	s.router.HandleFunc("GET /api/cards", s.handleCards)
	s.router.HandleFunc("GET /api/market", s.handleMarket)
}

func (s *Server) Start() error {
	s.logger.Info("Starting web server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
