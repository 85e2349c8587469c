package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Server wraps http.Server with the dashboard routes.
type Server struct {
	srv *http.Server
}

// New creates a server listening on addr.
func New(addr string, h *Handler) *Server {
	mux := http.NewServeMux()
	h.Routes(mux)
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      45 * time.Second,
		},
	}
}

// Start serves in the background.
func (s *Server) Start() {
	go func() {
		log.Printf("[INFO] http server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("[ERROR] http server: %v", err)
		}
	}()
}

// Shutdown stops accepting requests and waits for active ones.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	log.Println("[INFO] http server stopped")
	return nil
}
