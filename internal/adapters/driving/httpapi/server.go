// Package httpapi exposes the query, itinerary and login operations over
// HTTP. The boundary is thin: it validates transport concerns, dispatches to
// the driving ports and maps domain errors onto status codes a caller can
// discriminate ("bad input" vs "try again later" vs "upstream broken").
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/wayfarer-labs/wayfarer/internal/core/ports/driving"
	"github.com/wayfarer-labs/wayfarer/internal/logger"
)

// shutdownTimeout bounds graceful shutdown on context cancellation.
const shutdownTimeout = 5 * time.Second

// Server is the HTTP boundary.
type Server struct {
	addr   string
	query  driving.QueryService
	auth   driving.Authenticator
	corpus driving.CorpusManager
	http   *http.Server
}

// NewServer creates the HTTP server.
func NewServer(addr string, query driving.QueryService, auth driving.Authenticator, corpus driving.CorpusManager) *Server {
	s := &Server{
		addr:   addr,
		query:  query,
		auth:   auth,
		corpus: corpus,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/chat", s.requireAuth(s.handleChat))
	mux.HandleFunc("POST /api/itinerary", s.requireAuth(s.handleItinerary))
	mux.HandleFunc("GET /healthz", s.handleHealth)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
