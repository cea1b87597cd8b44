package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"raceprep/internal/log"
	"raceprep/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the plan service over HTTP
type Server struct {
	Server   http.Server
	svc      *service.PlanService
	logger   *zap.SugaredLogger
	handlers *Handlers
}

// NewServer creates a server listening on addr. A nil logger discards output.
func NewServer(addr string, svc *service.PlanService, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = log.Nop()
	}

	s := &Server{
		svc:    svc,
		logger: logger,
	}
	s.handlers = NewHandlers(s)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.setupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Router returns the HTTP handler serving every route
func (s *Server) Router() http.Handler {
	return s.Server.Handler
}

func (s *Server) setupRouter() *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/fields", s.handlers.GetFields).Methods(http.MethodGet)
	api.HandleFunc("/fields/{key}", s.handlers.SetField).Methods(http.MethodPut)

	api.HandleFunc("/reports", s.handlers.CreateReport).Methods(http.MethodPost)
	api.HandleFunc("/reports", s.handlers.ListReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/latest", s.handlers.GetLatestReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", s.handlers.GetReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/{id}", s.handlers.DeleteReport).Methods(http.MethodDelete)
	api.HandleFunc("/reports/{id}/post-race", s.handlers.CreatePostRace).Methods(http.MethodPost)
	api.HandleFunc("/reports/{id}/post-race", s.handlers.GetPostRace).Methods(http.MethodGet)

	router.Use(s.logRequests)
	return router
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, req)
		s.logger.Debugw("request",
			"method", req.Method,
			"path", req.URL.Path,
			"duration", time.Since(start),
		)
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("starting API server on %v", s.Server.Addr)
		if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.Server.Shutdown(shutdownCtx)
}
