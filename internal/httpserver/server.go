package httpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"go.uber.org/fx"

	"github.com/reelbites/reelbites/internal/ratelimit"
	"github.com/reelbites/reelbites/internal/recommend"
	"github.com/reelbites/reelbites/pkg/config"
	"github.com/reelbites/reelbites/pkg/logger"
)

type Opts struct {
	fx.In

	Config      *config.Config
	Logger      logger.Logger
	Recommender recommend.Client
}

// Server exposes the feed read path over HTTP.
type Server struct {
	logger      logger.Logger
	recommender recommend.Client
	limiter     ratelimit.Limiter
	httpServer  *http.Server
}

func New(opts Opts) *Server {
	rl := opts.Config.RateLimit
	s := &Server{
		logger:      opts.Logger,
		recommender: opts.Recommender,
		limiter:     ratelimit.NewInMemoryLimiter(rl.Requests, time.Duration(rl.PerSecs)*time.Second, rl.Burst),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1/feed", func(r chi.Router) {
		r.Use(s.withRateLimit)
		r.Get("/recommended", s.handleRecommended)
		r.Get("/discover", s.handleDiscover)
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", opts.Config.App.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins listening for HTTP requests. It blocks until the server is
// shut down or an error occurs.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	viewerID := r.URL.Query().Get("viewer_id")

	items, err := s.recommender.GetRecommendedVideos(r.Context(), viewerID)
	if err != nil {
		s.logger.Error("Failed to compute recommended feed", "viewer_id", viewerID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load feed"})
		return
	}

	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request) {
	items, err := s.recommender.GetDiscoverFeed(r.Context())
	if err != nil {
		s.logger.Error("Failed to compute discover feed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load feed"})
		return
	}

	s.writeJSON(w, http.StatusOK, items)
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("viewer_id")
		if key == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				key = host
			} else {
				key = r.RemoteAddr
			}
		}

		if !s.limiter.Allow(key) {
			s.writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many requests"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to write response", "error", err)
	}
}
