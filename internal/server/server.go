// Package server exposes the dashboard over HTTP: the current dashboard,
// period loads, questions, dataset files and websocket pushes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"allocation-dashboard/internal/ask"
	"allocation-dashboard/internal/loader"
	"allocation-dashboard/internal/observability"
)

// Default ask throttle.
const (
	DefaultAskRate  = 2.0
	DefaultAskBurst = 5
)

// Options for creating a Server.
type Options struct {
	Session  *loader.Session
	Pipeline loader.Loader // one-shot loads that do not touch the session
	Answerer *ask.Answerer
	Remote   *ask.Client // when set, questions are forwarded instead of answered locally
	Hub      *Hub

	AskRate  float64
	AskBurst int

	ResultsDir string // dataset root; its results/ subtree is served under /results/
	StaticDir  string // served under / when set

	Logger  *zap.Logger
	Metrics *observability.Metrics
}

// Server holds the HTTP handlers' dependencies.
type Server struct {
	session  *loader.Session
	pipeline loader.Loader
	answerer *ask.Answerer
	remote   *ask.Client
	hub      *Hub
	limiter  *rate.Limiter

	resultsDir string
	staticDir  string

	logger  *zap.Logger
	metrics *observability.Metrics
}

// New creates a Server.
func New(opts Options) *Server {
	s := &Server{
		session:    opts.Session,
		pipeline:   opts.Pipeline,
		answerer:   opts.Answerer,
		remote:     opts.Remote,
		hub:        opts.Hub,
		resultsDir: opts.ResultsDir,
		staticDir:  opts.StaticDir,
		logger:     opts.Logger,
		metrics:    opts.Metrics,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.metrics == nil {
		s.metrics = observability.DefaultMetrics
	}
	if s.answerer == nil {
		s.answerer = ask.NewAnswerer()
	}

	r, b := opts.AskRate, opts.AskBurst
	if r <= 0 {
		r = DefaultAskRate
	}
	if b <= 0 {
		b = DefaultAskBurst
	}
	s.limiter = rate.NewLimiter(rate.Limit(r), b)

	return s
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", observability.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/dashboard", s.handleCurrent)
		r.Get("/dashboard/{period}", s.handlePeriod)
		r.Post("/load", s.handleLoad)
		r.With(rateLimit(s.limiter)).Post("/ask", s.handleAsk)
	})
	r.With(rateLimit(s.limiter)).Post("/ask", s.handleAsk)

	if s.hub != nil {
		r.Handle("/ws", s.hub)
	}
	if s.resultsDir != "" {
		r.Handle("/results/*", noStore(http.FileServer(http.Dir(s.resultsDir))))
	}
	if s.staticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.staticDir)))
	}

	return r
}

// noStore disables caching so reloads always see the latest dataset.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
