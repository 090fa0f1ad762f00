// Package api exposes the digest run over HTTP.
package api

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"dailyfeed/logger"
	"dailyfeed/metrics"
	"dailyfeed/orchestrator"
)

// Runner is the part of the orchestrator the HTTP surface drives.
type Runner interface {
	Run(ctx context.Context) orchestrator.Response
	Prepare(ctx context.Context) (*orchestrator.Report, error)
}

// Server holds the handlers' shared state.
type Server struct {
	runner  Runner
	log     logger.Logger
	metrics *metrics.Metrics
	secret  string
	mu      sync.Mutex // one run at a time
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithMetrics records runs on m instead of a private registry.
func WithMetrics(m *metrics.Metrics) ServerOption {
	return func(s *Server) { s.metrics = m }
}

// WithAuthSecret requires a bearer token signed with secret on the run routes.
func WithAuthSecret(secret string) ServerOption {
	return func(s *Server) { s.secret = secret }
}

// NewServer returns a Server driving runner.
func NewServer(runner Runner, log logger.Logger, opts ...ServerOption) *Server {
	if log == nil {
		log = logger.NewNop()
	}
	s := &Server{runner: runner, log: log}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewMetrics(nil)
	}
	return s
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	RegisterHealthRoutes(r)
	r.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.RegisterRunRoutes(r)
	return r
}
