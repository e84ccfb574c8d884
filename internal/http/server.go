// Package http exposes the ledger as a JSON API.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/services"
)

// Config tunes the server without reaching into the environment.
type Config struct {
	Addr               string
	RateLimitPerMinute int
	CacheTTL           time.Duration
}

type Server struct {
	http.Server

	transactions *services.TransactionService
	queries      *services.QueryService
	dashboards   *services.DashboardService

	limiter  *ratelimit.Limiter
	detector *security.Detector
	headers  *security.HeadersMiddleware
	tracer   *trace.Middleware

	cacheManager   *cache.Manager
	dashCache      *cache.LRUCache[services.DashboardStats]
	breakdownCache *cache.LRUCache[core.Breakdown]

	startedAt    time.Time
	shutdownOnce sync.Once
}

func NewServer(cfg Config, tx *services.TransactionService, q *services.QueryService, d *services.DashboardService) *Server {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}

	mux := http.NewServeMux()
	detector := security.NewDetector()

	s := &Server{
		Server: http.Server{
			Addr:         cfg.Addr,
			Handler:      nil, // set below, after the middleware chain
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		transactions: tx,
		queries:      q,
		dashboards:   d,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: cfg.RateLimitPerMinute,
			CleanupInterval:   5 * time.Minute,
		}),
		detector:       detector,
		headers:        security.NewHeadersMiddleware(security.DefaultHeadersConfig()),
		tracer:         trace.NewMiddleware(detector.ExtractClientIP),
		cacheManager:   cache.NewManager(),
		dashCache:      cache.NewLRUCache[services.DashboardStats](100, cfg.CacheTTL),
		breakdownCache: cache.NewLRUCache[core.Breakdown](200, cfg.CacheTTL),
		startedAt:      time.Now(),
	}

	s.cacheManager.Register(s.dashCache)
	s.cacheManager.Register(s.breakdownCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	limit := s.limiter.Middleware(s.detector.ExtractClientIP, nil)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/breakdown", s.handleBreakdown)

	mux.HandleFunc("GET /api/transactions", s.handleList)
	mux.HandleFunc("GET /api/transactions/export", s.handleExport)
	mux.Handle("POST /api/transactions", limit(http.HandlerFunc(s.handleCreate)))
	mux.Handle("POST /api/transactions/{id}", limit(http.HandlerFunc(s.handleUpdate)))
	mux.Handle("DELETE /api/transactions/{id}", limit(http.HandlerFunc(s.handleDelete)))

	s.Server.Handler = s.headers.Middleware(s.tracer.Middleware(mux))
	return s
}

// invalidateOwner drops every cached view of one owner after a write.
func (s *Server) invalidateOwner(ownerID int64) {
	prefix := fmt.Sprintf("owner:%d:", ownerID)
	s.dashCache.DeletePrefix(prefix)
	s.breakdownCache.DeletePrefix(prefix)
}

// Shutdown stops the HTTP server and the background cleanup goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.limiter.Stop()
		err = s.Server.Shutdown(ctx)
	})
	return err
}
