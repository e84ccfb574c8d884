package http

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
)

// handleDashboard serves the composed dashboard, cached per owner.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	key := fmt.Sprintf("owner:%d:dashboard", ownerID)
	if stats, ok := s.dashCache.Get(key); ok {
		respondJSON(w, http.StatusOK, stats)
		return
	}

	stats, err := s.dashboards.Stats(r.Context(), ownerID, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	s.dashCache.Set(key, stats)
	respondJSON(w, http.StatusOK, stats)
}

// handleBreakdown serves a per-category aggregation for one kind and
// period, cached per owner+kind+period.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	kind, err := core.ParseKind(strings.TrimSpace(r.URL.Query().Get("kind")))
	if err != nil {
		respondError(w, err)
		return
	}

	period := strings.TrimSpace(r.URL.Query().Get("period"))
	if period == "" {
		period = core.PeriodThisMonth
	}

	key := fmt.Sprintf("owner:%d:breakdown:%s:%s", ownerID, kind, period)
	if bd, ok := s.breakdownCache.Get(key); ok {
		respondJSON(w, http.StatusOK, bd)
		return
	}

	bd, err := s.queries.Breakdown(r.Context(), ownerID, kind, period, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	s.breakdownCache.Set(key, bd)
	respondJSON(w, http.StatusOK, bd)
}
