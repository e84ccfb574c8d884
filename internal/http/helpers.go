package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondError maps domain errors onto HTTP status codes.
func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrNoTransactions):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidKind),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrFutureDate),
		errors.Is(err, core.ErrDescriptionLong),
		errors.Is(err, core.ErrMissingOwner):
		status = http.StatusBadRequest
	}

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal server error"
	}
	respondJSON(w, status, errorResponse{Error: msg})
}

// parseOwner reads the owner scope from the request. Authentication lives
// in front of this service; the API trusts the resolved owner id.
func parseOwner(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("owner"))
	if raw == "" {
		return 0, core.ErrMissingOwner
	}
	owner, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || owner <= 0 {
		return 0, core.ErrMissingOwner
	}
	return owner, nil
}

// parseFilterInput collects the raw filter criteria from query parameters.
// Parsing stays lenient downstream; malformed values drop their filter.
func parseFilterInput(r *http.Request) core.FilterInput {
	q := r.URL.Query()
	return core.FilterInput{
		Search:    strings.TrimSpace(q.Get("search")),
		Kind:      strings.TrimSpace(q.Get("kind")),
		Category:  strings.TrimSpace(q.Get("category")),
		DateFrom:  strings.TrimSpace(q.Get("date_from")),
		DateTo:    strings.TrimSpace(q.Get("date_to")),
		MinAmount: strings.TrimSpace(q.Get("min_amount")),
		MaxAmount: strings.TrimSpace(q.Get("max_amount")),
	}
}

func parsePage(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parsePathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, core.ErrNotFound
	}
	return id, nil
}

// sanitizeInput trims whitespace and strips control characters.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
