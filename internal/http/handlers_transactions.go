package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fintrack/internal/core"
)

// transactionRequest is the write payload. Amount arrives as a decimal
// string so clients never send float cents.
type transactionRequest struct {
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

func (req transactionRequest) toTransaction(ownerID int64) (core.Transaction, error) {
	kind, err := core.ParseKind(req.Kind)
	if err != nil {
		return core.Transaction{}, err
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		OwnerID:     ownerID,
		Kind:        kind,
		Amount:      core.Money{Cents: cents},
		Category:    sanitizeInput(req.Category),
		Description: sanitizeInput(req.Description),
		Date:        date,
	}, nil
}

type listResponse struct {
	Items      []core.Transaction `json:"items"`
	Pagination paginationView     `json:"pagination"`
	Summary    core.Summary       `json:"summary"`
	Sort       string             `json:"sort"`
	Categories []string           `json:"categories"`
}

type paginationView struct {
	Page       int  `json:"page"`
	PerPage    int  `json:"per_page"`
	TotalItems int  `json:"total_items"`
	TotalPages int  `json:"total_pages"`
	HasPrev    bool `json:"has_prev"`
	HasNext    bool `json:"has_next"`
}

// handleList serves the filtered, sorted, paged transaction history.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := s.queries.List(r.Context(), ownerID, parseFilterInput(r), r.URL.Query().Get("sort"), parsePage(r))
	if err != nil {
		respondError(w, err)
		return
	}

	items := res.Page.Items
	if items == nil {
		items = []core.Transaction{}
	}
	respondJSON(w, http.StatusOK, listResponse{
		Items: items,
		Pagination: paginationView{
			Page:       res.Page.Number,
			PerPage:    res.Page.PerPage,
			TotalItems: res.Page.TotalItems,
			TotalPages: res.Page.TotalPages,
			HasPrev:    res.Page.HasPrev,
			HasNext:    res.Page.HasNext,
		},
		Summary:    res.Summary,
		Sort:       res.Sort,
		Categories: res.Categories,
	})
}

// handleCreate records a new transaction.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	tx, err := req.toTransaction(ownerID)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := s.transactions.Create(r.Context(), tx)
	if err != nil {
		respondError(w, err)
		return
	}

	s.invalidateOwner(ownerID)
	respondJSON(w, http.StatusCreated, map[string]any{"id": id})
}

// handleUpdate replaces the mutable fields of an owned transaction.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := parsePathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	tx, err := req.toTransaction(ownerID)
	if err != nil {
		respondError(w, err)
		return
	}
	tx.ID = id

	if err := s.transactions.Update(r.Context(), ownerID, tx); err != nil {
		respondError(w, err)
		return
	}

	s.invalidateOwner(ownerID)
	respondJSON(w, http.StatusOK, map[string]any{"id": id})
}

// handleDelete removes an owned transaction.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	id, err := parsePathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	if err := s.transactions.Delete(r.Context(), ownerID, id); err != nil {
		respondError(w, err)
		return
	}

	s.invalidateOwner(ownerID)
	w.WriteHeader(http.StatusNoContent)
}

// handleExport streams the filtered ledger as an XLSX attachment. The
// filter parameters match the list endpoint.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ownerID, err := parseOwner(r)
	if err != nil {
		respondError(w, err)
		return
	}

	res, err := s.queries.Export(r.Context(), ownerID, parseFilterInput(r), time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(res.Data)))
	w.Write(res.Data)
}
