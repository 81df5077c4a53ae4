package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/10-mohamedmagdy/sameh-pos/internal/cart"
	"github.com/10-mohamedmagdy/sameh-pos/internal/catalog"
	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/10-mohamedmagdy/sameh-pos/internal/sale"
	"github.com/10-mohamedmagdy/sameh-pos/internal/stock"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code string, err error) {
	respondJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

// handleDomainError maps the engine's error taxonomy onto HTTP statuses.
func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, repository.ErrProductNotFound),
		errors.Is(err, stock.ErrProductNotFound),
		errors.Is(err, repository.ErrInvoiceNotFound),
		errors.Is(err, ErrCartNotFound):
		respondError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, cart.ErrInvalidLine),
		errors.Is(err, stock.ErrInvalidRequest):
		respondError(w, http.StatusBadRequest, "invalid_request", err)
	case errors.Is(err, cart.ErrCartCommitted):
		respondError(w, http.StatusConflict, "cart_committed", err)
	case errors.Is(err, stock.ErrInsufficientStock):
		respondError(w, http.StatusConflict, "insufficient_stock", err)
	case errors.Is(err, sale.ErrCommitConflict):
		respondError(w, http.StatusConflict, "commit_conflict", err)
	case errors.Is(err, repository.ErrProductExists):
		respondError(w, http.StatusConflict, "product_exists", err)
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}
