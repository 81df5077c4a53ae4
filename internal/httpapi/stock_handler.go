package httpapi

import (
	"net/http"

	"github.com/10-mohamedmagdy/sameh-pos/internal/stock"
)

type StockHandler struct {
	ledger *stock.Ledger
}

func NewStockHandler(ledger *stock.Ledger) *StockHandler {
	return &StockHandler{ledger: ledger}
}

type lowStockResponse struct {
	Items []stock.LowStockItem `json:"items"`
}

// Low lists products at or under their safe limit.
func (h *StockHandler) Low(w http.ResponseWriter, r *http.Request) {
	items, err := h.ledger.ListBelowSafeLimit(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lowStockResponse{Items: items})
}
