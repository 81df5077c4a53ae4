package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/10-mohamedmagdy/sameh-pos/internal/repository"
	"github.com/10-mohamedmagdy/sameh-pos/internal/sale"
	"github.com/go-chi/chi/v5"
)

type SaleHandler struct {
	sessions    *SessionStore
	coordinator *sale.Coordinator
	invoices    *repository.InvoiceRepository
}

func NewSaleHandler(sessions *SessionStore, coordinator *sale.Coordinator, invoices *repository.InvoiceRepository) *SaleHandler {
	return &SaleHandler{sessions: sessions, coordinator: coordinator, invoices: invoices}
}

type commitRequest struct {
	CashierRef  string `json:"cashier_ref"`
	CustomerRef string `json:"customer_ref,omitempty"`
}

// Commit turns the station's cart into a persisted invoice. All-or-nothing:
// on any failure the store is left exactly as it was.
func (h *SaleHandler) Commit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if req.CashierRef == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: "cashier_ref is required",
			Code:  "invalid_request",
		})
		return
	}

	invoice, err := h.coordinator.Commit(r.Context(), c, req.CashierRef, req.CustomerRef)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, invoice)
}

func (h *SaleHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	invoice, err := h.invoices.GetInvoice(r.Context(), id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, invoice)
}
