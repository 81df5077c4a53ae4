package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/10-mohamedmagdy/sameh-pos/internal/catalog"
	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/10-mohamedmagdy/sameh-pos/internal/metrics"
	"github.com/10-mohamedmagdy/sameh-pos/internal/stock"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type CartHandler struct {
	sessions *SessionStore
	catalog  *catalog.Catalog
	ledger   *stock.Ledger
}

func NewCartHandler(sessions *SessionStore, cat *catalog.Catalog, ledger *stock.Ledger) *CartHandler {
	return &CartHandler{sessions: sessions, catalog: cat, ledger: ledger}
}

type addLineRequest struct {
	Code     string              `json:"code"`
	Resource domain.Resource     `json:"resource"`
	Quantity int64               `json:"quantity,omitempty"`
	Weight   decimal.NullDecimal `json:"weight,omitempty"`
}

type addLineResponse struct {
	Line    domain.CartLine `json:"line"`
	Warning string          `json:"warning,omitempty"`
}

type cartResponse struct {
	ID       string            `json:"id"`
	Lines    []domain.CartLine `json:"lines"`
	Total    decimal.Decimal   `json:"total"`
	Discount decimal.Decimal   `json:"discount"`
	NetTotal decimal.Decimal   `json:"net_total"`
}

func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	id := h.sessions.Open()
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	total, discount, netTotal := c.Totals()
	respondJSON(w, http.StatusOK, cartResponse{
		ID:       id,
		Lines:    c.Lines(),
		Total:    total,
		Discount: discount,
		NetTotal: netTotal,
	})
}

// AddLine resolves the scanned code, runs the advisory availability check
// and appends a priced line. A BelowSafeLimit answer becomes a non-binding
// warning in the response; a hard Insufficient refuses the line up front
// even though the commit would catch it anyway.
func (h *CartHandler) AddLine(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var req addLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	var amt domain.Amount
	switch req.Resource {
	case domain.ResourceQuantity:
		amt = domain.Units(req.Quantity)
	case domain.ResourceWeight:
		amt = domain.Kilograms(req.Weight.Decimal)
	default:
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: fmt.Sprintf("unknown resource %q", req.Resource),
			Code:  "invalid_request",
		})
		return
	}

	product, err := h.catalog.Resolve(r.Context(), req.Code)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	avail, err := h.ledger.CheckAvailability(r.Context(), product.Code, amt)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if avail.Status == stock.StatusInsufficient {
		handleDomainError(w, fmt.Errorf("%w: product %s, requested %s",
			stock.ErrInsufficientStock, product.Code, amt))
		return
	}

	line, err := c.AddLine(product, amt)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	metrics.LinesAdded.Inc()

	resp := addLineResponse{Line: line}
	if avail.Status == stock.StatusBelowSafeLimit {
		resp.Warning = fmt.Sprintf("stock of %s will drop to %s, at or under the safe limit of %s",
			product.Code, avail.Remaining, avail.SafeLimit)
	}
	respondJSON(w, http.StatusCreated, resp)
}

type discountRequest struct {
	Discount decimal.Decimal `json:"discount"`
}

func (h *CartHandler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	var req discountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}

	if err := c.SetDiscount(req.Discount); err != nil {
		handleDomainError(w, err)
		return
	}

	total, discount, netTotal := c.Totals()
	respondJSON(w, http.StatusOK, cartResponse{
		ID:       id,
		Lines:    c.Lines(),
		Total:    total,
		Discount: discount,
		NetTotal: netTotal,
	})
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.sessions.Get(id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	if err := c.RemoveAll(); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Discard drops the cart session. Nothing was persisted, so there is
// nothing to compensate.
func (h *CartHandler) Discard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.sessions.Discard(id); err != nil {
		handleDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
