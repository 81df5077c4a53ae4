package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/10-mohamedmagdy/sameh-pos/internal/catalog"
	"github.com/10-mohamedmagdy/sameh-pos/internal/domain"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// ProductWriter is the catalog-management side of the product repository.
type ProductWriter interface {
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, p *domain.Product) error
	DeleteProduct(ctx context.Context, code string) error
}

type ProductHandler struct {
	catalog *catalog.Catalog
	repo    ProductWriter
}

func NewProductHandler(cat *catalog.Catalog, repo ProductWriter) *ProductHandler {
	return &ProductHandler{catalog: cat, repo: repo}
}

type productRequest struct {
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Quantity      int64           `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	SellMode      domain.SellMode `json:"sell_mode"`
	SafeLimit     decimal.Decimal `json:"safe_limit"`
}

// Get resolves a scanned or typed code, barcode fallback included.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	product, err := h.catalog.Resolve(r.Context(), code)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if req.Code == "" || req.Name == "" || !req.SellMode.Valid() {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: "code, name and a valid sell_mode are required",
			Code:  "invalid_request",
		})
		return
	}

	product := &domain.Product{
		Code:          req.Code,
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		PurchasePrice: req.PurchasePrice,
		Quantity:      req.Quantity,
		Weight:        req.Weight,
		SellMode:      req.SellMode,
		SafeLimit:     req.SafeLimit,
	}
	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "bad_json", err)
		return
	}
	if req.Name == "" || !req.SellMode.Valid() {
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error: "name and a valid sell_mode are required",
			Code:  "invalid_request",
		})
		return
	}

	product := &domain.Product{
		Code:          code,
		Name:          req.Name,
		UnitPrice:     req.UnitPrice,
		PurchasePrice: req.PurchasePrice,
		SellMode:      req.SellMode,
		SafeLimit:     req.SafeLimit,
	}
	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		handleDomainError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context(), code)

	respondJSON(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.repo.DeleteProduct(r.Context(), code); err != nil {
		handleDomainError(w, err)
		return
	}
	h.catalog.Invalidate(r.Context(), code)

	w.WriteHeader(http.StatusNoContent)
}
