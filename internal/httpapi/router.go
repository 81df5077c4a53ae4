package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires the checkout-station API.
func NewRouter(products *ProductHandler, carts *CartHandler, sales *SaleHandler, stockH *StockHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", products.Create)
			r.Get("/{code}", products.Get)
			r.Put("/{code}", products.Update)
			r.Delete("/{code}", products.Delete)
		})

		r.Get("/stock/low", stockH.Low)

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", carts.Open)
			r.Get("/{id}", carts.Get)
			r.Post("/{id}/lines", carts.AddLine)
			r.Delete("/{id}/lines", carts.Clear)
			r.Post("/{id}/discount", carts.SetDiscount)
			r.Post("/{id}/commit", sales.Commit)
			r.Delete("/{id}", carts.Discard)
		})

		r.Get("/invoices/{id}", sales.GetInvoice)
	})

	return r
}
