package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

func NewRouter(handler *Handler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Logger(logger))
	r.Use(Recoverer(logger))
	r.Use(Timeout)
	r.Use(CORS)

	r.Get("/healthz", handler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthz", handler.Health)
		r.Get("/catalog", handler.Catalog)

		r.Get("/session", handler.Session)
		r.Put("/session/screen", handler.Navigate)
		r.Put("/session/filter", handler.SelectFilter)

		r.Post("/cart/items", handler.AddCartItem)
		r.Patch("/cart/items/{name}", handler.UpdateCartItem)
		r.Delete("/cart/items/{name}", handler.RemoveCartItem)
		r.Delete("/cart", handler.ClearCart)
		r.Put("/cart/payment-method", handler.SelectPaymentMethod)
		r.Post("/checkout", handler.Checkout)

		r.Get("/sales", handler.ListSales)
		r.Delete("/sales/{id}", handler.DeleteSale)

		r.Get("/analytics", handler.Dashboard)
		r.Get("/analytics/export", handler.ExportReport)
		r.Get("/analytics/share", handler.ShareLink)

		r.Get("/inventory", handler.Inventory)
		r.Put("/inventory/{name}", handler.SetInventoryLevel)
		r.Post("/inventory/import", handler.ImportInventoryExcel)

		r.Get("/settings/phone", handler.GetPhone)
		r.Put("/settings/phone", handler.UpdatePhone)
	})

	return r
}
