package transport

import (
	"time"

	"otherproteins-be/internal/logger"
	"otherproteins-be/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires every endpoint. Reads on the catalog are public; cart
// and order routes need a user; the admin subtree needs the admin role.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.RateLimit)
	r.Use(middleware.Authenticate)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
	})

	r.Get("/products", h.ListProducts)
	r.Get("/products/{id}", h.GetProduct)
	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{id}", h.GetCategory)

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Get("/", h.GetCart)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddCartItem)
		r.Put("/items/{productID}", h.SetCartItemQuantity)
		r.Delete("/items/{productID}", h.RemoveCartItem)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RequireUser)
		r.Post("/", h.Checkout)
		r.Get("/", h.ListMyOrders)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/confirm", h.ConfirmReceipt)
		r.Post("/{id}/cancel", h.CancelOrder)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/products", h.CreateProduct)
		r.Patch("/products/{id}", h.UpdateProduct)
		r.Post("/products/batch", h.BatchUpdateProducts)
		r.Put("/products/{id}/stock", h.SetProductStock)
		r.Delete("/products/{id}", h.DeleteProduct)
		r.Get("/orders", h.ListAllOrders)
		r.Put("/orders/{id}/status", h.UpdateOrderStatus)
	})

	return r
}
