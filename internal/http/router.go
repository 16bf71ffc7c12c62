package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/tmachado/retailops/internal/http/inventory"
	"github.com/tmachado/retailops/internal/http/product"
	"github.com/tmachado/retailops/internal/http/sale"
)

func New(
	salesV1 *sale.Handler,
	inventoryV1 *inventory.Handler,
	productsV1 *product.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The dashboard is a browser app served from a different origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/sales", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			salesV1.Routes(r)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			inventoryV1.Routes(r)
		})

		r.Route("/products", productsV1.Routes)
	})

	return router
}
