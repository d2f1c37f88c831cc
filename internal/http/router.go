package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter wires the API surface. Catalog reads are public; catalog
// writes and everything under /api/cart require a bearer token.
func NewRouter(auth *AuthHandler, products *ProductHandler, carts *CartHandler, verifier TokenVerifier, logger zerolog.Logger, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.List)
			r.With(AuthMiddleware(verifier)).Post("/", products.Create)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(AuthMiddleware(verifier))
			r.Get("/", carts.GetCart)
			r.Put("/add", carts.AddItem)
		})
	})

	return r
}
