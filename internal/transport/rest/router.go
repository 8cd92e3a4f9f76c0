package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/review-marketplace/internal/auth"
	"github.com/frahmantamala/review-marketplace/internal/brand"
	"github.com/frahmantamala/review-marketplace/internal/category"
	"github.com/frahmantamala/review-marketplace/internal/market"
	"github.com/frahmantamala/review-marketplace/internal/product"
	"github.com/frahmantamala/review-marketplace/internal/review"
	"github.com/frahmantamala/review-marketplace/internal/transport/middleware"
	"github.com/frahmantamala/review-marketplace/internal/transport/swagger"
	"github.com/frahmantamala/review-marketplace/internal/user"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

type Handlers struct {
	Auth     *auth.Handler
	User     *user.Handler
	Market   *market.Handler
	Category *category.Handler
	Brand    *brand.Handler
	Product  *product.Handler
	Review   *review.Handler
}

// RegisterAllRoutes mounts the full API. Catalog and review routes live under
// /markets/{market} and only see requests for which the market middleware
// resolved the slug; mutating routes additionally sit behind the permission
// gate matching the service-level check.
func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, marketService *market.Service, gate *auth.Gate, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", handlers.Auth.Login)
			sr.Post("/refresh", handlers.Auth.RefreshToken)
		})

		// Registration is open; everything under /users beyond it is not.
		r.Post("/users", handlers.User.Register)

		r.Get("/markets", handlers.Market.GetMarkets)

		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Get("/users/me", handlers.User.GetCurrentUser)

			pr.Group(func(ar chi.Router) {
				ar.Use(gate.Require(auth.PermissionManageUsers))
				ar.Get("/users", handlers.User.ListUsers)
				ar.Post("/users/{name}/roles", handlers.User.GrantRole)
			})

			pr.Group(func(ar chi.Router) {
				ar.Use(gate.Require(auth.PermissionCreateMarket))
				ar.Post("/markets", handlers.Market.CreateMarket)
			})
		})

		r.Route("/markets/{market}", func(mr chi.Router) {
			mr.Use(middleware.MarketMiddleware(marketService, logger))

			// Public catalog reads
			mr.Get("/categories", handlers.Category.GetCategoryTree)
			mr.Get("/categories/{serial}/products", handlers.Product.GetProductsByCategory)
			mr.Get("/brands", handlers.Brand.GetBrands)
			mr.Get("/brands/{serial}/products", handlers.Product.GetProductsByBrand)
			mr.Get("/products/{serial}", handlers.Product.GetProduct)
			mr.Get("/products/{serial}/reviews", handlers.Review.GetReviewsByProduct)
			mr.Get("/reviews/{serial}", handlers.Review.GetReview)

			// Catalog and review writes
			mr.Group(func(wr chi.Router) {
				wr.Use(handlers.Auth.AuthMiddleware)

				wr.With(gate.Require(auth.PermissionCreateCategory)).
					Post("/categories", handlers.Category.CreateCategory)
				wr.With(gate.Require(auth.PermissionCreateBrand)).
					Post("/brands", handlers.Brand.CreateBrand)
				wr.With(gate.Require(auth.PermissionAddProduct)).
					Post("/products", handlers.Product.CreateProduct)

				wr.With(gate.Require(auth.PermissionAddReview)).
					Post("/reviews", handlers.Review.CreateReview)
				wr.With(gate.Require(auth.PermissionDeleteReview)).
					Delete("/reviews/{serial}", handlers.Review.DeleteReview)
				wr.With(gate.Require(auth.PermissionAddReview)).
					Post("/reviews/{serial}/votes", handlers.Review.VoteReview)
				wr.With(gate.Require(auth.PermissionAddReview)).
					Post("/reviews/{serial}/comments", handlers.Review.CreateComment)
			})
		})
	})
}
