package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/review-marketplace/internal"
	"github.com/go-chi/chi"
)

// MarketResolverAPI resolves a market slug to the market it names.
type MarketResolverAPI interface {
	ResolveSlug(ctx context.Context, slug string) (*internal.ActiveMarket, error)
}

// MarketMiddleware resolves the {market} URL segment and stores the active
// market in the request context. Every catalog and review route runs behind
// it; an unknown slug is a 404 before any handler sees the request.
func MarketMiddleware(resolver MarketResolverAPI, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slug := chi.URLParam(r, "market")

			active, err := resolver.ResolveSlug(r.Context(), slug)
			if err != nil {
				if appErr, ok := internal.IsAppError(err); ok {
					status, body := appErr.ToHTTPResponse()
					writeJSON(w, status, body)
					return
				}
				logger.Error("failed to resolve market", "error", err, "slug", slug)
				writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				return
			}

			ctx := internal.ContextWithMarket(r.Context(), active)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
