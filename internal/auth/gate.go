package auth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/review-marketplace/internal"
)

// Authorize checks that the caller in ctx holds the permission. Services call
// this in front of every mutating operation; read-only listings are ungated.
func Authorize(ctx context.Context, permission Permission) error {
	user, ok := UserFromContext(ctx)
	if !ok {
		return internal.NewUnauthorizedError("authentication required", internal.ErrCodeInvalidToken)
	}
	if !user.HasPermission(permission) {
		return internal.NewPermissionDeniedError(string(permission))
	}
	return nil
}

// Gate applies permission checks as HTTP middleware in front of protected
// routes. It is the transport-level counterpart of Authorize.
type Gate struct {
	logger *slog.Logger
}

func NewGate(logger *slog.Logger) *Gate {
	return &Gate{logger: logger}
}

func (g *Gate) Require(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				g.logger.Warn("authorization check failed: user not found in context",
					"permission", permission)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.HasPermission(permission) {
				g.logger.WarnContext(r.Context(), "access denied: insufficient permissions",
					"user_id", user.ID,
					"required_permission", permission,
					"user_roles", user.Roles)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
