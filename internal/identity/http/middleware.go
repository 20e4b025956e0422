package http

import (
	"net/http"

	"github.com/lumahq/identity/internal/identity/service"
	"github.com/lumahq/identity/pkg/httpx"
	"github.com/lumahq/identity/pkg/identsdk"
	"github.com/lumahq/identity/pkg/slogx"
)

// RequireActiveUser loads the authenticated caller and rejects requests
// from unknown or deactivated accounts. Runs after AuthnMiddleware, so a
// valid token whose user has since been deactivated still gets a 401.
func RequireActiveUser(users *service.UserService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID := httpx.UserIDFromContext(ctx)
			if userID == "" {
				identsdk.ErrUnauthorized.WriteError(w)
				return
			}

			user, err := users.GetUserByID(ctx, userID)
			if err != nil {
				slogx.FromContext(ctx).Warn("token subject not resolvable", "user_id", userID, "err", err)
				identsdk.ErrUnauthorized.WriteError(w)
				return
			}
			if !user.Active {
				identsdk.ErrUnauthorized.WriteError(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
