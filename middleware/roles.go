package middleware

import (
	"net/http"

	"go_trial/foodhub/models"
)

// RequireRole admits authenticated callers holding one of roles. It must run after RequireAuth.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Access denied, missing access token")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			deny(w, http.StatusForbidden, "You do not have permission to perform this action")
		})
	}
}
