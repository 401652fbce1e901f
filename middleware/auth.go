package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go_trial/foodhub/models"
)

type contextKey string

const currentUserKey contextKey = "currentUser"

// UserIDHeader carries the authenticated user id to the request logger.
const UserIDHeader = "X-User-ID"

type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*models.User, error)
}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// CurrentUser returns the user set by RequireAuth.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(currentUserKey).(*models.User)
	return user, ok && user != nil
}

// BearerToken reads "Authorization: Bearer <token>", falling back to the bare "token" header.
func BearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	return r.Header.Get("token")
}

// RequireAuth rejects requests without a valid access token and stores the caller in the context.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				deny(w, http.StatusUnauthorized, "Access denied, missing access token")
				return
			}
			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Access denied, please check the access token")
				return
			}
			r.Header.Set(UserIDHeader, user.ID.Hex())
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": message})
}
