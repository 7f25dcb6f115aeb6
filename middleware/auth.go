package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"pickem-app-go/logging"
	"pickem-app-go/models"
)

// UserContextKey is the key used to store user in request context
type UserContextKey string

const UserKey UserContextKey = "user"

// TokenAuthenticator resolves a bearer token to a member
type TokenAuthenticator interface {
	GetUserFromToken(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware handles JWT authentication
type AuthMiddleware struct {
	auth   TokenAuthenticator
	logger *logging.Logger
}

// NewAuthMiddleware creates a new authentication middleware
func NewAuthMiddleware(auth TokenAuthenticator) *AuthMiddleware {
	return &AuthMiddleware{
		auth:   auth,
		logger: logging.WithPrefix("Auth"),
	}
}

// RequireAuth rejects requests without a valid token with a JSON 401
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.getUserFromRequest(r)
		if err != nil {
			m.logger.Debugf("Rejected %s %s: %v", r.Method, r.URL.Path, err)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]string{
					"code":    "UNAUTHORIZED",
					"message": "authentication required",
				},
			})
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth adds the user to the context when a valid token is present
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := m.getUserFromRequest(r)
		if user != nil {
			r = r.WithContext(context.WithValue(r.Context(), UserKey, user))
		}
		next.ServeHTTP(w, r)
	})
}

// getUserFromRequest extracts and validates user from request
func (m *AuthMiddleware) getUserFromRequest(r *http.Request) (*models.User, error) {
	// Expected format: "Bearer <token>"
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return m.auth.GetUserFromToken(r.Context(), strings.TrimSpace(parts[1]))
		}
	}

	cookie, err := r.Cookie("auth_token")
	if err == nil && cookie.Value != "" {
		return m.auth.GetUserFromToken(r.Context(), cookie.Value)
	}

	return nil, http.ErrNoCookie
}

// GetUserFromContext retrieves the authenticated user from request context
func GetUserFromContext(r *http.Request) *models.User {
	if user, ok := r.Context().Value(UserKey).(*models.User); ok {
		return user
	}
	return nil
}

// WithUser returns a copy of ctx carrying user, as RequireAuth would
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
