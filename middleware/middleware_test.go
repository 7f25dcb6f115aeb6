package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pickem-app-go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) GetUserFromToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)

	var u *models.User
	if args.Get(0) != nil {
		u = args.Get(0).(*models.User)
	}
	return u, args.Error(1)
}

func echoUser(w http.ResponseWriter, r *http.Request) {
	if u := GetUserFromContext(r); u != nil {
		w.Write([]byte(u.Email))
		return
	}
	w.Write([]byte("anonymous"))
}

func TestRequireAuth(t *testing.T) {
	auth := &mockAuthenticator{}
	amy := &models.User{Email: "amy@example.com"}
	auth.On("GetUserFromToken", mock.Anything, "good").Return(amy, nil)
	auth.On("GetUserFromToken", mock.Anything, "bad").Return(nil, errors.New("expired"))

	handler := NewAuthMiddleware(auth).RequireAuth(http.HandlerFunc(echoUser))

	tests := []struct {
		name   string
		setup  func(r *http.Request)
		status int
		body   string
	}{
		{"bearer header", func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, http.StatusOK, "amy@example.com"},
		{"lowercase scheme", func(r *http.Request) { r.Header.Set("Authorization", "bearer  good") }, http.StatusOK, "amy@example.com"},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: "auth_token", Value: "good"}) }, http.StatusOK, "amy@example.com"},
		{"bad token", func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad") }, http.StatusUnauthorized, ""},
		{"no credentials", func(r *http.Request) {}, http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, rec.Body.String())
			} else {
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
				assert.Contains(t, rec.Body.String(), `"UNAUTHORIZED"`)
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	auth := &mockAuthenticator{}
	auth.On("GetUserFromToken", mock.Anything, "bad").Return(nil, errors.New("expired")).Once()

	handler := NewAuthMiddleware(auth).OptionalAuth(http.HandlerFunc(echoUser))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	req.Header.Set("Authorization", "Bearer bad")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "anonymous", rec.Body.String())
	auth.AssertExpectations(t)
}

func TestWithUser(t *testing.T) {
	amy := &models.User{Email: "amy@example.com"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithUser(req.Context(), amy))

	require.NotNil(t, GetUserFromContext(req))
	assert.Equal(t, amy, GetUserFromContext(req))
}

func TestSecurityHeaders(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	t.Run("direct", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SecurityHeaders(false)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
		assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("behind proxy over http", func(t *testing.T) {
		rec := httptest.NewRecorder()
		SecurityHeaders(true)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))
	})

	t.Run("behind proxy over https", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		rec := httptest.NewRecorder()
		SecurityHeaders(true)(ok).ServeHTTP(rec, req)
		assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
	})
}

func TestRequestLoggerPassesStatusThrough(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
