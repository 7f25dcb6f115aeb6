package services

import (
	"context"
	"testing"
	"time"

	"pickem-app-go/models"
	"pickem-app-go/services/mockstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func member(t *testing.T) *models.User {
	t.Helper()
	u := &models.User{Email: "amy@example.com", Username: "Amy"}
	require.NoError(t, u.HashPassword("correct horse"))
	return u
}

func TestAuthService_LoginAndToken(t *testing.T) {
	ctx := context.Background()
	users := &mockstore.Users{}
	clk := mockClockAt(beforeWeekOne)
	auth := NewAuthService(users, "test-secret", time.Hour, clk)

	u := member(t)
	users.On("FindByEmail", ctx, "amy@example.com").Return(u, nil)

	resp, err := auth.Login(ctx, "  Amy@Example.com ", "correct horse")
	require.NoError(t, err)
	assert.Empty(t, resp.User.Password)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", claims.Email)
	assert.Equal(t, "Amy", claims.Name)

	got, err := auth.GetUserFromToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Same(t, u, got)

	clk.Add(2 * time.Hour)
	_, err = auth.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrInvalidToken, "token expires with the clock")
}

func TestAuthService_LoginFailures(t *testing.T) {
	ctx := context.Background()
	users := &mockstore.Users{}
	auth := NewAuthService(users, "test-secret", time.Hour, mockClockAt(beforeWeekOne))

	users.On("FindByEmail", ctx, "amy@example.com").Return(member(t), nil).Once()
	users.On("FindByEmail", ctx, "nobody@example.com").Return(nil, nil).Once()

	_, err := auth.Login(ctx, "amy@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = auth.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	users.AssertExpectations(t)
}

func TestAuthService_RejectsForeignTokens(t *testing.T) {
	clk := mockClockAt(beforeWeekOne)
	issuer := NewAuthService(&mockstore.Users{}, "other-secret", time.Hour, clk)
	auth := NewAuthService(&mockstore.Users{}, "test-secret", time.Hour, clk)

	token, err := issuer.GenerateToken(&models.User{Email: "amy@example.com"})
	require.NoError(t, err)

	_, err = auth.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_DeletedUser(t *testing.T) {
	ctx := context.Background()
	users := &mockstore.Users{}
	auth := NewAuthService(users, "test-secret", time.Hour, mockClockAt(beforeWeekOne))

	token, err := auth.GenerateToken(&models.User{Email: "gone@example.com"})
	require.NoError(t, err)
	users.On("FindByEmail", mock.Anything, "gone@example.com").Return(nil, nil).Once()

	_, err = auth.GetUserFromToken(ctx, token)
	assert.Error(t, err)
	users.AssertExpectations(t)
}
