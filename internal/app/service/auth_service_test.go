package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"smartnotes/internal/app/validation"
	"smartnotes/internal/common"
	"smartnotes/internal/common/security"
	"smartnotes/internal/domain/repository"
	"smartnotes/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:          []byte("test-secret"),
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		SessionTTL:      24 * time.Hour,
	}
	security.InitJWT()
	return NewAuthService(repository.NewMemoryUserRepository(), repository.NewMemorySessionStore())
}

func TestRegister_Success(t *testing.T) {
	s := newTestAuthService(t)

	resp, err := s.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "SecurePass@123",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)
	assert.Empty(t, resp.User.HashedPassword)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegister_FailsFastInFieldOrder(t *testing.T) {
	s := newTestAuthService(t)

	// Username and password both invalid: only the username error surfaces.
	_, err := s.Register(context.Background(), RegisterRequest{
		Username: "x",
		Email:    "bad",
		Password: "weak",
	})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "username")
	assert.NotContains(t, fe, "password")
	assert.NotContains(t, fe, "email")

	// Valid username, invalid password: the password error surfaces next.
	_, err = s.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "bad",
		Password: "weak",
	})
	fe = nil
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "password")
	assert.NotContains(t, fe, "email")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	_, err = s.Register(ctx, RegisterRequest{
		Username: "alice2", Email: "alice@example.com", Password: "SecurePass@123",
	})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "email")
	assert.Equal(t, []string{validation.ErrEmailTaken.Error()}, fe["email"])
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	// Same field-keyed 400 shape as the duplicate-email case.
	_, err = s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice2@example.com", Password: "SecurePass@123",
	})
	var fe validation.FieldErrors
	require.ErrorAs(t, err, &fe)
	require.Contains(t, fe, "username")
	assert.Equal(t, []string{validation.ErrUsernameTaken.Error()}, fe["username"])
}

func TestLogin_MissingCredentials(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Login(context.Background(), LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, common.ErrMissingCredentials)

	_, err = s.Login(context.Background(), LoginRequest{Username: "alice", Password: ""})
	assert.ErrorIs(t, err, common.ErrMissingCredentials)
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	_, errWrongPassword := s.Login(ctx, LoginRequest{Username: "alice", Password: "wrong"})
	_, errUnknownUser := s.Login(ctx, LoginRequest{Username: "nouser", Password: "x"})

	assert.ErrorIs(t, errWrongPassword, common.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, common.ErrInvalidCredentials)
	// No username-enumeration signal: identical errors for both cases.
	assert.Equal(t, errWrongPassword, errUnknownUser)
}

func TestLogin_Success(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	_, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	resp, err := s.Login(ctx, LoginRequest{Username: "alice", Password: "SecurePass@123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	access, err := s.Refresh(ctx, reg.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, access)
}

func TestRefresh_ExpiredToken(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	config.AppConfig.RefreshTokenTTL = -1 * time.Second
	expired, err := security.GenerateRefreshToken(reg.User.ID)
	require.NoError(t, err)

	_, err = s.Refresh(ctx, expired)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestRefresh_GarbageToken(t *testing.T) {
	s := newTestAuthService(t)

	_, err := s.Refresh(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestRefresh_UnknownUser(t *testing.T) {
	s := newTestAuthService(t)

	// Token signed for an identity that was never stored.
	tok, err := security.GenerateRefreshToken("ghost-user")
	require.NoError(t, err)

	_, err = s.Refresh(context.Background(), tok)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestWebLoginAndLogout(t *testing.T) {
	s := newTestAuthService(t)
	ctx := context.Background()

	reg, err := s.Register(ctx, RegisterRequest{
		Username: "alice", Email: "alice@example.com", Password: "SecurePass@123",
	})
	require.NoError(t, err)

	token, err := s.WebLogin(ctx, LoginRequest{Username: "alice", Password: "SecurePass@123"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.ResolveSession(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, userID)

	require.NoError(t, s.WebLogout(ctx, token))
	_, err = s.ResolveSession(ctx, token)
	assert.True(t, errors.Is(err, common.ErrUnauthenticated))
}
