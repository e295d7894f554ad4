package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"smartnotes/internal/app/validation"
	"smartnotes/internal/common"
	"smartnotes/internal/common/security"
	"smartnotes/internal/domain/model"
	"smartnotes/internal/domain/repository"
	"smartnotes/internal/platform/config"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
}

func NewAuthService(userRepo repository.UserRepository, sessions repository.SessionStore) *AuthService {
	return &AuthService{userRepo: userRepo, sessions: sessions}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Message      string      `json:"message"`
	User         *model.User `json:"user,omitempty"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
}

// Register validates username, password and email in that order, failing
// fast on the first violation with a field-keyed error.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if err := validation.Username(req.Username); err != nil {
		fe := validation.FieldErrors{}
		fe.Add("username", err)
		return nil, fe
	}
	if err := validation.Password(req.Password); err != nil {
		fe := validation.FieldErrors{}
		fe.Add("password", err)
		return nil, fe
	}
	if err := validation.Email(req.Email); err != nil {
		fe := validation.FieldErrors{}
		fe.Add("email", err)
		return nil, fe
	}
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		fe := validation.FieldErrors{}
		fe.Add("username", validation.ErrUsernameTaken)
		return nil, fe
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username uniqueness: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		fe := validation.FieldErrors{}
		fe.Add("email", validation.ErrEmailTaken)
		return nil, fe
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict when a concurrent registration won
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	access, refresh, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{
		Message:      "User registered successfully",
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Login authenticates by username and password. Unknown usernames and wrong
// passwords are deliberately indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.ErrMissingCredentials
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	access, refresh, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Message:      "Login successful",
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := security.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	// The account may have been removed since the token was issued.
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrTokenInvalid
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	access, err := security.GenerateAccessToken(userID)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return access, nil
}

// WebLogin authenticates like Login but opens a server-side session for the
// cookie-based web path, returning the opaque session token.
func (s *AuthService) WebLogin(ctx context.Context, req LoginRequest) (string, error) {
	if req.Username == "" || req.Password == "" {
		return "", common.ErrMissingCredentials
	}
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return "", common.ErrInvalidCredentials
	}

	token, err := generateSessionToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	if err := s.sessions.Put(ctx, token, user.ID, config.AppConfig.SessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

// WebLogout revokes a session token.
func (s *AuthService) WebLogout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// ResolveSession maps a session token back to a user ID.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (string, error) {
	return s.sessions.Resolve(ctx, token)
}

func (s *AuthService) issueTokens(userID string) (access, refresh string, err error) {
	access, err = security.GenerateAccessToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err = security.GenerateRefreshToken(userID)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return access, refresh, nil
}

func generateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
