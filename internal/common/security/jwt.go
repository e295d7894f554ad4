package security

import (
	"errors"
	"time"

	"smartnotes/internal/common"
	"smartnotes/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateAccessToken issues a short-lived stateless bearer token.
func GenerateAccessToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    userID,
		"token_type": TokenTypeAccess,
		"exp":        time.Now().Add(config.AppConfig.AccessTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// RefreshClaims is the payload of a refresh token.
type RefreshClaims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// GenerateRefreshToken issues the longer-lived token exchanged for new
// access tokens without re-authentication.
func GenerateRefreshToken(userID string) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID:    userID,
		TokenType: TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(config.AppConfig.RefreshTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.AppConfig.JWTKey)
}

// ParseRefreshToken verifies signature, expiry and token type, returning
// the user ID the token was issued for.
func ParseRefreshToken(tokenString string) (string, error) {
	claims := &RefreshClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return config.AppConfig.JWTKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrTokenInvalid
	}
	if !token.Valid || claims.TokenType != TokenTypeRefresh {
		return "", common.ErrTokenInvalid
	}
	return claims.UserID, nil
}

// Helper functions to extract claims, can be used in middleware or services
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetTokenTypeFromClaims(claims jwt.MapClaims) (string, error) {
	typ, ok := claims["token_type"].(string)
	if !ok {
		return "", errors.New("token_type claim is missing or not a string")
	}
	return typ, nil
}
