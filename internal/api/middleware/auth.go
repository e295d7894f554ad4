package middleware

import (
	"context"
	"net/http"
	"strings"

	"smartnotes/internal/common"
	"smartnotes/internal/common/security"
	"smartnotes/internal/domain/repository"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const UserIDCtxKey contextKey = "userID"

// SessionCookieName is the cookie carrying the opaque web-session token.
const SessionCookieName = "session_id"

// Authenticator guards the API path: it requires a valid bearer access
// token and stores the caller's user ID in the request context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context()) // Extracts token from Authorization header

		if err != nil {
			if strings.Contains(err.Error(), "token not found") || token == nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Authorization token required")
			} else {
				common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			}
			return
		}

		if token == nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		userID, err := security.GetUserIDFromClaims(claims)
		if err != nil {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}
		// Refresh tokens must not double as bearer credentials.
		tokenType, err := security.GetTokenTypeFromClaims(claims)
		if err != nil || tokenType != security.TokenTypeAccess {
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid token claims")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionAuthenticator guards the web path: it resolves the session cookie
// through the session store and stores the user ID in the request context.
func SessionAuthenticator(sessions repository.SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				common.RespondWithError(w, http.StatusUnauthorized, "Session required")
				return
			}
			userID, err := sessions.Resolve(r.Context(), cookie.Value)
			if err != nil {
				common.RespondWithError(w, http.StatusUnauthorized, "Session invalid or expired")
				return
			}
			ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Helper to get user ID from context
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDCtxKey).(string)
	return userID, ok
}
