package jwtauth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const SessionCookieName = "session"

type EmailContextKey struct{}

//go:generate mockgen -source=middleware.go -destination=mocks/mock.go -package=mockjwt
type JwtManager interface {
	ParseToken(tokenStr string) (string, error)
}

// NewMiddleware authenticates requests by the session cookie. A valid token
// for any identity other than the configured admin email is terminated on the
// spot: the cookie is cleared and the request rejected.
func NewMiddleware(logger *zap.Logger, tokenManager JwtManager, adminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			email, err := tokenManager.ParseToken(cookie.Value)
			if err != nil {
				logger.Warn("error when parsing session token", zap.Error(err))
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			if !strings.EqualFold(email, adminEmail) {
				ClearSessionCookie(w)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), EmailContextKey{}, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
