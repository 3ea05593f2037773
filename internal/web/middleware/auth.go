package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/cinelog/cinelog/internal/model"
	"github.com/cinelog/cinelog/internal/services/auth"
)

type contextKey string

const (
	accountContextKey contextKey = "account"

	// SessionCookieName is the cookie holding the session token
	SessionCookieName = "session"
)

// GetAccount retrieves the authenticated account from the request context
// Returns nil if no account is authenticated
func GetAccount(ctx context.Context) *model.Account {
	account, _ := ctx.Value(accountContextKey).(*model.Account)
	return account
}

// Auth returns middleware that requires authentication
// Redirects to the login page if not authenticated
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := getAccountFromSession(r, authService)
			if account == nil {
				// Store original URL to redirect back after login
				redirectURL := "/login?next=" + url.QueryEscape(r.URL.Path)
				http.Redirect(w, r, redirectURL, http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns middleware that attempts authentication but doesn't require it
// Sets the account in context if authenticated, nil otherwise
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			account := getAccountFromSession(r, authService)
			ctx := context.WithValue(r.Context(), accountContextKey, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getAccountFromSession(r *http.Request, authService *auth.Service) *model.Account {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}

	account, err := authService.GetAccount(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return account
}
