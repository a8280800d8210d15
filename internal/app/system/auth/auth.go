// Package auth resolves bearer tokens to accounts and injects the caller
// into the request context. Verification fails closed: any missing,
// malformed, or expired credential yields the same generic 401.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.uber.org/zap"
)

type ctxKey string

const currentAccountKey ctxKey = "currentAccount"

// AccountSource fetches fresh account data per request so deactivations
// take effect immediately, not at token expiry.
type AccountSource interface {
	AccountByUsername(ctx context.Context, username string) (*models.Account, error)
}

// Middleware authenticates requests with a TokenManager and an
// AccountSource. Both are injected; there is no ambient state.
type Middleware struct {
	Tokens   *TokenManager
	Accounts AccountSource
	Log      *zap.Logger
}

// NewMiddleware constructs the auth middleware.
func NewMiddleware(tokens *TokenManager, accounts AccountSource, logger *zap.Logger) *Middleware {
	return &Middleware{Tokens: tokens, Accounts: accounts, Log: logger}
}

// CurrentAccount returns the authenticated account and a found flag.
func CurrentAccount(r *http.Request) (*models.Account, bool) {
	a, ok := r.Context().Value(currentAccountKey).(*models.Account)
	return a, ok
}

// WithAccount returns a request whose context carries the account.
// Exposed for handler tests; the middleware uses it internally.
func WithAccount(r *http.Request, a *models.Account) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentAccountKey, a))
}

// RequireAccount rejects the request with a 401 before any service call
// unless a valid bearer token resolves to an active account.
func (m *Middleware) RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account := m.resolve(r)
		if account == nil {
			httpjson.Unauthorized(w)
			return
		}
		next.ServeHTTP(w, WithAccount(r, account))
	})
}

// resolve extracts and verifies the bearer token, then loads the account.
// Any failure returns nil; the reason is not surfaced to the client.
func (m *Middleware) resolve(r *http.Request) *models.Account {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil
	}
	claims, err := m.Tokens.Verify(parts[1])
	if err != nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	account, err := m.Accounts.AccountByUsername(ctx, claims.Subject)
	if err != nil {
		m.Log.Error("auth: account lookup failed", zap.Error(err))
		return nil
	}
	if account == nil || !account.IsActive {
		return nil
	}
	return account
}
