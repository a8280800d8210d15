package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.uber.org/zap"
)

// accountMap is a static AccountSource for middleware tests.
type accountMap map[string]*models.Account

func (m accountMap) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return m[username], nil
}

func newMiddleware(t *testing.T, accounts accountMap) (*auth.Middleware, *auth.TokenManager) {
	t.Helper()
	tm, err := auth.NewTokenManager(testSecret, "dungeonhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return auth.NewMiddleware(tm, accounts, zap.NewNop()), tm
}

func echoAccount(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := auth.CurrentAccount(r)
		if !ok {
			t.Error("handler reached without an account in context")
			return
		}
		_, _ = w.Write([]byte(account.Username))
	})
}

func TestRequireAccount(t *testing.T) {
	active := &models.Account{Username: "delver", IsActive: true}
	mw, tm := newMiddleware(t, accountMap{"delver": active})

	token, _, err := tm.Issue("delver")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	mw.RequireAccount(echoAccount(t)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "delver" {
		t.Errorf("body: got %q, want %q", rec.Body.String(), "delver")
	}
}

func TestRequireAccount_Rejections(t *testing.T) {
	active := &models.Account{Username: "delver", IsActive: true}
	inactive := &models.Account{Username: "banned", IsActive: false}
	mw, tm := newMiddleware(t, accountMap{"delver": active, "banned": inactive})

	goodToken, _, _ := tm.Issue("delver")
	bannedToken, _, _ := tm.Issue("banned")
	ghostToken, _, _ := tm.Issue("ghost")

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic " + goodToken},
		{"malformed token", "Bearer not-a-token"},
		{"unknown account", "Bearer " + ghostToken},
		{"inactive account", "Bearer " + bannedToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			called := false
			mw.RequireAccount(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			})).ServeHTTP(rec, req)

			if called {
				t.Error("handler must not run for a rejected request")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}
