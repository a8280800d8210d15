package auth_test

import (
	"net/http"
	"testing"
	"time"

	authfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) *authfeature.Handler {
	t.Helper()
	tokens, err := auth.NewTokenManager("handler-test-secret-0123456789", "dungeonhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	svc := accounts.New(memstore.NewAccounts(), zap.NewNop())
	return authfeature.NewHandler(svc, tokens, zap.NewNop())
}

func registerBody(username string) map[string]string {
	return map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "longenough",
	}
}

func TestHandleRegister(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", registerBody("delver"))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)
	var profile models.Profile
	rec.DecodeJSON(t, &profile)
	if profile.Username != "delver" {
		t.Errorf("username: got %q, want %q", profile.Username, "delver")
	}
	if profile.Level != 1 {
		t.Errorf("level: got %d, want 1", profile.Level)
	}
	if profile.ID == "" {
		t.Error("expected an id in the profile")
	}
}

func TestHandleRegister_MissingFields(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", map[string]string{"username": "delver"})
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "Username, email, and password are required")
}

func TestHandleRegister_Duplicate(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", registerBody("delver"))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	req = testutil.NewJSONRequest(t, "POST", "/auth/register", registerBody("delver"))
	rec = testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "Username already exists")
}

func TestHandleRegister_ShortPassword(t *testing.T) {
	h := newHandler(t)

	body := registerBody("delver")
	body["password"] = "short"
	req := testutil.NewJSONRequest(t, "POST", "/auth/register", body)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertError(t, "password must be at least 8 characters")
}

func TestHandleLogin(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", registerBody("delver"))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	req = testutil.NewJSONRequest(t, "POST", "/auth/login", map[string]string{
		"username": "delver",
		"password": "longenough",
	})
	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var body struct {
		AccessToken string         `json:"access_token"`
		TokenType   string         `json:"token_type"`
		User        models.Profile `json:"user"`
	}
	rec.DecodeJSON(t, &body)
	if body.AccessToken == "" {
		t.Error("expected an access token")
	}
	if body.TokenType != "bearer" {
		t.Errorf("token_type: got %q, want %q", body.TokenType, "bearer")
	}
	if body.User.Username != "delver" {
		t.Errorf("user: got %q, want %q", body.User.Username, "delver")
	}
}

func TestHandleLogin_BadCredentials(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewJSONRequest(t, "POST", "/auth/register", registerBody("delver"))
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusCreated)

	for name, creds := range map[string]map[string]string{
		"wrong password": {"username": "delver", "password": "wrongwrong"},
		"unknown user":   {"username": "nobody", "password": "longenough"},
	} {
		t.Run(name, func(t *testing.T) {
			req := testutil.NewJSONRequest(t, "POST", "/auth/login", creds)
			rec := testutil.NewRecorder()
			h.HandleLogin(rec.ResponseRecorder, req)

			rec.AssertStatus(t, http.StatusUnauthorized)
			rec.AssertError(t, "Unauthorized")
		})
	}
}

func TestServeMe(t *testing.T) {
	h := newHandler(t)
	account := testutil.PlayerAccount("delver")

	req := testutil.WithAccount(testutil.NewRequest("GET", "/auth/me"), account)
	rec := testutil.NewRecorder()
	h.ServeMe(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	var profile models.Profile
	rec.DecodeJSON(t, &profile)
	if profile.Username != "delver" {
		t.Errorf("username: got %q, want %q", profile.Username, "delver")
	}
}
