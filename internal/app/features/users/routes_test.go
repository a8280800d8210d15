package users_test

import (
	"net/http"
	"testing"
	"time"

	userfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/users"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *accounts.Service) {
	t.Helper()
	tokens, err := sysauth.NewTokenManager("routes-test-secret-0123456789abcdef", "dungeonhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	h, svc, _ := newHandler()
	mw := sysauth.NewMiddleware(tokens, svc, zap.NewNop())
	return userfeature.Routes(h, mw), svc
}

func TestRoutes_ProfilesNeedNoToken(t *testing.T) {
	router, svc := newRouter(t)
	a := registerAccount(t, svc, "delver")

	for _, target := range []string{"/?search=delv", "/" + a.ID.Hex()} {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec.ResponseRecorder, testutil.NewRequest("GET", target))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s without token: got %d, want %d (body %s)", target, rec.Code, http.StatusOK, rec.Body.String())
		}
	}
}

func TestRoutes_OwnProfileRequiresToken(t *testing.T) {
	router, _ := newRouter(t)

	cases := map[string]*http.Request{
		"me":             testutil.NewRequest("GET", "/me"),
		"update profile": testutil.NewRequest("PUT", "/profile"),
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			rec := testutil.NewRecorder()
			router.ServeHTTP(rec.ResponseRecorder, req)
			rec.AssertStatus(t, http.StatusUnauthorized)
			rec.AssertError(t, "Unauthorized")
		})
	}
}
