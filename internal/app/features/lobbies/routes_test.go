package lobbies_test

import (
	"net/http"
	"testing"
	"time"

	lobbyfeature "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/features/lobbies"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/lobbies"
	sysauth "github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/testutil/memstore"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) (http.Handler, *lobbies.Service) {
	t.Helper()
	tokens, err := sysauth.NewTokenManager("routes-test-secret-0123456789abcdef", "dungeonhub", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	accountSvc := accounts.New(memstore.NewAccounts(), zap.NewNop())
	mw := sysauth.NewMiddleware(tokens, accountSvc, zap.NewNop())
	h, svc := newHandler()
	return lobbyfeature.Routes(h, mw), svc
}

func TestRoutes_BrowsingNeedsNoToken(t *testing.T) {
	router, svc := newRouter(t)
	l := createLobby(t, svc, testutil.PlayerAccount("host"), 4, "")

	for _, target := range []string{"/", "/" + l.ID.Hex()} {
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec.ResponseRecorder, testutil.NewRequest("GET", target))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s without token: got %d, want %d (body %s)", target, rec.Code, http.StatusOK, rec.Body.String())
		}
	}
}

func TestRoutes_PlayerActionsRequireToken(t *testing.T) {
	router, svc := newRouter(t)
	l := createLobby(t, svc, testutil.PlayerAccount("host"), 4, "")

	cases := map[string]*http.Request{
		"create":  testutil.NewRequest("POST", "/"),
		"join":    testutil.NewRequest("POST", "/"+l.ID.Hex()+"/join"),
		"leave":   testutil.NewRequest("POST", "/"+l.ID.Hex()+"/leave"),
		"start":   testutil.NewRequest("POST", "/"+l.ID.Hex()+"/start"),
		"invite":  testutil.NewRequest("POST", "/"+l.ID.Hex()+"/invite"),
		"invites": testutil.NewRequest("GET", "/invites"),
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
