package testutil

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Calls chain: an existing route context is reused so multi-param routes
// can be built up one parameter at a time.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// PlayerAccount builds an active player account with a fresh id.
func PlayerAccount(username string) *models.Account {
	now := time.Now().UTC()
	return &models.Account{
		ID:          primitive.NewObjectID(),
		Username:    username,
		UsernameCI:  text.Fold(username),
		Email:       username + "@test.com",
		EmailCI:     text.Fold(username + "@test.com"),
		DisplayName: username,
		Role:        models.RolePlayer,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// AdminAccount builds an active admin account with a fresh id.
func AdminAccount(username string) *models.Account {
	a := PlayerAccount(username)
	a.Role = models.RoleAdmin
	return a
}
