// internal/app/features/users/handler.go
package users

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves public profiles and own-profile updates.
type Handler struct {
	Accounts *accounts.Service
	Log      *zap.Logger
}

func NewHandler(accountSvc *accounts.Service, logger *zap.Logger) *Handler {
	return &Handler{Accounts: accountSvc, Log: logger}
}

// ServeSearch handles GET /users?search=&limit=.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")
	if term == "" {
		httpjson.BadRequest(w, "Search term is required")
		return
	}
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	found, err := h.Accounts.Search(ctx, term, limit)
	if err != nil {
		h.Log.Error("users: search failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	profiles := make([]models.Profile, 0, len(found))
	for i := range found {
		profiles = append(profiles, models.ProfileOf(&found[i]))
	}
	httpjson.Write(w, http.StatusOK, profiles)
}

// ServeByID handles GET /users/{id}.
func (h *Handler) ServeByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "User not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	account, err := h.Accounts.ByID(ctx, id)
	if err != nil {
		h.Log.Error("users: lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if account == nil || !account.IsActive {
		httpjson.NotFound(w, "User not found")
		return
	}
	httpjson.Write(w, http.StatusOK, models.ProfileOf(account))
}

// ServeMe handles GET /users/me.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	httpjson.Write(w, http.StatusOK, models.ProfileOf(account))
}

type profileUpdateRequest struct {
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
}

// HandleUpdateProfile handles PUT /users/profile.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req profileUpdateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.DisplayName != nil {
		clean := htmlsanitize.PlainText(*req.DisplayName)
		req.DisplayName = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Accounts.UpdateProfile(ctx, account.ID, accounts.ProfileUpdate{
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		h.Log.Error("users: profile update failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if updated == nil {
		httpjson.NotFound(w, "User not found")
		return
	}
	httpjson.Write(w, http.StatusOK, models.ProfileOf(updated))
}
