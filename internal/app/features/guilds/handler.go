// internal/app/features/guilds/handler.go
package guilds

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/guilds"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves guild creation, browsing, and roster management.
type Handler struct {
	Guilds *guilds.Service
	Log    *zap.Logger
}

func NewHandler(guildSvc *guilds.Service, logger *zap.Logger) *Handler {
	return &Handler{Guilds: guildSvc, Log: logger}
}

type createRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
	IsPublic    bool   `json:"is_public"`
}

// HandleCreate handles POST /guilds.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req createRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		httpjson.BadRequest(w, "Guild name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	created, err := h.Guilds.Create(ctx, guilds.CreateInput{
		Name:        htmlsanitize.PlainText(req.Name),
		Description: htmlsanitize.Sanitize(req.Description),
		MaxMembers:  req.MaxMembers,
		IsPublic:    req.IsPublic,
	}, account.ID)
	if err != nil {
		h.Log.Error("guilds: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeList handles GET /guilds. With search= it searches public guilds;
// otherwise it lists them by score.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		found []models.Guild
		err   error
	)
	if term := q.Get("search"); term != "" {
		found, err = h.Guilds.Search(ctx, term, limit)
	} else {
		found, err = h.Guilds.Public(ctx, limit)
	}
	if err != nil {
		h.Log.Error("guilds: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if found == nil {
		found = []models.Guild{}
	}
	httpjson.Write(w, http.StatusOK, found)
}

// ServeByID handles GET /guilds/{id}.
func (h *Handler) ServeByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Guild not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Guilds.ByID(ctx, id)
	if err != nil {
		h.Log.Error("guilds: lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if g == nil {
		httpjson.NotFound(w, "Guild not found")
		return
	}
	httpjson.Write(w, http.StatusOK, g)
}

// ServeMembers handles GET /guilds/{id}/members.
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Guild not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Guilds.Members(ctx, id)
	if err != nil {
		h.Log.Error("guilds: member list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if members == nil {
		members = []models.GuildMembership{}
	}
	httpjson.Write(w, http.StatusOK, members)
}

type addMemberRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// HandleAddMember handles POST /guilds/{id}/members. The body names the
// joining player; callers joining themselves pass their own id. Capacity and
// duplicate-membership failures are folded into one 400.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentAccount(r); !ok {
		httpjson.Unauthorized(w)
		return
	}
	guildID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Guild not found")
		return
	}

	var req addMemberRequest
	if err := httpjson.Decode(r, &req); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" {
		httpjson.BadRequest(w, "user_id is required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	added, err := h.Guilds.AddMember(ctx, guildID, userID, req.Role)
	if errors.Is(err, guilds.ErrInvalidRole) {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("guilds: add member failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !added {
		httpjson.BadRequest(w, "Failed to add member. Guild may be full or user is already a member.")
		return
	}
	httpjson.Message(w, http.StatusOK, "Member added successfully")
}

// HandleRemoveMember handles DELETE /guilds/{id}/members/{mid}.
// Leader-only; any failure is folded into one 400.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	guildID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Guild not found")
		return
	}
	userID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "mid"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	removed, err := h.Guilds.RemoveMember(ctx, guildID, userID, account.ID)
	if err != nil {
		h.Log.Error("guilds: remove member failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !removed {
		httpjson.BadRequest(w, "Failed to remove member. You may not have permission or the user is not a member.")
		return
	}
	httpjson.Message(w, http.StatusOK, "Member removed successfully")
}

type updateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	MaxMembers  *int    `json:"max_members"`
	IsPublic    *bool   `json:"is_public"`
}

// HandleUpdate handles PUT /guilds/{id}. Leader-only; a wrong actor gets
// the same 404 as a missing guild.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	guildID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Guild not found or unauthorized")
		return
	}

	var req updateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name != nil {
		clean := htmlsanitize.PlainText(*req.Name)
		req.Name = &clean
	}
	if req.Description != nil {
		clean := htmlsanitize.Sanitize(*req.Description)
		req.Description = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Guilds.Update(ctx, guildID, account.ID, guilds.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		MaxMembers:  req.MaxMembers,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		h.Log.Error("guilds: update failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if updated == nil {
		httpjson.NotFound(w, "Guild not found or unauthorized")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// ServeMy handles GET /guilds/my.
func (h *Handler) ServeMy(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	g, err := h.Guilds.UserGuild(ctx, account.ID)
	if err != nil {
		h.Log.Error("guilds: own guild lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if g == nil {
		httpjson.NotFound(w, "You are not a member of any guild")
		return
	}
	httpjson.Write(w, http.StatusOK, g)
}
