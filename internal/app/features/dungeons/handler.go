// internal/app/features/dungeons/handler.go
package dungeons

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/dungeons"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves dungeon authoring, browsing, rating, and play tracking.
type Handler struct {
	Dungeons *dungeons.Service
	Log      *zap.Logger
}

func NewHandler(dungeonSvc *dungeons.Service, logger *zap.Logger) *Handler {
	return &Handler{Dungeons: dungeonSvc, Log: logger}
}

type createRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Difficulty  string   `json:"difficulty"`
	DungeonData bson.M   `json:"dungeon_data"`
	Tags        []string `json:"tags"`
	IsPublic    bool     `json:"is_public"`
}

// HandleCreate handles POST /dungeons.
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
		httpjson.BadRequest(w, "Dungeon name is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Dungeons.Create(ctx, dungeons.CreateInput{
		Name:        htmlsanitize.PlainText(req.Name),
		Description: htmlsanitize.Sanitize(req.Description),
		Difficulty:  req.Difficulty,
		DungeonData: req.DungeonData,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	}, account.ID)
	if errors.Is(err, dungeons.ErrInvalidDifficulty) {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("dungeons: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeList handles GET /dungeons. With mine=1 it lists the caller's own
// dungeons in any status; with search= it searches the public set;
// otherwise it lists public published dungeons.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)
	offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if q.Get("mine") == "1" {
		account, ok := auth.CurrentAccount(r)
		if !ok {
			httpjson.Unauthorized(w)
			return
		}
		own, err := h.Dungeons.ByCreator(ctx, account.ID, limit)
		if err != nil {
			h.Log.Error("dungeons: list own failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.Write(w, http.StatusOK, listOf(own))
		return
	}

	if term := q.Get("search"); term != "" {
		found, err := h.Dungeons.Search(ctx, term, limit)
		if err != nil {
			h.Log.Error("dungeons: search failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		httpjson.Write(w, http.StatusOK, listOf(found))
		return
	}

	public, err := h.Dungeons.Public(ctx, q.Get("difficulty"), limit, offset)
	if err != nil {
		h.Log.Error("dungeons: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, listOf(public))
}

// ServeByID handles GET /dungeons/{id}. Lookup is pass-through: drafts
// are returned to anyone holding the id.
func (h *Handler) ServeByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Dungeon not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Dungeons.ByID(ctx, id)
	if err != nil {
		h.Log.Error("dungeons: lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if d == nil {
		httpjson.NotFound(w, "Dungeon not found")
		return
	}
	httpjson.Write(w, http.StatusOK, d)
}

type updateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Difficulty  *string  `json:"difficulty"`
	DungeonData bson.M   `json:"dungeon_data"`
	Tags        []string `json:"tags"`
	IsPublic    *bool    `json:"is_public"`
	Status      *string  `json:"status"`
}

// HandleUpdate handles PUT /dungeons/{id}. Creator-only; a wrong actor
// gets the same 404 as a missing dungeon.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Dungeon not found or unauthorized")
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

	updated, err := h.Dungeons.Update(ctx, id, account.ID, dungeons.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		DungeonData: req.DungeonData,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
		Status:      req.Status,
	})
	if errors.Is(err, dungeons.ErrInvalidDifficulty) || errors.Is(err, dungeons.ErrInvalidStatus) {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("dungeons: update failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if updated == nil {
		httpjson.NotFound(w, "Dungeon not found or unauthorized")
		return
	}
	httpjson.Write(w, http.StatusOK, updated)
}

// HandleDelete handles DELETE /dungeons/{id}. Creator-only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Dungeon not found or unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	deleted, err := h.Dungeons.Delete(ctx, id, account.ID)
	if err != nil {
		h.Log.Error("dungeons: delete failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !deleted {
		httpjson.NotFound(w, "Dungeon not found or unauthorized")
		return
	}
	httpjson.Message(w, http.StatusOK, "Dungeon deleted successfully")
}

type rateRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// HandleRate handles POST /dungeons/{id}/rate.
func (h *Handler) HandleRate(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Dungeon not found")
		return
	}

	var req rateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rating, err := h.Dungeons.Rate(ctx, id, account.ID, req.Rating, htmlsanitize.PlainText(req.Comment))
	if errors.Is(err, dungeons.ErrInvalidRating) {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("dungeons: rate failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, rating)
}

// HandlePlay handles POST /dungeons/{id}/play. The play counter is
// best-effort; an unknown id still acknowledges.
func (h *Handler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Dungeon not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Dungeons.IncrementPlayCount(ctx, id); err != nil {
		h.Log.Error("dungeons: play count failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Message(w, http.StatusOK, "Play count updated")
}

func listOf(in []models.DungeonDesign) []models.DungeonDesign {
	if in == nil {
		return []models.DungeonDesign{}
	}
	return in
}
