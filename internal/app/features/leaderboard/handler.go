// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/leaderboard"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves leaderboard listings, single rows, ranks, and score
// submissions.
type Handler struct {
	Scores *leaderboard.Service
	Log    *zap.Logger
}

func NewHandler(scoreSvc *leaderboard.Service, logger *zap.Logger) *Handler {
	return &Handler{Scores: scoreSvc, Log: logger}
}

func limitParam(r *http.Request) int64 {
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	return limit
}

// ServeTopPlayers handles GET /leaderboard/players.
func (h *Handler) ServeTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Scores.TopPlayers(ctx, limitParam(r))
	if err != nil {
		h.Log.Error("leaderboard: player listing failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if rows == nil {
		rows = []models.PlayerScore{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// ServeTopDungeons handles GET /leaderboard/dungeons.
func (h *Handler) ServeTopDungeons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Scores.TopDungeons(ctx, limitParam(r))
	if err != nil {
		h.Log.Error("leaderboard: dungeon listing failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if rows == nil {
		rows = []models.DungeonScore{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// ServeTopCreators handles GET /leaderboard/players/top-creators.
func (h *Handler) ServeTopCreators(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Scores.TopCreators(ctx, limitParam(r))
	if err != nil {
		h.Log.Error("leaderboard: creator listing failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if rows == nil {
		rows = []models.PlayerScore{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// ServeMostPlayed handles GET /leaderboard/dungeons/most-played.
func (h *Handler) ServeMostPlayed(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Scores.MostPlayed(ctx, limitParam(r))
	if err != nil {
		h.Log.Error("leaderboard: most played listing failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if rows == nil {
		rows = []models.DungeonScore{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// ServePlayerScore handles GET /leaderboard/players/{id}.
func (h *Handler) ServePlayerScore(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	row, err := h.Scores.PlayerScore(ctx, id)
	if err != nil {
		h.Log.Error("leaderboard: player score lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if row == nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	httpjson.Write(w, http.StatusOK, row)
}

// ServeDungeonScore handles GET /leaderboard/dungeons/{id}.
func (h *Handler) ServeDungeonScore(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	row, err := h.Scores.DungeonScore(ctx, id)
	if err != nil {
		h.Log.Error("leaderboard: dungeon score lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if row == nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	httpjson.Write(w, http.StatusOK, row)
}

type rankResponse struct {
	Rank int64 `json:"rank"`
}

// ServePlayerRank handles GET /leaderboard/players/rank/{id}.
func (h *Handler) ServePlayerRank(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rank, found, err := h.Scores.PlayerRank(ctx, id)
	if err != nil {
		h.Log.Error("leaderboard: player rank failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !found {
		httpjson.NotFound(w, "Score not found")
		return
	}
	httpjson.Write(w, http.StatusOK, rankResponse{Rank: rank})
}

// ServeDungeonRank handles GET /leaderboard/dungeons/rank/{id}.
func (h *Handler) ServeDungeonRank(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Score not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rank, found, err := h.Scores.DungeonRank(ctx, id)
	if err != nil {
		h.Log.Error("leaderboard: dungeon rank failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !found {
		httpjson.NotFound(w, "Score not found")
		return
	}
	httpjson.Write(w, http.StatusOK, rankResponse{Rank: rank})
}

type playerUpdateRequest struct {
	UserID            string  `json:"user_id"`
	Username          string  `json:"username"`
	Score             int     `json:"score"`
	DungeonsCompleted int     `json:"dungeons_completed"`
	DungeonsCreated   int     `json:"dungeons_created"`
	AverageRating     float64 `json:"average_rating"`
}

// HandleUpdatePlayer handles POST /leaderboard/players/update. The target
// player comes from the body, so any authenticated caller can submit
// results on another player's behalf; the row is overwritten wholesale.
func (h *Handler) HandleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentAccount(r); !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req playerUpdateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" || req.Username == "" {
		httpjson.BadRequest(w, "user_id and username are required")
		return
	}
	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Scores.UpsertPlayer(ctx, userID, leaderboard.PlayerUpdate{
		Username:          req.Username,
		TotalScore:        req.Score,
		DungeonsCompleted: req.DungeonsCompleted,
		DungeonsCreated:   req.DungeonsCreated,
		AverageRating:     req.AverageRating,
	}); err != nil {
		h.Log.Error("leaderboard: player upsert failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Message(w, http.StatusOK, "Player score updated successfully")
}

type dungeonUpdateRequest struct {
	DungeonID       string  `json:"dungeon_id"`
	DungeonName     string  `json:"dungeon_name"`
	CreatorUsername string  `json:"creator_username"`
	Score           int     `json:"score"`
	PlayCount       int     `json:"play_count"`
	AverageRating   float64 `json:"average_rating"`
	TotalRatings    int     `json:"total_ratings"`
}

// HandleUpdateDungeon handles POST /leaderboard/dungeons/update.
func (h *Handler) HandleUpdateDungeon(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentAccount(r); !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req dungeonUpdateRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	if req.DungeonID == "" || req.DungeonName == "" || req.CreatorUsername == "" {
		httpjson.BadRequest(w, "dungeon_id, dungeon_name, and creator_username are required")
		return
	}
	dungeonID, err := primitive.ObjectIDFromHex(req.DungeonID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid dungeon id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Scores.UpsertDungeon(ctx, dungeonID, leaderboard.DungeonUpdate{
		DungeonName:     req.DungeonName,
		CreatorUsername: req.CreatorUsername,
		TotalScore:      req.Score,
		PlayCount:       req.PlayCount,
		AverageRating:   req.AverageRating,
		TotalRatings:    req.TotalRatings,
	}); err != nil {
		h.Log.Error("leaderboard: dungeon upsert failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Message(w, http.StatusOK, "Dungeon score updated successfully")
}
