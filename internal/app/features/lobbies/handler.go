// internal/app/features/lobbies/handler.go
package lobbies

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/lobbies"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/htmlsanitize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the matchmaking lobby lifecycle and invites.
type Handler struct {
	Lobbies *lobbies.Service
	Log     *zap.Logger
}

func NewHandler(lobbySvc *lobbies.Service, logger *zap.Logger) *Handler {
	return &Handler{Lobbies: lobbySvc, Log: logger}
}

type createRequest struct {
	Name       string `json:"name"`
	DungeonID  string `json:"dungeon_id"`
	MaxPlayers int    `json:"max_players"`
	IsPublic   bool   `json:"is_public"`
	Password   string `json:"password"`
}

// HandleCreate handles POST /lobbies.
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
		httpjson.BadRequest(w, "Lobby name is required")
		return
	}
	dungeonID, err := primitive.ObjectIDFromHex(req.DungeonID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid dungeon id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	created, err := h.Lobbies.Create(ctx, lobbies.CreateInput{
		Name:       htmlsanitize.PlainText(req.Name),
		DungeonID:  dungeonID,
		MaxPlayers: req.MaxPlayers,
		IsPublic:   req.IsPublic,
		Password:   req.Password,
	}, account.ID)
	if err != nil {
		h.Log.Error("lobbies: create failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, created)
}

// ServeList handles GET /lobbies. With mine=1 it lists the caller's own
// lobbies; otherwise public waiting lobbies.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		found []models.LobbySession
		err   error
	)
	if q.Get("mine") == "1" {
		account, ok := auth.CurrentAccount(r)
		if !ok {
			httpjson.Unauthorized(w)
			return
		}
		found, err = h.Lobbies.ByCreator(ctx, account.ID)
	} else {
		found, err = h.Lobbies.PublicWaiting(ctx, limit)
	}
	if err != nil {
		h.Log.Error("lobbies: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if found == nil {
		found = []models.LobbySession{}
	}
	httpjson.Write(w, http.StatusOK, found)
}

// ServeByID handles GET /lobbies/{id}.
func (h *Handler) ServeByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Lobby not found")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	l, err := h.Lobbies.ByID(ctx, id)
	if err != nil {
		h.Log.Error("lobbies: lookup failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if l == nil {
		httpjson.NotFound(w, "Lobby not found")
		return
	}
	httpjson.Write(w, http.StatusOK, l)
}

type joinRequest struct {
	Password string `json:"password"`
}

// HandleJoin handles POST /lobbies/{id}/join. Full, closed, and
// wrong-password lobbies all fail the same way.
func (h *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Lobby not found")
		return
	}

	var req joinRequest
	if err := httpjson.Decode(r, &req); err != nil && !errors.Is(err, httpjson.ErrEmptyBody) {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	joined, err := h.Lobbies.Join(ctx, id, account.ID, req.Password)
	if err != nil {
		h.Log.Error("lobbies: join failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !joined {
		httpjson.BadRequest(w, "Failed to join lobby. It may be full, closed, or password protected.")
		return
	}
	httpjson.Message(w, http.StatusOK, "Joined lobby successfully")
}

// HandleLeave handles POST /lobbies/{id}/leave.
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Lobby not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	left, err := h.Lobbies.Leave(ctx, id, account.ID)
	if err != nil {
		h.Log.Error("lobbies: leave failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !left {
		httpjson.BadRequest(w, "Failed to leave lobby")
		return
	}
	httpjson.Message(w, http.StatusOK, "Left lobby successfully")
}

// HandleStart handles POST /lobbies/{id}/start. Creator-only.
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Lobbies.Start, "Game started")
}

// HandleComplete handles POST /lobbies/{id}/complete. Creator-only.
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Lobbies.Complete, "Game completed")
}

// HandleCancel handles POST /lobbies/{id}/cancel. Creator-only.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Lobbies.Cancel, "Lobby cancelled")
}

// transition runs a creator-only state change. Wrong actor and wrong
// state are indistinguishable from an absent lobby.
func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, lobbyID, requesterID primitive.ObjectID) (bool, error),
	okMsg string,
) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Lobby not found or unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	done, err := op(ctx, id, account.ID)
	if err != nil {
		h.Log.Error("lobbies: state change failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !done {
		httpjson.NotFound(w, "Lobby not found or unauthorized")
		return
	}
	httpjson.Message(w, http.StatusOK, okMsg)
}

type inviteRequest struct {
	InviteeID string `json:"invitee_id"`
}

// HandleInvite handles POST /lobbies/{id}/invite.
func (h *Handler) HandleInvite(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Lobby not found")
		return
	}

	var req inviteRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	inviteeID, err := primitive.ObjectIDFromHex(req.InviteeID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid invitee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	inv, err := h.Lobbies.Invite(ctx, id, account.ID, inviteeID)
	switch {
	case errors.Is(err, lobbies.ErrNotCreator),
		errors.Is(err, lobbies.ErrNotWaiting),
		errors.Is(err, lobbies.ErrLobbyFull):
		httpjson.BadRequest(w, err.Error())
		return
	case err != nil:
		h.Log.Error("lobbies: invite failed", zap.Error(err))
		httpjson.Internal(w)
		return
	case inv == nil:
		httpjson.NotFound(w, "Lobby not found")
		return
	}
	httpjson.Write(w, http.StatusCreated, inv)
}

// ServeInvites handles GET /lobbies/invites.
func (h *Handler) ServeInvites(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	invites, err := h.Lobbies.Invites(ctx, account.ID)
	if err != nil {
		h.Log.Error("lobbies: invite list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if invites == nil {
		invites = []models.LobbyInvite{}
	}
	httpjson.Write(w, http.StatusOK, invites)
}

// HandleAcceptInvite handles POST /lobbies/invites/{id}/accept.
func (h *Handler) HandleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Invite not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	joined, err := h.Lobbies.AcceptInvite(ctx, id, account.ID)
	switch {
	case errors.Is(err, lobbies.ErrInviteNotYours):
		httpjson.NotFound(w, err.Error())
		return
	case errors.Is(err, lobbies.ErrInviteExpired):
		httpjson.BadRequest(w, err.Error())
		return
	case err != nil:
		h.Log.Error("lobbies: accept invite failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !joined {
		httpjson.BadRequest(w, "Failed to join lobby. It may be full or closed.")
		return
	}
	httpjson.Message(w, http.StatusOK, "Invite accepted")
}

// HandleDeclineInvite handles POST /lobbies/invites/{id}/decline.
func (h *Handler) HandleDeclineInvite(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Invite not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	declined, err := h.Lobbies.DeclineInvite(ctx, id, account.ID)
	if errors.Is(err, lobbies.ErrInviteNotYours) {
		httpjson.NotFound(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("lobbies: decline invite failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !declined {
		httpjson.NotFound(w, "Invite not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "Invite declined")
}
