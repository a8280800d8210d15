// internal/app/features/friends/handler.go
package friends

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/accounts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/service/friendships"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/auth"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/httpjson"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/timeouts"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Handler serves the friendship state machine. Friend lists are hydrated
// into profiles through the account service.
type Handler struct {
	Friendships *friendships.Service
	Accounts    *accounts.Service
	Log         *zap.Logger
}

func NewHandler(friendSvc *friendships.Service, accountSvc *accounts.Service, logger *zap.Logger) *Handler {
	return &Handler{Friendships: friendSvc, Accounts: accountSvc, Log: logger}
}

type sendRequestBody struct {
	AddresseeID string `json:"addressee_id"`
}

// HandleSendRequest handles POST /friends/request.
func (h *Handler) HandleSendRequest(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	var req sendRequestBody
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.BadRequest(w, "Invalid request body")
		return
	}
	addresseeID, err := primitive.ObjectIDFromHex(req.AddresseeID)
	if err != nil {
		httpjson.BadRequest(w, "Invalid addressee id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Friendships.SendRequest(ctx, account.ID, addresseeID)
	switch {
	case errors.Is(err, friendships.ErrSelfRequest),
		errors.Is(err, friendships.ErrDuplicateRequest):
		httpjson.BadRequest(w, err.Error())
		return
	case err != nil:
		h.Log.Error("friends: send request failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusCreated, f)
}

// HandleAccept handles POST /friends/request/{id}/accept, where {id} is
// the requester's user id.
func (h *Handler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.Friendships.Accept, "Friend request accepted")
}

// HandleReject handles POST /friends/request/{id}/reject.
func (h *Handler) HandleReject(w http.ResponseWriter, r *http.Request) {
	h.resolveRequest(w, r, h.Friendships.Reject, "Friend request rejected")
}

func (h *Handler) resolveRequest(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, addresseeID, requesterID primitive.ObjectID) (bool, error),
	okMsg string,
) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	requesterID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Friend request not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	done, err := op(ctx, account.ID, requesterID)
	if err != nil {
		h.Log.Error("friends: resolve request failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !done {
		httpjson.NotFound(w, "Friend request not found")
		return
	}
	httpjson.Message(w, http.StatusOK, okMsg)
}

// ServeFriends handles GET /friends.
func (h *Handler) ServeFriends(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	ids, err := h.Friendships.Friends(ctx, account.ID)
	if err != nil {
		h.Log.Error("friends: list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}

	profiles := make([]models.Profile, 0, len(ids))
	for _, id := range ids {
		friend, err := h.Accounts.ByID(ctx, id)
		if err != nil {
			h.Log.Error("friends: profile lookup failed", zap.Error(err))
			httpjson.Internal(w)
			return
		}
		if friend == nil {
			continue
		}
		profiles = append(profiles, models.ProfileOf(friend))
	}
	httpjson.Write(w, http.StatusOK, profiles)
}

// ServePending handles GET /friends/requests/pending.
func (h *Handler) ServePending(w http.ResponseWriter, r *http.Request) {
	h.serveRequests(w, r, h.Friendships.PendingRequests)
}

// ServeSent handles GET /friends/requests/sent.
func (h *Handler) ServeSent(w http.ResponseWriter, r *http.Request) {
	h.serveRequests(w, r, h.Friendships.SentRequests)
}

func (h *Handler) serveRequests(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, userID primitive.ObjectID) ([]models.Friendship, error),
) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := op(ctx, account.ID)
	if err != nil {
		h.Log.Error("friends: request list failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if rows == nil {
		rows = []models.Friendship{}
	}
	httpjson.Write(w, http.StatusOK, rows)
}

// HandleRemove handles DELETE /friends/{id}, where {id} is the friend's
// user id.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	friendID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Friendship not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	removed, err := h.Friendships.Remove(ctx, account.ID, friendID)
	if err != nil {
		h.Log.Error("friends: remove failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !removed {
		httpjson.NotFound(w, "Friendship not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "Friend removed")
}

// HandleBlock handles POST /friends/{id}/block.
func (h *Handler) HandleBlock(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	blockedID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	f, err := h.Friendships.Block(ctx, account.ID, blockedID)
	if errors.Is(err, friendships.ErrSelfBlock) {
		httpjson.BadRequest(w, err.Error())
		return
	}
	if err != nil {
		h.Log.Error("friends: block failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, f)
}

// HandleUnblock handles POST /friends/{id}/unblock.
func (h *Handler) HandleUnblock(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	blockedID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.NotFound(w, "Block not found")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	unblocked, err := h.Friendships.Unblock(ctx, account.ID, blockedID)
	if err != nil {
		h.Log.Error("friends: unblock failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	if !unblocked {
		httpjson.NotFound(w, "Block not found")
		return
	}
	httpjson.Message(w, http.StatusOK, "User unblocked")
}

// ServeCheck handles GET /friends/{id}/check.
func (h *Handler) ServeCheck(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.CurrentAccount(r)
	if !ok {
		httpjson.Unauthorized(w)
		return
	}
	otherID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		httpjson.BadRequest(w, "Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	areFriends, err := h.Friendships.AreFriends(ctx, account.ID, otherID)
	if err != nil {
		h.Log.Error("friends: check failed", zap.Error(err))
		httpjson.Internal(w)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]bool{"are_friends": areFriends})
}
