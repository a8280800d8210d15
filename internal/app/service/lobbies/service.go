// Package lobbies implements the matchmaking session lifecycle
// (waiting -> in_game -> completed, with cancellation from either of the
// first two states) and the invite flow layered on top of it.
//
// Counter updates are read-then-write with no isolation, and accepting an
// invite is two independent writes (flag, then join). Leave does not check
// that the caller actually holds a seat.
package lobbies

import (
	"context"
	"errors"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InviteTTL is how long a lobby invite stays actionable.
const InviteTTL = 24 * time.Hour

// Sentinel errors surfaced verbatim to clients.
var (
	ErrNotCreator     = errors.New("Only the lobby creator can send invites")
	ErrNotWaiting     = errors.New("Lobby is not accepting players")
	ErrLobbyFull      = errors.New("Lobby is full")
	ErrInviteExpired  = errors.New("Invite has expired")
	ErrInviteNotYours = errors.New("Invite not found")
)

// LobbyRepo persists lobby sessions.
type LobbyRepo interface {
	Insert(ctx context.Context, l models.LobbySession) (models.LobbySession, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbySession, error)
	Update(ctx context.Context, l models.LobbySession) error
	ByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.LobbySession, error)
	// PublicWaiting lists public lobbies in the waiting state, newest
	// first.
	PublicWaiting(ctx context.Context, limit int64) ([]models.LobbySession, error)
}

// InviteRepo persists lobby invites.
type InviteRepo interface {
	Insert(ctx context.Context, inv models.LobbyInvite) (models.LobbyInvite, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbyInvite, error)
	Update(ctx context.Context, inv models.LobbyInvite) error
	// PendingForInvitee lists invites with is_accepted unset and
	// expires_at in the future, newest first.
	PendingForInvitee(ctx context.Context, inviteeID primitive.ObjectID, now time.Time) ([]models.LobbyInvite, error)
}

// Service holds the session rules.
type Service struct {
	lobbies LobbyRepo
	invites InviteRepo
	log     *zap.Logger
	now     func() time.Time
}

// New constructs the lobby service.
func New(lobbies LobbyRepo, invites InviteRepo, logger *zap.Logger) *Service {
	return &Service{lobbies: lobbies, invites: invites, log: logger, now: time.Now}
}

// CreateInput is the lobby creation payload.
type CreateInput struct {
	Name       string
	DungeonID  primitive.ObjectID
	MaxPlayers int
	IsPublic   bool
	Password   string
}

// Create opens a lobby with the creator occupying the first slot.
func (s *Service) Create(ctx context.Context, in CreateInput, creatorID primitive.ObjectID) (*models.LobbySession, error) {
	if in.MaxPlayers <= 0 {
		in.MaxPlayers = 4
	}
	created, err := s.lobbies.Insert(ctx, models.LobbySession{
		Name:           in.Name,
		CreatorID:      creatorID,
		DungeonID:      in.DungeonID,
		MaxPlayers:     in.MaxPlayers,
		CurrentPlayers: 1,
		IsPublic:       in.IsPublic,
		Password:       in.Password,
		Status:         models.LobbyWaiting,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ByID returns the lobby or (nil, nil) when absent.
func (s *Service) ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbySession, error) {
	return s.lobbies.ByID(ctx, id)
}

// ByCreator lists the user's own lobbies.
func (s *Service) ByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.LobbySession, error) {
	return s.lobbies.ByCreator(ctx, creatorID)
}

// PublicWaiting lists joinable public lobbies.
func (s *Service) PublicWaiting(ctx context.Context, limit int64) ([]models.LobbySession, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.lobbies.PublicWaiting(ctx, limit)
}

// Join claims a seat. It fails (false, nil) when the lobby is absent, not
// waiting, full, or password-protected with a mismatched password.
func (s *Service) Join(ctx context.Context, lobbyID, userID primitive.ObjectID, password string) (bool, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return false, err
	}
	if l.Status != models.LobbyWaiting {
		return false, nil
	}
	if l.CurrentPlayers >= l.MaxPlayers {
		return false, nil
	}
	if l.Password != "" && l.Password != password {
		return false, nil
	}
	l.CurrentPlayers++
	if err := s.lobbies.Update(ctx, *l); err != nil {
		return false, err
	}
	return true, nil
}

// Leave releases a seat, floored at zero. The caller's presence in the
// lobby is not verified.
func (s *Service) Leave(ctx context.Context, lobbyID, userID primitive.ObjectID) (bool, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return false, err
	}
	if l.Status != models.LobbyWaiting {
		return false, nil
	}
	if l.CurrentPlayers > 0 {
		l.CurrentPlayers--
	}
	if err := s.lobbies.Update(ctx, *l); err != nil {
		return false, err
	}
	return true, nil
}

// Start moves a waiting lobby into play. Creator-only, and the lobby must
// hold at least one player.
func (s *Service) Start(ctx context.Context, lobbyID, requesterID primitive.ObjectID) (bool, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return false, err
	}
	if l.CreatorID != requesterID || l.Status != models.LobbyWaiting || l.CurrentPlayers < 1 {
		return false, nil
	}
	now := s.now().UTC()
	l.Status = models.LobbyInGame
	l.StartedAt = &now
	if err := s.lobbies.Update(ctx, *l); err != nil {
		return false, err
	}
	return true, nil
}

// Complete finishes an in-game lobby. Creator-only.
func (s *Service) Complete(ctx context.Context, lobbyID, requesterID primitive.ObjectID) (bool, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return false, err
	}
	if l.CreatorID != requesterID || l.Status != models.LobbyInGame {
		return false, nil
	}
	now := s.now().UTC()
	l.Status = models.LobbyCompleted
	l.CompletedAt = &now
	if err := s.lobbies.Update(ctx, *l); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel abandons a lobby from waiting or in_game. Creator-only.
func (s *Service) Cancel(ctx context.Context, lobbyID, requesterID primitive.ObjectID) (bool, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return false, err
	}
	if l.CreatorID != requesterID {
		return false, nil
	}
	if l.Status != models.LobbyWaiting && l.Status != models.LobbyInGame {
		return false, nil
	}
	l.Status = models.LobbyCancelled
	if err := s.lobbies.Update(ctx, *l); err != nil {
		return false, err
	}
	return true, nil
}

// Invite issues a 24-hour invitation into a waiting lobby. Only the
// creator may invite, and the lobby must have room. A (nil, nil) return
// means the lobby was absent.
func (s *Service) Invite(ctx context.Context, lobbyID, inviterID, inviteeID primitive.ObjectID) (*models.LobbyInvite, error) {
	l, err := s.lobbies.ByID(ctx, lobbyID)
	if err != nil || l == nil {
		return nil, err
	}
	if l.CreatorID != inviterID {
		return nil, ErrNotCreator
	}
	if l.Status != models.LobbyWaiting {
		return nil, ErrNotWaiting
	}
	if l.CurrentPlayers >= l.MaxPlayers {
		return nil, ErrLobbyFull
	}
	created, err := s.invites.Insert(ctx, models.LobbyInvite{
		LobbyID:   lobbyID,
		InviterID: inviterID,
		InviteeID: inviteeID,
		ExpiresAt: s.now().UTC().Add(InviteTTL),
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Invites lists the user's pending, unexpired invites.
func (s *Service) Invites(ctx context.Context, inviteeID primitive.ObjectID) ([]models.LobbyInvite, error) {
	return s.invites.PendingForInvitee(ctx, inviteeID, s.now().UTC())
}

// AcceptInvite marks the invite accepted and then joins its lobby. The
// two writes are independent; a failed join leaves the invite accepted
// with no seat taken.
func (s *Service) AcceptInvite(ctx context.Context, inviteID, userID primitive.ObjectID) (bool, error) {
	inv, err := s.invites.ByID(ctx, inviteID)
	if err != nil || inv == nil {
		return false, err
	}
	if inv.InviteeID != userID {
		return false, ErrInviteNotYours
	}
	if s.now().UTC().After(inv.ExpiresAt) {
		return false, ErrInviteExpired
	}
	accepted := true
	inv.IsAccepted = &accepted
	if err := s.invites.Update(ctx, *inv); err != nil {
		return false, err
	}
	return s.Join(ctx, inv.LobbyID, userID, "")
}

// DeclineInvite marks the invite declined. No further effect.
func (s *Service) DeclineInvite(ctx context.Context, inviteID, userID primitive.ObjectID) (bool, error) {
	inv, err := s.invites.ByID(ctx, inviteID)
	if err != nil || inv == nil {
		return false, err
	}
	if inv.InviteeID != userID {
		return false, ErrInviteNotYours
	}
	declined := false
	inv.IsAccepted = &declined
	if err := s.invites.Update(ctx, *inv); err != nil {
		return false, err
	}
	return true, nil
}
