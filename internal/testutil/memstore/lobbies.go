package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lobbies is an in-memory lobby repository.
type Lobbies struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.LobbySession
}

func NewLobbies() *Lobbies {
	return &Lobbies{rows: make(map[primitive.ObjectID]models.LobbySession)}
}

func (s *Lobbies) Insert(ctx context.Context, l models.LobbySession) (models.LobbySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now
	s.rows[l.ID] = l
	return l, nil
}

func (s *Lobbies) ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.rows[id]; ok {
		return &l, nil
	}
	return nil, nil
}

func (s *Lobbies) Update(ctx context.Context, l models.LobbySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	l.UpdatedAt = time.Now().UTC()
	s.rows[l.ID] = l
	return nil
}

func (s *Lobbies) ByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.LobbySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LobbySession
	for _, l := range s.rows {
		if l.CreatorID == creatorID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Lobbies) PublicWaiting(ctx context.Context, limit int64) ([]models.LobbySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LobbySession
	for _, l := range s.rows {
		if l.IsPublic && l.Status == models.LobbyWaiting {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Invites is an in-memory lobby invite repository.
type Invites struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.LobbyInvite
}

func NewInvites() *Invites {
	return &Invites{rows: make(map[primitive.ObjectID]models.LobbyInvite)}
}

func (s *Invites) Insert(ctx context.Context, inv models.LobbyInvite) (models.LobbyInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = primitive.NewObjectID()
	inv.CreatedAt = time.Now().UTC()
	s.rows[inv.ID] = inv
	return inv, nil
}

func (s *Invites) ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbyInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if inv, ok := s.rows[id]; ok {
		return &inv, nil
	}
	return nil, nil
}

func (s *Invites) Update(ctx context.Context, inv models.LobbyInvite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[inv.ID] = inv
	return nil
}

func (s *Invites) PendingForInvitee(ctx context.Context, inviteeID primitive.ObjectID, now time.Time) ([]models.LobbyInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.LobbyInvite
	for _, inv := range s.rows {
		if inv.InviteeID == inviteeID && inv.IsAccepted == nil && inv.ExpiresAt.After(now) {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
