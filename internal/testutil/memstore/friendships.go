package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friendships is an in-memory friendship repository.
type Friendships struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.Friendship
}

func NewFriendships() *Friendships {
	return &Friendships{rows: make(map[primitive.ObjectID]models.Friendship)}
}

func (s *Friendships) Insert(ctx context.Context, f models.Friendship) (models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = now
	f.UpdatedAt = now
	s.rows[f.ID] = f
	return f, nil
}

func (s *Friendships) Update(ctx context.Context, f models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f.UpdatedAt = time.Now().UTC()
	s.rows[f.ID] = f
	return nil
}

func (s *Friendships) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *Friendships) Directed(ctx context.Context, requesterID, addresseeID primitive.ObjectID) (*models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.rows {
		if f.RequesterID == requesterID && f.AddresseeID == addresseeID {
			f := f
			return &f, nil
		}
	}
	return nil, nil
}

func (s *Friendships) ByRequester(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Friendship
	for _, f := range s.rows {
		if f.RequesterID == userID && (status == "" || f.Status == status) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Friendships) ByAddressee(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Friendship
	for _, f := range s.rows {
		if f.AddresseeID == userID && (status == "" || f.Status == status) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
