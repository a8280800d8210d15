// Package memstore provides in-memory implementations of the service
// repository interfaces so service and handler tests run without a
// database. Each store is safe for concurrent use and returns copies, so
// callers cannot mutate stored state through returned pointers.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Accounts is an in-memory account repository.
type Accounts struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.Account
}

func NewAccounts() *Accounts {
	return &Accounts{rows: make(map[primitive.ObjectID]models.Account)}
}

func (s *Accounts) Insert(ctx context.Context, a models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.UsernameCI = text.Fold(a.Username)
	a.EmailCI = text.Fold(a.Email)
	a.CreatedAt = now
	a.UpdatedAt = now
	s.rows[a.ID] = a
	return a, nil
}

func (s *Accounts) ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.rows[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (s *Accounts) ByUsername(ctx context.Context, username string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folded := text.Fold(username)
	for _, a := range s.rows {
		if a.UsernameCI == folded {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (s *Accounts) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folded := text.Fold(email)
	for _, a := range s.rows {
		if a.EmailCI == folded {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (s *Accounts) Update(ctx context.Context, a models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.UsernameCI = text.Fold(a.Username)
	a.EmailCI = text.Fold(a.Email)
	a.UpdatedAt = time.Now().UTC()
	s.rows[a.ID] = a
	return nil
}

func (s *Accounts) Search(ctx context.Context, term string, limit int64) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	folded := text.Fold(term)
	var out []models.Account
	for _, a := range s.rows {
		if !a.IsActive {
			continue
		}
		if strings.Contains(a.UsernameCI, folded) ||
			strings.Contains(strings.ToLower(a.DisplayName), strings.ToLower(term)) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UsernameCI < out[j].UsernameCI })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
