package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guilds is an in-memory guild repository.
type Guilds struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.Guild
}

func NewGuilds() *Guilds {
	return &Guilds{rows: make(map[primitive.ObjectID]models.Guild)}
}

func (s *Guilds) Insert(ctx context.Context, g models.Guild) (models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.UpdatedAt = now
	s.rows[g.ID] = g
	return g, nil
}

func (s *Guilds) ByID(ctx context.Context, id primitive.ObjectID) (*models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.rows[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (s *Guilds) Update(ctx context.Context, g models.Guild) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g.UpdatedAt = time.Now().UTC()
	s.rows[g.ID] = g
	return nil
}

func (s *Guilds) ByLeader(ctx context.Context, leaderID primitive.ObjectID) ([]models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Guild
	for _, g := range s.rows {
		if g.LeaderID == leaderID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *Guilds) Public(ctx context.Context, limit int64) ([]models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Guild
	for _, g := range s.rows {
		if g.IsPublic {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].CurrentMembers > out[j].CurrentMembers
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Guilds) Search(ctx context.Context, term string, limit int64) ([]models.Guild, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lower := strings.ToLower(term)
	var out []models.Guild
	for _, g := range s.rows {
		if !g.IsPublic {
			continue
		}
		if strings.Contains(strings.ToLower(g.Name), lower) ||
			strings.Contains(strings.ToLower(g.Description), lower) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Memberships is an in-memory guild roster repository.
type Memberships struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.GuildMembership
}

func NewMemberships() *Memberships {
	return &Memberships{rows: make(map[primitive.ObjectID]models.GuildMembership)}
}

func (s *Memberships) Insert(ctx context.Context, m models.GuildMembership) (models.GuildMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	s.rows[m.ID] = m
	return m, nil
}

func (s *Memberships) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *Memberships) ByGuildAndUser(ctx context.Context, guildID, userID primitive.ObjectID) (*models.GuildMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.rows {
		if m.GuildID == guildID && m.UserID == userID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}

func (s *Memberships) ByGuild(ctx context.Context, guildID primitive.ObjectID) ([]models.GuildMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.GuildMembership
	for _, m := range s.rows {
		if m.GuildID == guildID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Memberships) AnyByUser(ctx context.Context, userID primitive.ObjectID) (*models.GuildMembership, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.rows {
		if m.UserID == userID {
			m := m
			return &m, nil
		}
	}
	return nil, nil
}
