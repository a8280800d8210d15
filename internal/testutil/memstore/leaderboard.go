package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayerScores is an in-memory player score repository.
type PlayerScores struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.PlayerScore
}

func NewPlayerScores() *PlayerScores {
	return &PlayerScores{rows: make(map[primitive.ObjectID]models.PlayerScore)}
}

func (s *PlayerScores) Insert(ctx context.Context, row models.PlayerScore) (models.PlayerScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row.ID = primitive.NewObjectID()
	s.rows[row.ID] = row
	return row, nil
}

func (s *PlayerScores) Update(ctx context.Context, row models.PlayerScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[row.ID] = row
	return nil
}

func (s *PlayerScores) ByUser(ctx context.Context, userID primitive.ObjectID) (*models.PlayerScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.UserID == userID {
			row := row
			return &row, nil
		}
	}
	return nil, nil
}

func (s *PlayerScores) CountGreaterScore(ctx context.Context, score int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if row.TotalScore > score {
			n++
		}
	}
	return n, nil
}

func (s *PlayerScores) TopByScore(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.all()
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalScore != out[j].TotalScore {
			return out[i].TotalScore > out[j].TotalScore
		}
		return out[i].DungeonsCompleted > out[j].DungeonsCompleted
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *PlayerScores) TopCreators(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.all()
	sort.Slice(out, func(i, j int) bool {
		if out[i].DungeonsCreated != out[j].DungeonsCreated {
			return out[i].DungeonsCreated > out[j].DungeonsCreated
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *PlayerScores) all() []models.PlayerScore {
	out := make([]models.PlayerScore, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out
}

// DungeonScores is an in-memory dungeon score repository.
type DungeonScores struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.DungeonScore
}

func NewDungeonScores() *DungeonScores {
	return &DungeonScores{rows: make(map[primitive.ObjectID]models.DungeonScore)}
}

func (s *DungeonScores) Insert(ctx context.Context, row models.DungeonScore) (models.DungeonScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row.ID = primitive.NewObjectID()
	s.rows[row.ID] = row
	return row, nil
}

func (s *DungeonScores) Update(ctx context.Context, row models.DungeonScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[row.ID] = row
	return nil
}

func (s *DungeonScores) ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) (*models.DungeonScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.DungeonID == dungeonID {
			row := row
			return &row, nil
		}
	}
	return nil, nil
}

func (s *DungeonScores) CountGreaterRating(ctx context.Context, rating float64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.rows {
		if row.AverageRating > rating {
			n++
		}
	}
	return n, nil
}

func (s *DungeonScores) TopByRating(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.all()
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].PlayCount > out[j].PlayCount
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *DungeonScores) MostPlayed(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.all()
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlayCount != out[j].PlayCount {
			return out[i].PlayCount > out[j].PlayCount
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *DungeonScores) all() []models.DungeonScore {
	out := make([]models.DungeonScore, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row)
	}
	return out
}
