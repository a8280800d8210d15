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

// Dungeons is an in-memory dungeon repository.
type Dungeons struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.DungeonDesign
}

func NewDungeons() *Dungeons {
	return &Dungeons{rows: make(map[primitive.ObjectID]models.DungeonDesign)}
}

func (s *Dungeons) Insert(ctx context.Context, d models.DungeonDesign) (models.DungeonDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	s.rows[d.ID] = d
	return d, nil
}

func (s *Dungeons) ByID(ctx context.Context, id primitive.ObjectID) (*models.DungeonDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.rows[id]; ok {
		return &d, nil
	}
	return nil, nil
}

func (s *Dungeons) Update(ctx context.Context, d models.DungeonDesign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.UpdatedAt = time.Now().UTC()
	s.rows[d.ID] = d
	return nil
}

func (s *Dungeons) Delete(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rows, id)
	return nil
}

func (s *Dungeons) ByCreator(ctx context.Context, creatorID primitive.ObjectID, limit int64) ([]models.DungeonDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DungeonDesign
	for _, d := range s.rows {
		if d.CreatorID == creatorID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Dungeons) Public(ctx context.Context, difficulty string, limit, offset int64) ([]models.DungeonDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.DungeonDesign
	for _, d := range s.rows {
		if !d.IsPublic || d.Status != models.DungeonPublished {
			continue
		}
		if difficulty != "" && d.Difficulty != difficulty {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].PlayCount > out[j].PlayCount
	})
	if offset >= int64(len(out)) {
		return nil, nil
	}
	out = out[offset:]
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Dungeons) Search(ctx context.Context, term string, limit int64) ([]models.DungeonDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lower := strings.ToLower(term)
	var out []models.DungeonDesign
	for _, d := range s.rows {
		if !d.IsPublic || d.Status != models.DungeonPublished {
			continue
		}
		if strings.Contains(strings.ToLower(d.Name), lower) ||
			strings.Contains(strings.ToLower(d.Description), lower) ||
			hasTag(d.Tags, term) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Ratings is an in-memory rating repository.
type Ratings struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.Rating
}

func NewRatings() *Ratings {
	return &Ratings{rows: make(map[primitive.ObjectID]models.Rating)}
}

func (s *Ratings) Insert(ctx context.Context, r models.Rating) (models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	s.rows[r.ID] = r
	return r, nil
}

func (s *Ratings) Update(ctx context.Context, r models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.UpdatedAt = time.Now().UTC()
	s.rows[r.ID] = r
	return nil
}

func (s *Ratings) ByDungeonAndUser(ctx context.Context, dungeonID, userID primitive.ObjectID) (*models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.DungeonID == dungeonID && r.UserID == userID {
			r := r
			return &r, nil
		}
	}
	return nil, nil
}

func (s *Ratings) ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) ([]models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Rating
	for _, r := range s.rows {
		if r.DungeonID == dungeonID {
			out = append(out, r)
		}
	}
	return out, nil
}
