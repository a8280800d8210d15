// Package dungeons implements dungeon authoring and the rating
// aggregation rules. Aggregates are recomputed from the full rating set on
// every write; counters are read-then-write with no isolation, matching
// the store's at-least-once semantics.
package dungeons

import (
	"context"
	"errors"
	"math"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrInvalidRating is returned when a rating falls outside 1-5.
	ErrInvalidRating = errors.New("Rating must be between 1 and 5")
	// ErrInvalidDifficulty is returned for an unrecognised difficulty.
	ErrInvalidDifficulty = errors.New("Invalid difficulty")
	// ErrInvalidStatus is returned for an unrecognised lifecycle status.
	ErrInvalidStatus = errors.New("Invalid status")
)

// DungeonRepo persists dungeon documents.
type DungeonRepo interface {
	Insert(ctx context.Context, d models.DungeonDesign) (models.DungeonDesign, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.DungeonDesign, error)
	Update(ctx context.Context, d models.DungeonDesign) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	ByCreator(ctx context.Context, creatorID primitive.ObjectID, limit int64) ([]models.DungeonDesign, error)
	// Public lists is_public && published dungeons, optionally filtered by
	// difficulty, sorted by average_rating desc then play_count desc.
	Public(ctx context.Context, difficulty string, limit, offset int64) ([]models.DungeonDesign, error)
	// Search matches name, description, or exact tag over the public set,
	// sorted by average_rating desc.
	Search(ctx context.Context, term string, limit int64) ([]models.DungeonDesign, error)
}

// RatingRepo persists rating rows.
type RatingRepo interface {
	Insert(ctx context.Context, r models.Rating) (models.Rating, error)
	Update(ctx context.Context, r models.Rating) error
	ByDungeonAndUser(ctx context.Context, dungeonID, userID primitive.ObjectID) (*models.Rating, error)
	ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) ([]models.Rating, error)
}

// Service holds the content rules.
type Service struct {
	dungeons DungeonRepo
	ratings  RatingRepo
	log      *zap.Logger
}

// New constructs the dungeon service.
func New(dungeons DungeonRepo, ratings RatingRepo, logger *zap.Logger) *Service {
	return &Service{dungeons: dungeons, ratings: ratings, log: logger}
}

// CreateInput is the authoring payload.
type CreateInput struct {
	Name        string
	Description string
	Difficulty  string
	DungeonData bson.M
	Tags        []string
	IsPublic    bool
}

// Create inserts a new dungeon in draft status with zeroed aggregates.
func (s *Service) Create(ctx context.Context, in CreateInput, creatorID primitive.ObjectID) (*models.DungeonDesign, error) {
	if in.Difficulty == "" {
		in.Difficulty = models.DifficultyMedium
	}
	if !models.ValidDifficulty(in.Difficulty) {
		return nil, ErrInvalidDifficulty
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	created, err := s.dungeons.Insert(ctx, models.DungeonDesign{
		Name:        in.Name,
		Description: in.Description,
		CreatorID:   creatorID,
		Difficulty:  in.Difficulty,
		DungeonData: in.DungeonData,
		Tags:        tags,
		IsPublic:    in.IsPublic,
		Status:      models.DungeonDraft,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ByID returns the dungeon or (nil, nil) when absent.
func (s *Service) ByID(ctx context.Context, id primitive.ObjectID) (*models.DungeonDesign, error) {
	return s.dungeons.ByID(ctx, id)
}

// ByCreator lists the creator's dungeons in any status, newest first.
func (s *Service) ByCreator(ctx context.Context, creatorID primitive.ObjectID, limit int64) ([]models.DungeonDesign, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.dungeons.ByCreator(ctx, creatorID, limit)
}

// Public lists published public dungeons. Draft and archived designs are
// never visible here.
func (s *Service) Public(ctx context.Context, difficulty string, limit, offset int64) ([]models.DungeonDesign, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.dungeons.Public(ctx, difficulty, limit, offset)
}

// Search looks up public published dungeons by name, description, or tag.
func (s *Service) Search(ctx context.Context, term string, limit int64) ([]models.DungeonDesign, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.dungeons.Search(ctx, term, limit)
}

// UpdateInput carries optional field updates; nil leaves a field as is.
type UpdateInput struct {
	Name        *string
	Description *string
	Difficulty  *string
	DungeonData bson.M
	Tags        []string
	IsPublic    *bool
	Status      *string
}

// Update applies the edit if the caller is the creator. A wrong actor is
// indistinguishable from an absent dungeon: both return (nil, nil).
func (s *Service) Update(ctx context.Context, id, creatorID primitive.ObjectID, in UpdateInput) (*models.DungeonDesign, error) {
	d, err := s.dungeons.ByID(ctx, id)
	if err != nil || d == nil {
		return nil, err
	}
	if d.CreatorID != creatorID {
		return nil, nil
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.Description != nil {
		d.Description = *in.Description
	}
	if in.Difficulty != nil {
		if !models.ValidDifficulty(*in.Difficulty) {
			return nil, ErrInvalidDifficulty
		}
		d.Difficulty = *in.Difficulty
	}
	if in.DungeonData != nil {
		d.DungeonData = in.DungeonData
	}
	if in.Tags != nil {
		d.Tags = in.Tags
	}
	if in.IsPublic != nil {
		d.IsPublic = *in.IsPublic
	}
	if in.Status != nil {
		switch *in.Status {
		case models.DungeonDraft, models.DungeonPublished, models.DungeonArchived:
			d.Status = *in.Status
		default:
			return nil, ErrInvalidStatus
		}
	}
	if err := s.dungeons.Update(ctx, *d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete removes the dungeon if the caller is the creator.
func (s *Service) Delete(ctx context.Context, id, creatorID primitive.ObjectID) (bool, error) {
	d, err := s.dungeons.ByID(ctx, id)
	if err != nil || d == nil {
		return false, err
	}
	if d.CreatorID != creatorID {
		return false, nil
	}
	if err := s.dungeons.Delete(ctx, id); err != nil {
		return false, err
	}
	return true, nil
}

// Rate records a 1-5 rating with upsert semantics: an existing
// (dungeon, user) row is overwritten in place, never duplicated. After the
// write the dungeon's aggregates are recomputed from the full rating set.
func (s *Service) Rate(ctx context.Context, dungeonID, userID primitive.ObjectID, rating int, comment string) (*models.Rating, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	existing, err := s.ratings.ByDungeonAndUser(ctx, dungeonID, userID)
	if err != nil {
		return nil, err
	}

	var row models.Rating
	if existing != nil {
		existing.Rating = rating
		existing.Comment = comment
		if err := s.ratings.Update(ctx, *existing); err != nil {
			return nil, err
		}
		row = *existing
	} else {
		row, err = s.ratings.Insert(ctx, models.Rating{
			DungeonID: dungeonID,
			UserID:    userID,
			Rating:    rating,
			Comment:   comment,
		})
		if err != nil {
			return nil, err
		}
	}

	if err := s.recomputeRating(ctx, dungeonID); err != nil {
		return nil, err
	}
	return &row, nil
}

// recomputeRating re-reads every rating for the dungeon and writes the
// mean (rounded to two decimals) and count back onto the design. Full
// recompute trades write amplification for freedom from incremental
// floating-point drift.
func (s *Service) recomputeRating(ctx context.Context, dungeonID primitive.ObjectID) error {
	rows, err := s.ratings.ByDungeon(ctx, dungeonID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	total := 0
	for _, r := range rows {
		total += r.Rating
	}
	avg := math.Round(float64(total)/float64(len(rows))*100) / 100

	d, err := s.dungeons.ByID(ctx, dungeonID)
	if err != nil || d == nil {
		return err
	}
	d.AverageRating = avg
	d.TotalRatings = len(rows)
	return s.dungeons.Update(ctx, *d)
}

// IncrementPlayCount bumps the play counter by one via read-then-write.
// A missing dungeon is a silent no-op.
func (s *Service) IncrementPlayCount(ctx context.Context, dungeonID primitive.ObjectID) error {
	d, err := s.dungeons.ByID(ctx, dungeonID)
	if err != nil || d == nil {
		return err
	}
	d.PlayCount++
	return s.dungeons.Update(ctx, *d)
}
