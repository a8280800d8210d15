// Package leaderboard maintains denormalized score rows for players and
// dungeons. Rows are overwritten wholesale on update, and ranks are
// computed live by counting rows with a strictly greater metric.
package leaderboard

import (
	"context"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PlayerRepo persists player score rows keyed by user id.
type PlayerRepo interface {
	Insert(ctx context.Context, s models.PlayerScore) (models.PlayerScore, error)
	Update(ctx context.Context, s models.PlayerScore) error
	ByUser(ctx context.Context, userID primitive.ObjectID) (*models.PlayerScore, error)
	// CountGreaterScore counts rows whose total_score strictly exceeds
	// the given value.
	CountGreaterScore(ctx context.Context, score int) (int64, error)
	// TopByScore sorts by total_score desc then dungeons_completed desc.
	TopByScore(ctx context.Context, limit int64) ([]models.PlayerScore, error)
	// TopCreators sorts by dungeons_created desc then average_rating desc.
	TopCreators(ctx context.Context, limit int64) ([]models.PlayerScore, error)
}

// DungeonRepo persists dungeon score rows keyed by dungeon id.
type DungeonRepo interface {
	Insert(ctx context.Context, s models.DungeonScore) (models.DungeonScore, error)
	Update(ctx context.Context, s models.DungeonScore) error
	ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) (*models.DungeonScore, error)
	// CountGreaterRating counts rows whose average_rating strictly
	// exceeds the given value.
	CountGreaterRating(ctx context.Context, rating float64) (int64, error)
	// TopByRating sorts by average_rating desc then play_count desc.
	TopByRating(ctx context.Context, limit int64) ([]models.DungeonScore, error)
	// MostPlayed sorts by play_count desc then average_rating desc.
	MostPlayed(ctx context.Context, limit int64) ([]models.DungeonScore, error)
}

// Service holds the ranking rules.
type Service struct {
	players  PlayerRepo
	dungeons DungeonRepo
	log      *zap.Logger
	now      func() time.Time
}

// New constructs the leaderboard service.
func New(players PlayerRepo, dungeons DungeonRepo, logger *zap.Logger) *Service {
	return &Service{players: players, dungeons: dungeons, log: logger, now: time.Now}
}

// PlayerUpdate carries the metric fields for a player score upsert.
type PlayerUpdate struct {
	Username          string
	TotalScore        int
	DungeonsCompleted int
	DungeonsCreated   int
	AverageRating     float64
}

// UpsertPlayer overwrites the user's score row, inserting when absent.
func (s *Service) UpsertPlayer(ctx context.Context, userID primitive.ObjectID, in PlayerUpdate) (*models.PlayerScore, error) {
	existing, err := s.players.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if existing == nil {
		created, err := s.players.Insert(ctx, models.PlayerScore{
			UserID:            userID,
			Username:          in.Username,
			TotalScore:        in.TotalScore,
			DungeonsCompleted: in.DungeonsCompleted,
			DungeonsCreated:   in.DungeonsCreated,
			AverageRating:     in.AverageRating,
			LastUpdated:       now,
		})
		if err != nil {
			return nil, err
		}
		return &created, nil
	}
	existing.Username = in.Username
	existing.TotalScore = in.TotalScore
	existing.DungeonsCompleted = in.DungeonsCompleted
	existing.DungeonsCreated = in.DungeonsCreated
	existing.AverageRating = in.AverageRating
	existing.LastUpdated = now
	if err := s.players.Update(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DungeonUpdate carries the metric fields for a dungeon score upsert.
type DungeonUpdate struct {
	DungeonName     string
	CreatorUsername string
	TotalScore      int
	PlayCount       int
	AverageRating   float64
	TotalRatings    int
}

// UpsertDungeon overwrites the dungeon's score row, inserting when absent.
func (s *Service) UpsertDungeon(ctx context.Context, dungeonID primitive.ObjectID, in DungeonUpdate) (*models.DungeonScore, error) {
	existing, err := s.dungeons.ByDungeon(ctx, dungeonID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	if existing == nil {
		created, err := s.dungeons.Insert(ctx, models.DungeonScore{
			DungeonID:       dungeonID,
			DungeonName:     in.DungeonName,
			CreatorUsername: in.CreatorUsername,
			TotalScore:      in.TotalScore,
			PlayCount:       in.PlayCount,
			AverageRating:   in.AverageRating,
			TotalRatings:    in.TotalRatings,
			LastUpdated:     now,
		})
		if err != nil {
			return nil, err
		}
		return &created, nil
	}
	existing.DungeonName = in.DungeonName
	existing.CreatorUsername = in.CreatorUsername
	existing.TotalScore = in.TotalScore
	existing.PlayCount = in.PlayCount
	existing.AverageRating = in.AverageRating
	existing.TotalRatings = in.TotalRatings
	existing.LastUpdated = now
	if err := s.dungeons.Update(ctx, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// PlayerScore returns the user's score row or (nil, nil) when absent.
func (s *Service) PlayerScore(ctx context.Context, userID primitive.ObjectID) (*models.PlayerScore, error) {
	return s.players.ByUser(ctx, userID)
}

// DungeonScore returns the dungeon's score row or (nil, nil) when absent.
func (s *Service) DungeonScore(ctx context.Context, dungeonID primitive.ObjectID) (*models.DungeonScore, error) {
	return s.dungeons.ByDungeon(ctx, dungeonID)
}

// PlayerRank computes the user's position by total_score. Equal scores
// receive the same rank. The second return is false when the user has no
// score row.
func (s *Service) PlayerRank(ctx context.Context, userID primitive.ObjectID) (int64, bool, error) {
	row, err := s.players.ByUser(ctx, userID)
	if err != nil || row == nil {
		return 0, false, err
	}
	greater, err := s.players.CountGreaterScore(ctx, row.TotalScore)
	if err != nil {
		return 0, false, err
	}
	return greater + 1, true, nil
}

// DungeonRank computes the dungeon's position by average_rating.
func (s *Service) DungeonRank(ctx context.Context, dungeonID primitive.ObjectID) (int64, bool, error) {
	row, err := s.dungeons.ByDungeon(ctx, dungeonID)
	if err != nil || row == nil {
		return 0, false, err
	}
	greater, err := s.dungeons.CountGreaterRating(ctx, row.AverageRating)
	if err != nil {
		return 0, false, err
	}
	return greater + 1, true, nil
}

// TopPlayers lists score rows by total_score.
func (s *Service) TopPlayers(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.players.TopByScore(ctx, limit)
}

// TopDungeons lists score rows by average_rating.
func (s *Service) TopDungeons(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.dungeons.TopByRating(ctx, limit)
}

// TopCreators lists players by dungeons_created.
func (s *Service) TopCreators(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.players.TopCreators(ctx, limit)
}

// MostPlayed lists dungeons by play_count.
func (s *Service) MostPlayed(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.dungeons.MostPlayed(ctx, limit)
}
