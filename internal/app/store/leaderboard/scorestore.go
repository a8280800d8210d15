// internal/app/store/leaderboard/scorestore.go
package leaderboardstore

import (
	"context"
	"errors"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PlayerStore persists player score rows in the "player_scores"
// collection, one per account.
type PlayerStore struct {
	c *mongo.Collection
}

func NewPlayers(db *mongo.Database) *PlayerStore {
	return &PlayerStore{c: db.Collection("player_scores")}
}

func (s *PlayerStore) Insert(ctx context.Context, row models.PlayerScore) (models.PlayerScore, error) {
	row.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, row); err != nil {
		return models.PlayerScore{}, err
	}
	return row, nil
}

func (s *PlayerStore) Update(ctx context.Context, row models.PlayerScore) error {
	set := bson.M{
		"username":           row.Username,
		"total_score":        row.TotalScore,
		"dungeons_completed": row.DungeonsCompleted,
		"dungeons_created":   row.DungeonsCreated,
		"average_rating":     row.AverageRating,
		"last_updated":       row.LastUpdated,
	}
	_, err := s.c.UpdateByID(ctx, row.ID, bson.M{"$set": set})
	return err
}

func (s *PlayerStore) ByUser(ctx context.Context, userID primitive.ObjectID) (*models.PlayerScore, error) {
	var row models.PlayerScore
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *PlayerStore) CountGreaterScore(ctx context.Context, score int) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"total_score": bson.M{"$gt": score}})
}

func (s *PlayerStore) TopByScore(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "total_score", Value: -1},
			{Key: "dungeons_completed", Value: -1},
		}).
		SetLimit(limit)
	return s.find(ctx, opts)
}

func (s *PlayerStore) TopCreators(ctx context.Context, limit int64) ([]models.PlayerScore, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "dungeons_created", Value: -1},
			{Key: "average_rating", Value: -1},
		}).
		SetLimit(limit)
	return s.find(ctx, opts)
}

func (s *PlayerStore) find(ctx context.Context, opts *options.FindOptions) ([]models.PlayerScore, error) {
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.PlayerScore
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DungeonStore persists dungeon score rows in the "dungeon_scores"
// collection, one per dungeon.
type DungeonStore struct {
	c *mongo.Collection
}

func NewDungeons(db *mongo.Database) *DungeonStore {
	return &DungeonStore{c: db.Collection("dungeon_scores")}
}

func (s *DungeonStore) Insert(ctx context.Context, row models.DungeonScore) (models.DungeonScore, error) {
	row.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, row); err != nil {
		return models.DungeonScore{}, err
	}
	return row, nil
}

func (s *DungeonStore) Update(ctx context.Context, row models.DungeonScore) error {
	set := bson.M{
		"dungeon_name":     row.DungeonName,
		"creator_username": row.CreatorUsername,
		"total_score":      row.TotalScore,
		"play_count":       row.PlayCount,
		"average_rating":   row.AverageRating,
		"total_ratings":    row.TotalRatings,
		"last_updated":     row.LastUpdated,
	}
	_, err := s.c.UpdateByID(ctx, row.ID, bson.M{"$set": set})
	return err
}

func (s *DungeonStore) ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) (*models.DungeonScore, error) {
	var row models.DungeonScore
	if err := s.c.FindOne(ctx, bson.M{"dungeon_id": dungeonID}).Decode(&row); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *DungeonStore) CountGreaterRating(ctx context.Context, rating float64) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"average_rating": bson.M{"$gt": rating}})
}

func (s *DungeonStore) TopByRating(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "average_rating", Value: -1},
			{Key: "play_count", Value: -1},
		}).
		SetLimit(limit)
	return s.find(ctx, opts)
}

func (s *DungeonStore) MostPlayed(ctx context.Context, limit int64) ([]models.DungeonScore, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "play_count", Value: -1},
			{Key: "average_rating", Value: -1},
		}).
		SetLimit(limit)
	return s.find(ctx, opts)
}

func (s *DungeonStore) find(ctx context.Context, opts *options.FindOptions) ([]models.DungeonScore, error) {
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DungeonScore
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
