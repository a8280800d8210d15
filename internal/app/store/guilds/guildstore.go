// internal/app/store/guilds/guildstore.go
package guildstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists guilds in the "guilds" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("guilds")}
}

func (s *Store) Insert(ctx context.Context, g models.Guild) (models.Guild, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Guild{}, err
	}
	return g, nil
}

func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.Guild, error) {
	var g models.Guild
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (s *Store) Update(ctx context.Context, g models.Guild) error {
	set := bson.M{
		"name":            g.Name,
		"description":     g.Description,
		"max_members":     g.MaxMembers,
		"current_members": g.CurrentMembers,
		"is_public":       g.IsPublic,
		"total_score":     g.TotalScore,
		"updated_at":      time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, g.ID, bson.M{"$set": set})
	return err
}

func (s *Store) ByLeader(ctx context.Context, leaderID primitive.ObjectID) ([]models.Guild, error) {
	return s.find(ctx, bson.M{"leader_id": leaderID}, options.Find())
}

// Public lists public guilds, highest scoring first with member count as
// the tie-break.
func (s *Store) Public(ctx context.Context, limit int64) ([]models.Guild, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "total_score", Value: -1},
			{Key: "current_members", Value: -1},
		}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"is_public": true}, opts)
}

// Search matches name or description over public guilds.
func (s *Store) Search(ctx context.Context, term string, limit int64) ([]models.Guild, error) {
	quoted := regexp.QuoteMeta(term)
	filter := bson.M{
		"is_public": true,
		"$or": []bson.M{
			{"name": bson.M{"$regex": quoted, "$options": "i"}},
			{"description": bson.M{"$regex": quoted, "$options": "i"}},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "total_score", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Guild, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Guild
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
