// internal/app/store/dungeons/dungeonstore.go
package dungeonstore

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

// Store persists dungeon designs in the "dungeons" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("dungeons")}
}

func (s *Store) Insert(ctx context.Context, d models.DungeonDesign) (models.DungeonDesign, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.DungeonDesign{}, err
	}
	return d, nil
}

func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.DungeonDesign, error) {
	var d models.DungeonDesign
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (s *Store) Update(ctx context.Context, d models.DungeonDesign) error {
	set := bson.M{
		"name":           d.Name,
		"description":    d.Description,
		"difficulty":     d.Difficulty,
		"dungeon_data":   d.DungeonData,
		"tags":           d.Tags,
		"is_public":      d.IsPublic,
		"status":         d.Status,
		"average_rating": d.AverageRating,
		"total_ratings":  d.TotalRatings,
		"play_count":     d.PlayCount,
		"updated_at":     time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, d.ID, bson.M{"$set": set})
	return err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ByCreator lists a creator's dungeons, newest first.
func (s *Store) ByCreator(ctx context.Context, creatorID primitive.ObjectID, limit int64) ([]models.DungeonDesign, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, bson.M{"creator_id": creatorID}, opts)
}

// Public lists public published dungeons, best rated first with play count
// as the tie-break.
func (s *Store) Public(ctx context.Context, difficulty string, limit, offset int64) ([]models.DungeonDesign, error) {
	filter := bson.M{"is_public": true, "status": models.DungeonPublished}
	if difficulty != "" {
		filter["difficulty"] = difficulty
	}
	opts := options.Find().
		SetSort(bson.D{
			{Key: "average_rating", Value: -1},
			{Key: "play_count", Value: -1},
		}).
		SetLimit(limit).
		SetSkip(offset)
	return s.find(ctx, filter, opts)
}

// Search matches name, description, or an exact tag over the public
// published set, best rated first.
func (s *Store) Search(ctx context.Context, term string, limit int64) ([]models.DungeonDesign, error) {
	quoted := regexp.QuoteMeta(term)
	filter := bson.M{
		"is_public": true,
		"status":    models.DungeonPublished,
		"$or": []bson.M{
			{"name": bson.M{"$regex": quoted, "$options": "i"}},
			{"description": bson.M{"$regex": quoted, "$options": "i"}},
			{"tags": term},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "average_rating", Value: -1}}).
		SetLimit(limit)
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.DungeonDesign, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DungeonDesign
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
