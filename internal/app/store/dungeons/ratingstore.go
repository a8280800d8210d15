// internal/app/store/dungeons/ratingstore.go
package dungeonstore

import (
	"context"
	"errors"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RatingStore persists rating rows in the "ratings" collection. The
// one-row-per-(dungeon, user) rule is enforced by the service's
// read-before-write, not by an index.
type RatingStore struct {
	c *mongo.Collection
}

func NewRatings(db *mongo.Database) *RatingStore {
	return &RatingStore{c: db.Collection("ratings")}
}

func (s *RatingStore) Insert(ctx context.Context, r models.Rating) (models.Rating, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.CreatedAt = now
	r.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Rating{}, err
	}
	return r, nil
}

func (s *RatingStore) Update(ctx context.Context, r models.Rating) error {
	set := bson.M{
		"rating":     r.Rating,
		"comment":    r.Comment,
		"updated_at": time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, r.ID, bson.M{"$set": set})
	return err
}

func (s *RatingStore) ByDungeonAndUser(ctx context.Context, dungeonID, userID primitive.ObjectID) (*models.Rating, error) {
	var r models.Rating
	err := s.c.FindOne(ctx, bson.M{"dungeon_id": dungeonID, "user_id": userID}).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &r, nil
}

func (s *RatingStore) ByDungeon(ctx context.Context, dungeonID primitive.ObjectID) ([]models.Rating, error) {
	cur, err := s.c.Find(ctx, bson.M{"dungeon_id": dungeonID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Rating
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
