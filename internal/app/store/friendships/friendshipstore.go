// internal/app/store/friendships/friendshipstore.go
package friendshipstore

import (
	"context"
	"errors"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store persists friendship rows in the "friendships" collection. Each
// relationship is one directed row; the service probes both orderings.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("friendships")}
}

func (s *Store) Insert(ctx context.Context, f models.Friendship) (models.Friendship, error) {
	now := time.Now().UTC()
	f.ID = primitive.NewObjectID()
	f.CreatedAt = now
	f.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, f); err != nil {
		return models.Friendship{}, err
	}
	return f, nil
}

func (s *Store) Update(ctx context.Context, f models.Friendship) error {
	set := bson.M{
		"status":     f.Status,
		"updated_at": time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, f.ID, bson.M{"$set": set})
	return err
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Directed returns the row with the exact requester/addressee orientation,
// or (nil, nil) when none exists.
func (s *Store) Directed(ctx context.Context, requesterID, addresseeID primitive.ObjectID) (*models.Friendship, error) {
	var f models.Friendship
	err := s.c.FindOne(ctx, bson.M{
		"requester_id": requesterID,
		"addressee_id": addresseeID,
	}).Decode(&f)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// ByRequester lists rows where the user initiated, optionally filtered by
// status, newest first.
func (s *Store) ByRequester(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error) {
	filter := bson.M{"requester_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

// ByAddressee lists rows where the user is the target, optionally filtered
// by status, newest first.
func (s *Store) ByAddressee(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error) {
	filter := bson.M{"addressee_id": userID}
	if status != "" {
		filter["status"] = status
	}
	return s.find(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Friendship, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Friendship
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
