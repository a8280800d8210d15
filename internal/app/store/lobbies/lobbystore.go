// internal/app/store/lobbies/lobbystore.go
package lobbystore

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

// Store persists lobby sessions in the "lobbies" collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("lobbies")}
}

func (s *Store) Insert(ctx context.Context, l models.LobbySession) (models.LobbySession, error) {
	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.CreatedAt = now
	l.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.LobbySession{}, err
	}
	return l, nil
}

func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbySession, error) {
	var l models.LobbySession
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&l); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func (s *Store) Update(ctx context.Context, l models.LobbySession) error {
	set := bson.M{
		"name":            l.Name,
		"max_players":     l.MaxPlayers,
		"current_players": l.CurrentPlayers,
		"is_public":       l.IsPublic,
		"status":          l.Status,
		"started_at":      l.StartedAt,
		"completed_at":    l.CompletedAt,
		"updated_at":      time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, l.ID, bson.M{"$set": set})
	return err
}

// ByCreator lists the creator's lobbies, newest first.
func (s *Store) ByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.LobbySession, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.find(ctx, bson.M{"creator_id": creatorID}, opts)
}

// PublicWaiting lists joinable public lobbies, newest first.
func (s *Store) PublicWaiting(ctx context.Context, limit int64) ([]models.LobbySession, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	filter := bson.M{"is_public": true, "status": models.LobbyWaiting}
	return s.find(ctx, filter, opts)
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.LobbySession, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LobbySession
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
