// internal/app/store/lobbies/invitestore.go
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

// InviteStore persists invites in the "lobby_invites" collection.
type InviteStore struct {
	c *mongo.Collection
}

func NewInvites(db *mongo.Database) *InviteStore {
	return &InviteStore{c: db.Collection("lobby_invites")}
}

func (s *InviteStore) Insert(ctx context.Context, inv models.LobbyInvite) (models.LobbyInvite, error) {
	inv.ID = primitive.NewObjectID()
	inv.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, inv); err != nil {
		return models.LobbyInvite{}, err
	}
	return inv, nil
}

func (s *InviteStore) ByID(ctx context.Context, id primitive.ObjectID) (*models.LobbyInvite, error) {
	var inv models.LobbyInvite
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&inv); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (s *InviteStore) Update(ctx context.Context, inv models.LobbyInvite) error {
	_, err := s.c.UpdateByID(ctx, inv.ID, bson.M{"$set": bson.M{
		"is_accepted": inv.IsAccepted,
	}})
	return err
}

// PendingForInvitee lists undecided, unexpired invites for a user, newest
// first.
func (s *InviteStore) PendingForInvitee(ctx context.Context, inviteeID primitive.ObjectID, now time.Time) ([]models.LobbyInvite, error) {
	filter := bson.M{
		"invitee_id":  inviteeID,
		"is_accepted": nil,
		"expires_at":  bson.M{"$gt": now},
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.LobbyInvite
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
