// internal/app/store/guilds/membershipstore.go
package guildstore

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

// MembershipStore persists roster rows in the "guild_memberships"
// collection.
type MembershipStore struct {
	c *mongo.Collection
}

func NewMemberships(db *mongo.Database) *MembershipStore {
	return &MembershipStore{c: db.Collection("guild_memberships")}
}

func (s *MembershipStore) Insert(ctx context.Context, m models.GuildMembership) (models.GuildMembership, error) {
	m.ID = primitive.NewObjectID()
	m.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.GuildMembership{}, err
	}
	return m, nil
}

func (s *MembershipStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (s *MembershipStore) ByGuildAndUser(ctx context.Context, guildID, userID primitive.ObjectID) (*models.GuildMembership, error) {
	var m models.GuildMembership
	err := s.c.FindOne(ctx, bson.M{"guild_id": guildID, "user_id": userID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ByGuild lists a guild's roster, longest-standing members first.
func (s *MembershipStore) ByGuild(ctx context.Context, guildID primitive.ObjectID) ([]models.GuildMembership, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"guild_id": guildID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.GuildMembership
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AnyByUser returns one membership row for the user, or (nil, nil) when
// the user belongs to no guild.
func (s *MembershipStore) AnyByUser(ctx context.Context, userID primitive.ObjectID) (*models.GuildMembership, error) {
	var m models.GuildMembership
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
