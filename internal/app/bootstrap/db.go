// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection and verifies it with a
// ping before the app proceeds.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		logger.Error("mongo connect failed", zap.Error(err))
		return DBDeps{}, err
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		logger.Error("mongo ping failed", zap.Error(err))
		return DBDeps{}, err
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))
	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the lookup indexes each collection needs. None of
// them are unique: uniqueness rules (usernames, one rating per pair) are
// enforced by check-then-insert in the services, and an index-level
// constraint would change the observable failure mode.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.MongoDatabase

	indexes := map[string][]mongo.IndexModel{
		"accounts": {
			{Keys: bson.D{{Key: "username_ci", Value: 1}}},
			{Keys: bson.D{{Key: "email_ci", Value: 1}}},
		},
		"dungeons": {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "status", Value: 1}, {Key: "average_rating", Value: -1}}},
		},
		"ratings": {
			{Keys: bson.D{{Key: "dungeon_id", Value: 1}, {Key: "user_id", Value: 1}}},
		},
		"guilds": {
			{Keys: bson.D{{Key: "leader_id", Value: 1}}},
			{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "total_score", Value: -1}}},
		},
		"guild_memberships": {
			{Keys: bson.D{{Key: "guild_id", Value: 1}, {Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		},
		"friendships": {
			{Keys: bson.D{{Key: "requester_id", Value: 1}, {Key: "addressee_id", Value: 1}}},
			{Keys: bson.D{{Key: "addressee_id", Value: 1}, {Key: "status", Value: 1}}},
		},
		"lobbies": {
			{Keys: bson.D{{Key: "creator_id", Value: 1}}},
			{Keys: bson.D{{Key: "is_public", Value: 1}, {Key: "status", Value: 1}}},
		},
		"lobby_invites": {
			{Keys: bson.D{{Key: "invitee_id", Value: 1}, {Key: "is_accepted", Value: 1}, {Key: "expires_at", Value: 1}}},
		},
		"player_scores": {
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "total_score", Value: -1}}},
		},
		"dungeon_scores": {
			{Keys: bson.D{{Key: "dungeon_id", Value: 1}}},
			{Keys: bson.D{{Key: "average_rating", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("index creation failed", zap.String("collection", coll), zap.Error(err))
			return err
		}
	}
	logger.Info("schema ensured", zap.Int("collections", len(indexes)))
	return nil
}
