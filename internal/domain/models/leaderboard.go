package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayerScore is a denormalized leaderboard row, one per account,
// overwritten wholesale on update.
type PlayerScore struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"`
	Username          string             `bson:"username" json:"username"`
	TotalScore        int                `bson:"total_score" json:"total_score"`
	DungeonsCompleted int                `bson:"dungeons_completed" json:"dungeons_completed"`
	DungeonsCreated   int                `bson:"dungeons_created" json:"dungeons_created"`
	AverageRating     float64            `bson:"average_rating" json:"average_rating"`
	LastUpdated       time.Time          `bson:"last_updated" json:"last_updated"`
}

// DungeonScore is a denormalized leaderboard row, one per dungeon.
type DungeonScore struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DungeonID       primitive.ObjectID `bson:"dungeon_id" json:"dungeon_id"`
	DungeonName     string             `bson:"dungeon_name" json:"dungeon_name"`
	CreatorUsername string             `bson:"creator_username" json:"creator_username"`
	TotalScore      int                `bson:"total_score" json:"total_score"`
	PlayCount       int                `bson:"play_count" json:"play_count"`
	AverageRating   float64            `bson:"average_rating" json:"average_rating"`
	TotalRatings    int                `bson:"total_ratings" json:"total_ratings"`
	LastUpdated     time.Time          `bson:"last_updated" json:"last_updated"`
}
