package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Dungeon difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyExpert = "expert"
)

// Dungeon lifecycle statuses.
const (
	DungeonDraft     = "draft"
	DungeonPublished = "published"
	DungeonArchived  = "archived"
)

// ValidDifficulty reports whether d is a recognised difficulty.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert:
		return true
	}
	return false
}

// DungeonDesign is a player-authored dungeon.
//
// AverageRating and TotalRatings are derived fields, recomputed from the
// full rating set whenever a rating is written. PlayCount is a plain
// read-then-write counter.
type DungeonDesign struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatorID     primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	Difficulty    string             `bson:"difficulty" json:"difficulty"`
	DungeonData   bson.M             `bson:"dungeon_data" json:"dungeon_data"`
	Tags          []string           `bson:"tags" json:"tags"`
	IsPublic      bool               `bson:"is_public" json:"is_public"`
	Status        string             `bson:"status" json:"status"` // draft | published | archived
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	TotalRatings  int                `bson:"total_ratings" json:"total_ratings"`
	PlayCount     int                `bson:"play_count" json:"play_count"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// Rating is one player's rating of one dungeon. At most one row exists per
// (dungeon, user) pair; the pair is kept unique by read-before-write, not
// by a storage constraint.
type Rating struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DungeonID primitive.ObjectID `bson:"dungeon_id" json:"dungeon_id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
