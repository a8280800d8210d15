package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lobby statuses.
const (
	LobbyWaiting   = "waiting"
	LobbyInGame    = "in_game"
	LobbyCompleted = "completed"
	LobbyCancelled = "cancelled"
)

// LobbySession is a matchmaking session for one dungeon.
//
// CurrentPlayers starts at 1 (the creator occupies the first slot) and is
// a read-then-write counter with no isolation.
type LobbySession struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	CreatorID      primitive.ObjectID `bson:"creator_id" json:"creator_id"`
	DungeonID      primitive.ObjectID `bson:"dungeon_id" json:"dungeon_id"`
	MaxPlayers     int                `bson:"max_players" json:"max_players"`
	CurrentPlayers int                `bson:"current_players" json:"current_players"`
	IsPublic       bool               `bson:"is_public" json:"is_public"`
	Password       string             `bson:"password,omitempty" json:"-"`
	Status         string             `bson:"status" json:"status"` // waiting | in_game | completed | cancelled
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
	StartedAt      *time.Time         `bson:"started_at,omitempty" json:"started_at,omitempty"`
	CompletedAt    *time.Time         `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// LobbyInvite is a creator-issued invitation into a waiting lobby.
// IsAccepted is tri-state: nil = pending, true = accepted, false = declined.
type LobbyInvite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LobbyID    primitive.ObjectID `bson:"lobby_id" json:"lobby_id"`
	InviterID  primitive.ObjectID `bson:"inviter_id" json:"inviter_id"`
	InviteeID  primitive.ObjectID `bson:"invitee_id" json:"invitee_id"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	ExpiresAt  time.Time          `bson:"expires_at" json:"expires_at"`
	IsAccepted *bool              `bson:"is_accepted" json:"is_accepted"`
}
