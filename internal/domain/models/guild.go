package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Guild roles.
const (
	GuildMember  = "member"
	GuildOfficer = "officer"
	GuildLeader  = "leader"
)

// ValidGuildRole reports whether r is a recognised guild role.
func ValidGuildRole(r string) bool {
	switch r {
	case GuildMember, GuildOfficer, GuildLeader:
		return true
	}
	return false
}

// Guild is a player group.
//
// CurrentMembers is a maintained counter, not a live count of membership
// rows; it can drift if two roster updates race.
type Guild struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	LeaderID       primitive.ObjectID `bson:"leader_id" json:"leader_id"`
	MaxMembers     int                `bson:"max_members" json:"max_members"`
	CurrentMembers int                `bson:"current_members" json:"current_members"`
	IsPublic       bool               `bson:"is_public" json:"is_public"`
	TotalScore     int                `bson:"total_score" json:"total_score"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// GuildMembership links one account to one guild. The leader's own row is
// created alongside the guild itself.
type GuildMembership struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	GuildID            primitive.ObjectID `bson:"guild_id" json:"guild_id"`
	UserID             primitive.ObjectID `bson:"user_id" json:"user_id"`
	Role               string             `bson:"role" json:"role"` // member | officer | leader
	ContributionPoints int                `bson:"contribution_points" json:"contribution_points"`
	CreatedAt          time.Time          `bson:"created_at" json:"joined_at"`
}
