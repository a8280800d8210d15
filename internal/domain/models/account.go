package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles.
const (
	RolePlayer = "player"
	RoleAdmin  = "admin"
)

// Account is a registered player (or admin).
//
// UsernameCI and EmailCI hold folded copies of the natural fields and exist
// only for case-insensitive lookups; they never appear in API responses.
// The password is stored as a bcrypt hash and is never serialized.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"-"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	DisplayName  string             `bson:"display_name" json:"display_name"`
	AvatarURL    string             `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Role         string             `bson:"role" json:"role"` // player | admin
	IsActive     bool               `bson:"is_active" json:"is_active"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
	LastLogin    *time.Time         `bson:"last_login,omitempty" json:"last_login,omitempty"`
}

// Profile is the public projection of an Account returned by the users
// and auth endpoints. Game-progress fields default to zero values until
// materialized from play data.
type Profile struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	DisplayName       string     `json:"display_name,omitempty"`
	AvatarURL         string     `json:"avatar_url,omitempty"`
	Level             int        `json:"level"`
	Experience        int        `json:"experience"`
	TotalScore        int        `json:"total_score"`
	DungeonsCreated   int        `json:"dungeons_created"`
	DungeonsCompleted int        `json:"dungeons_completed"`
	GuildID           *string    `json:"guild_id"`
	CreatedAt         time.Time  `json:"created_at"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

// ProfileOf builds the default profile projection for an account.
func ProfileOf(a *Account) Profile {
	return Profile{
		ID:          a.ID.Hex(),
		Username:    a.Username,
		Email:       a.Email,
		DisplayName: a.DisplayName,
		AvatarURL:   a.AvatarURL,
		Level:       1,
		CreatedAt:   a.CreatedAt,
		LastLogin:   a.LastLogin,
	}
}
