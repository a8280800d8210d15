package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friendship statuses.
const (
	FriendshipPending  = "pending"
	FriendshipAccepted = "accepted"
	FriendshipRejected = "rejected"
	FriendshipBlocked  = "blocked"
)

// Friendship models an undirected relationship as one directed row.
// Lookups must probe both orderings of the pair.
type Friendship struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RequesterID primitive.ObjectID `bson:"requester_id" json:"requester_id"`
	AddresseeID primitive.ObjectID `bson:"addressee_id" json:"addressee_id"`
	Status      string             `bson:"status" json:"status"` // pending | accepted | rejected | blocked
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Other returns the opposite party of the row relative to userID.
func (f Friendship) Other(userID primitive.ObjectID) primitive.ObjectID {
	if f.RequesterID == userID {
		return f.AddresseeID
	}
	return f.RequesterID
}
