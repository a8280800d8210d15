// internal/app/store/accounts/accountstore.go
package accountstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/normalize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("accounts")}
}

// Insert writes a new account with folded lookup columns and timestamps.
func (s *Store) Insert(ctx context.Context, a models.Account) (models.Account, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Email = normalize.Email(a.Email)
	a.UsernameCI = text.Fold(a.Username)
	a.EmailCI = text.Fold(a.Email)
	a.CreatedAt = now
	a.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Account{}, err
	}
	return a, nil
}

// ByID loads an account, returning (nil, nil) when it does not exist.
func (s *Store) ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ByUsername looks up an account by case-insensitive username.
func (s *Store) ByUsername(ctx context.Context, username string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"username_ci": text.Fold(username)}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// ByEmail looks up an account by case-insensitive email.
func (s *Store) ByEmail(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(normalize.Email(email))}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// Update overwrites the account's mutable fields and stamps updated_at.
func (s *Store) Update(ctx context.Context, a models.Account) error {
	set := bson.M{
		"username":      a.Username,
		"username_ci":   text.Fold(a.Username),
		"email":         a.Email,
		"email_ci":      text.Fold(a.Email),
		"password_hash": a.PasswordHash,
		"display_name":  a.DisplayName,
		"avatar_url":    a.AvatarURL,
		"role":          a.Role,
		"is_active":     a.IsActive,
		"last_login":    a.LastLogin,
		"updated_at":    time.Now().UTC(),
	}
	_, err := s.c.UpdateByID(ctx, a.ID, bson.M{"$set": set})
	return err
}

// Search matches active accounts whose folded username or display name
// contains the term, sorted by username.
func (s *Store) Search(ctx context.Context, term string, limit int64) ([]models.Account, error) {
	quoted := regexp.QuoteMeta(term)
	filter := bson.M{
		"is_active": true,
		"$or": []bson.M{
			{"username_ci": bson.M{"$regex": regexp.QuoteMeta(text.Fold(term))}},
			{"display_name": bson.M{"$regex": quoted, "$options": "i"}},
		},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "username_ci", Value: 1}}).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
