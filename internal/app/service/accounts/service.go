// Package accounts implements registration, login, and profile logic over
// a small repository interface so the rules are testable without a
// document database.
package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/normalize"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/app/system/password"
	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("Username already exists")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("Email already exists")
	// ErrInvalidCredentials is returned on any login failure; the caller
	// cannot distinguish unknown user from wrong password.
	ErrInvalidCredentials = errors.New("Invalid credentials")
	// ErrInvalidEmail is returned for a syntactically hopeless email.
	ErrInvalidEmail = errors.New("A valid email is required")
)

// Repo is the persistence surface the service needs. Absent records come
// back as (nil, nil); only infrastructure failures return an error.
type Repo interface {
	Insert(ctx context.Context, a models.Account) (models.Account, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	ByUsername(ctx context.Context, username string) (*models.Account, error)
	ByEmail(ctx context.Context, email string) (*models.Account, error)
	Update(ctx context.Context, a models.Account) error
	Search(ctx context.Context, term string, limit int64) ([]models.Account, error)
}

// Service holds the account rules.
type Service struct {
	repo Repo
	log  *zap.Logger
}

// New constructs the account service.
func New(repo Repo, logger *zap.Logger) *Service {
	return &Service{repo: repo, log: logger}
}

// RegisterInput is the registration payload after handler-level shape
// validation.
type RegisterInput struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// Register creates an account. Uniqueness is check-then-insert: concurrent
// registrations with the same username can both pass the check. That race
// is an accepted property of the design, not something this layer closes.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	username := normalize.Username(in.Username)
	email := normalize.Email(in.Email)
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if err := password.Validate(in.Password); err != nil {
		return nil, err
	}

	if existing, err := s.repo.ByUsername(ctx, username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateUsername
	}
	if existing, err := s.repo.ByEmail(ctx, email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	display := strings.TrimSpace(in.DisplayName)
	if display == "" {
		display = username
	}

	created, err := s.repo.Insert(ctx, models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  display,
		Role:         models.RolePlayer,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Login verifies the credentials and stamps last_login on success.
func (s *Service) Login(ctx context.Context, username, plain string) (*models.Account, error) {
	account, err := s.repo.ByUsername(ctx, normalize.Username(username))
	if err != nil {
		return nil, err
	}
	if account == nil || !password.Verify(account.PasswordHash, plain) {
		return nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	account.LastLogin = &now
	if err := s.repo.Update(ctx, *account); err != nil {
		// Login still succeeds; the stamp is best-effort.
		s.log.Warn("accounts: last_login update failed", zap.Error(err))
	}
	return account, nil
}

// AccountByUsername satisfies the auth middleware's AccountSource.
func (s *Service) AccountByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.repo.ByUsername(ctx, username)
}

// ByID returns the account or (nil, nil) when absent.
func (s *Service) ByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.repo.ByID(ctx, id)
}

// ProfileUpdate carries the caller-editable profile fields. Nil means
// leave unchanged.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
}

// UpdateProfile applies the update to the caller's own account and returns
// the refreshed account, or (nil, nil) when the account is gone.
func (s *Service) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.Account, error) {
	account, err := s.repo.ByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	if upd.DisplayName != nil {
		account.DisplayName = strings.TrimSpace(*upd.DisplayName)
	}
	if upd.AvatarURL != nil {
		account.AvatarURL = strings.TrimSpace(*upd.AvatarURL)
	}
	if err := s.repo.Update(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

// Search returns active accounts whose username or display name contains
// the term, capped at limit.
func (s *Service) Search(ctx context.Context, term string, limit int64) ([]models.Account, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.Search(ctx, term, limit)
}
