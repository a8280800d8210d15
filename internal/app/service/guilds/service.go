// Package guilds implements roster management with a capacity gate and
// leader-only mutation. current_members is a maintained counter updated by
// read-then-write; it is not a live count of membership rows.
package guilds

import (
	"context"
	"errors"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrInvalidRole is returned for an unrecognised guild role.
var ErrInvalidRole = errors.New(`Role must be "member", "officer", or "leader"`)

// GuildRepo persists guild documents.
type GuildRepo interface {
	Insert(ctx context.Context, g models.Guild) (models.Guild, error)
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Guild, error)
	Update(ctx context.Context, g models.Guild) error
	ByLeader(ctx context.Context, leaderID primitive.ObjectID) ([]models.Guild, error)
	// Public lists public guilds sorted by total_score desc then
	// current_members desc.
	Public(ctx context.Context, limit int64) ([]models.Guild, error)
	// Search matches name or description over public guilds, sorted by
	// total_score desc.
	Search(ctx context.Context, term string, limit int64) ([]models.Guild, error)
}

// MembershipRepo persists roster rows.
type MembershipRepo interface {
	Insert(ctx context.Context, m models.GuildMembership) (models.GuildMembership, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ByGuildAndUser(ctx context.Context, guildID, userID primitive.ObjectID) (*models.GuildMembership, error)
	ByGuild(ctx context.Context, guildID primitive.ObjectID) ([]models.GuildMembership, error)
	AnyByUser(ctx context.Context, userID primitive.ObjectID) (*models.GuildMembership, error)
}

// Service holds the group rules.
type Service struct {
	guilds  GuildRepo
	members MembershipRepo
	log     *zap.Logger
}

// New constructs the guild service.
func New(guilds GuildRepo, members MembershipRepo, logger *zap.Logger) *Service {
	return &Service{guilds: guilds, members: members, log: logger}
}

// CreateInput is the guild creation payload.
type CreateInput struct {
	Name        string
	Description string
	MaxMembers  int
	IsPublic    bool
}

// Create inserts the guild and the leader's own membership row. The two
// writes are not atomic; a crash between them leaves a guild whose leader
// has no roster row.
func (s *Service) Create(ctx context.Context, in CreateInput, leaderID primitive.ObjectID) (*models.Guild, error) {
	if in.MaxMembers <= 0 {
		in.MaxMembers = 50
	}
	created, err := s.guilds.Insert(ctx, models.Guild{
		Name:           in.Name,
		Description:    in.Description,
		LeaderID:       leaderID,
		MaxMembers:     in.MaxMembers,
		CurrentMembers: 1,
		IsPublic:       in.IsPublic,
	})
	if err != nil {
		return nil, err
	}
	if _, err := s.members.Insert(ctx, models.GuildMembership{
		GuildID: created.ID,
		UserID:  leaderID,
		Role:    models.GuildLeader,
	}); err != nil {
		return nil, err
	}
	return &created, nil
}

// ByID returns the guild or (nil, nil) when absent.
func (s *Service) ByID(ctx context.Context, id primitive.ObjectID) (*models.Guild, error) {
	return s.guilds.ByID(ctx, id)
}

// Public lists public guilds.
func (s *Service) Public(ctx context.Context, limit int64) ([]models.Guild, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.guilds.Public(ctx, limit)
}

// Search looks up public guilds by name or description.
func (s *Service) Search(ctx context.Context, term string, limit int64) ([]models.Guild, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.guilds.Search(ctx, term, limit)
}

// Members lists the guild's roster rows.
func (s *Service) Members(ctx context.Context, guildID primitive.ObjectID) ([]models.GuildMembership, error) {
	return s.members.ByGuild(ctx, guildID)
}

// AddMember inserts a roster row after the capacity gate and the
// duplicate-membership guard, then bumps current_members.
func (s *Service) AddMember(ctx context.Context, guildID, userID primitive.ObjectID, role string) (bool, error) {
	if role == "" {
		role = models.GuildMember
	}
	if !models.ValidGuildRole(role) {
		return false, ErrInvalidRole
	}
	g, err := s.guilds.ByID(ctx, guildID)
	if err != nil || g == nil {
		return false, err
	}
	if g.CurrentMembers >= g.MaxMembers {
		return false, nil
	}
	existing, err := s.members.ByGuildAndUser(ctx, guildID, userID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := s.members.Insert(ctx, models.GuildMembership{
		GuildID: guildID,
		UserID:  userID,
		Role:    role,
	}); err != nil {
		return false, err
	}
	g.CurrentMembers++
	if err := s.guilds.Update(ctx, *g); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveMember deletes a roster row and decrements the counter. Only the
// guild leader may remove; anyone else fails closed.
func (s *Service) RemoveMember(ctx context.Context, guildID, userID, requesterID primitive.ObjectID) (bool, error) {
	g, err := s.guilds.ByID(ctx, guildID)
	if err != nil || g == nil {
		return false, err
	}
	if g.LeaderID != requesterID {
		return false, nil
	}
	m, err := s.members.ByGuildAndUser(ctx, guildID, userID)
	if err != nil || m == nil {
		return false, err
	}
	if err := s.members.Delete(ctx, m.ID); err != nil {
		return false, err
	}
	g.CurrentMembers--
	if err := s.guilds.Update(ctx, *g); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateInput carries optional guild field updates.
type UpdateInput struct {
	Name        *string
	Description *string
	MaxMembers  *int
	IsPublic    *bool
}

// Update applies leader-only edits. A wrong actor is indistinguishable
// from an absent guild.
func (s *Service) Update(ctx context.Context, guildID, requesterID primitive.ObjectID, in UpdateInput) (*models.Guild, error) {
	g, err := s.guilds.ByID(ctx, guildID)
	if err != nil || g == nil {
		return nil, err
	}
	if g.LeaderID != requesterID {
		return nil, nil
	}
	if in.Name != nil {
		g.Name = *in.Name
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.MaxMembers != nil && *in.MaxMembers > 0 {
		g.MaxMembers = *in.MaxMembers
	}
	if in.IsPublic != nil {
		g.IsPublic = *in.IsPublic
	}
	if err := s.guilds.Update(ctx, *g); err != nil {
		return nil, err
	}
	return g, nil
}

// UserGuild reverse-looks-up the guild a user belongs to through any
// membership row, or (nil, nil) when the user is guildless. A dangling
// membership row (guild deleted) also yields (nil, nil).
func (s *Service) UserGuild(ctx context.Context, userID primitive.ObjectID) (*models.Guild, error) {
	m, err := s.members.AnyByUser(ctx, userID)
	if err != nil || m == nil {
		return nil, err
	}
	return s.guilds.ByID(ctx, m.GuildID)
}
