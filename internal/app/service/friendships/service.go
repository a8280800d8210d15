// Package friendships implements the friendship state machine over an
// undirected pair stored as one directed row.
//
// Transitions: pending -> accepted|rejected; (none) -> blocked;
// blocked -> (row deleted). A rejected pair can never re-request without
// an out-of-band deletion; that is a preserved policy choice, not a bug.
package friendships

import (
	"context"
	"errors"

	"github.com/jaegerpicker/DungeonBuilderServerSide/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var (
	// ErrSelfRequest is returned when a user targets themselves.
	ErrSelfRequest = errors.New("Cannot send friend request to yourself")
	// ErrSelfBlock is returned when a user blocks themselves.
	ErrSelfBlock = errors.New("Cannot block yourself")
	// ErrDuplicateRequest is returned when any relationship row already
	// exists between the pair, in either direction, regardless of status.
	ErrDuplicateRequest = errors.New("Friendship request already exists")
)

// Repo persists friendship rows. Directed looks up the row with the exact
// requester/addressee orientation; callers probe both orderings.
type Repo interface {
	Insert(ctx context.Context, f models.Friendship) (models.Friendship, error)
	Update(ctx context.Context, f models.Friendship) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Directed(ctx context.Context, requesterID, addresseeID primitive.ObjectID) (*models.Friendship, error)
	ByRequester(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error)
	ByAddressee(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Friendship, error)
}

// Service holds the social-graph rules.
type Service struct {
	repo Repo
	log  *zap.Logger
}

// New constructs the friendship service.
func New(repo Repo, logger *zap.Logger) *Service {
	return &Service{repo: repo, log: logger}
}

// between returns the relationship row between two users in either
// direction, or (nil, nil).
func (s *Service) between(ctx context.Context, a, b primitive.ObjectID) (*models.Friendship, error) {
	f, err := s.repo.Directed(ctx, a, b)
	if err != nil || f != nil {
		return f, err
	}
	return s.repo.Directed(ctx, b, a)
}

// SendRequest creates a pending row from requester to addressee. Fails if
// the pair already has any row, whatever its status.
func (s *Service) SendRequest(ctx context.Context, requesterID, addresseeID primitive.ObjectID) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfRequest
	}
	existing, err := s.between(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateRequest
	}
	created, err := s.repo.Insert(ctx, models.Friendship{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipPending,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Accept moves a pending request to accepted. The row must exist with the
// exact requester/addressee direction; anything else is a no-op failure.
func (s *Service) Accept(ctx context.Context, addresseeID, requesterID primitive.ObjectID) (bool, error) {
	return s.resolvePending(ctx, addresseeID, requesterID, models.FriendshipAccepted)
}

// Reject moves a pending request to rejected.
func (s *Service) Reject(ctx context.Context, addresseeID, requesterID primitive.ObjectID) (bool, error) {
	return s.resolvePending(ctx, addresseeID, requesterID, models.FriendshipRejected)
}

func (s *Service) resolvePending(ctx context.Context, addresseeID, requesterID primitive.ObjectID, status string) (bool, error) {
	f, err := s.repo.Directed(ctx, requesterID, addresseeID)
	if err != nil {
		return false, err
	}
	if f == nil || f.Status != models.FriendshipPending {
		return false, nil
	}
	f.Status = status
	if err := s.repo.Update(ctx, *f); err != nil {
		return false, err
	}
	return true, nil
}

// Block overwrites any existing relationship row to blocked, keeping the
// row's original direction; with no prior row it inserts one with the
// blocker as requester.
func (s *Service) Block(ctx context.Context, blockerID, blockedID primitive.ObjectID) (*models.Friendship, error) {
	if blockerID == blockedID {
		return nil, ErrSelfBlock
	}
	existing, err := s.between(ctx, blockerID, blockedID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Status = models.FriendshipBlocked
		if err := s.repo.Update(ctx, *existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	created, err := s.repo.Insert(ctx, models.Friendship{
		RequesterID: blockerID,
		AddresseeID: blockedID,
		Status:      models.FriendshipBlocked,
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Unblock deletes the row outright, but only from status=blocked.
// Deliberately asymmetric with Block, which overwrites in place.
func (s *Service) Unblock(ctx context.Context, blockerID, blockedID primitive.ObjectID) (bool, error) {
	f, err := s.between(ctx, blockerID, blockedID)
	if err != nil {
		return false, err
	}
	if f == nil || f.Status != models.FriendshipBlocked {
		return false, nil
	}
	if err := s.repo.Delete(ctx, f.ID); err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes an accepted friendship.
func (s *Service) Remove(ctx context.Context, userID, friendID primitive.ObjectID) (bool, error) {
	f, err := s.between(ctx, userID, friendID)
	if err != nil {
		return false, err
	}
	if f == nil || f.Status != models.FriendshipAccepted {
		return false, nil
	}
	if err := s.repo.Delete(ctx, f.ID); err != nil {
		return false, err
	}
	return true, nil
}

// Friends returns the ids of the other party of every accepted row the
// user appears in, on either side.
func (s *Service) Friends(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	asRequester, err := s.repo.ByRequester(ctx, userID, models.FriendshipAccepted)
	if err != nil {
		return nil, err
	}
	asAddressee, err := s.repo.ByAddressee(ctx, userID, models.FriendshipAccepted)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(asRequester)+len(asAddressee))
	for _, f := range asRequester {
		ids = append(ids, f.Other(userID))
	}
	for _, f := range asAddressee {
		ids = append(ids, f.Other(userID))
	}
	return ids, nil
}

// PendingRequests lists requests awaiting the user's decision.
func (s *Service) PendingRequests(ctx context.Context, userID primitive.ObjectID) ([]models.Friendship, error) {
	return s.repo.ByAddressee(ctx, userID, models.FriendshipPending)
}

// SentRequests lists the user's own outstanding requests.
func (s *Service) SentRequests(ctx context.Context, userID primitive.ObjectID) ([]models.Friendship, error) {
	return s.repo.ByRequester(ctx, userID, models.FriendshipPending)
}

// AreFriends reports whether the pair has an accepted row in either
// direction.
func (s *Service) AreFriends(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	f, err := s.between(ctx, a, b)
	if err != nil {
		return false, err
	}
	return f != nil && f.Status == models.FriendshipAccepted, nil
}

// IsBlocked reports whether the pair has a blocked row in either
// direction.
func (s *Service) IsBlocked(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	f, err := s.between(ctx, a, b)
	if err != nil {
		return false, err
	}
	return f != nil && f.Status == models.FriendshipBlocked, nil
}
