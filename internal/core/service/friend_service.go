package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare-api/internal/api/metrics"
	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// rollbackAttempts bounds how often a failed pair-write is compensated
// before the pair is declared partially updated.
const rollbackAttempts = 3

// FriendService mutates pairs of user documents while keeping the
// relationship lists consistent: friendship is symmetric, every outgoing
// marker has a matching incoming marker on the other side, and for any pair
// at most one of {friends, A→B pending, B→A pending} holds.
//
// The store offers per-document atomicity only. Every mutation here writes
// the acting user first, then the counterpart; when the second write fails
// the first is rolled back from a pre-mutation snapshot. Two users
// requesting each other concurrently can still race on stale reads — the
// implicit-accept branch in SendRequest narrows that window but does not
// close it.
type FriendService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewFriendService(users ports.UserRepository, log zerolog.Logger) *FriendService {
	return &FriendService{users: users, log: log}
}

// Status classifies the relationship from requester toward target.
// The self check runs before any lookup, so Status(a, a) never fails.
func (s *FriendService) Status(ctx context.Context, requesterID, targetID string) (domain.FriendState, error) {
	if requesterID == targetID {
		return domain.StateSelf, nil
	}
	current, _, err := s.loadPair(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}
	return current.RelationTo(targetID), nil
}

// SendRequest installs a pending request toward target, or — when target
// already requested the caller — converts both pending markers directly
// into a friendship. The returned state says which branch was taken:
// StateOutgoing or StateFriends.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, targetID string) (domain.FriendState, error) {
	if requesterID == targetID {
		return "", domain.ErrSelfTarget
	}

	current, target, err := s.loadPair(ctx, requesterID, targetID)
	if err != nil {
		return "", err
	}

	if current.HasFriend(targetID) {
		return "", domain.ErrAlreadyFriends
	}

	if current.HasIncomingFrom(targetID) {
		snapshot := current.Clone()
		befriend(current, target)
		if err := s.savePair(ctx, current, snapshot, target); err != nil {
			return "", err
		}
		metrics.FriendRequestsTotal.WithLabelValues("implicit_accept").Inc()
		s.log.Info().Str("user_id", requesterID).Str("target_id", targetID).Msg("mutual friend request accepted")
		return domain.StateFriends, nil
	}

	if current.HasOutgoingTo(targetID) || target.HasIncomingFrom(requesterID) {
		return "", domain.ErrRequestPending
	}

	snapshot := current.Clone()
	current.AddOutgoingRequest(targetID)
	target.AddIncomingRequest(requesterID)
	if err := s.savePair(ctx, current, snapshot, target); err != nil {
		return "", err
	}
	metrics.FriendRequestsTotal.WithLabelValues("outgoing").Inc()
	return domain.StateOutgoing, nil
}

// Accept resolves a pending incoming request from requester into a
// friendship. Fails with ErrNoPendingRequest when no such request exists.
func (s *FriendService) Accept(ctx context.Context, currentID, requesterID string) (domain.FriendState, error) {
	if currentID == requesterID {
		return "", domain.ErrSelfTarget
	}

	current, requester, err := s.loadPair(ctx, currentID, requesterID)
	if err != nil {
		return "", err
	}

	if !current.HasIncomingFrom(requesterID) {
		return "", domain.ErrNoPendingRequest
	}

	snapshot := current.Clone()
	befriend(current, requester)
	if err := s.savePair(ctx, current, snapshot, requester); err != nil {
		return "", err
	}
	return domain.StateFriends, nil
}

// Reject removes a pending request from requester. Tolerant: rejecting a
// request that does not exist succeeds and leaves both users unchanged.
func (s *FriendService) Reject(ctx context.Context, currentID, requesterID string) (domain.FriendState, error) {
	return s.removePending(ctx, currentID, requesterID, false)
}

// Cancel withdraws a request the caller sent earlier. Tolerant like Reject.
func (s *FriendService) Cancel(ctx context.Context, currentID, targetID string) (domain.FriendState, error) {
	return s.removePending(ctx, currentID, targetID, true)
}

// removePending clears one pending direction between current and other:
// the current→other direction when outgoing is true (cancel), the
// other→current direction otherwise (reject).
func (s *FriendService) removePending(ctx context.Context, currentID, otherID string, outgoing bool) (domain.FriendState, error) {
	if currentID == otherID {
		return "", domain.ErrSelfTarget
	}

	current, other, err := s.loadPair(ctx, currentID, otherID)
	if err != nil {
		return "", err
	}

	snapshot := current.Clone()
	if outgoing {
		current.RemoveOutgoingRequest(otherID)
		other.RemoveIncomingRequest(currentID)
	} else {
		current.RemoveIncomingRequest(otherID)
		other.RemoveOutgoingRequest(currentID)
	}

	if err := s.savePair(ctx, current, snapshot, other); err != nil {
		return "", err
	}
	return domain.StateNone, nil
}

// Unfriend removes the friendship in both directions and clears any stray
// pending markers between the two users. Tolerant: succeeds even when no
// relationship existed.
func (s *FriendService) Unfriend(ctx context.Context, currentID, otherID string) (domain.FriendState, error) {
	if currentID == otherID {
		return "", domain.ErrSelfTarget
	}

	current, other, err := s.loadPair(ctx, currentID, otherID)
	if err != nil {
		return "", err
	}

	snapshot := current.Clone()
	current.RemoveFriend(otherID)
	other.RemoveFriend(currentID)
	current.ClearPending(otherID)
	other.ClearPending(currentID)

	if err := s.savePair(ctx, current, snapshot, other); err != nil {
		return "", err
	}
	return domain.StateNone, nil
}

// ListFriends resolves a user's friends list to public summaries.
func (s *FriendService) ListFriends(ctx context.Context, userID string) ([]ports.UserSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	friends, err := s.users.FindByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}

	summaries := make([]ports.UserSummary, 0, len(friends))
	for _, f := range friends {
		summaries = append(summaries, ports.ProjectSummary(f))
	}
	return summaries, nil
}

// ListRequests resolves both pending lists of a user to public profiles.
func (s *FriendService) ListRequests(ctx context.Context, userID string) (*ports.FriendRequestsResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	incoming, err := s.users.FindByIDs(ctx, user.IncomingRequests)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.users.FindByIDs(ctx, user.OutgoingRequests)
	if err != nil {
		return nil, err
	}

	result := &ports.FriendRequestsResult{
		Incoming: make([]ports.UserProfile, 0, len(incoming)),
		Outgoing: make([]ports.UserProfile, 0, len(outgoing)),
	}
	for _, u := range incoming {
		result.Incoming = append(result.Incoming, ports.ProjectProfile(u))
	}
	for _, u := range outgoing {
		result.Outgoing = append(result.Outgoing, ports.ProjectProfile(u))
	}
	return result, nil
}

// loadPair fetches the acting user and the counterpart. A missing acting
// user maps to ErrUnauthenticated: its ID came from a verified token, so
// absence means the account is gone, not that the caller mistyped an ID.
func (s *FriendService) loadPair(ctx context.Context, currentID, otherID string) (*domain.User, *domain.User, error) {
	current, err := s.users.FindByID(ctx, currentID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil, domain.ErrUnauthenticated
		}
		return nil, nil, err
	}

	other, err := s.users.FindByID(ctx, otherID)
	if err != nil {
		return nil, nil, err
	}
	return current, other, nil
}

// savePair writes both mutated users: first the acting user, then the
// counterpart. When the counterpart write fails, the acting user is
// restored from its pre-mutation snapshot with a bounded number of
// attempts; if every attempt fails the pair is reported as partially
// updated via ErrPartialFailure.
func (s *FriendService) savePair(ctx context.Context, first, firstSnapshot, second *domain.User) error {
	if err := s.users.Save(ctx, first); err != nil {
		return fmt.Errorf("save user %s: %w", first.ID, err)
	}

	saveErr := s.users.Save(ctx, second)
	if saveErr == nil {
		return nil
	}

	var rollbackErr error
	for attempt := 1; attempt <= rollbackAttempts; attempt++ {
		if rollbackErr = s.users.Save(ctx, firstSnapshot); rollbackErr == nil {
			metrics.RelationshipRollbacksTotal.Inc()
			s.log.Warn().Err(saveErr).
				Str("user_id", first.ID).
				Str("counterpart_id", second.ID).
				Int("attempt", attempt).
				Msg("counterpart write failed, first write rolled back")
			return fmt.Errorf("save user %s: %w", second.ID, saveErr)
		}
	}

	metrics.RelationshipPartialFailuresTotal.Inc()
	s.log.Error().
		AnErr("save_error", saveErr).
		AnErr("rollback_error", rollbackErr).
		Str("user_id", first.ID).
		Str("counterpart_id", second.ID).
		Msg("relationship left partially updated")
	return fmt.Errorf("save user %s failed (%v) and rollback of %s failed (%v): %w",
		second.ID, saveErr, first.ID, rollbackErr, domain.ErrPartialFailure)
}

// befriend clears every pending marker between the two users and records
// the friendship on both sides, skipping duplicates.
func befriend(a, b *domain.User) {
	a.ClearPending(b.ID)
	b.ClearPending(a.ID)
	a.AddFriend(b.ID)
	b.AddFriend(a.ID)
}
