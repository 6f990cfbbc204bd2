package ports

import (
	"context"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// UserSummary is the public profile projection used in friend lists and
// user listings.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserProfile is the fuller public projection used for pending requests and
// search-style views.
type UserProfile struct {
	ID          string `json:"id"`
	LoginName   string `json:"login_name"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Occupation  string `json:"occupation"`
}

// FriendRequestsResult resolves both pending lists of a user.
type FriendRequestsResult struct {
	Incoming []UserProfile `json:"incoming"`
	Outgoing []UserProfile `json:"outgoing"`
}

// FriendService transitions the relationship between pairs of users.
//
// Every mutating call updates two user documents and reports the resulting
// state from the calling user's viewpoint. SendRequest either installs a
// pending request (StateOutgoing) or, when the target had already requested
// the caller, converts both pending markers into a friendship
// (StateFriends). The result tells the caller which branch was taken.
type FriendService interface {
	Status(ctx context.Context, requesterID, targetID string) (domain.FriendState, error)
	SendRequest(ctx context.Context, requesterID, targetID string) (domain.FriendState, error)
	Accept(ctx context.Context, currentID, requesterID string) (domain.FriendState, error)
	Reject(ctx context.Context, currentID, requesterID string) (domain.FriendState, error)
	Cancel(ctx context.Context, currentID, targetID string) (domain.FriendState, error)
	Unfriend(ctx context.Context, currentID, otherID string) (domain.FriendState, error)
	ListFriends(ctx context.Context, userID string) ([]UserSummary, error)
	ListRequests(ctx context.Context, userID string) (*FriendRequestsResult, error)
}
