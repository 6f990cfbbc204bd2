package ports

import (
	"context"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// UserDetail is the projection returned for a single user: public profile
// plus the relationship lists the front end needs to render friend buttons.
type UserDetail struct {
	UserProfile
	Role             string   `json:"role"`
	Friends          []string `json:"friends"`
	IncomingRequests []string `json:"incoming_requests"`
	OutgoingRequests []string `json:"outgoing_requests"`
}

// UserService covers user browsing: listings, search and single-user detail.
type UserService interface {
	List(ctx context.Context) ([]UserSummary, error)
	Search(ctx context.Context, name string) ([]UserSummary, error)
	GetByID(ctx context.Context, id string) (*UserDetail, error)
	// ListDetailed is the admin view: full projections of every user.
	ListDetailed(ctx context.Context) ([]UserDetail, error)
}

// ProjectSummary shapes a user record into its public summary.
func ProjectSummary(u *domain.User) UserSummary {
	return UserSummary{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName}
}

// ProjectProfile shapes a user record into its fuller public projection.
func ProjectProfile(u *domain.User) UserProfile {
	return UserProfile{
		ID:          u.ID,
		LoginName:   u.LoginName,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Location:    u.Location,
		Description: u.Description,
		Occupation:  u.Occupation,
	}
}
