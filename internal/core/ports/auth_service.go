package ports

import (
	"context"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// RegisterInput carries the fields accepted at registration. Login name,
// password and both name fields are required; the rest are optional profile
// data.
type RegisterInput struct {
	LoginName   string
	Password    string
	FirstName   string
	LastName    string
	Location    string
	Description string
	Occupation  string
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Login verifies credentials and returns a signed token plus the user.
	Login(ctx context.Context, loginName, password string) (string, *domain.User, error)
	// Logout revokes the given raw token until its natural expiry.
	Logout(ctx context.Context, token string) error
}
