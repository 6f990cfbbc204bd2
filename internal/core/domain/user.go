package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("login name already taken")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUnauthenticated = errors.New("not authenticated")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidID = errors.New("invalid id")

// User is the core aggregate: identity, profile fields and the three
// relationship lists maintained by the friend engine.
type User struct {
	ID           string `json:"id"`
	LoginName    string `json:"login_name"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Location     string `json:"location,omitempty"`
	Description  string `json:"description,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Role         string `json:"role"`

	// Each list holds user IDs: no duplicates, never the owner's own ID.
	Friends          []string `json:"friends"`
	IncomingRequests []string `json:"incoming_requests"`
	OutgoingRequests []string `json:"outgoing_requests"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy, relationship lists included. The friend engine
// snapshots users before mutating so a failed pair-write can be rolled back.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Friends = append([]string(nil), u.Friends...)
	clone.IncomingRequests = append([]string(nil), u.IncomingRequests...)
	clone.OutgoingRequests = append([]string(nil), u.OutgoingRequests...)
	return &clone
}

// AuthUser is the acting identity extracted from a verified token.
type AuthUser struct {
	ID        string `json:"id"`
	LoginName string `json:"login_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

// IsOwnerOrAdmin reports whether actor may modify a resource owned by
// resourceOwnerID: admins always, everyone else only their own resources.
func IsOwnerOrAdmin(resourceOwnerID string, actor *AuthUser) bool {
	return actor != nil && (actor.Role == RoleAdmin || actor.ID == resourceOwnerID)
}
