package service

import (
	"context"
	"strings"

	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// UserService covers user browsing: listing, search and single-user detail.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.ProjectSummary(u))
	}
	return summaries, nil
}

// Search matches the query case-insensitively against first and last names.
func (s *UserService) Search(ctx context.Context, name string) ([]ports.UserSummary, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return []ports.UserSummary{}, nil
	}

	users, err := s.users.SearchByName(ctx, query)
	if err != nil {
		return nil, err
	}
	summaries := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, ports.ProjectSummary(u))
	}
	return summaries, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*ports.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := toDetail(user)
	return &detail, nil
}

// ListDetailed is the admin view: full projections of every user.
func (s *UserService) ListDetailed(ctx context.Context) ([]ports.UserDetail, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	details := make([]ports.UserDetail, 0, len(users))
	for _, u := range users {
		details = append(details, toDetail(u))
	}
	return details, nil
}

func toDetail(u *domain.User) ports.UserDetail {
	return ports.UserDetail{
		UserProfile:      ports.ProjectProfile(u),
		Role:             u.Role,
		Friends:          append([]string{}, u.Friends...),
		IncomingRequests: append([]string{}, u.IncomingRequests...),
		OutgoingRequests: append([]string{}, u.OutgoingRequests...),
	}
}
