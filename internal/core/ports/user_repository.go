package ports

import (
	"context"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user documents.
// Save replaces the full document; the store guarantees per-document
// atomicity only, so callers updating two users must handle partial failure
// themselves.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByLoginName(ctx context.Context, loginName string) (*domain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	SearchByName(ctx context.Context, query string) ([]*domain.User, error)
	Save(ctx context.Context, user *domain.User) error
}
