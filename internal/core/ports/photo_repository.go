package ports

import (
	"context"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// PhotoRepository defines the persistence interface for photo documents.
type PhotoRepository interface {
	Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error)
	FindByID(ctx context.Context, id string) (*domain.Photo, error)
	// FindByUser returns the user's photos newest first.
	FindByUser(ctx context.Context, userID string) ([]*domain.Photo, error)
	Save(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id string) error
}
