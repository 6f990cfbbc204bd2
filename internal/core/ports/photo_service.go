package ports

import (
	"context"
	"io"
	"time"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

// CommentView is a comment with its author resolved to a public projection.
type CommentView struct {
	ID       string      `json:"id"`
	Text     string      `json:"comment"`
	DateTime time.Time   `json:"date_time"`
	User     UserSummary `json:"user"`
}

// PhotoView is the photo shape returned to clients.
type PhotoView struct {
	ID       string        `json:"id"`
	UserID   string        `json:"user_id"`
	FileName string        `json:"file_name"`
	DateTime time.Time     `json:"date_time"`
	Comments []CommentView `json:"comments"`
	Likes    []string      `json:"likes"`
}

// UploadInput carries an incoming image. Content is consumed exactly once.
type UploadInput struct {
	OwnerID      string
	OriginalName string
	ContentType  string
	Content      io.Reader
}

// PhotoService covers the photo lifecycle: upload, browsing, comments,
// likes and deletion with best-effort backing-file cleanup.
type PhotoService interface {
	Upload(ctx context.Context, input UploadInput) (*domain.Photo, error)
	PhotosOfUser(ctx context.Context, userID string) ([]PhotoView, error)
	AddComment(ctx context.Context, photoID, actorID, text string) (*PhotoView, error)
	UpdateComment(ctx context.Context, photoID, commentID, text string, actor *domain.AuthUser) (*PhotoView, error)
	DeleteComment(ctx context.Context, photoID, commentID string, actor *domain.AuthUser) (*PhotoView, error)
	Like(ctx context.Context, photoID, actorID string) (*PhotoView, error)
	Unlike(ctx context.Context, photoID, actorID string) (*PhotoView, error)
	Delete(ctx context.Context, photoID string, actor *domain.AuthUser) error
}
