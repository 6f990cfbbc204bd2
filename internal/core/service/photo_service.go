package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/photoshare/photoshare-api/internal/api/metrics"
	"github.com/photoshare/photoshare-api/internal/core/domain"
	"github.com/photoshare/photoshare-api/internal/core/ports"
)

// PhotoService implements the photo lifecycle. Deleting a photo removes the
// document synchronously and hands the backing file to the cleaner; file
// removal is best-effort and never fails the request.
type PhotoService struct {
	photos  ports.PhotoRepository
	users   ports.UserRepository
	files   ports.FileStore
	cleaner ports.FileCleaner
	log     zerolog.Logger
}

func NewPhotoService(
	photos ports.PhotoRepository,
	users ports.UserRepository,
	files ports.FileStore,
	cleaner ports.FileCleaner,
	log zerolog.Logger,
) *PhotoService {
	return &PhotoService{photos: photos, users: users, files: files, cleaner: cleaner, log: log}
}

// Upload stores the image content on disk and creates the photo document,
// owned by the uploading user.
func (s *PhotoService) Upload(ctx context.Context, input ports.UploadInput) (*domain.Photo, error) {
	if input.Content == nil {
		return nil, domain.ErrNoFile
	}
	if !strings.HasPrefix(input.ContentType, "image/") {
		return nil, domain.ErrNotAnImage
	}

	fileName, err := s.files.Save(ctx, input.OriginalName, input.Content)
	if err != nil {
		return nil, err
	}

	photo := &domain.Photo{
		UserID:   input.OwnerID,
		FileName: fileName,
		DateTime: time.Now().UTC(),
		Comments: []domain.Comment{},
		Likes:    []string{},
	}

	created, err := s.photos.Create(ctx, photo)
	if err != nil {
		// the document never existed, so the stored file is orphaned
		s.cleaner.Enqueue(fileName)
		return nil, err
	}

	metrics.PhotosUploadedTotal.Inc()
	s.log.Info().Str("photo_id", created.ID).Str("user_id", input.OwnerID).Msg("photo uploaded")
	return created, nil
}

// PhotosOfUser returns the user's photos newest first, with comment authors
// resolved to public summaries.
func (s *PhotoService) PhotosOfUser(ctx context.Context, userID string) ([]ports.PhotoView, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	photos, err := s.photos.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ports.PhotoView, 0, len(photos))
	for _, p := range photos {
		view, err := s.toView(ctx, p)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

// AddComment appends a comment with a server-assigned ID and timestamp.
func (s *PhotoService) AddComment(ctx context.Context, photoID, actorID, text string) (*ports.PhotoView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	photo.Comments = append(photo.Comments, domain.Comment{
		ID:       newCommentID(),
		Text:     text,
		DateTime: time.Now().UTC(),
		UserID:   actorID,
	})
	if err := s.photos.Save(ctx, photo); err != nil {
		return nil, err
	}

	metrics.CommentsAddedTotal.Inc()
	return s.reload(ctx, photoID)
}

// UpdateComment rewrites a comment's text. Only the comment's author or an
// admin may edit it.
func (s *PhotoService) UpdateComment(ctx context.Context, photoID, commentID, text string, actor *domain.AuthUser) (*ports.PhotoView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyComment
	}

	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	comment := photo.CommentByID(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if !domain.IsOwnerOrAdmin(comment.UserID, actor) {
		return nil, domain.ErrForbidden
	}

	comment.Text = text
	if err := s.photos.Save(ctx, photo); err != nil {
		return nil, err
	}
	return s.reload(ctx, photoID)
}

// DeleteComment removes a comment. Only the comment's author or an admin
// may delete it.
func (s *PhotoService) DeleteComment(ctx context.Context, photoID, commentID string, actor *domain.AuthUser) (*ports.PhotoView, error) {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	comment := photo.CommentByID(commentID)
	if comment == nil {
		return nil, domain.ErrCommentNotFound
	}
	if !domain.IsOwnerOrAdmin(comment.UserID, actor) {
		return nil, domain.ErrForbidden
	}

	photo.RemoveComment(commentID)
	if err := s.photos.Save(ctx, photo); err != nil {
		return nil, err
	}
	return s.reload(ctx, photoID)
}

// Like adds the actor to the photo's like list; liking twice is a no-op.
func (s *PhotoService) Like(ctx context.Context, photoID, actorID string) (*ports.PhotoView, error) {
	return s.toggleLike(ctx, photoID, actorID, true)
}

// Unlike removes the actor from the like list; not-liked is a no-op.
func (s *PhotoService) Unlike(ctx context.Context, photoID, actorID string) (*ports.PhotoView, error) {
	return s.toggleLike(ctx, photoID, actorID, false)
}

func (s *PhotoService) toggleLike(ctx context.Context, photoID, actorID string, like bool) (*ports.PhotoView, error) {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}

	changed := like != photo.LikedBy(actorID)
	if like {
		photo.Like(actorID)
	} else {
		photo.Unlike(actorID)
	}
	if changed {
		if err := s.photos.Save(ctx, photo); err != nil {
			return nil, err
		}
		action := "unlike"
		if like {
			action = "like"
		}
		metrics.LikesToggledTotal.WithLabelValues(action).Inc()
	}
	return s.reload(ctx, photoID)
}

// Delete removes a photo. Only the owner or an admin may delete it. The
// backing file is queued for best-effort removal.
func (s *PhotoService) Delete(ctx context.Context, photoID string, actor *domain.AuthUser) error {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return err
	}
	if !domain.IsOwnerOrAdmin(photo.UserID, actor) {
		return domain.ErrForbidden
	}

	if err := s.photos.Delete(ctx, photoID); err != nil {
		return err
	}

	if photo.FileName != "" {
		s.cleaner.Enqueue(photo.FileName)
	}
	s.log.Info().Str("photo_id", photoID).Str("actor_id", actor.ID).Msg("photo deleted")
	return nil
}

// newCommentID returns a 24-hex-char identifier for an embedded comment.
func newCommentID() string {
	b := make([]byte, 12)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%024x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

func (s *PhotoService) reload(ctx context.Context, photoID string) (*ports.PhotoView, error) {
	photo, err := s.photos.FindByID(ctx, photoID)
	if err != nil {
		return nil, err
	}
	return s.toView(ctx, photo)
}

// toView resolves comment authors in one batched lookup. Comments by
// deleted users keep an empty author summary rather than dropping out.
func (s *PhotoService) toView(ctx context.Context, p *domain.Photo) (*ports.PhotoView, error) {
	authorIDs := make([]string, 0, len(p.Comments))
	seen := make(map[string]bool, len(p.Comments))
	for _, c := range p.Comments {
		if !seen[c.UserID] {
			seen[c.UserID] = true
			authorIDs = append(authorIDs, c.UserID)
		}
	}

	authors := make(map[string]ports.UserSummary, len(authorIDs))
	if len(authorIDs) > 0 {
		users, err := s.users.FindByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = ports.ProjectSummary(u)
		}
	}

	view := &ports.PhotoView{
		ID:       p.ID,
		UserID:   p.UserID,
		FileName: p.FileName,
		DateTime: p.DateTime,
		Comments: make([]ports.CommentView, 0, len(p.Comments)),
		Likes:    append([]string{}, p.Likes...),
	}
	for _, c := range p.Comments {
		author := authors[c.UserID]
		if author.ID == "" {
			author.ID = c.UserID
		}
		view.Comments = append(view.Comments, ports.CommentView{
			ID:       c.ID,
			Text:     c.Text,
			DateTime: c.DateTime,
			User:     author,
		})
	}
	return view, nil
}
