package domain

import (
	"errors"
	"time"
)

var ErrPhotoNotFound = errors.New("photo not found")
var ErrCommentNotFound = errors.New("comment not found")
var ErrEmptyComment = errors.New("comment must not be empty")
var ErrNoFile = errors.New("no file uploaded")
var ErrNotAnImage = errors.New("only image files are allowed")

// Comment is embedded in its photo, never stored on its own.
type Comment struct {
	ID       string    `json:"id" bson:"_id"`
	Text     string    `json:"comment" bson:"comment"`
	DateTime time.Time `json:"date_time" bson:"date_time"`
	UserID   string    `json:"user_id" bson:"user_id"`
}

// Photo is an uploaded image owned by a user, with embedded comments and a
// like list holding each liking user's ID at most once.
type Photo struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	FileName string    `json:"file_name"`
	DateTime time.Time `json:"date_time"`
	Comments []Comment `json:"comments"`
	Likes    []string  `json:"likes"`
}

// CommentByID returns a pointer into the Comments slice, or nil.
func (p *Photo) CommentByID(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

func (p *Photo) RemoveComment(id string) {
	out := p.Comments[:0]
	for _, c := range p.Comments {
		if c.ID != id {
			out = append(out, c)
		}
	}
	p.Comments = out
}

func (p *Photo) LikedBy(userID string) bool {
	return containsID(p.Likes, userID)
}

// Like adds userID to the like list; already-liked is a no-op.
func (p *Photo) Like(userID string) {
	p.Likes = appendUnique(p.Likes, userID)
}

// Unlike removes userID from the like list; not-liked is a no-op.
func (p *Photo) Unlike(userID string) {
	p.Likes = withoutID(p.Likes, userID)
}
