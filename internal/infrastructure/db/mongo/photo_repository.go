package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/photoshare/photoshare-api/internal/core/domain"
)

const photosCollection = "photos"

type PhotoRepository struct {
	coll *mongo.Collection
}

func NewPhotoRepository(db *mongo.Database) *PhotoRepository {
	return &PhotoRepository{coll: db.Collection(photosCollection)}
}

// Comments are embedded in their photo document, matching the domain shape,
// so comment and like edits ride on the photo's full-document replace.
type photoDoc struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	UserID   string             `bson:"user_id"`
	FileName string             `bson:"file_name"`
	DateTime time.Time          `bson:"date_time"`
	Comments []domain.Comment   `bson:"comments"`
	Likes    []string           `bson:"likes"`
}

func toPhotoDoc(p *domain.Photo) (photoDoc, error) {
	doc := photoDoc{
		UserID:   p.UserID,
		FileName: p.FileName,
		DateTime: p.DateTime,
		Comments: p.Comments,
		Likes:    p.Likes,
	}
	if p.ID != "" {
		oid, err := primitive.ObjectIDFromHex(p.ID)
		if err != nil {
			return photoDoc{}, domain.ErrInvalidID
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d photoDoc) toDomain() *domain.Photo {
	return &domain.Photo{
		ID:       d.ID.Hex(),
		UserID:   d.UserID,
		FileName: d.FileName,
		DateTime: d.DateTime,
		Comments: d.Comments,
		Likes:    d.Likes,
	}
}

// Create inserts a new photo document and returns it with the generated ID.
func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toPhotoDoc(photo)
	if err != nil {
		return nil, err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if doc.DateTime.IsZero() {
		doc.DateTime = time.Now().UTC()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert photo: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, id string) (*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInvalidID
	}

	var doc photoDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("find photo: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByUser returns the user's photos, newest first.
func (r *PhotoRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Photo, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_time", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find photos: %w", err)
	}
	defer cursor.Close(ctx)

	photos := make([]*domain.Photo, 0)
	for cursor.Next(ctx) {
		var doc photoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode photo: %w", err)
		}
		photos = append(photos, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate photos: %w", err)
	}
	return photos, nil
}

// Save replaces the full photo document, embedded comments and likes included.
func (r *PhotoRepository) Save(ctx context.Context, photo *domain.Photo) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc, err := toPhotoDoc(photo)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		return domain.ErrInvalidID
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrInvalidID
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index backing the per-user photo feed.
func (r *PhotoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date_time", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
