package photo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// photoDoc is the stored shape of a Photo in MongoDB.
type photoDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	URL         string             `bson:"url"`
	AlbumID     *string            `bson:"album_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Tags        string             `bson:"tags"`
	OwnerEmail  *string            `bson:"owner_email,omitempty"`
	IsFav       bool               `bson:"is_fav"`
	IsDeleted   bool               `bson:"is_deleted"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (d photoDoc) photo() Photo {
	return Photo{
		ID:          d.ID.Hex(),
		URL:         d.URL,
		AlbumID:     d.AlbumID,
		Title:       d.Title,
		Description: d.Description,
		Tags:        d.Tags,
		OwnerEmail:  d.OwnerEmail,
		IsFav:       d.IsFav,
		IsDeleted:   d.IsDeleted,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// albumDoc is the stored shape of an Album in MongoDB.
type albumDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	OwnerEmail *string            `bson:"owner_email,omitempty"`
	IsDeleted  bool               `bson:"is_deleted"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func (d albumDoc) album() Album {
	return Album{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		OwnerEmail: d.OwnerEmail,
		IsDeleted:  d.IsDeleted,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// MongoRepository is the MongoDB Store. Photos and albums live in the
// "photos" and "albums" collections.
type MongoRepository struct {
	photos *mongo.Collection
	albums *mongo.Collection
}

// NewMongoRepository binds the repository to db.
func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		photos: db.Collection("photos"),
		albums: db.Collection("albums"),
	}
}

// EnsureIndexes creates the indexes used by search, cascade and listing.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.photos.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "album_id", Value: 1}, {Key: "is_deleted", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create photo indexes: %w", err)
	}
	_, err = r.albums.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "is_deleted", Value: 1}, {Key: "created_at", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create album indexes: %w", err)
	}
	return nil
}

// InsertPhoto inserts p and fills in the store-assigned fields.
func (r *MongoRepository) InsertPhoto(ctx context.Context, p *Photo) error {
	now := mongoNow()
	doc := photoDoc{
		ID:          primitive.NewObjectID(),
		URL:         p.URL,
		AlbumID:     p.AlbumID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		OwnerEmail:  p.OwnerEmail,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if !p.CreatedAt.IsZero() {
		doc.CreatedAt = p.CreatedAt.UTC().Truncate(time.Millisecond)
	}

	if _, err := r.photos.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	*p = doc.photo()
	return nil
}

// GetPhoto fetches a photo by id.
func (r *MongoRepository) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc photoDoc
	err = r.photos.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	p := doc.photo()
	return &p, nil
}

// ReplacePhoto overwrites the mutable fields of a photo.
func (r *MongoRepository) ReplacePhoto(ctx context.Context, id string, f Fields, isFav bool) (*Photo, error) {
	return r.updatePhoto(ctx, "replace photo", id, false, bson.M{
		"url":         f.URL,
		"album_id":    f.AlbumID,
		"title":       f.Title,
		"description": f.Description,
		"tags":        f.Tags,
		"is_fav":      isFav,
		"updated_at":  mongoNow(),
	})
}

// SetPhotoAlbum moves a non-deleted photo into albumID.
func (r *MongoRepository) SetPhotoAlbum(ctx context.Context, id, albumID string) (*Photo, error) {
	return r.updatePhoto(ctx, "set photo album", id, true, bson.M{
		"album_id":   albumID,
		"updated_at": mongoNow(),
	})
}

// SetPhotoFavorite sets the favorite flag of a non-deleted photo.
func (r *MongoRepository) SetPhotoFavorite(ctx context.Context, id string, isFav bool) (*Photo, error) {
	return r.updatePhoto(ctx, "set photo favorite", id, true, bson.M{
		"is_fav":     isFav,
		"updated_at": mongoNow(),
	})
}

// MarkPhotoDeleted soft-deletes a photo.
func (r *MongoRepository) MarkPhotoDeleted(ctx context.Context, id string) (*Photo, error) {
	return r.updatePhoto(ctx, "mark photo deleted", id, false, bson.M{
		"is_deleted": true,
		"updated_at": mongoNow(),
	})
}

// CountPhotos counts the photos matching f.
func (r *MongoRepository) CountPhotos(ctx context.Context, f Filter) (int64, error) {
	n, err := r.photos.CountDocuments(ctx, mongoFilter(f))
	if err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}

// FindPhotos returns a window of matching photos, newest first.
func (r *MongoRepository) FindPhotos(ctx context.Context, f Filter, skip, limit int64) ([]Photo, error) {
	opts := options.Find().SetSort(newestFirst).SetSkip(skip).SetLimit(limit)
	return r.findPhotos(ctx, "find photos", mongoFilter(f), opts)
}

// ListActivePhotos returns all non-deleted photos, newest first.
func (r *MongoRepository) ListActivePhotos(ctx context.Context) ([]Photo, error) {
	return r.findPhotos(ctx, "list active photos", bson.M{"is_deleted": false}, options.Find().SetSort(newestFirst))
}

// InsertAlbum inserts a new album.
func (r *MongoRepository) InsertAlbum(ctx context.Context, a *Album) error {
	now := mongoNow()
	doc := albumDoc{
		ID:         primitive.NewObjectID(),
		Name:       a.Name,
		OwnerEmail: a.OwnerEmail,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.albums.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	*a = doc.album()
	return nil
}

// GetAlbum fetches an album by id.
func (r *MongoRepository) GetAlbum(ctx context.Context, id string) (*Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc albumDoc
	err = r.albums.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get album: %w", err)
	}
	a := doc.album()
	return &a, nil
}

// ListAlbums returns all non-deleted albums.
func (r *MongoRepository) ListAlbums(ctx context.Context) ([]Album, error) {
	cur, err := r.albums.Find(ctx, bson.M{"is_deleted": false},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	var docs []albumDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	albums := make([]Album, 0, len(docs))
	for _, d := range docs {
		albums = append(albums, d.album())
	}
	return albums, nil
}

// MarkAlbumDeleted soft-deletes an album.
func (r *MongoRepository) MarkAlbumDeleted(ctx context.Context, id string) (*Album, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc albumDoc
	err = r.albums.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": mongoNow()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mark album deleted: %w", err)
	}
	a := doc.album()
	return &a, nil
}

// MarkAlbumPhotosDeleted soft-deletes every active photo of an album.
func (r *MongoRepository) MarkAlbumPhotosDeleted(ctx context.Context, albumID string) (int64, error) {
	res, err := r.photos.UpdateMany(ctx,
		bson.M{"album_id": albumID, "is_deleted": false},
		bson.M{"$set": bson.M{"is_deleted": true, "updated_at": mongoNow()}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark album photos deleted: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MongoRepository) updatePhoto(ctx context.Context, op, id string, activeOnly bool, set bson.M) (*Photo, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{"_id": oid}
	if activeOnly {
		filter["is_deleted"] = false
	}

	var doc photoDoc
	err = r.photos.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	p := doc.photo()
	return &p, nil
}

func (r *MongoRepository) findPhotos(ctx context.Context, op string, filter bson.M, opts *options.FindOptions) ([]Photo, error) {
	cur, err := r.photos.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var docs []photoDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	photos := make([]Photo, 0, len(docs))
	for _, d := range docs {
		photos = append(photos, d.photo())
	}
	return photos, nil
}

// mongoFilter renders f as a query document. Search text is quoted so it
// matches literally.
func mongoFilter(f Filter) bson.M {
	filter := bson.M{"is_deleted": false}
	if f.AlbumID != nil {
		filter["album_id"] = *f.AlbumID
	}
	if text := f.Text(); text != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"description": rx},
			bson.M{"tags": rx},
		}
	}
	return filter
}

// mongoNow is the current time at BSON datetime precision.
func mongoNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
