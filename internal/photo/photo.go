// Package photo manages photo metadata, albums and their soft-delete lifecycle.
package photo

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a photo or album id does not resolve to a record.
	ErrNotFound = errors.New("not found")
	// ErrInputRequired is returned when a mandatory payload is missing.
	ErrInputRequired = errors.New("input required")
	// ErrInvalidPage is returned for a page number or page size below 1.
	ErrInvalidPage = errors.New("invalid page")
)

// Photo is the metadata record of an uploaded image.
// AlbumID is a weak reference: it is never checked against existing albums.
// OwnerEmail is set when the photo is created and kept by later updates.
type Photo struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	AlbumID     *string   `json:"albumId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
	OwnerEmail  *string   `json:"ownerEmail,omitempty"`
	IsFav       bool      `json:"isFav"`
	IsDeleted   bool      `json:"isDeleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Album groups photos by reference.
type Album struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	OwnerEmail *string   `json:"ownerEmail,omitempty"`
	IsDeleted  bool      `json:"isDeleted"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Fields holds the caller-controlled fields of a photo.
type Fields struct {
	URL         string
	AlbumID     *string
	Title       string
	Description string
	Tags        string
}

// Page is one page of a photo search.
type Page struct {
	PageNumber int     `json:"pageNumber"`
	PageSize   int     `json:"pageSize"`
	TotalItems int64   `json:"totalItems"`
	TotalPages int64   `json:"totalPages"`
	Photos     []Photo `json:"photos"`
}

// Store is the metadata store contract. Every backend (PostgreSQL, MongoDB,
// in-memory) implements it with last-write-wins semantics.
type Store interface {
	// InsertPhoto assigns ID and timestamps. A non-zero CreatedAt is kept.
	InsertPhoto(ctx context.Context, p *Photo) error
	// GetPhoto looks a photo up by id regardless of its deleted flag.
	GetPhoto(ctx context.Context, id string) (*Photo, error)
	// ReplacePhoto overwrites url, album, title, description, tags and favorite flag.
	// Soft-deleted photos are updated too; IsDeleted and OwnerEmail are never touched.
	ReplacePhoto(ctx context.Context, id string, f Fields, isFav bool) (*Photo, error)
	// SetPhotoAlbum changes the album of a non-deleted photo.
	SetPhotoAlbum(ctx context.Context, id, albumID string) (*Photo, error)
	// SetPhotoFavorite changes the favorite flag of a non-deleted photo.
	SetPhotoFavorite(ctx context.Context, id string, isFav bool) (*Photo, error)
	// MarkPhotoDeleted soft-deletes a photo. Deleting twice is a no-op.
	MarkPhotoDeleted(ctx context.Context, id string) (*Photo, error)
	// CountPhotos counts the non-deleted photos matching f.
	CountPhotos(ctx context.Context, f Filter) (int64, error)
	// FindPhotos returns matching photos, newest first.
	FindPhotos(ctx context.Context, f Filter, skip, limit int64) ([]Photo, error)
	// ListActivePhotos returns every non-deleted photo, newest first.
	ListActivePhotos(ctx context.Context) ([]Photo, error)

	InsertAlbum(ctx context.Context, a *Album) error
	GetAlbum(ctx context.Context, id string) (*Album, error)
	// ListAlbums returns non-deleted albums, oldest first.
	ListAlbums(ctx context.Context) ([]Album, error)
	MarkAlbumDeleted(ctx context.Context, id string) (*Album, error)
	// MarkAlbumPhotosDeleted soft-deletes every active photo referencing albumID
	// and reports how many changed.
	MarkAlbumPhotosDeleted(ctx context.Context, albumID string) (int64, error)
}
