package photo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/photovault/service/internal/storage"
)

// SearchQuery selects a page of photos. PageNumber is 1-indexed.
type SearchQuery struct {
	PageNumber int
	PageSize   int
	SearchText string
	AlbumID    *string
}

// Service contains the photo and album business logic.
type Service struct {
	log   *zap.Logger
	store Store
	blobs storage.Storage
}

// NewService creates a new photo Service.
func NewService(log *zap.Logger, store Store, blobs storage.Storage) *Service {
	return &Service{log: log.Named("photo"), store: store, blobs: blobs}
}

// UploadBinary stores an image in the blob store and returns its URL.
// No metadata record is created.
func (s *Service) UploadBinary(ctx context.Context, data []byte, filename, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file", ErrInputRequired)
	}

	url, err := s.blobs.Store(ctx, data, filename, contentType)
	if err != nil {
		return "", fmt.Errorf("upload binary: %w", err)
	}
	s.log.Debug("binary uploaded", zap.String("url", url), zap.Int("bytes", len(data)))
	return url, nil
}

// CreatePhoto saves the metadata of an uploaded image. ownerEmail is recorded
// as given and never used for access checks.
func (s *Service) CreatePhoto(ctx context.Context, f Fields, ownerEmail *string) (*Photo, error) {
	f = normalize(f)
	if f.URL == "" {
		return nil, fmt.Errorf("%w: url", ErrInputRequired)
	}

	p := &Photo{
		URL:         f.URL,
		AlbumID:     f.AlbumID,
		Title:       f.Title,
		Description: f.Description,
		Tags:        f.Tags,
		OwnerEmail:  nonEmpty(ownerEmail),
	}
	if err := s.store.InsertPhoto(ctx, p); err != nil {
		return nil, fmt.Errorf("create photo: %w", err)
	}
	return p, nil
}

// UpdatePhoto replaces url, album, title, description, tags and the favorite flag.
// Soft-deleted photos can be updated; they stay deleted.
func (s *Service) UpdatePhoto(ctx context.Context, id string, f Fields, isFav bool) (*Photo, error) {
	f = normalize(f)
	if f.URL == "" {
		return nil, fmt.Errorf("%w: url", ErrInputRequired)
	}
	return s.store.ReplacePhoto(ctx, id, f, isFav)
}

// MoveToAlbum sets the album of a photo. The album is not required to exist.
func (s *Service) MoveToAlbum(ctx context.Context, photoID, albumID string) (*Photo, error) {
	albumID = strings.TrimSpace(albumID)
	if albumID == "" {
		return nil, fmt.Errorf("%w: albumId", ErrInputRequired)
	}
	return s.store.SetPhotoAlbum(ctx, photoID, albumID)
}

// PhotoAlbum resolves the album a non-deleted photo references. It returns nil
// when the photo has no album or the referenced album does not exist.
func (s *Service) PhotoAlbum(ctx context.Context, photoID string) (*Album, error) {
	p, err := s.store.GetPhoto(ctx, photoID)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted {
		return nil, ErrNotFound
	}
	if p.AlbumID == nil {
		return nil, nil
	}

	a, err := s.store.GetAlbum(ctx, *p.AlbumID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("photo album: %w", err)
	}
	return a, nil
}

// SoftDeletePhoto marks a photo deleted.
func (s *Service) SoftDeletePhoto(ctx context.Context, id string) (*Photo, error) {
	return s.store.MarkPhotoDeleted(ctx, id)
}

// SetFavorite marks or unmarks a photo as favorite.
func (s *Service) SetFavorite(ctx context.Context, id string, isFav bool) (*Photo, error) {
	return s.store.SetPhotoFavorite(ctx, id, isFav)
}

// CreateAlbum creates an empty album.
func (s *Service) CreateAlbum(ctx context.Context, name string, ownerEmail *string) (*Album, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name", ErrInputRequired)
	}

	a := &Album{Name: name, OwnerEmail: nonEmpty(ownerEmail)}
	if err := s.store.InsertAlbum(ctx, a); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	return a, nil
}

// ListAlbums returns every non-deleted album.
func (s *Service) ListAlbums(ctx context.Context) ([]Album, error) {
	albums, err := s.store.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// SoftDeleteAlbum marks an album deleted and then every photo that references it.
// The two steps are not atomic. A cascade failure is returned so the caller can
// retry; rerunning on an already deleted album only touches the photos left over.
func (s *Service) SoftDeleteAlbum(ctx context.Context, id string) (*Album, error) {
	a, err := s.store.MarkAlbumDeleted(ctx, id)
	if err != nil {
		return nil, err
	}

	n, err := s.store.MarkAlbumPhotosDeleted(ctx, id)
	if err != nil {
		s.log.Error("album photo cascade failed", zap.String("album", id), zap.Error(err))
		return nil, fmt.Errorf("cascade album %s: %w", id, err)
	}

	s.log.Info("album soft-deleted", zap.String("album", id), zap.Int64("photos", n))
	return a, nil
}

// SearchPhotos returns one page of non-deleted photos, newest first, optionally
// narrowed to an album and to photos whose title, description or tags contain
// the search text.
func (s *Service) SearchPhotos(ctx context.Context, q SearchQuery) (*Page, error) {
	if q.PageNumber < 1 {
		return nil, fmt.Errorf("%w: pageNumber must be at least 1", ErrInvalidPage)
	}
	if q.PageSize < 1 {
		return nil, fmt.Errorf("%w: pageSize must be at least 1", ErrInvalidPage)
	}

	f := Filter{AlbumID: nonEmpty(q.AlbumID), SearchText: q.SearchText}

	total, err := s.store.CountPhotos(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("search photos: %w", err)
	}

	size := int64(q.PageSize)
	photos := []Photo{}

	if skip, ok := pageOffset(q.PageNumber, size); ok && skip < total {
		photos, err = s.store.FindPhotos(ctx, f, skip, size)
		if err != nil {
			return nil, fmt.Errorf("search photos: %w", err)
		}
		if photos == nil {
			photos = []Photo{}
		}
	}

	return &Page{
		PageNumber: q.PageNumber,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: TotalPages(total, size),
		Photos:     photos,
	}, nil
}

// TotalPages is ceil(total / size).
func TotalPages(total, size int64) int64 {
	if size <= 0 {
		return 0
	}
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return pages
}

// pageOffset returns the number of records before the 1-indexed page, or false
// when that offset overflows int64.
func pageOffset(pageNumber int, size int64) (int64, bool) {
	prior := int64(pageNumber - 1)
	if prior > math.MaxInt64/size {
		return 0, false
	}
	return prior * size, true
}

func normalize(f Fields) Fields {
	f.URL = strings.TrimSpace(f.URL)
	f.AlbumID = nonEmpty(f.AlbumID)
	return f
}

// nonEmpty treats a blank optional value as absent.
func nonEmpty(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
