package photo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a process-local Store for development and tests.
// Records are kept in insertion order; reads return copies.
type MemoryStore struct {
	mu     sync.RWMutex
	photos []*Photo
	albums []*Album
	now    func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: func() time.Time { return time.Now().UTC() }}
}

func (m *MemoryStore) InsertPhoto(ctx context.Context, p *Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec := *p
	rec.ID = uuid.NewString()
	rec.IsFav = false
	rec.IsDeleted = false
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	rec.AlbumID = cloneString(p.AlbumID)
	rec.OwnerEmail = cloneString(p.OwnerEmail)

	m.photos = append(m.photos, &rec)
	*p = *clonePhoto(&rec)
	return nil
}

func (m *MemoryStore) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec := m.photo(id)
	if rec == nil {
		return nil, ErrNotFound
	}
	return clonePhoto(rec), nil
}

func (m *MemoryStore) ReplacePhoto(ctx context.Context, id string, f Fields, isFav bool) (*Photo, error) {
	return m.updatePhoto(id, false, func(p *Photo) {
		p.URL = f.URL
		p.AlbumID = cloneString(f.AlbumID)
		p.Title = f.Title
		p.Description = f.Description
		p.Tags = f.Tags
		p.IsFav = isFav
	})
}

func (m *MemoryStore) SetPhotoAlbum(ctx context.Context, id, albumID string) (*Photo, error) {
	return m.updatePhoto(id, true, func(p *Photo) {
		p.AlbumID = &albumID
	})
}

func (m *MemoryStore) SetPhotoFavorite(ctx context.Context, id string, isFav bool) (*Photo, error) {
	return m.updatePhoto(id, true, func(p *Photo) {
		p.IsFav = isFav
	})
}

func (m *MemoryStore) MarkPhotoDeleted(ctx context.Context, id string) (*Photo, error) {
	return m.updatePhoto(id, false, func(p *Photo) {
		p.IsDeleted = true
	})
}

func (m *MemoryStore) CountPhotos(ctx context.Context, f Filter) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var n int64
	for _, p := range m.photos {
		if f.Matches(*p) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) FindPhotos(ctx context.Context, f Filter, skip, limit int64) ([]Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	matched := m.newestFirst(f)
	if skip < 0 {
		skip = 0
	}
	if skip >= int64(len(matched)) {
		return []Photo{}, nil
	}
	end := int64(len(matched))
	if limit > 0 && limit < end-skip {
		end = skip + limit
	}
	return matched[skip:end], nil
}

func (m *MemoryStore) ListActivePhotos(ctx context.Context) ([]Photo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.newestFirst(Filter{}), nil
}

func (m *MemoryStore) InsertAlbum(ctx context.Context, a *Album) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	rec := Album{
		ID:         uuid.NewString(),
		Name:       a.Name,
		OwnerEmail: cloneString(a.OwnerEmail),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	m.albums = append(m.albums, &rec)
	*a = rec
	a.OwnerEmail = cloneString(rec.OwnerEmail)
	return nil
}

func (m *MemoryStore) GetAlbum(ctx context.Context, id string) (*Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, a := range m.albums {
		if a.ID == id {
			return cloneAlbum(a), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListAlbums(ctx context.Context) ([]Album, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	albums := []Album{}
	for _, a := range m.albums {
		if !a.IsDeleted {
			albums = append(albums, *cloneAlbum(a))
		}
	}
	return albums, nil
}

func (m *MemoryStore) MarkAlbumDeleted(ctx context.Context, id string) (*Album, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.albums {
		if a.ID == id {
			if !a.IsDeleted {
				a.IsDeleted = true
				a.UpdatedAt = m.now()
			}
			return cloneAlbum(a), nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) MarkAlbumPhotosDeleted(ctx context.Context, albumID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for _, p := range m.photos {
		if p.IsDeleted || p.AlbumID == nil || *p.AlbumID != albumID {
			continue
		}
		p.IsDeleted = true
		p.UpdatedAt = m.now()
		n++
	}
	return n, nil
}

func (m *MemoryStore) photo(id string) *Photo {
	for _, p := range m.photos {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *MemoryStore) updatePhoto(id string, activeOnly bool, apply func(*Photo)) (*Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec := m.photo(id)
	if rec == nil || (activeOnly && rec.IsDeleted) {
		return nil, ErrNotFound
	}
	apply(rec)
	rec.UpdatedAt = m.now()
	return clonePhoto(rec), nil
}

// newestFirst returns copies of the photos matching f ordered by CreatedAt
// descending; ties keep the most recently inserted first.
func (m *MemoryStore) newestFirst(f Filter) []Photo {
	matched := []Photo{}
	for i := len(m.photos) - 1; i >= 0; i-- {
		if f.Matches(*m.photos[i]) {
			matched = append(matched, *clonePhoto(m.photos[i]))
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched
}

func clonePhoto(p *Photo) *Photo {
	c := *p
	c.AlbumID = cloneString(p.AlbumID)
	c.OwnerEmail = cloneString(p.OwnerEmail)
	return &c
}

func cloneAlbum(a *Album) *Album {
	c := *a
	c.OwnerEmail = cloneString(a.OwnerEmail)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
