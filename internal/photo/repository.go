package photo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	photoColumns = `id, url, album_id, title, description, tags, owner_email, is_fav, is_deleted, created_at, updated_at`
	albumColumns = `id, name, owner_email, is_deleted, created_at, updated_at`
)

// Repository is the PostgreSQL Store.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// InsertPhoto inserts p and fills in the store-assigned fields.
func (r *Repository) InsertPhoto(ctx context.Context, p *Photo) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO photos (url, album_id, title, description, tags, owner_email, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7::timestamptz, NOW()), NOW())
		 RETURNING `+photoColumns,
		p.URL, p.AlbumID, p.Title, p.Description, p.Tags, p.OwnerEmail, nullableTime(p.CreatedAt),
	).Scan(photoDest(p)...)
	if err != nil {
		return fmt.Errorf("insert photo: %w", err)
	}
	return nil
}

// GetPhoto fetches a photo by id.
func (r *Repository) GetPhoto(ctx context.Context, id string) (*Photo, error) {
	return r.photoRow(ctx, "get photo",
		`SELECT `+photoColumns+` FROM photos WHERE id = $1`,
		id,
	)
}

// ReplacePhoto overwrites the mutable fields of a photo.
func (r *Repository) ReplacePhoto(ctx context.Context, id string, f Fields, isFav bool) (*Photo, error) {
	return r.photoRow(ctx, "replace photo",
		`UPDATE photos
		 SET url = $2, album_id = $3, title = $4, description = $5, tags = $6, is_fav = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+photoColumns,
		id, f.URL, f.AlbumID, f.Title, f.Description, f.Tags, isFav,
	)
}

// SetPhotoAlbum moves a non-deleted photo into albumID.
func (r *Repository) SetPhotoAlbum(ctx context.Context, id, albumID string) (*Photo, error) {
	return r.photoRow(ctx, "set photo album",
		`UPDATE photos SET album_id = $2, updated_at = NOW()
		 WHERE id = $1 AND is_deleted = FALSE
		 RETURNING `+photoColumns,
		id, albumID,
	)
}

// SetPhotoFavorite sets the favorite flag of a non-deleted photo.
func (r *Repository) SetPhotoFavorite(ctx context.Context, id string, isFav bool) (*Photo, error) {
	return r.photoRow(ctx, "set photo favorite",
		`UPDATE photos SET is_fav = $2, updated_at = NOW()
		 WHERE id = $1 AND is_deleted = FALSE
		 RETURNING `+photoColumns,
		id, isFav,
	)
}

// MarkPhotoDeleted soft-deletes a photo.
func (r *Repository) MarkPhotoDeleted(ctx context.Context, id string) (*Photo, error) {
	return r.photoRow(ctx, "mark photo deleted",
		`UPDATE photos
		 SET is_deleted = TRUE,
		     updated_at = CASE WHEN is_deleted THEN updated_at ELSE NOW() END
		 WHERE id = $1
		 RETURNING `+photoColumns,
		id,
	)
}

// CountPhotos counts the photos matching f.
func (r *Repository) CountPhotos(ctx context.Context, f Filter) (int64, error) {
	where, args := whereClause(f)

	var n int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM photos WHERE `+where, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count photos: %w", err)
	}
	return n, nil
}

// FindPhotos returns a window of matching photos, newest first.
func (r *Repository) FindPhotos(ctx context.Context, f Filter, skip, limit int64) ([]Photo, error) {
	where, args := whereClause(f)
	args = append(args, limit, skip)

	query := fmt.Sprintf(
		`SELECT %s FROM photos WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		photoColumns, where, len(args)-1, len(args),
	)
	return r.photoRows(ctx, "find photos", query, args...)
}

// ListActivePhotos returns all non-deleted photos, newest first.
func (r *Repository) ListActivePhotos(ctx context.Context) ([]Photo, error) {
	return r.photoRows(ctx, "list active photos",
		`SELECT `+photoColumns+` FROM photos WHERE is_deleted = FALSE ORDER BY created_at DESC, id DESC`,
	)
}

// InsertAlbum inserts a new album.
func (r *Repository) InsertAlbum(ctx context.Context, a *Album) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO albums (name, owner_email)
		 VALUES ($1, $2)
		 RETURNING `+albumColumns,
		a.Name, a.OwnerEmail,
	).Scan(albumDest(a)...)
	if err != nil {
		return fmt.Errorf("insert album: %w", err)
	}
	return nil
}

// GetAlbum fetches an album by id.
func (r *Repository) GetAlbum(ctx context.Context, id string) (*Album, error) {
	return r.albumRow(ctx, "get album",
		`SELECT `+albumColumns+` FROM albums WHERE id = $1`,
		id,
	)
}

// ListAlbums returns all non-deleted albums.
func (r *Repository) ListAlbums(ctx context.Context) ([]Album, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+albumColumns+` FROM albums WHERE is_deleted = FALSE ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	albums, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Album, error) {
		var a Album
		err := row.Scan(albumDest(&a)...)
		return a, err
	})
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	return albums, nil
}

// MarkAlbumDeleted soft-deletes an album. Already-deleted albums are returned as-is.
func (r *Repository) MarkAlbumDeleted(ctx context.Context, id string) (*Album, error) {
	return r.albumRow(ctx, "mark album deleted",
		`UPDATE albums
		 SET is_deleted = TRUE,
		     updated_at = CASE WHEN is_deleted THEN updated_at ELSE NOW() END
		 WHERE id = $1
		 RETURNING `+albumColumns,
		id,
	)
}

// MarkAlbumPhotosDeleted soft-deletes every active photo of an album.
func (r *Repository) MarkAlbumPhotosDeleted(ctx context.Context, albumID string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE photos SET is_deleted = TRUE, updated_at = NOW()
		 WHERE album_id = $1 AND is_deleted = FALSE`,
		albumID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark album photos deleted: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *Repository) photoRow(ctx context.Context, op, query string, args ...any) (*Photo, error) {
	p := &Photo{}
	err := r.db.QueryRow(ctx, query, args...).Scan(photoDest(p)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (r *Repository) photoRows(ctx context.Context, op, query string, args ...any) ([]Photo, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	photos, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Photo, error) {
		var p Photo
		err := row.Scan(photoDest(&p)...)
		return p, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return photos, nil
}

func (r *Repository) albumRow(ctx context.Context, op, query string, args ...any) (*Album, error) {
	a := &Album{}
	err := r.db.QueryRow(ctx, query, args...).Scan(albumDest(a)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

func photoDest(p *Photo) []any {
	return []any{&p.ID, &p.URL, &p.AlbumID, &p.Title, &p.Description, &p.Tags, &p.OwnerEmail, &p.IsFav, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt}
}

func albumDest(a *Album) []any {
	return []any{&a.ID, &a.Name, &a.OwnerEmail, &a.IsDeleted, &a.CreatedAt, &a.UpdatedAt}
}

// whereClause renders f as a SQL predicate with positional arguments starting at $1.
func whereClause(f Filter) (string, []any) {
	clauses := []string{"is_deleted = FALSE"}
	var args []any

	if f.AlbumID != nil {
		args = append(args, *f.AlbumID)
		clauses = append(clauses, fmt.Sprintf("album_id = $%d", len(args)))
	}
	if text := f.Text(); text != "" {
		args = append(args, "%"+escapeLike(text)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR tags ILIKE $%d)", n, n, n))
	}

	return strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
