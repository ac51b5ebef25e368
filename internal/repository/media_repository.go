package repository

// Photos and videos are the two gallery collections.  They differ only in
// the name of their optional text column (caption vs title).

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

// PhotoRepo manages persistence for gallery photos.
type PhotoRepo struct {
	db *sql.DB
}

func NewPhotoRepo(db *sql.DB) *PhotoRepo { return &PhotoRepo{db: db} }

func scanPhoto(row rowScanner) (*model.Photo, error) {
	var p model.Photo
	if err := row.Scan(&p.ID, &p.ArtistID, &p.URL, &p.Caption, &p.SortOrder, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByArtist returns photos by sort order.
func (r *PhotoRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Photo, error) {
	const q = `SELECT id, artist_id, url, caption, sort_order, created_at
	           FROM photos WHERE artist_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Photo{}
	for rows.Next() {
		p, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PhotoRepo) GetByID(ctx context.Context, id string) (*model.Photo, error) {
	const q = "SELECT id, artist_id, url, caption, sort_order, created_at FROM photos WHERE id = ?"
	p, err := scanPhoto(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create appends a photo to the end of the gallery.
func (r *PhotoRepo) Create(ctx context.Context, p *model.Photo) error {
	pos, err := nextSortOrder(ctx, r.db, model.CollectionPhotos, p.ArtistID)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = "INSERT INTO photos (id, artist_id, url, caption, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, p.ArtistID, p.URL, p.Caption, pos, now); err != nil {
		return err
	}
	p.ID, p.SortOrder, p.CreatedAt = id, pos, now
	return nil
}

// Update changes url and caption.
func (r *PhotoRepo) Update(ctx context.Context, p *model.Photo) error {
	res, err := r.db.ExecContext(ctx, "UPDATE photos SET url = ?, caption = ? WHERE id = ?", p.URL, p.Caption, p.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}

func (r *PhotoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM photos WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}

// VideoRepo manages persistence for gallery videos.
type VideoRepo struct {
	db *sql.DB
}

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{db: db} }

func scanVideo(row rowScanner) (*model.Video, error) {
	var v model.Video
	if err := row.Scan(&v.ID, &v.ArtistID, &v.URL, &v.Title, &v.SortOrder, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

// ListByArtist returns videos by sort order.
func (r *VideoRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Video, error) {
	const q = `SELECT id, artist_id, url, title, sort_order, created_at
	           FROM videos WHERE artist_id = ? ORDER BY sort_order, created_at`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VideoRepo) GetByID(ctx context.Context, id string) (*model.Video, error) {
	const q = "SELECT id, artist_id, url, title, sort_order, created_at FROM videos WHERE id = ?"
	v, err := scanVideo(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

// Create appends a video to the end of the gallery.
func (r *VideoRepo) Create(ctx context.Context, v *model.Video) error {
	pos, err := nextSortOrder(ctx, r.db, model.CollectionVideos, v.ArtistID)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = "INSERT INTO videos (id, artist_id, url, title, sort_order, created_at) VALUES (?, ?, ?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, id, v.ArtistID, v.URL, v.Title, pos, now); err != nil {
		return err
	}
	v.ID, v.SortOrder, v.CreatedAt = id, pos, now
	return nil
}

// Update changes url and title.
func (r *VideoRepo) Update(ctx context.Context, v *model.Video) error {
	res, err := r.db.ExecContext(ctx, "UPDATE videos SET url = ?, title = ? WHERE id = ?", v.URL, v.Title, v.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}

func (r *VideoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM videos WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}
