// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for artists: operator CRUD, the
// public read paths that only ever see active artists, and the contact
// lookup used by the contact resolution service.
package repository

import (
	"context"      // context carries deadlines for every DB round trip
	"database/sql" // sql provides generic database operations and drivers
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

const artistColumns = `id, slug, name, genre, bio, full_bio, banner_url, photo_url, main_video_url,
	whatsapp_number, press_kit_url, social_links, is_active, created_at, updated_at`

// ArtistRepo encapsulates all database queries related to artists.
type ArtistRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewArtistRepo constructs an ArtistRepo with the provided DB handle.
func NewArtistRepo(db *sql.DB) *ArtistRepo {
	return &ArtistRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArtist(row rowScanner) (*model.Artist, error) {
	var (
		a     model.Artist
		links []byte
	)
	if err := row.Scan(&a.ID, &a.Slug, &a.Name, &a.Genre, &a.Bio, &a.FullBio, &a.BannerURL,
		&a.PhotoURL, &a.MainVideoURL, &a.WhatsAppNumber, &a.PressKitURL, &links, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	m, err := decodeLinks(links)
	if err != nil {
		return nil, fmt.Errorf("decode social_links for artist %s: %w", a.ID, err)
	}
	a.SocialLinks = m
	return &a, nil
}

func (r *ArtistRepo) queryOne(ctx context.Context, q string, args ...any) (*model.Artist, error) {
	a, err := scanArtist(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ArtistRepo) queryMany(ctx context.Context, q string, args ...any) ([]*model.Artist, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Artist{}
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches an artist by id regardless of its active flag.  It is the
// operator read path.
func (r *ArtistRepo) GetByID(ctx context.Context, id string) (*model.Artist, error) {
	return r.queryOne(ctx, "SELECT "+artistColumns+" FROM artists WHERE id = ?", id)
}

// GetActiveBySlug fetches an artist for the public page.  Inactive artists
// are reported as ErrArtistNotFound.
func (r *ArtistRepo) GetActiveBySlug(ctx context.Context, slug string) (*model.Artist, error) {
	return r.queryOne(ctx, "SELECT "+artistColumns+" FROM artists WHERE slug = ? AND is_active = TRUE", slug)
}

// GetActiveContact returns the fields needed to build a contact link.  The
// is_active filter is part of the query so inactive artists are never
// reachable through this path, even by a valid id.
func (r *ArtistRepo) GetActiveContact(ctx context.Context, id string) (*model.ArtistContact, error) {
	const q = "SELECT id, name, whatsapp_number FROM artists WHERE id = ? AND is_active = TRUE"
	var c model.ArtistContact
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.WhatsAppNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrArtistNotFound
		}
		return nil, err
	}
	return &c, nil
}

// IsActive reports whether an active artist with the given id exists.
func (r *ArtistRepo) IsActive(ctx context.Context, id string) (bool, error) {
	const q = "SELECT 1 FROM artists WHERE id = ? AND is_active = TRUE"
	var one int
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListAll returns every artist ordered by name, for the dashboard.
func (r *ArtistRepo) ListAll(ctx context.Context) ([]*model.Artist, error) {
	return r.queryMany(ctx, "SELECT "+artistColumns+" FROM artists ORDER BY name")
}

// ListActive returns active artists ordered by name, for public listings.
func (r *ArtistRepo) ListActive(ctx context.Context) ([]*model.Artist, error) {
	return r.queryMany(ctx, "SELECT "+artistColumns+" FROM artists WHERE is_active = TRUE ORDER BY name")
}

// Create inserts a new artist.  ID and timestamps are assigned here.  A
// slug already used by another artist yields ErrConflict.
func (r *ArtistRepo) Create(ctx context.Context, a *model.Artist) error {
	links, err := encodeLinks(a.SocialLinks)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO artists (id, slug, name, genre, bio, full_bio, banner_url, photo_url,
		main_video_url, whatsapp_number, press_kit_url, social_links, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, a.Slug, a.Name, a.Genre, a.Bio, a.FullBio, a.BannerURL,
		a.PhotoURL, a.MainVideoURL, a.WhatsAppNumber, a.PressKitURL, links, a.IsActive, now, now); err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	a.ID = id
	a.CreatedAt, a.UpdatedAt = now, now
	if a.SocialLinks == nil {
		a.SocialLinks = map[string]string{}
	}
	return nil
}

// Update overwrites every editable column of an existing artist.
func (r *ArtistRepo) Update(ctx context.Context, a *model.Artist) error {
	links, err := encodeLinks(a.SocialLinks)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	const q = `UPDATE artists SET slug = ?, name = ?, genre = ?, bio = ?, full_bio = ?, banner_url = ?,
		photo_url = ?, main_video_url = ?, whatsapp_number = ?, press_kit_url = ?, social_links = ?,
		is_active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, a.Slug, a.Name, a.Genre, a.Bio, a.FullBio, a.BannerURL,
		a.PhotoURL, a.MainVideoURL, a.WhatsAppNumber, a.PressKitURL, links, a.IsActive, now, a.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrArtistNotFound
	}
	if err != nil {
		return err
	}
	a.UpdatedAt = now
	return nil
}

// Delete removes an artist.  Child rows (projects, shows, testimonials,
// photos, videos, page views, button clicks, leads) go with it through the
// schema's ON DELETE CASCADE foreign keys.
func (r *ArtistRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM artists WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return ErrArtistNotFound
	}
	return err
}
