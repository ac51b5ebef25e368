package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

// TestimonialRepo manages persistence for testimonials.
type TestimonialRepo struct {
	db *sql.DB
}

func NewTestimonialRepo(db *sql.DB) *TestimonialRepo { return &TestimonialRepo{db: db} }

func scanTestimonial(row rowScanner) (*model.Testimonial, error) {
	var t model.Testimonial
	if err := row.Scan(&t.ID, &t.ArtistID, &t.Name, &t.Role, &t.Text, &t.PhotoURL, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByArtist returns testimonials oldest first.
func (r *TestimonialRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Testimonial, error) {
	const q = `SELECT id, artist_id, name, role, text, photo_url, created_at
	           FROM testimonials WHERE artist_id = ? ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetByID fetches one testimonial.
func (r *TestimonialRepo) GetByID(ctx context.Context, id string) (*model.Testimonial, error) {
	const q = "SELECT id, artist_id, name, role, text, photo_url, created_at FROM testimonials WHERE id = ?"
	t, err := scanTestimonial(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TestimonialRepo) Create(ctx context.Context, t *model.Testimonial) error {
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO testimonials (id, artist_id, name, role, text, photo_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, t.ArtistID, t.Name, t.Role, t.Text, t.PhotoURL, now); err != nil {
		return err
	}
	t.ID, t.CreatedAt = id, now
	return nil
}

func (r *TestimonialRepo) Update(ctx context.Context, t *model.Testimonial) error {
	const q = "UPDATE testimonials SET name = ?, role = ?, text = ?, photo_url = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Role, t.Text, t.PhotoURL, t.ID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}

func (r *TestimonialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}
