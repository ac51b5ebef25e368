package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

const showColumns = "id, artist_id, date, city, venue, status, notes, created_at, updated_at"

// ShowRepo manages persistence for agenda slots.
type ShowRepo struct {
	db *sql.DB
}

func NewShowRepo(db *sql.DB) *ShowRepo { return &ShowRepo{db: db} }

func scanShow(row rowScanner) (*model.Show, error) {
	var (
		s      model.Show
		date   time.Time
		status string
	)
	if err := row.Scan(&s.ID, &s.ArtistID, &date, &s.City, &s.Venue, &status, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Date = date.Format(model.DateLayout)
	s.Status = model.ShowStatus(status)
	return &s, nil
}

// ListByArtist returns the artist's agenda ordered by date.
func (r *ShowRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Show, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+showColumns+" FROM shows WHERE artist_id = ? ORDER BY date", artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Show{}
	for rows.Next() {
		s, err := scanShow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByID fetches one show.
func (r *ShowRepo) GetByID(ctx context.Context, id string) (*model.Show, error) {
	s, err := scanShow(r.db.QueryRowContext(ctx, "SELECT "+showColumns+" FROM shows WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func parseShowDate(s string) (time.Time, error) {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid show date %q: %w", s, err)
	}
	return d, nil
}

// Create inserts a show.  Status defaults to available when empty.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	date, err := parseShowDate(s.Date)
	if err != nil {
		return err
	}
	if s.Status == "" {
		s.Status = model.ShowAvailable
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO shows (id, artist_id, date, city, venue, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, s.ArtistID, date, s.City, s.Venue, string(s.Status), s.Notes, now, now); err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt, s.UpdatedAt = now, now
	return nil
}

// Update overwrites a show.  Status changes are operator-driven only; there
// is no automatic transition anywhere in the service.
func (r *ShowRepo) Update(ctx context.Context, s *model.Show) error {
	date, err := parseShowDate(s.Date)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	const q = `UPDATE shows SET date = ?, city = ?, venue = ?, status = ?, notes = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, date, s.City, s.Venue, string(s.Status), s.Notes, now, s.ID)
	if err != nil {
		return err
	}
	if err := affectedOrNotFound(res.RowsAffected()); err != nil {
		return err
	}
	s.UpdatedAt = now
	return nil
}

// Delete removes a show by id.
func (r *ShowRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM shows WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}
