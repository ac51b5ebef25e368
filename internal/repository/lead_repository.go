package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

// LeadRepo manages booking enquiries.
type LeadRepo struct {
	db *sql.DB
}

func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

// Create inserts a lead with status "new".
func (r *LeadRepo) Create(ctx context.Context, l *model.Lead) error {
	var eventDate any
	if l.EventDate != nil {
		d, err := time.Parse(model.DateLayout, *l.EventDate)
		if err != nil {
			return err
		}
		eventDate = d
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO leads (id, artist_id, name, email, phone, event_date, event_city, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, l.ArtistID, l.Name, l.Email, l.Phone, eventDate, l.EventCity,
		l.Message, model.LeadStatusNew, now); err != nil {
		return err
	}
	l.ID, l.Status, l.CreatedAt = id, model.LeadStatusNew, now
	return nil
}

// ListByArtist returns the artist's leads, newest first.
func (r *LeadRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Lead, error) {
	const q = `SELECT id, artist_id, name, email, phone, event_date, event_city, message, status, created_at
	           FROM leads WHERE artist_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Lead{}
	for rows.Next() {
		var (
			l    model.Lead
			date sql.NullTime
		)
		if err := rows.Scan(&l.ID, &l.ArtistID, &l.Name, &l.Email, &l.Phone, &date, &l.EventCity,
			&l.Message, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		if date.Valid {
			s := date.Time.Format(model.DateLayout)
			l.EventDate = &s
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

// UpdateStatus sets the free-text status of a lead.
func (r *LeadRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, "UPDATE leads SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}
