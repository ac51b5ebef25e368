package repository

// Page views and button clicks are an append-only event log.  Nothing in
// the service updates or deletes them; aggregation happens downstream.

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

// EngagementRepo inserts engagement events.
type EngagementRepo struct {
	db *sql.DB
}

func NewEngagementRepo(db *sql.DB) *EngagementRepo { return &EngagementRepo{db: db} }

// SavePageView inserts one page view.  Missing id or timestamp are filled
// in; events relayed through the queue arrive with both already set, so a
// redelivered message keeps its original identity.
func (r *EngagementRepo) SavePageView(ctx context.Context, v *model.PageView) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.ViewedAt.IsZero() {
		v.ViewedAt = time.Now().UTC()
	}
	const q = "INSERT INTO page_views (id, artist_id, referrer, user_agent, viewed_at) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, v.ID, v.ArtistID, v.Referrer, v.UserAgent, v.ViewedAt)
	return err
}

// SaveButtonClick inserts one button click.
func (r *EngagementRepo) SaveButtonClick(ctx context.Context, c *model.ButtonClick) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.ClickedAt.IsZero() {
		c.ClickedAt = time.Now().UTC()
	}
	const q = "INSERT INTO button_clicks (id, artist_id, button_type, clicked_at) VALUES (?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, q, c.ID, c.ArtistID, c.ButtonType, c.ClickedAt)
	return err
}
