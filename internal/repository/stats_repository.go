package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/artistlink/internal/model"
)

// StatsRepo computes dashboard counters.
type StatsRepo struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db} }

// Dashboard returns global counts of page views, button clicks, leads and
// shows in a single round trip.
func (r *StatsRepo) Dashboard(ctx context.Context) (model.DashboardStats, error) {
	const q = `SELECT
		(SELECT COUNT(*) FROM page_views),
		(SELECT COUNT(*) FROM button_clicks),
		(SELECT COUNT(*) FROM leads),
		(SELECT COUNT(*) FROM shows)`
	var s model.DashboardStats
	err := r.db.QueryRowContext(ctx, q).Scan(&s.PageViews, &s.ButtonClicks, &s.Leads, &s.Shows)
	return s, err
}
