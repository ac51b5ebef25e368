package repository

// This file holds the persistence side of list reordering.  Projects,
// photos and videos share the same (id, artist_id, sort_order) shape, so a
// single repository serves all three; the table name always comes from
// model.Collection.Table and never from request input.

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/artistlink/internal/model"
)

// SortOrderRepo reads and writes per-item positions of ordered collections.
type SortOrderRepo struct {
	db *sql.DB
}

func NewSortOrderRepo(db *sql.DB) *SortOrderRepo { return &SortOrderRepo{db: db} }

func tableFor(c model.Collection) (string, error) {
	t := c.Table()
	if t == "" {
		return "", fmt.Errorf("unknown collection %q", c)
	}
	return t, nil
}

// ListIDs returns the ids currently belonging to the artist's collection in
// their stored order.
func (r *SortOrderRepo) ListIDs(ctx context.Context, c model.Collection, artistID string) ([]string, error) {
	table, err := tableFor(c)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM "+table+" WHERE artist_id = ? ORDER BY sort_order, created_at", artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SetSortOrder stores one item's position.  The artist_id predicate keeps
// the write inside the artist's own collection.  A row deleted since the
// caller listed it is not an error: the reorder simply has one item less.
func (r *SortOrderRepo) SetSortOrder(ctx context.Context, c model.Collection, artistID, id string, pos int) error {
	table, err := tableFor(c)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		"UPDATE "+table+" SET sort_order = ? WHERE id = ? AND artist_id = ?", pos, id, artistID)
	return err
}

// nextSortOrder returns the position for a newly appended item: the current
// number of items in the artist's collection.
func nextSortOrder(ctx context.Context, db *sql.DB, c model.Collection, artistID string) (int, error) {
	table, err := tableFor(c)
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE artist_id = ?", artistID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
