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

const projectColumns = `id, artist_id, name, description, video_url, duration, technical_info,
	repertoire, photos, sort_order, created_at, updated_at`

// ProjectRepo manages persistence for projects (show formats).
type ProjectRepo struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

func scanProject(row rowScanner) (*model.Project, error) {
	var (
		p              model.Project
		repert, photos []byte
	)
	if err := row.Scan(&p.ID, &p.ArtistID, &p.Name, &p.Description, &p.VideoURL, &p.Duration,
		&p.TechnicalInfo, &repert, &photos, &p.SortOrder, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	var err error
	if p.Repertoire, err = decodeStrings(repert); err != nil {
		return nil, fmt.Errorf("decode repertoire for project %s: %w", p.ID, err)
	}
	if p.Photos, err = decodeStrings(photos); err != nil {
		return nil, fmt.Errorf("decode photos for project %s: %w", p.ID, err)
	}
	return &p, nil
}

// ListByArtist returns the artist's projects in operator-defined order.
func (r *ProjectRepo) ListByArtist(ctx context.Context, artistID string) ([]*model.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+projectColumns+" FROM projects WHERE artist_id = ? ORDER BY sort_order, created_at", artistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetByID fetches one project.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create appends a project to the end of the artist's list.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	pos, err := nextSortOrder(ctx, r.db, model.CollectionProjects, p.ArtistID)
	if err != nil {
		return err
	}
	repert, err := encodeStrings(p.Repertoire)
	if err != nil {
		return err
	}
	photos, err := encodeStrings(p.Photos)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO projects (id, artist_id, name, description, video_url, duration, technical_info,
		repertoire, photos, sort_order, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, p.ArtistID, p.Name, p.Description, p.VideoURL, p.Duration,
		p.TechnicalInfo, repert, photos, pos, now, now); err != nil {
		return err
	}
	p.ID, p.SortOrder = id, pos
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// Update overwrites the editable fields of a project.  SortOrder is left
// alone; it only changes through reordering.
func (r *ProjectRepo) Update(ctx context.Context, p *model.Project) error {
	repert, err := encodeStrings(p.Repertoire)
	if err != nil {
		return err
	}
	photos, err := encodeStrings(p.Photos)
	if err != nil {
		return err
	}
	now := time.Now().UTC().Truncate(time.Second)
	const q = `UPDATE projects SET name = ?, description = ?, video_url = ?, duration = ?, technical_info = ?,
		repertoire = ?, photos = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.VideoURL, p.Duration, p.TechnicalInfo,
		repert, photos, now, p.ID)
	if err != nil {
		return err
	}
	if err := affectedOrNotFound(res.RowsAffected()); err != nil {
		return err
	}
	p.UpdatedAt = now
	return nil
}

// Delete removes a project by id.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res.RowsAffected())
}
