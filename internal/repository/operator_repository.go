package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/artistlink/internal/model"
)

// OperatorRepo persists dashboard operators.
type OperatorRepo struct {
	db *sql.DB
}

func NewOperatorRepo(db *sql.DB) *OperatorRepo { return &OperatorRepo{db: db} }

const operatorColumns = "id, email, password_hash, full_name, role, created_at, updated_at"

func (r *OperatorRepo) queryOne(ctx context.Context, q string, arg any) (*model.Operator, error) {
	var o model.Operator
	err := r.db.QueryRowContext(ctx, q, arg).Scan(&o.ID, &o.Email, &o.PasswordHash, &o.FullName, &o.Role,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// GetByEmail looks an operator up by login email.
func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (*model.Operator, error) {
	return r.queryOne(ctx, "SELECT "+operatorColumns+" FROM operators WHERE email = ?", email)
}

// GetByID looks an operator up by id.
func (r *OperatorRepo) GetByID(ctx context.Context, id string) (*model.Operator, error) {
	return r.queryOne(ctx, "SELECT "+operatorColumns+" FROM operators WHERE id = ?", id)
}

// Create inserts an operator whose PasswordHash is already set.
func (r *OperatorRepo) Create(ctx context.Context, o *model.Operator) error {
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.NewString()
	const q = `INSERT INTO operators (id, email, password_hash, full_name, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, id, o.Email, o.PasswordHash, o.FullName, o.Role, now, now); err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	o.ID = id
	o.CreatedAt, o.UpdatedAt = now, now
	return nil
}
