package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrEngineerNotFound is returned when an engineer cannot be found.
var ErrEngineerNotFound = errors.New("engineer not found")

// EngineerRepo manages persistence for engineers.
type EngineerRepo struct {
	db *sql.DB
}

// NewEngineerRepo constructs an EngineerRepo with the provided DB handle.
func NewEngineerRepo(db *sql.DB) *EngineerRepo {
	return &EngineerRepo{db: db}
}

const engineerCols = "id, garage_id, name, phone, specialty, is_active, created_at, updated_at"

func scanEngineer(row interface{ Scan(...any) error }, e *model.Engineer) error {
	return row.Scan(&e.ID, &e.GarageID, &e.Name, &e.Phone, &e.Specialty, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
}

// Create inserts a new engineer and populates the generated UUID and
// timestamp columns on the passed struct.
func (r *EngineerRepo) Create(ctx context.Context, e *model.Engineer) error {
	e.ID = uuid.NewString()
	const q = "INSERT INTO engineers (id, garage_id, name, phone, specialty, is_active) VALUES (?, ?, ?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, q, e.ID, e.GarageID, e.Name, e.Phone, e.Specialty, e.IsActive); err != nil {
		return err
	}
	const qSel = "SELECT created_at, updated_at FROM engineers WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSel, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetByID fetches an engineer scoped to a garage.  Scoping by garage
// id keeps one garage from reading another's staff.
func (r *EngineerRepo) GetByID(ctx context.Context, garageID, id string) (*model.Engineer, error) {
	const q = "SELECT " + engineerCols + " FROM engineers WHERE id = ? AND garage_id = ?"
	var e model.Engineer
	if err := scanEngineer(r.db.QueryRowContext(ctx, q, id, garageID), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEngineerNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByGarage returns the engineers of a garage.  When activeOnly is
// set, only engineers who can take new assignments are returned.
func (r *EngineerRepo) ListByGarage(ctx context.Context, garageID string, activeOnly bool) ([]*model.Engineer, error) {
	q := "SELECT " + engineerCols + " FROM engineers WHERE garage_id = ?"
	if activeOnly {
		q += " AND is_active = 1"
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q, garageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Engineer
	for rows.Next() {
		e := new(model.Engineer)
		if err := scanEngineer(rows, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites the mutable fields of an engineer.  It returns
// sql.ErrNoRows when the engineer does not exist in the garage.
func (r *EngineerRepo) Update(ctx context.Context, e *model.Engineer) error {
	const q = `UPDATE engineers SET name = ?, phone = ?, specialty = ?, is_active = ?
	           WHERE id = ? AND garage_id = ?`
	res, err := r.db.ExecContext(ctx, q, e.Name, e.Phone, e.Specialty, e.IsActive, e.ID, e.GarageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an engineer.  ErrConflict is returned when the
// engineer is still assigned to job cards, so history stays intact.
func (r *EngineerRepo) Delete(ctx context.Context, garageID, id string) error {
	var assigned int
	const qCount = "SELECT COUNT(*) FROM job_engineers WHERE engineer_id = ?"
	if err := r.db.QueryRowContext(ctx, qCount, id).Scan(&assigned); err != nil {
		return err
	}
	if assigned > 0 {
		return ErrConflict
	}
	const q = "DELETE FROM engineers WHERE id = ? AND garage_id = ?"
	res, err := r.db.ExecContext(ctx, q, id, garageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
