// Package repository contains data access logic separated from HTTP
// handlers.  This file holds CRUD and lookup operations for garages.
// A garage is the root of the ownership tree: engineers, job cards,
// inventory parts and insurances all hang off one.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrGarageNotFound is returned when a garage cannot be found.
var ErrGarageNotFound = errors.New("garage not found")

// GarageRepo encapsulates all database queries related to garages.
type GarageRepo struct {
	db *sql.DB
}

// NewGarageRepo constructs a GarageRepo with the provided DB handle.
func NewGarageRepo(db *sql.DB) *GarageRepo {
	return &GarageRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions
// spanning multiple repositories.
func (r *GarageRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new garage.  The UUID is generated here and
// populated on the passed struct, and a follow-up SELECT fills the
// DB-default timestamp columns so callers receive a complete record.
func (r *GarageRepo) Create(ctx context.Context, g *model.Garage) error {
	g.ID = uuid.NewString()
	const qInsert = "INSERT INTO garages (id, owner_user_id, name, city) VALUES (?, ?, ?, ?)"
	if _, err := r.db.ExecContext(ctx, qInsert, g.ID, g.OwnerUserID, g.Name, g.City); err != nil {
		return err
	}
	const qSelect = "SELECT created_at, updated_at FROM garages WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSelect, g.ID).Scan(&g.CreatedAt, &g.UpdatedAt)
}

// GetByID fetches a garage by its ID regardless of owner.
func (r *GarageRepo) GetByID(ctx context.Context, id string) (*model.Garage, error) {
	const q = "SELECT id, owner_user_id, name, city, created_at, updated_at FROM garages WHERE id = ?"
	var g model.Garage
	err := r.db.QueryRowContext(ctx, q, id).Scan(&g.ID, &g.OwnerUserID, &g.Name, &g.City, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGarageNotFound
		}
		return nil, err
	}
	return &g, nil
}

// List returns all garages ordered by creation time.
func (r *GarageRepo) List(ctx context.Context) ([]*model.Garage, error) {
	const q = `SELECT id, owner_user_id, name, city, created_at, updated_at
	           FROM garages ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Garage
	for rows.Next() {
		g := new(model.Garage)
		if err := rows.Scan(&g.ID, &g.OwnerUserID, &g.Name, &g.City, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// Update changes the mutable fields of a garage owned by the given
// user.  It returns ErrGarageNotFound when the garage does not exist
// and ErrForbidden when it exists but belongs to another admin.
func (r *GarageRepo) Update(ctx context.Context, id string, ownerUserID uint64, name, city string) error {
	if err := r.checkOwner(ctx, id, ownerUserID); err != nil {
		return err
	}
	const q = "UPDATE garages SET name = ?, city = ? WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, name, city, id)
	return err
}

// checkOwner verifies the garage exists and belongs to the given
// admin.  MySQL reports zero affected rows for no-op updates, so
// ownership is checked up front instead of inferred from the write.
func (r *GarageRepo) checkOwner(ctx context.Context, id string, ownerUserID uint64) error {
	var owner uint64
	const q = "SELECT owner_user_id FROM garages WHERE id = ?"
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&owner); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGarageNotFound
		}
		return err
	}
	if owner != ownerUserID {
		return ErrForbidden
	}
	return nil
}

// Delete removes a garage owned by the given user.  Dependent rows
// cascade at the DB level.
func (r *GarageRepo) Delete(ctx context.Context, id string, ownerUserID uint64) error {
	if err := r.checkOwner(ctx, id, ownerUserID); err != nil {
		return err
	}
	const q = "DELETE FROM garages WHERE id = ?"
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
