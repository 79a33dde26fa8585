package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrPartNotFound is returned when an inventory part cannot be found.
var ErrPartNotFound = errors.New("inventory part not found")

// ErrPartNumberExists signals a duplicate part number within a garage.
var ErrPartNumberExists = errors.New("part number already exists")

// PartRepo manages the per-garage inventory catalog.
type PartRepo struct {
	db *sql.DB
}

// NewPartRepo constructs a PartRepo with the provided DB handle.
func NewPartRepo(db *sql.DB) *PartRepo {
	return &PartRepo{db: db}
}

const partCols = `id, garage_id, name, part_number, car_name, model,
	on_hand_quantity, unit_price, igst, cgst, sgst, created_at, updated_at`

func scanPart(row interface{ Scan(...any) error }, p *model.InventoryPart) error {
	var igst, cgst, sgst decimal.NullDecimal
	if err := row.Scan(&p.ID, &p.GarageID, &p.Name, &p.PartNumber, &p.CarName, &p.Model,
		&p.OnHandQuantity, &p.UnitPrice, &igst, &cgst, &sgst, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return err
	}
	if igst.Valid {
		v := igst.Decimal
		p.IGST = &v
	}
	if cgst.Valid {
		v := cgst.Decimal
		p.CGST = &v
	}
	if sgst.Valid {
		v := sgst.Decimal
		p.SGST = &v
	}
	return nil
}

// decimalArg converts an optional decimal into a driver-friendly value.
func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return *d
}

// Create inserts a new part.  Returns ErrPartNumberExists when the
// part number is already taken inside the same garage.  An empty part
// number skips the uniqueness check.
func (r *PartRepo) Create(ctx context.Context, p *model.InventoryPart) error {
	if p.PartNumber != "" {
		taken, err := r.PartNumberExists(ctx, p.GarageID, p.PartNumber, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrPartNumberExists
		}
	}

	p.ID = uuid.NewString()
	const q = `INSERT INTO inventory_parts
	           (id, garage_id, name, part_number, car_name, model,
	            on_hand_quantity, unit_price, igst, cgst, sgst)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		p.ID, p.GarageID, p.Name, p.PartNumber, p.CarName, p.Model,
		p.OnHandQuantity, p.UnitPrice, decimalArg(p.IGST), decimalArg(p.CGST), decimalArg(p.SGST)); err != nil {
		return err
	}
	const qSel = "SELECT created_at, updated_at FROM inventory_parts WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSel, p.ID).Scan(&p.CreatedAt, &p.UpdatedAt)
}

// PartNumberExists reports whether a part number is already used by a
// different part in the same garage.  Pass excludeID to ignore the
// part being updated.
func (r *PartRepo) PartNumberExists(ctx context.Context, garageID, partNumber, excludeID string) (bool, error) {
	const q = "SELECT COUNT(*) FROM inventory_parts WHERE garage_id = ? AND part_number = ? AND id <> ?"
	var n int
	if err := r.db.QueryRowContext(ctx, q, garageID, partNumber, excludeID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByID fetches a single part scoped to a garage.
func (r *PartRepo) GetByID(ctx context.Context, garageID, id string) (*model.InventoryPart, error) {
	const q = "SELECT " + partCols + " FROM inventory_parts WHERE id = ? AND garage_id = ?"
	var p model.InventoryPart
	if err := scanPart(r.db.QueryRowContext(ctx, q, id, garageID), &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPartNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByGarage returns a garage's full catalog ordered by name.
func (r *PartRepo) ListByGarage(ctx context.Context, garageID string) ([]model.InventoryPart, error) {
	const q = "SELECT " + partCols + " FROM inventory_parts WHERE garage_id = ? ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q, garageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.InventoryPart
	for rows.Next() {
		var p model.InventoryPart
		if err := scanPart(rows, &p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update rewrites a part's catalog fields.  The on-hand quantity set
// here is the restock path; worksheet commits decrement it separately.
func (r *PartRepo) Update(ctx context.Context, p *model.InventoryPart) error {
	if p.PartNumber != "" {
		taken, err := r.PartNumberExists(ctx, p.GarageID, p.PartNumber, p.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrPartNumberExists
		}
	}

	const q = `UPDATE inventory_parts
	           SET name = ?, part_number = ?, car_name = ?, model = ?,
	               on_hand_quantity = ?, unit_price = ?, igst = ?, cgst = ?, sgst = ?
	           WHERE id = ? AND garage_id = ?`
	_, err := r.db.ExecContext(ctx, q,
		p.Name, p.PartNumber, p.CarName, p.Model,
		p.OnHandQuantity, p.UnitPrice, decimalArg(p.IGST), decimalArg(p.CGST), decimalArg(p.SGST),
		p.ID, p.GarageID)
	return err
}

// Delete removes a part from the catalog.  Parts already consumed on
// job cards keep their usage snapshots, so deletion never touches
// part_usages.
func (r *PartRepo) Delete(ctx context.Context, garageID, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM inventory_parts WHERE id = ? AND garage_id = ?", id, garageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPartNotFound
	}
	return nil
}
