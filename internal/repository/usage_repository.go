// Part usages are the committed lines of a job card's worksheet.
// Each row snapshots the part name, unit price and computed amounts at
// commit time, so later catalog edits never rewrite past worksheets.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/stock"
)

// ErrUsageNotFound is returned when a usage row cannot be found.
var ErrUsageNotFound = errors.New("part usage not found")

// UsageRepo manages committed part usages and the stock decrements
// that accompany them.
type UsageRepo struct {
	db *sql.DB
}

// NewUsageRepo constructs a UsageRepo with the provided DB handle.
func NewUsageRepo(db *sql.DB) *UsageRepo {
	return &UsageRepo{db: db}
}

const usageCols = `id, job_card_id, part_id, part_name, quantity,
	unit_price, tax_amount, total_price, created_at`

func scanUsage(row interface{ Scan(...any) error }, u *model.PartUsage) error {
	return row.Scan(&u.ID, &u.JobCardID, &u.PartID, &u.PartName, &u.Quantity,
		&u.UnitPrice, &u.TaxAmount, &u.TotalPrice, &u.CreatedAt)
}

// ListByJob returns a job card's committed usages in insertion order.
func (r *UsageRepo) ListByJob(ctx context.Context, jobID string) ([]model.PartUsage, error) {
	const q = "SELECT " + usageCols + " FROM part_usages WHERE job_card_id = ? ORDER BY created_at, id"
	rows, err := r.db.QueryContext(ctx, q, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PartUsage
	for rows.Next() {
		var u model.PartUsage
		if err := scanUsage(rows, &u); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// GetByID fetches a single usage row scoped to its job card.
func (r *UsageRepo) GetByID(ctx context.Context, jobID, id string) (*model.PartUsage, error) {
	const q = "SELECT " + usageCols + " FROM part_usages WHERE id = ? AND job_card_id = ?"
	var u model.PartUsage
	if err := scanUsage(r.db.QueryRowContext(ctx, q, id, jobID), &u); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUsageNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CommitUsagesTx inserts usage rows for the given plan and decrements
// on-hand stock within the provided transaction.  Each decrement is
// guarded by the current quantity, so a concurrent commit that drained
// the stock surfaces as ErrStockConflict instead of driving the count
// negative.  The caller must roll back on error.
func (r *UsageRepo) CommitUsagesTx(ctx context.Context, tx *sql.Tx, jobID string, plan []stock.UsageLine) error {
	const qIns = `INSERT INTO part_usages
	              (id, job_card_id, part_id, part_name, quantity, unit_price, tax_amount, total_price)
	              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	const qDec = `UPDATE inventory_parts
	              SET on_hand_quantity = on_hand_quantity - ?
	              WHERE id = ? AND on_hand_quantity >= ?`
	for _, line := range plan {
		if _, err := tx.ExecContext(ctx, qIns,
			uuid.NewString(), jobID, line.PartID, line.Name, line.Quantity,
			line.UnitPrice, line.TaxAmount, line.TotalPrice); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, qDec, line.Quantity, line.PartID, line.Quantity)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrStockConflict
		}
	}
	return nil
}

// UpdateQuantity changes the quantity of a committed usage and
// recomputes its tax and total from the snapshotted unit price.  The
// stock already deducted for this row is not re-validated; past
// consumption owns its stock.
func (r *UsageRepo) UpdateQuantity(ctx context.Context, jobID, id string, quantity int, taxAmount, totalPrice decimal.Decimal) error {
	const q = `UPDATE part_usages SET quantity = ?, tax_amount = ?, total_price = ?
	           WHERE id = ? AND job_card_id = ?`
	_, err := r.db.ExecContext(ctx, q, quantity, taxAmount, totalPrice, id, jobID)
	return err
}

// TotalsForJob sums the committed part totals and tax for a job card.
func (r *UsageRepo) TotalsForJob(ctx context.Context, jobID string) (total, tax decimal.Decimal, err error) {
	const q = `SELECT COALESCE(SUM(total_price), 0), COALESCE(SUM(tax_amount), 0)
	           FROM part_usages WHERE job_card_id = ?`
	err = r.db.QueryRowContext(ctx, q, jobID).Scan(&total, &tax)
	return total, tax, err
}
