package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrInvoiceNotFound is returned when no invoice exists for a job.
var ErrInvoiceNotFound = errors.New("invoice not found")

// ErrInvoiceExists signals that a job card is already billed.
var ErrInvoiceExists = errors.New("invoice already issued for this job card")

// InvoiceRepo manages issued invoices.  Invoices are append-only; a
// job card is billed at most once.
type InvoiceRepo struct {
	db *sql.DB
}

// NewInvoiceRepo constructs an InvoiceRepo with the provided DB handle.
func NewInvoiceRepo(db *sql.DB) *InvoiceRepo {
	return &InvoiceRepo{db: db}
}

// Create issues an invoice for a job card.  The job_card_id column
// carries a unique index, so a concurrent double-issue surfaces as
// ErrInvoiceExists.
func (r *InvoiceRepo) Create(ctx context.Context, inv *model.Invoice) error {
	inv.ID = uuid.NewString()
	const q = `INSERT INTO invoices
	           (id, invoice_no, job_card_id, labor_charge, parts_subtotal, tax_total, grand_total)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		inv.ID, inv.InvoiceNo, inv.JobCardID, inv.LaborCharge, inv.PartsSubtotal, inv.TaxTotal, inv.GrandTotal); err != nil {
		if isDuplicateEntry(err) {
			return ErrInvoiceExists
		}
		return err
	}
	const qSel = "SELECT issued_at FROM invoices WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSel, inv.ID).Scan(&inv.IssuedAt)
}

// GetByJob fetches the invoice issued for a job card, if any.
func (r *InvoiceRepo) GetByJob(ctx context.Context, jobID string) (*model.Invoice, error) {
	const q = `SELECT id, invoice_no, job_card_id, labor_charge, parts_subtotal, tax_total, grand_total, issued_at
	           FROM invoices WHERE job_card_id = ?`
	var inv model.Invoice
	err := r.db.QueryRowContext(ctx, q, jobID).Scan(&inv.ID, &inv.InvoiceNo, &inv.JobCardID,
		&inv.LaborCharge, &inv.PartsSubtotal, &inv.TaxTotal, &inv.GrandTotal, &inv.IssuedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvoiceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// ExistsForJob reports whether a job card has been billed.
func (r *InvoiceRepo) ExistsForJob(ctx context.Context, jobID string) (bool, error) {
	const q = "SELECT COUNT(*) FROM invoices WHERE job_card_id = ?"
	var n int
	if err := r.db.QueryRowContext(ctx, q, jobID).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// NewInvoiceNo produces a human-facing invoice number.
func NewInvoiceNo() string {
	return "INV-" + uuid.NewString()[:8]
}
