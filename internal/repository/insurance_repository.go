package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrInsuranceNotFound is returned when a policy cannot be found.
var ErrInsuranceNotFound = errors.New("insurance policy not found")

// InsuranceRepo manages insurance policies tracked per garage.
type InsuranceRepo struct {
	db *sql.DB
}

// NewInsuranceRepo constructs an InsuranceRepo with the provided DB handle.
func NewInsuranceRepo(db *sql.DB) *InsuranceRepo {
	return &InsuranceRepo{db: db}
}

const insuranceCols = `id, garage_id, job_card_id, company, policy_number,
	covered_amount, expires_at, created_at, updated_at`

func scanInsurance(row interface{ Scan(...any) error }, ins *model.Insurance) error {
	var jobID sql.NullString
	if err := row.Scan(&ins.ID, &ins.GarageID, &jobID, &ins.Company, &ins.PolicyNumber,
		&ins.CoveredAmount, &ins.ExpiresAt, &ins.CreatedAt, &ins.UpdatedAt); err != nil {
		return err
	}
	if jobID.Valid {
		ins.JobCardID = &jobID.String
	}
	return nil
}

// Create inserts a new policy.
func (r *InsuranceRepo) Create(ctx context.Context, ins *model.Insurance) error {
	ins.ID = uuid.NewString()
	const q = `INSERT INTO insurances
	           (id, garage_id, job_card_id, company, policy_number, covered_amount, expires_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	var jobID any
	if ins.JobCardID != nil {
		jobID = *ins.JobCardID
	}
	if _, err := r.db.ExecContext(ctx, q,
		ins.ID, ins.GarageID, jobID, ins.Company, ins.PolicyNumber, ins.CoveredAmount, ins.ExpiresAt); err != nil {
		return err
	}
	const qSel = "SELECT created_at, updated_at FROM insurances WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSel, ins.ID).Scan(&ins.CreatedAt, &ins.UpdatedAt)
}

// GetByID fetches a policy scoped to a garage.
func (r *InsuranceRepo) GetByID(ctx context.Context, garageID, id string) (*model.Insurance, error) {
	const q = "SELECT " + insuranceCols + " FROM insurances WHERE id = ? AND garage_id = ?"
	var ins model.Insurance
	if err := scanInsurance(r.db.QueryRowContext(ctx, q, id, garageID), &ins); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInsuranceNotFound
		}
		return nil, err
	}
	return &ins, nil
}

// ListByGarage returns a garage's policies, soonest expiry first.
func (r *InsuranceRepo) ListByGarage(ctx context.Context, garageID string) ([]model.Insurance, error) {
	const q = "SELECT " + insuranceCols + " FROM insurances WHERE garage_id = ? ORDER BY expires_at"
	rows, err := r.db.QueryContext(ctx, q, garageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Insurance
	for rows.Next() {
		var ins model.Insurance
		if err := scanInsurance(rows, &ins); err != nil {
			return nil, err
		}
		out = append(out, ins)
	}
	return out, rows.Err()
}

// Update rewrites a policy's fields.
func (r *InsuranceRepo) Update(ctx context.Context, ins *model.Insurance) error {
	const q = `UPDATE insurances
	           SET job_card_id = ?, company = ?, policy_number = ?, covered_amount = ?, expires_at = ?
	           WHERE id = ? AND garage_id = ?`
	var jobID any
	if ins.JobCardID != nil {
		jobID = *ins.JobCardID
	}
	res, err := r.db.ExecContext(ctx, q,
		jobID, ins.Company, ins.PolicyNumber, ins.CoveredAmount, ins.ExpiresAt, ins.ID, ins.GarageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsuranceNotFound
	}
	return nil
}

// Delete removes a policy.
func (r *InsuranceRepo) Delete(ctx context.Context, garageID, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM insurances WHERE id = ? AND garage_id = ?", id, garageID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrInsuranceNotFound
	}
	return nil
}
