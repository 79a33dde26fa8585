// This file holds persistence for job cards and their two satellite
// tables: job_engineers (ordered assignments) and quality_checks.
// The workflow stage is intentionally not a column anywhere here — it
// is derived by the workflow package from the fields this repository
// loads.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
)

// ErrJobCardNotFound is returned when a job card cannot be found.
var ErrJobCardNotFound = errors.New("job card not found")

// JobCardRepo manages persistence for job cards.
type JobCardRepo struct {
	db *sql.DB
}

// NewJobCardRepo constructs a JobCardRepo with the provided DB handle.
func NewJobCardRepo(db *sql.DB) *JobCardRepo {
	return &JobCardRepo{db: db}
}

// DB exposes the underlying sql.DB so handlers can begin transactions
// spanning job cards, usages and inventory stock.
func (r *JobCardRepo) DB() *sql.DB {
	return r.db
}

// Create inserts a new job card with no assignments, labor or quality
// check: a freshly opened job always classifies as needing an
// engineer.
func (r *JobCardRepo) Create(ctx context.Context, j *model.JobCard) error {
	j.ID = uuid.NewString()
	const q = `INSERT INTO job_cards
	           (id, garage_id, customer_name, customer_phone, vehicle_model, registration_no, complaint)
	           VALUES (?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q,
		j.ID, j.GarageID, j.CustomerName, j.CustomerPhone, j.VehicleModel, j.RegistrationNo, j.Complaint); err != nil {
		return err
	}
	const qSel = "SELECT created_at, updated_at FROM job_cards WHERE id = ?"
	return r.db.QueryRowContext(ctx, qSel, j.ID).Scan(&j.CreatedAt, &j.UpdatedAt)
}

func scanJobCard(row interface{ Scan(...any) error }, j *model.JobCard) error {
	var (
		hours sql.NullFloat64
		cost  decimal.NullDecimal
	)
	if err := row.Scan(&j.ID, &j.GarageID, &j.CustomerName, &j.CustomerPhone, &j.VehicleModel,
		&j.RegistrationNo, &j.Complaint, &hours, &cost, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return err
	}
	if hours.Valid {
		h := hours.Float64
		j.LaborHours = &h
	}
	if cost.Valid {
		c := cost.Decimal
		j.LaborCost = &c
	}
	return nil
}

const jobCardCols = `id, garage_id, customer_name, customer_phone, vehicle_model,
	registration_no, complaint, labor_hours, labor_cost, created_at, updated_at`

// GetByID fetches a job card by id, including its ordered engineer
// assignments and quality check.  The row carries its garage id;
// callers that need garage scoping read it off the returned job.
func (r *JobCardRepo) GetByID(ctx context.Context, id string) (*model.JobCard, error) {
	const q = "SELECT " + jobCardCols + " FROM job_cards WHERE id = ?"
	var j model.JobCard
	if err := scanJobCard(r.db.QueryRowContext(ctx, q, id), &j); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrJobCardNotFound
		}
		return nil, err
	}
	if err := r.loadAssignments(ctx, &j); err != nil {
		return nil, err
	}
	if err := r.loadQualityCheck(ctx, &j); err != nil {
		return nil, err
	}
	return &j, nil
}

// ListByGarage returns all job cards of a garage, newest first, each
// with assignments and quality check attached so callers can resolve
// stages without extra round-trips per row.
func (r *JobCardRepo) ListByGarage(ctx context.Context, garageID string) ([]*model.JobCard, error) {
	const q = "SELECT " + jobCardCols + " FROM job_cards WHERE garage_id = ? ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, garageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.JobCard
	for rows.Next() {
		j := new(model.JobCard)
		if err := scanJobCard(rows, j); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, j := range out {
		if err := r.loadAssignments(ctx, j); err != nil {
			return nil, err
		}
		if err := r.loadQualityCheck(ctx, j); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *JobCardRepo) loadAssignments(ctx context.Context, j *model.JobCard) error {
	const q = `SELECT job_card_id, engineer_id, position, assigned_at
	           FROM job_engineers WHERE job_card_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, q, j.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	j.EngineerAssignments = nil
	for rows.Next() {
		var a model.EngineerAssignment
		if err := rows.Scan(&a.JobCardID, &a.EngineerID, &a.Position, &a.AssignedAt); err != nil {
			return err
		}
		j.EngineerAssignments = append(j.EngineerAssignments, a)
	}
	return rows.Err()
}

func (r *JobCardRepo) loadQualityCheck(ctx context.Context, j *model.JobCard) error {
	const q = "SELECT job_card_id, bill_approved, notes, checked_at FROM quality_checks WHERE job_card_id = ?"
	var qc model.QualityCheck
	err := r.db.QueryRowContext(ctx, q, j.ID).Scan(&qc.JobCardID, &qc.BillApproved, &qc.Notes, &qc.CheckedAt)
	if errors.Is(err, sql.ErrNoRows) {
		j.QualityCheck = nil
		return nil
	}
	if err != nil {
		return err
	}
	j.QualityCheck = &qc
	return nil
}

// ReplaceEngineersTx rewrites the ordered assignment list of a job
// within the provided transaction.  The caller must commit or roll
// back.  Passing an empty slice clears all assignments.
func (r *JobCardRepo) ReplaceEngineersTx(ctx context.Context, tx *sql.Tx, jobID string, engineerIDs []string) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM job_engineers WHERE job_card_id = ?", jobID); err != nil {
		return err
	}
	if len(engineerIDs) == 0 {
		return nil
	}
	query := "INSERT INTO job_engineers (job_card_id, engineer_id, position) VALUES "
	args := make([]any, 0, len(engineerIDs)*3)
	for i, eid := range engineerIDs {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, jobID, eid, i)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// SetLaborTx records labor hours and charge for a job within the
// provided transaction.  Saving the worksheet is what moves a job out
// of the "needs labor" classification, so this runs in the same
// transaction as the usage commit.
func (r *JobCardRepo) SetLaborTx(ctx context.Context, tx *sql.Tx, jobID string, hours float64, cost decimal.Decimal) error {
	const q = "UPDATE job_cards SET labor_hours = ?, labor_cost = ? WHERE id = ?"
	_, err := tx.ExecContext(ctx, q, hours, cost, jobID)
	return err
}

// UpsertQualityCheck records the quality-check outcome for a job.
// Re-running a check overwrites the previous outcome.
func (r *JobCardRepo) UpsertQualityCheck(ctx context.Context, jobID string, billApproved bool, notes string) error {
	const q = `INSERT INTO quality_checks (job_card_id, bill_approved, notes)
	           VALUES (?, ?, ?)
	           ON DUPLICATE KEY UPDATE bill_approved = VALUES(bill_approved), notes = VALUES(notes)`
	_, err := r.db.ExecContext(ctx, q, jobID, billApproved, notes)
	return err
}
