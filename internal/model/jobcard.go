package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobCard represents one service job as stored in the `job_cards`
// table.  The workflow stage of a job is never stored here: it is a
// pure function of EngineerAssignments, LaborHours and QualityCheck,
// re-derived on every read by the workflow package.  Keeping no
// redundant stage column means there is nothing to drift out of sync.
//
// Fields:
//  ID               – CHAR(36) UUID primary key.
//  GarageID         – garage that opened the job.
//  CustomerName     – customer the vehicle belongs to.
//  CustomerPhone    – customer contact number.
//  VehicleModel     – free-text vehicle make/model.
//  RegistrationNo   – vehicle registration plate.
//  Complaint        – reported problem, free text.
//  LaborHours       – hours of labor recorded; nil until the
//                     work-in-progress sheet has been saved.
//  LaborCost        – labor charge recorded with the worksheet; nil
//                     until labor is recorded.
//  EngineerAssignments – ordered engineers assigned to the job,
//                     possibly empty.
//  QualityCheck     – quality-check outcome; nil until a check has
//                     been recorded.
//  CreatedAt        – timestamp of creation.
//  UpdatedAt        – timestamp of last update.
type JobCard struct {
	ID                  string               `json:"id"`                   // job_cards.id
	GarageID            string               `json:"garage_id"`            // job_cards.garage_id
	CustomerName        string               `json:"customer_name"`        // job_cards.customer_name
	CustomerPhone       string               `json:"customer_phone"`       // job_cards.customer_phone
	VehicleModel        string               `json:"vehicle_model"`        // job_cards.vehicle_model
	RegistrationNo      string               `json:"registration_no"`      // job_cards.registration_no
	Complaint           string               `json:"complaint"`            // job_cards.complaint
	LaborHours          *float64             `json:"labor_hours"`          // job_cards.labor_hours (nullable)
	LaborCost           *decimal.Decimal     `json:"labor_cost"`           // job_cards.labor_cost (nullable)
	EngineerAssignments []EngineerAssignment `json:"engineer_assignments"` // job_engineers rows, ordered by position
	QualityCheck        *QualityCheck        `json:"quality_check"`        // quality_checks row (nullable)
	CreatedAt           time.Time            `json:"created_at"`           // job_cards.created_at
	UpdatedAt           time.Time            `json:"updated_at"`           // job_cards.updated_at
}

// EngineerAssignment links a job card to an engineer, ordered by
// Position.  EngineerID may be empty for legacy rows imported without
// an identity; the stage resolver treats such an assignment as "no
// engineer yet".
type EngineerAssignment struct {
	JobCardID  string    `json:"job_card_id"` // job_engineers.job_card_id
	EngineerID string    `json:"engineer_id"` // job_engineers.engineer_id
	Position   int       `json:"position"`    // job_engineers.position
	AssignedAt time.Time `json:"assigned_at"` // job_engineers.assigned_at
}

// QualityCheck records the outcome of the final inspection of a job.
// BillApproved gates the transition into billing.
type QualityCheck struct {
	JobCardID    string    `json:"job_card_id"`   // quality_checks.job_card_id
	BillApproved bool      `json:"bill_approved"` // quality_checks.bill_approved
	Notes        string    `json:"notes"`         // quality_checks.notes
	CheckedAt    time.Time `json:"checked_at"`    // quality_checks.checked_at
}
