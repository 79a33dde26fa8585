package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Insurance records an insurance policy tracked by a garage, stored
// in the `insurances` table.  A policy may optionally be tied to a
// specific job card when a claim is being processed against it.
type Insurance struct {
	ID            string          `json:"id"`             // insurances.id
	GarageID      string          `json:"garage_id"`      // insurances.garage_id
	JobCardID     *string         `json:"job_card_id"`    // insurances.job_card_id (nullable)
	Company       string          `json:"company"`        // insurances.company
	PolicyNumber  string          `json:"policy_number"`  // insurances.policy_number
	CoveredAmount decimal.Decimal `json:"covered_amount"` // insurances.covered_amount
	ExpiresAt     time.Time       `json:"expires_at"`     // insurances.expires_at
	CreatedAt     time.Time       `json:"created_at"`     // insurances.created_at
	UpdatedAt     time.Time       `json:"updated_at"`     // insurances.updated_at
}
