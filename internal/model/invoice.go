package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the final bill issued for a job card, stored in the
// `invoices` table.  An invoice can only be created once the stage
// resolver reports the job as ready to bill.  All amounts are kept
// unrounded; rendering layers round to two decimals for display.
type Invoice struct {
	ID            string          `json:"id"`             // invoices.id
	InvoiceNo     string          `json:"invoice_no"`     // invoices.invoice_no (human-facing number)
	JobCardID     string          `json:"job_card_id"`    // invoices.job_card_id
	LaborCharge   decimal.Decimal `json:"labor_charge"`   // invoices.labor_charge
	PartsSubtotal decimal.Decimal `json:"parts_subtotal"` // invoices.parts_subtotal
	TaxTotal      decimal.Decimal `json:"tax_total"`      // invoices.tax_total
	GrandTotal    decimal.Decimal `json:"grand_total"`    // invoices.grand_total
	IssuedAt      time.Time       `json:"issued_at"`      // invoices.issued_at
}
