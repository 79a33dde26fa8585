package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PartUsage is a part already recorded as consumed by a job on a
// previous worksheet save, stored in the `part_usages` table.  Unlike
// an in-session selection it does not compete for on-hand stock: the
// quantity here was already deducted when the row was committed.
//
// Fields:
//  ID         – CHAR(36) UUID primary key.
//  JobCardID  – job the part was consumed by.
//  PartID     – catalog part that was consumed.
//  PartName   – name snapshot taken at commit time.
//  Quantity   – units consumed.
//  UnitPrice  – unit price snapshot taken at commit time.
//  TaxAmount  – tax computed at commit time.
//  TotalPrice – line total computed at commit time.
//  CreatedAt  – when the usage was committed.
type PartUsage struct {
	ID         string          `json:"id"`          // part_usages.id
	JobCardID  string          `json:"job_card_id"` // part_usages.job_card_id
	PartID     string          `json:"part_id"`     // part_usages.part_id
	PartName   string          `json:"part_name"`   // part_usages.part_name
	Quantity   int             `json:"quantity"`    // part_usages.quantity
	UnitPrice  decimal.Decimal `json:"unit_price"`  // part_usages.unit_price
	TaxAmount  decimal.Decimal `json:"tax_amount"`  // part_usages.tax_amount
	TotalPrice decimal.Decimal `json:"total_price"` // part_usages.total_price
	CreatedAt  time.Time       `json:"created_at"`  // part_usages.created_at
}
