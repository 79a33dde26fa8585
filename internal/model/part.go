package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/pricing"
)

// InventoryPart is a catalog entry for a replaceable part, stored in
// the `inventory_parts` table.  OnHandQuantity is the authoritative
// stock figure; it is only ever decremented by the usage-commit
// transaction when a worksheet is saved.  A part carries either an
// IGST rate or a CGST/SGST pair; the pair convention is not enforced
// at the data layer, only on the submission path.
//
// Fields:
//  ID             – CHAR(36) UUID primary key.
//  GarageID       – garage that owns this catalog entry.
//  Name           – human-readable part name.
//  PartNumber     – manufacturer part number; optional, but checked
//                   for uniqueness within the garage before insert.
//  CarName        – free-text vehicle make classification.
//  Model          – free-text vehicle model classification.
//  OnHandQuantity – non-negative units currently in stock.
//  UnitPrice      – price per unit.
//  IGST           – integrated GST percentage (nullable).
//  CGST           – central GST percentage (nullable).
//  SGST           – state GST percentage (nullable).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type InventoryPart struct {
	ID             string           `json:"id"`               // inventory_parts.id
	GarageID       string           `json:"garage_id"`        // inventory_parts.garage_id
	Name           string           `json:"name"`             // inventory_parts.name
	PartNumber     string           `json:"part_number"`      // inventory_parts.part_number (empty when absent)
	CarName        string           `json:"car_name"`         // inventory_parts.car_name
	Model          string           `json:"model"`            // inventory_parts.model
	OnHandQuantity int              `json:"on_hand_quantity"` // inventory_parts.on_hand_quantity
	UnitPrice      decimal.Decimal  `json:"unit_price"`       // inventory_parts.unit_price
	IGST           *decimal.Decimal `json:"igst"`             // inventory_parts.igst (nullable)
	CGST           *decimal.Decimal `json:"cgst"`             // inventory_parts.cgst (nullable)
	SGST           *decimal.Decimal `json:"sgst"`             // inventory_parts.sgst (nullable)
	CreatedAt      time.Time        `json:"created_at"`       // inventory_parts.created_at
	UpdatedAt      time.Time        `json:"updated_at"`       // inventory_parts.updated_at
}

// Tax builds the pricing tax configuration from the part's rate
// columns.  Absent rates become zero, which the calculator treats as
// "no tax line item".
func (p InventoryPart) Tax() pricing.TaxConfig {
	cfg := pricing.TaxConfig{}
	if p.IGST != nil {
		cfg.IGST = *p.IGST
	}
	if p.CGST != nil {
		cfg.CGST = *p.CGST
	}
	if p.SGST != nil {
		cfg.SGST = *p.SGST
	}
	return cfg
}
