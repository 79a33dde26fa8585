// Package pricing computes tax and total price for a quantity of a
// part at a given unit price and GST configuration.  All arithmetic
// uses decimal values; nothing here rounds.  Rounding happens only
// when an amount is rendered (StringFixed at the invoice layer).
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// TaxConfig carries the GST percentages attached to a part.  A part
// is either IGST-taxed (interstate) or split CGST/SGST-taxed
// (intrastate); the two styles are mutually exclusive by convention,
// with IGST taking precedence when both are set.  CGST and SGST are
// computed independently because the two rates may differ.
type TaxConfig struct {
	IGST decimal.Decimal
	CGST decimal.Decimal
	SGST decimal.Decimal
}

// Interstate reports whether the configuration is IGST-style.
func (t TaxConfig) Interstate() bool {
	return t.IGST.IsPositive()
}

// TaxAmount returns unitPrice * quantity * percentage / 100.  A zero
// or negative unit price, quantity or percentage yields zero: absence
// of a rate means "no tax line item", not an error.
func TaxAmount(unitPrice decimal.Decimal, quantity int, percentage decimal.Decimal) decimal.Decimal {
	if quantity <= 0 || !unitPrice.IsPositive() || !percentage.IsPositive() {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(int64(quantity))
	return unitPrice.Mul(qty).Mul(percentage).Div(hundred)
}

// CombinedTax returns the total tax for a line.  IGST-style
// configurations use the single IGST rate; otherwise the CGST and
// SGST components are each computed via TaxAmount and summed.
func CombinedTax(unitPrice decimal.Decimal, quantity int, cfg TaxConfig) decimal.Decimal {
	if cfg.Interstate() {
		return TaxAmount(unitPrice, quantity, cfg.IGST)
	}
	cgst := TaxAmount(unitPrice, quantity, cfg.CGST)
	sgst := TaxAmount(unitPrice, quantity, cfg.SGST)
	return cgst.Add(sgst)
}

// Total returns unitPrice * quantity plus the combined tax.
func Total(unitPrice decimal.Decimal, quantity int, cfg TaxConfig) decimal.Decimal {
	base := decimal.Zero
	if quantity > 0 && unitPrice.IsPositive() {
		base = unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	}
	return base.Add(CombinedTax(unitPrice, quantity, cfg))
}
