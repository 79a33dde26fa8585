package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestTaxAmount(t *testing.T) {
	tests := []struct {
		name       string
		unitPrice  string
		quantity   int
		percentage string
		expected   string
	}{
		{name: "igst 18 percent on two units", unitPrice: "100", quantity: 2, percentage: "18", expected: "36"},
		{name: "fractional rate", unitPrice: "250.50", quantity: 1, percentage: "2.5", expected: "6.2625"},
		{name: "zero percentage means no tax", unitPrice: "100", quantity: 2, percentage: "0", expected: "0"},
		{name: "zero quantity means no tax", unitPrice: "100", quantity: 0, percentage: "18", expected: "0"},
		{name: "zero unit price means no tax", unitPrice: "0", quantity: 3, percentage: "18", expected: "0"},
		{name: "negative quantity means no tax", unitPrice: "100", quantity: -1, percentage: "18", expected: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxAmount(d(tt.unitPrice), tt.quantity, d(tt.percentage))
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestCombinedTax(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		quantity  int
		cfg       TaxConfig
		expected  string
	}{
		{
			name:      "igst style",
			unitPrice: "100", quantity: 2,
			cfg:      TaxConfig{IGST: d("18")},
			expected: "36",
		},
		{
			name:      "split cgst sgst",
			unitPrice: "100", quantity: 1,
			cfg:      TaxConfig{CGST: d("9"), SGST: d("9")},
			expected: "18",
		},
		{
			name:      "asymmetric cgst sgst components computed independently",
			unitPrice: "100", quantity: 1,
			cfg:      TaxConfig{CGST: d("9"), SGST: d("6")},
			expected: "15",
		},
		{
			name:      "igst wins when both styles are set",
			unitPrice: "100", quantity: 1,
			cfg:      TaxConfig{IGST: d("18"), CGST: d("9"), SGST: d("9")},
			expected: "18",
		},
		{
			name:      "no rates set",
			unitPrice: "50", quantity: 3,
			cfg:      TaxConfig{},
			expected: "0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombinedTax(d(tt.unitPrice), tt.quantity, tt.cfg)
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestTotal(t *testing.T) {
	tests := []struct {
		name      string
		unitPrice string
		quantity  int
		cfg       TaxConfig
		expected  string
	}{
		{name: "igst example", unitPrice: "100", quantity: 2, cfg: TaxConfig{IGST: d("18")}, expected: "236"},
		{name: "cgst sgst example", unitPrice: "100", quantity: 1, cfg: TaxConfig{CGST: d("9"), SGST: d("9")}, expected: "118"},
		{name: "zero tax example", unitPrice: "50", quantity: 3, cfg: TaxConfig{}, expected: "150"},
		{name: "zero quantity is a zero total", unitPrice: "50", quantity: 0, cfg: TaxConfig{IGST: d("18")}, expected: "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Total(d(tt.unitPrice), tt.quantity, tt.cfg)
			assert.True(t, got.Equal(d(tt.expected)), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestTotalKeepsFullPrecisionUntilDisplay(t *testing.T) {
	// 33.33 * 3 with 18% IGST: no intermediate rounding, the exact
	// value survives until StringFixed is applied by the renderer.
	total := Total(d("33.33"), 3, TaxConfig{IGST: d("18")})
	assert.True(t, total.Equal(d("117.9882")), "got %s", total)
	assert.Equal(t, "117.99", total.StringFixed(2))
}
