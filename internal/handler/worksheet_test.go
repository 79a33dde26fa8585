package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/stock"
)

func TestStockErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{stock.ErrOutOfStock, "OUT_OF_STOCK"},
		{stock.ErrQuantityExceedsStock, "QUANTITY_EXCEEDS_STOCK"},
		{stock.ErrInvalidQuantity, "INVALID_QUANTITY"},
		{stock.ErrUnknownPart, "UNKNOWN_PART"},
		{fmt.Errorf("wrapped: %w", stock.ErrOutOfStock), "OUT_OF_STOCK"},
		{errors.New("boom"), "STOCK_ERROR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stockErrorKind(tt.err))
	}
}

func TestCatalogOf(t *testing.T) {
	igst := decimal.NewFromInt(18)
	parts := []model.InventoryPart{
		{
			ID:             "p1",
			Name:           "Brake Pad",
			OnHandQuantity: 4,
			UnitPrice:      decimal.NewFromInt(100),
			IGST:           &igst,
		},
		{
			ID:             "p2",
			Name:           "Wiper Blade",
			OnHandQuantity: 0,
			UnitPrice:      decimal.NewFromInt(50),
		},
	}

	entries := catalogOf(parts)
	assert.Len(t, entries, 2)
	assert.Equal(t, "p1", entries[0].PartID)
	assert.Equal(t, 4, entries[0].OnHand)
	assert.True(t, entries[0].Tax.Interstate())
	assert.False(t, entries[1].Tax.Interstate())
	assert.Equal(t, 0, entries[1].OnHand)
}

func TestPricingTotalOne(t *testing.T) {
	igst := decimal.NewFromInt(18)
	p := model.InventoryPart{
		UnitPrice: decimal.NewFromInt(100),
		IGST:      &igst,
	}
	assert.Equal(t, "118.00", pricingTotalOne(p))

	plain := model.InventoryPart{UnitPrice: decimal.NewFromFloat(49.99)}
	assert.Equal(t, "49.99", pricingTotalOne(plain))
}
