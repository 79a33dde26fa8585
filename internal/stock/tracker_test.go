package stock

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motormate/garage-backend/internal/pricing"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func catalog() []CatalogEntry {
	return []CatalogEntry{
		{PartID: "p1", Name: "Brake Pad", OnHand: 2, UnitPrice: d("100"), Tax: pricing.TaxConfig{IGST: d("18")}},
		{PartID: "p2", Name: "Oil Filter", OnHand: 5, UnitPrice: d("50"), Tax: pricing.TaxConfig{CGST: d("9"), SGST: d("9")}},
		{PartID: "p3", Name: "Wiper Blade", OnHand: 0, UnitPrice: d("30"), Tax: pricing.TaxConfig{}},
	}
}

func TestSelectNeverOversells(t *testing.T) {
	tr := NewTracker(catalog(), nil)

	require.NoError(t, tr.Select("p1"))
	sel, ok := tr.Selection("p1")
	require.True(t, ok)
	assert.Equal(t, 1, sel.Quantity)
	assert.Equal(t, 1, tr.Available("p1"))

	require.NoError(t, tr.Select("p1"))
	sel, _ = tr.Selection("p1")
	assert.Equal(t, 2, sel.Quantity)
	assert.Equal(t, 0, tr.Available("p1"))

	// Third select must fail and leave the quantity untouched.
	err := tr.Select("p1")
	assert.ErrorIs(t, err, ErrQuantityExceedsStock)
	sel, _ = tr.Selection("p1")
	assert.Equal(t, 2, sel.Quantity)
}

func TestSelectOutOfStock(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	err := tr.Select("p3")
	assert.ErrorIs(t, err, ErrOutOfStock)
	_, ok := tr.Selection("p3")
	assert.False(t, ok)
}

func TestSelectUnknownPart(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	assert.ErrorIs(t, tr.Select("nope"), ErrUnknownPart)
	assert.Equal(t, 0, tr.Available("nope"))
}

func TestDuplicateSelectionMergesNotDuplicates(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.Select("p2"))
	require.NoError(t, tr.Select("p2"))
	sels := tr.Selections()
	require.Len(t, sels, 1)
	assert.Equal(t, "p2", sels[0].PartID)
	assert.Equal(t, 2, sels[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	tests := []struct {
		name     string
		partID   string
		quantity int
		wantErr  error
	}{
		{name: "within stock", partID: "p2", quantity: 5},
		{name: "exceeds stock", partID: "p2", quantity: 6, wantErr: ErrQuantityExceedsStock},
		{name: "zero is invalid", partID: "p2", quantity: 0, wantErr: ErrInvalidQuantity},
		{name: "negative is invalid", partID: "p2", quantity: -3, wantErr: ErrInvalidQuantity},
		{name: "unknown part", partID: "ghost", quantity: 1, wantErr: ErrUnknownPart},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker(catalog(), nil)
			err := tr.SetQuantity(tt.partID, tt.quantity)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				_, ok := tr.Selection(tt.partID)
				assert.False(t, ok, "failed call must not create a selection")
				return
			}
			require.NoError(t, err)
			sel, ok := tr.Selection(tt.partID)
			require.True(t, ok)
			assert.Equal(t, tt.quantity, sel.Quantity)
		})
	}
}

func TestSetQuantityOnExistingSelectionCountsOwnShare(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.Select("p1"))
	require.NoError(t, tr.Select("p1"))
	// Already holding 2 of 2; setting back to 2 is allowed, 3 is not.
	require.NoError(t, tr.SetQuantity("p1", 2))
	assert.ErrorIs(t, tr.SetQuantity("p1", 3), ErrQuantityExceedsStock)
	sel, _ := tr.Selection("p1")
	assert.Equal(t, 2, sel.Quantity)
}

func TestRemoveRestoresAvailability(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	before := tr.Available("p2")
	require.NoError(t, tr.SetQuantity("p2", 3))
	assert.Equal(t, before-3, tr.Available("p2"))
	tr.Remove("p2")
	assert.Equal(t, before, tr.Available("p2"))
	assert.Empty(t, tr.Selections())
}

func TestRemoveIsIdempotent(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	avail := tr.Available("p1")
	tr.Remove("p1") // never selected
	tr.Remove("p1")
	assert.Equal(t, avail, tr.Available("p1"))
}

func TestSelectionTotalUsesDenormalizedSnapshot(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.Select("p1"))
	require.NoError(t, tr.Select("p1"))
	// 100 * 2 plus 18% IGST.
	assert.True(t, tr.SelectionTotal("p1").Equal(d("236")))

	// A catalog refresh with a new price must not change the total of
	// the surviving selection.
	tr.RefreshCatalog([]CatalogEntry{
		{PartID: "p1", Name: "Brake Pad", OnHand: 2, UnitPrice: d("999"), Tax: pricing.TaxConfig{IGST: d("18")}},
	})
	assert.True(t, tr.SelectionTotal("p1").Equal(d("236")))
}

func TestSelectionTotalWithoutSelectionIsZero(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	assert.True(t, tr.SelectionTotal("p1").IsZero())
}

func TestUsagePlan(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.SetQuantity("p1", 2))
	require.NoError(t, tr.Select("p2"))

	plan := tr.UsagePlan()
	require.Len(t, plan, 2)

	assert.Equal(t, "p1", plan[0].PartID)
	assert.Equal(t, 2, plan[0].Quantity)
	assert.True(t, plan[0].TaxAmount.Equal(d("36")))
	assert.True(t, plan[0].TotalPrice.Equal(d("236")))

	assert.Equal(t, "p2", plan[1].PartID)
	assert.Equal(t, 1, plan[1].Quantity)
	assert.True(t, plan[1].TaxAmount.Equal(d("9")))
	assert.True(t, plan[1].TotalPrice.Equal(d("59")))
}

func TestRefreshCatalogClampsAndDrops(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.SetQuantity("p1", 2))
	require.NoError(t, tr.SetQuantity("p2", 4))

	adjusted := tr.RefreshCatalog([]CatalogEntry{
		// p1 gone from the catalog entirely.
		{PartID: "p2", Name: "Oil Filter", OnHand: 3, UnitPrice: d("50"), Tax: pricing.TaxConfig{CGST: d("9"), SGST: d("9")}},
	})
	assert.ElementsMatch(t, []string{"p1", "p2"}, adjusted)

	_, ok := tr.Selection("p1")
	assert.False(t, ok, "vanished part must be dropped")

	sel, ok := tr.Selection("p2")
	require.True(t, ok)
	assert.Equal(t, 3, sel.Quantity, "selection must be clamped to new on-hand")
	assert.Equal(t, 0, tr.Available("p2"))
}

func TestRefreshCatalogDropsWhenNothingLeft(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	require.NoError(t, tr.Select("p1"))
	adjusted := tr.RefreshCatalog([]CatalogEntry{
		{PartID: "p1", Name: "Brake Pad", OnHand: 0, UnitPrice: d("100"), Tax: pricing.TaxConfig{IGST: d("18")}},
	})
	assert.Equal(t, []string{"p1"}, adjusted)
	assert.Empty(t, tr.Selections())
}

func TestExistingUsageDoesNotCompeteForStock(t *testing.T) {
	tr := NewTracker(catalog(), []ExistingUsage{{PartID: "p1", Quantity: 2}})
	// Existing usage already owns its deducted stock; the full on-hand
	// figure is still selectable.
	assert.Equal(t, 2, tr.Available("p1"))
	require.NoError(t, tr.SetQuantity("p1", 2))

	// Edits to existing usage skip stock validation entirely.
	require.NoError(t, tr.SetExistingQuantity("p1", 99))
	assert.ErrorIs(t, tr.SetExistingQuantity("p1", 0), ErrInvalidQuantity)
	assert.ErrorIs(t, tr.SetExistingQuantity("ghost", 1), ErrUnknownPart)

	got := tr.ExistingUsages()
	require.Len(t, got, 1)
	assert.Equal(t, 99, got[0].Quantity)
}

// Replays a mixed call sequence and asserts the core invariant after
// every step: selected quantity never exceeds on-hand stock.
func TestStockInvariantUnderSequences(t *testing.T) {
	tr := NewTracker(catalog(), nil)
	steps := []func() error{
		func() error { return tr.Select("p1") },
		func() error { return tr.Select("p1") },
		func() error { return tr.Select("p1") }, // fails
		func() error { return tr.SetQuantity("p2", 5) },
		func() error { return tr.SetQuantity("p2", 6) }, // fails
		func() error { tr.Remove("p1"); return nil },
		func() error { return tr.SetQuantity("p1", 2) },
		func() error { return tr.Select("p2") }, // fails, p2 full
	}
	onHand := map[string]int{"p1": 2, "p2": 5, "p3": 0}
	for i, step := range steps {
		_ = step()
		for _, sel := range tr.Selections() {
			assert.LessOrEqual(t, sel.Quantity, onHand[sel.PartID], "step %d violated the stock invariant for %s", i, sel.PartID)
		}
	}
}
