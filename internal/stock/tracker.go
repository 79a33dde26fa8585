package stock

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/pricing"
)

// CatalogEntry is the tracker's read-only view of one inventory part:
// the last-fetched on-hand quantity plus the pricing fields that get
// denormalized into a selection.  The tracker never mutates on-hand
// stock; the authoritative decrement happens in the usage-commit
// transaction at save time.
type CatalogEntry struct {
	PartID    string
	Name      string
	OnHand    int
	UnitPrice decimal.Decimal
	Tax       pricing.TaxConfig
}

// Selection is an in-progress, not-yet-committed choice of a catalog
// part.  UnitPrice and Tax are copied from the catalog at selection
// time so pricing stays stable even if the catalog is refetched while
// the worksheet is open.
type Selection struct {
	PartID    string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Tax       pricing.TaxConfig
}

// ExistingUsage is a part already committed on a previous save of the
// same job.  Its stock was deducted when it was committed, so it does
// not compete for availability, and edits to its quantity are not
// re-validated against the live catalog.
type ExistingUsage struct {
	PartID   string
	Quantity int
}

// UsageLine is one row of the tuple list handed to the persistence
// layer when the worksheet is saved.
type UsageLine struct {
	PartID     string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal
	TaxAmount  decimal.Decimal
	TotalPrice decimal.Decimal
}

// Tracker owns the selection set for one open worksheet.  Selections
// are keyed by part id (set semantics): selecting an already-selected
// part merges into the existing entry instead of appending a
// duplicate.  Every mutation validates against the recomputed
// availability before writing, so a failed call leaves the tracker
// untouched.
type Tracker struct {
	catalog    map[string]CatalogEntry
	selections map[string]*Selection
	order      []string // part ids in first-selection order, for stable rendering
	existing   []ExistingUsage
}

// NewTracker builds a tracker over a catalog snapshot and the usages
// already committed by previous saves of the job.
func NewTracker(catalog []CatalogEntry, existing []ExistingUsage) *Tracker {
	return &Tracker{
		catalog:    lo.KeyBy(catalog, func(e CatalogEntry) string { return e.PartID }),
		selections: make(map[string]*Selection),
		existing:   append([]ExistingUsage(nil), existing...),
	}
}

// Available returns the on-hand quantity of the part minus the
// quantity currently selected for it.  Unknown parts report zero, and
// the result is clamped at zero defensively.  Availability is always
// recomputed from the catalog and the live selection set — it is
// never cached — so repeated selections of the same part cannot drift
// past the ceiling.
func (t *Tracker) Available(partID string) int {
	entry, ok := t.catalog[partID]
	if !ok {
		return 0
	}
	avail := entry.OnHand
	if sel, ok := t.selections[partID]; ok {
		avail -= sel.Quantity
	}
	if avail < 0 {
		avail = 0
	}
	return avail
}

// Select adds the part with quantity 1, or increments an existing
// selection by 1.  It fails with ErrOutOfStock when the part is not
// yet selected and nothing is available, and with
// ErrQuantityExceedsStock when an increment would exceed on-hand
// stock.
func (t *Tracker) Select(partID string) error {
	entry, ok := t.catalog[partID]
	if !ok {
		return ErrUnknownPart
	}
	if sel, ok := t.selections[partID]; ok {
		if sel.Quantity+1 > t.Available(partID)+sel.Quantity {
			return ErrQuantityExceedsStock
		}
		sel.Quantity++
		return nil
	}
	if t.Available(partID) < 1 {
		return ErrOutOfStock
	}
	t.selections[partID] = &Selection{
		PartID:    partID,
		Name:      entry.Name,
		Quantity:  1,
		UnitPrice: entry.UnitPrice,
		Tax:       entry.Tax,
	}
	t.order = append(t.order, partID)
	return nil
}

// SetQuantity sets the selection to an explicit quantity, creating
// the selection when the part was not yet picked.  The new quantity
// must be at least 1 and must fit within availability plus whatever
// this selection already holds.
func (t *Tracker) SetQuantity(partID string, quantity int) error {
	entry, ok := t.catalog[partID]
	if !ok {
		return ErrUnknownPart
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	current := 0
	if sel, ok := t.selections[partID]; ok {
		current = sel.Quantity
	}
	if quantity > t.Available(partID)+current {
		return ErrQuantityExceedsStock
	}
	if sel, ok := t.selections[partID]; ok {
		sel.Quantity = quantity
		return nil
	}
	t.selections[partID] = &Selection{
		PartID:    partID,
		Name:      entry.Name,
		Quantity:  quantity,
		UnitPrice: entry.UnitPrice,
		Tax:       entry.Tax,
	}
	t.order = append(t.order, partID)
	return nil
}

// Remove deletes the selection for the part.  Removing a part that
// was never selected is a no-op; availability frees up implicitly
// because it is computed, not stored.
func (t *Tracker) Remove(partID string) {
	if _, ok := t.selections[partID]; !ok {
		return
	}
	delete(t.selections, partID)
	t.order = lo.Without(t.order, partID)
}

// Selection returns the current selection for the part, if any.
func (t *Tracker) Selection(partID string) (Selection, bool) {
	sel, ok := t.selections[partID]
	if !ok {
		return Selection{}, false
	}
	return *sel, true
}

// Selections returns every current selection in first-selection
// order.
func (t *Tracker) Selections() []Selection {
	return lo.Map(t.order, func(id string, _ int) Selection {
		return *t.selections[id]
	})
}

// SelectionTotal returns the line total (base plus combined tax) for
// the part's selection using its denormalized price and tax snapshot.
// A part with no selection totals zero.
func (t *Tracker) SelectionTotal(partID string) decimal.Decimal {
	sel, ok := t.selections[partID]
	if !ok {
		return decimal.Zero
	}
	return pricing.Total(sel.UnitPrice, sel.Quantity, sel.Tax)
}

// UsagePlan converts the selection set into the tuple list the job
// persistence endpoint expects.  Only new selections appear here;
// existing usages were committed by a previous save.
func (t *Tracker) UsagePlan() []UsageLine {
	return lo.Map(t.Selections(), func(sel Selection, _ int) UsageLine {
		return UsageLine{
			PartID:     sel.PartID,
			Name:       sel.Name,
			Quantity:   sel.Quantity,
			UnitPrice:  sel.UnitPrice,
			TaxAmount:  pricing.CombinedTax(sel.UnitPrice, sel.Quantity, sel.Tax),
			TotalPrice: pricing.Total(sel.UnitPrice, sel.Quantity, sel.Tax),
		}
	})
}

// ExistingUsages returns the usages committed by previous saves, for
// rendering alongside the new selections.
func (t *Tracker) ExistingUsages() []ExistingUsage {
	return append([]ExistingUsage(nil), t.existing...)
}

// SetExistingQuantity edits the quantity of a previously committed
// usage.  Existing usage already owns its stock, so the edit is not
// checked against the live catalog; only positivity is enforced.
func (t *Tracker) SetExistingQuantity(partID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range t.existing {
		if t.existing[i].PartID == partID {
			t.existing[i].Quantity = quantity
			return nil
		}
	}
	return ErrUnknownPart
}

// RefreshCatalog replaces the catalog snapshot and reconciles the
// selection set against it: a selection whose part vanished is
// dropped, a selection whose quantity now exceeds the new on-hand
// stock is clamped down to it (or dropped when nothing is left).
// Denormalized prices on surviving selections are kept as-is.  The
// ids of dropped or clamped selections are returned so the caller can
// surface what changed.
func (t *Tracker) RefreshCatalog(catalog []CatalogEntry) []string {
	t.catalog = lo.KeyBy(catalog, func(e CatalogEntry) string { return e.PartID })
	var adjusted []string
	for _, id := range append([]string(nil), t.order...) {
		sel := t.selections[id]
		entry, ok := t.catalog[id]
		if !ok || entry.OnHand < 1 {
			t.Remove(id)
			adjusted = append(adjusted, id)
			continue
		}
		if sel.Quantity > entry.OnHand {
			sel.Quantity = entry.OnHand
			adjusted = append(adjusted, id)
		}
	}
	return adjusted
}
