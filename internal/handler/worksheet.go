package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/pricing"
	"github.com/motormate/garage-backend/internal/repository"
	"github.com/motormate/garage-backend/internal/stock"
	"github.com/motormate/garage-backend/internal/workflow"
)

// WorksheetHandler serves the work-in-progress sheet of a job card:
// the catalog snapshot with live availability, the selections replay
// on submit, and edits to previously committed usages.
type WorksheetHandler struct {
	Jobs   *repository.JobCardRepo
	Parts  *repository.PartRepo
	Usages *repository.UsageRepo
}

func NewWorksheetHandler(jobs *repository.JobCardRepo, parts *repository.PartRepo, usages *repository.UsageRepo) *WorksheetHandler {
	if jobs == nil || parts == nil || usages == nil {
		panic("nil repository passed to NewWorksheetHandler")
	}
	return &WorksheetHandler{Jobs: jobs, Parts: parts, Usages: usages}
}

// stockErrorKind maps the tracker's sentinel errors to the stable
// kind strings surfaced in 422 responses.
func stockErrorKind(err error) string {
	switch {
	case errors.Is(err, stock.ErrOutOfStock):
		return "OUT_OF_STOCK"
	case errors.Is(err, stock.ErrQuantityExceedsStock):
		return "QUANTITY_EXCEEDS_STOCK"
	case errors.Is(err, stock.ErrInvalidQuantity):
		return "INVALID_QUANTITY"
	case errors.Is(err, stock.ErrUnknownPart):
		return "UNKNOWN_PART"
	default:
		return "STOCK_ERROR"
	}
}

func (h *WorksheetHandler) loadJob(c echo.Context) (*model.JobCard, error) {
	job, err := h.Jobs.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return job, nil
}

func catalogOf(parts []model.InventoryPart) []stock.CatalogEntry {
	return lo.Map(parts, func(p model.InventoryPart, _ int) stock.CatalogEntry {
		return stock.CatalogEntry{
			PartID:    p.ID,
			Name:      p.Name,
			OnHand:    p.OnHandQuantity,
			UnitPrice: p.UnitPrice,
			Tax:       p.Tax(),
		}
	})
}

// catalogItem is one row of the worksheet catalog response.
type catalogItem struct {
	PartID     string          `json:"part_id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	CarName    string          `json:"car_name"`
	Model      string          `json:"model"`
	Available  int             `json:"available"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	UnitTotal  string          `json:"unit_total"` // price of one unit with tax, rounded for display
}

// GetWorksheet handles GET /v1/job-cards/:id/worksheet.  It returns
// the garage's catalog with per-part availability and the usages
// already committed by previous saves of this job.
func (h *WorksheetHandler) GetWorksheet(c echo.Context) error {
	job, err := h.loadJob(c)
	if job == nil {
		return err
	}
	ctx := c.Request().Context()
	parts, err := h.Parts.ListByGarage(ctx, job.GarageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	usages, err := h.Usages.ListByJob(ctx, job.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	tracker := stock.NewTracker(catalogOf(parts), nil)
	items := lo.Map(parts, func(p model.InventoryPart, _ int) catalogItem {
		unitTotal := pricingTotalOne(p)
		return catalogItem{
			PartID:     p.ID,
			Name:       p.Name,
			PartNumber: p.PartNumber,
			CarName:    p.CarName,
			Model:      p.Model,
			Available:  tracker.Available(p.ID),
			UnitPrice:  p.UnitPrice,
			UnitTotal:  unitTotal,
		}
	})

	return c.JSON(http.StatusOK, echo.Map{
		"job":      viewOf(job),
		"catalog":  items,
		"usages":   usages,
		"resolved": resolveStage(job),
	})
}

// worksheetReq is the submission payload: labor plus the new part
// selections picked in this session.  Quantities are explicit; the
// selection list is replayed through the stock tracker in order, so
// an oversell anywhere rejects the whole submission.
type worksheetReq struct {
	LaborHours float64 `json:"labor_hours"`
	LaborCost  string  `json:"labor_cost"`
	Selections []struct {
		PartID   string `json:"part_id"`
		Quantity int    `json:"quantity"`
	} `json:"selections"`
}

// SubmitWorksheet handles POST /v1/job-cards/:id/worksheet.  The
// submitted selections are validated against a fresh catalog snapshot
// via the stock tracker; any typed failure returns 422 with the kind
// and the offending part id and nothing is written.  On success the
// usage rows, the guarded stock decrements and the labor fields are
// committed in one transaction.
func (h *WorksheetHandler) SubmitWorksheet(c echo.Context) error {
	job, errResp := h.loadJob(c)
	if job == nil {
		return errResp
	}
	var body worksheetReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.LaborHours <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "labor_hours must be positive"})
	}
	laborCost, err := decimal.NewFromString(body.LaborCost)
	if err != nil || laborCost.IsNegative() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "labor_cost must be a non-negative decimal string"})
	}

	ctx := c.Request().Context()
	parts, err := h.Parts.ListByGarage(ctx, job.GarageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	existingRows, err := h.Usages.ListByJob(ctx, job.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	existing := lo.Map(existingRows, func(u model.PartUsage, _ int) stock.ExistingUsage {
		return stock.ExistingUsage{PartID: u.PartID, Quantity: u.Quantity}
	})

	tracker := stock.NewTracker(catalogOf(parts), existing)
	for _, sel := range body.Selections {
		if err := tracker.SetQuantity(sel.PartID, sel.Quantity); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":   "stock validation failed",
				"kind":    stockErrorKind(err),
				"part_id": sel.PartID,
			})
		}
	}
	plan := tracker.UsagePlan()

	before := workflow.Resolve(*job)

	tx, err := h.Jobs.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := h.Usages.CommitUsagesTx(ctx, tx, job.ID, plan); err != nil {
		if errors.Is(err, repository.ErrStockConflict) {
			// Another save drained the stock between our snapshot and
			// this commit.
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error": "stock validation failed",
				"kind":  "OUT_OF_STOCK",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit usages"})
	}
	if err := h.Jobs.SetLaborTx(ctx, tx, job.ID, body.LaborHours, laborCost); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record labor"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	job, err = h.Jobs.GetByID(ctx, job.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	after := workflow.Resolve(*job)
	publishStageAdvance(job, before, after)

	return c.JSON(http.StatusOK, echo.Map{
		"job":       viewOf(job),
		"committed": plan,
	})
}

// UpdateUsage handles PATCH /v1/job-cards/:id/usages/:usage_id.  A
// committed usage already owns its deducted stock, so the new quantity
// is not re-validated against the live catalog; tax and total are
// rescaled from the row's own snapshot.
func (h *WorksheetHandler) UpdateUsage(c echo.Context) error {
	job, errResp := h.loadJob(c)
	if job == nil {
		return errResp
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Quantity < 1 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "stock validation failed",
			"kind":  "INVALID_QUANTITY",
		})
	}

	ctx := c.Request().Context()
	u, err := h.Usages.GetByID(ctx, job.ID, c.Param("usage_id"))
	if err != nil {
		if err == repository.ErrUsageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part usage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	// Tax was computed linearly at commit time, so the per-unit share
	// divides out exactly.
	oldQty := decimal.NewFromInt(int64(u.Quantity))
	newQty := decimal.NewFromInt(int64(body.Quantity))
	taxAmount := u.TaxAmount.Div(oldQty).Mul(newQty)
	totalPrice := u.UnitPrice.Mul(newQty).Add(taxAmount)

	if err := h.Usages.UpdateQuantity(ctx, job.ID, u.ID, body.Quantity, taxAmount, totalPrice); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	u.Quantity = body.Quantity
	u.TaxAmount = taxAmount
	u.TotalPrice = totalPrice
	return c.JSON(http.StatusOK, u)
}

// pricingTotalOne renders the tax-inclusive price of a single unit,
// rounded to two decimals for display.
func pricingTotalOne(p model.InventoryPart) string {
	return pricing.Total(p.UnitPrice, 1, p.Tax()).StringFixed(2)
}
