package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/queue"
	"github.com/motormate/garage-backend/internal/repository"
	queue_publisher "github.com/motormate/garage-backend/internal/service"
	"github.com/motormate/garage-backend/internal/workflow"
)

// BillingHandler issues invoices for jobs the stage resolver reports
// as ready to bill.
type BillingHandler struct {
	Jobs     *repository.JobCardRepo
	Usages   *repository.UsageRepo
	Invoices *repository.InvoiceRepo
}

func NewBillingHandler(jobs *repository.JobCardRepo, usages *repository.UsageRepo, invoices *repository.InvoiceRepo) *BillingHandler {
	if jobs == nil || usages == nil || invoices == nil {
		panic("nil repository passed to NewBillingHandler")
	}
	return &BillingHandler{Jobs: jobs, Usages: usages, Invoices: invoices}
}

// IssueInvoice handles POST /v1/job-cards/:id/invoice.  A job that
// has not reached READY_TO_BILL is rejected with 409 carrying its
// current stage.
func (h *BillingHandler) IssueInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	job, err := h.Jobs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	res := workflow.Resolve(*job)
	if res.Stage != workflow.StageReadyToBill {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "job card is not ready to bill",
			"stage": string(res.Stage),
		})
	}

	partsTotal, taxTotal, err := h.Usages.TotalsForJob(ctx, job.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	laborCharge := decimal.Zero
	if job.LaborCost != nil {
		laborCharge = *job.LaborCost
	}
	// partsTotal already includes tax; taxTotal is reported alongside
	// for the GST breakup on the printed bill.
	inv := &model.Invoice{
		InvoiceNo:     repository.NewInvoiceNo(),
		JobCardID:     job.ID,
		LaborCharge:   laborCharge,
		PartsSubtotal: partsTotal.Sub(taxTotal),
		TaxTotal:      taxTotal,
		GrandTotal:    laborCharge.Add(partsTotal),
	}
	if err := h.Invoices.Create(ctx, inv); err != nil {
		if err == repository.ErrInvoiceExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "invoice already issued"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue invoice"})
	}

	ev := queue.InvoiceIssuedEvent{
		InvoiceID:      inv.ID,
		InvoiceNo:      inv.InvoiceNo,
		JobCardID:      job.ID,
		GarageID:       job.GarageID,
		CustomerName:   job.CustomerName,
		RegistrationNo: job.RegistrationNo,
		LaborCharge:    inv.LaborCharge.StringFixed(2),
		PartsSubtotal:  inv.PartsSubtotal.StringFixed(2),
		TaxTotal:       inv.TaxTotal.StringFixed(2),
		GrandTotal:     inv.GrandTotal.StringFixed(2),
		IssuedAt:       inv.IssuedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishInvoiceIssued(pubCtx, ev)
	}()

	return c.JSON(http.StatusCreated, inv)
}

// GetInvoice handles GET /v1/job-cards/:id/invoice.
func (h *BillingHandler) GetInvoice(c echo.Context) error {
	ctx := c.Request().Context()
	job, err := h.Jobs.GetByID(ctx, c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	inv, err := h.Invoices.GetByJob(ctx, job.ID)
	if err != nil {
		if err == repository.ErrInvoiceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invoice not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, inv)
}
