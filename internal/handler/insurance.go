package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/repository"
)

// InsuranceHandler serves insurance policies tracked per garage.
type InsuranceHandler struct {
	Insurances *repository.InsuranceRepo
	Garages    *repository.GarageRepo
	Jobs       *repository.JobCardRepo
}

func NewInsuranceHandler(insurances *repository.InsuranceRepo, garages *repository.GarageRepo, jobs *repository.JobCardRepo) *InsuranceHandler {
	if insurances == nil || garages == nil || jobs == nil {
		panic("nil repository passed to NewInsuranceHandler")
	}
	return &InsuranceHandler{Insurances: insurances, Garages: garages, Jobs: jobs}
}

type insuranceReq struct {
	JobCardID     string `json:"job_card_id"`
	Company       string `json:"company"`
	PolicyNumber  string `json:"policy_number"`
	CoveredAmount string `json:"covered_amount"`
	ExpiresAt     string `json:"expires_at"` // RFC 3339
}

func (h *InsuranceHandler) applyInsuranceReq(c echo.Context, ins *model.Insurance, body insuranceReq) (string, bool) {
	if company := strings.TrimSpace(body.Company); company != "" {
		ins.Company = company
	}
	if ins.Company == "" {
		return "company is required", false
	}
	if policy := strings.TrimSpace(body.PolicyNumber); policy != "" {
		ins.PolicyNumber = policy
	}
	if ins.PolicyNumber == "" {
		return "policy_number is required", false
	}
	if s := strings.TrimSpace(body.CoveredAmount); s != "" {
		amount, err := decimal.NewFromString(s)
		if err != nil || amount.IsNegative() {
			return "covered_amount must be a non-negative decimal string", false
		}
		ins.CoveredAmount = amount
	}
	if s := strings.TrimSpace(body.ExpiresAt); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return "expires_at must be RFC 3339", false
		}
		ins.ExpiresAt = t.UTC()
	}
	if ins.ExpiresAt.IsZero() {
		return "expires_at is required", false
	}
	if jobID := strings.TrimSpace(body.JobCardID); jobID != "" {
		job, err := h.Jobs.GetByID(c.Request().Context(), jobID)
		if err != nil || job.GarageID != ins.GarageID {
			return "unknown job card", false
		}
		ins.JobCardID = &jobID
	}
	return "", true
}

// CreateInsurance handles POST /v1/garages/:garage_id/insurances.
func (h *InsuranceHandler) CreateInsurance(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	var body insuranceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ins := &model.Insurance{GarageID: garageID}
	if msg, ok := h.applyInsuranceReq(c, ins, body); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Insurances.Create(c.Request().Context(), ins); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create insurance"})
	}
	return c.JSON(http.StatusCreated, ins)
}

// ListInsurances handles GET /v1/garages/:garage_id/insurances.
func (h *InsuranceHandler) ListInsurances(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	items, err := h.Insurances.ListByGarage(c.Request().Context(), garageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetInsurance handles GET /v1/garages/:garage_id/insurances/:id.
func (h *InsuranceHandler) GetInsurance(c echo.Context) error {
	ins, err := h.Insurances.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrInsuranceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, ins)
}

// UpdateInsurance handles PUT /v1/garages/:garage_id/insurances/:id.
func (h *InsuranceHandler) UpdateInsurance(c echo.Context) error {
	ins, err := h.Insurances.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrInsuranceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body insuranceReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := h.applyInsuranceReq(c, ins, body); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Insurances.Update(c.Request().Context(), ins); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, ins)
}

// DeleteInsurance handles DELETE /v1/garages/:garage_id/insurances/:id.
func (h *InsuranceHandler) DeleteInsurance(c echo.Context) error {
	if err := h.Insurances.Delete(c.Request().Context(), c.Param("garage_id"), c.Param("id")); err != nil {
		if err == repository.ErrInsuranceNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "insurance not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
