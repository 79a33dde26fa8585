package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/repository"
)

// EngineerHandler serves the engineer roster of a garage.
type EngineerHandler struct {
	Engineers *repository.EngineerRepo
	Garages   *repository.GarageRepo
}

func NewEngineerHandler(engineers *repository.EngineerRepo, garages *repository.GarageRepo) *EngineerHandler {
	if engineers == nil || garages == nil {
		panic("nil repository passed to NewEngineerHandler")
	}
	return &EngineerHandler{Engineers: engineers, Garages: garages}
}

// engineerReq accepts the aliased field names historically sent by
// clients: phone/contact and specialty/specialization.  Aliases are
// folded into the canonical fields here so the rest of the system
// never sees them.
type engineerReq struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Contact        string `json:"contact"`
	Specialty      string `json:"specialty"`
	Specialization string `json:"specialization"`
	IsActive       *bool  `json:"is_active"`
}

func (r engineerReq) phone() string {
	if p := strings.TrimSpace(r.Phone); p != "" {
		return p
	}
	return strings.TrimSpace(r.Contact)
}

func (r engineerReq) specialty() string {
	if s := strings.TrimSpace(r.Specialty); s != "" {
		return s
	}
	return strings.TrimSpace(r.Specialization)
}

func (h *EngineerHandler) garageExists(c echo.Context) (string, error) {
	garageID := c.Param("garage_id")
	_, err := h.Garages.GetByID(c.Request().Context(), garageID)
	return garageID, err
}

// CreateEngineer handles POST /v1/garages/:garage_id/engineers.
func (h *EngineerHandler) CreateEngineer(c echo.Context) error {
	garageID, err := h.garageExists(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	var body engineerReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	active := true
	if body.IsActive != nil {
		active = *body.IsActive
	}
	e := &model.Engineer{
		GarageID:  garageID,
		Name:      name,
		Phone:     body.phone(),
		Specialty: body.specialty(),
		IsActive:  active,
	}
	if err := h.Engineers.Create(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create engineer"})
	}
	return c.JSON(http.StatusCreated, e)
}

// ListEngineers handles GET /v1/garages/:garage_id/engineers.  Pass
// ?active=true to restrict to engineers assignable to new jobs.
func (h *EngineerHandler) ListEngineers(c echo.Context) error {
	garageID, err := h.garageExists(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	activeOnly := strings.EqualFold(c.QueryParam("active"), "true")
	items, err := h.Engineers.ListByGarage(c.Request().Context(), garageID, activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetEngineer handles GET /v1/garages/:garage_id/engineers/:id.
func (h *EngineerHandler) GetEngineer(c echo.Context) error {
	e, err := h.Engineers.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrEngineerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "engineer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, e)
}

// UpdateEngineer handles PUT /v1/garages/:garage_id/engineers/:id.
func (h *EngineerHandler) UpdateEngineer(c echo.Context) error {
	e, err := h.Engineers.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrEngineerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "engineer not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body engineerReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if name := strings.TrimSpace(body.Name); name != "" {
		e.Name = name
	}
	if p := body.phone(); p != "" {
		e.Phone = p
	}
	if s := body.specialty(); s != "" {
		e.Specialty = s
	}
	if body.IsActive != nil {
		e.IsActive = *body.IsActive
	}
	if err := h.Engineers.Update(c.Request().Context(), e); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, e)
}

// DeleteEngineer handles DELETE /v1/garages/:garage_id/engineers/:id.
// An engineer still assigned to job cards cannot be removed.
func (h *EngineerHandler) DeleteEngineer(c echo.Context) error {
	err := h.Engineers.Delete(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrEngineerNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "engineer not found"})
		}
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "engineer is assigned to job cards"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
