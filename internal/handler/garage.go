package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/repository"
)

// AdminHandler bundles repositories for the ADMIN surface: garage
// administration and user listing.
type AdminHandler struct {
	Garages *repository.GarageRepo
	Users   *repository.UserRepo
}

func NewAdminHandler(garages *repository.GarageRepo, users *repository.UserRepo) *AdminHandler {
	if garages == nil || users == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Garages: garages, Users: users}
}

type garageReq struct {
	Name string `json:"name"`
	City string `json:"city"`
}

// CreateGarage handles POST /v1/garages.
func (h *AdminHandler) CreateGarage(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body garageReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	g := &model.Garage{
		OwnerUserID: ownerID,
		Name:        name,
		City:        strings.TrimSpace(body.City),
	}
	if err := h.Garages.Create(c.Request().Context(), g); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create garage"})
	}
	return c.JSON(http.StatusCreated, g)
}

// ListGarages handles GET /v1/garages.  Both roles may read the list;
// advisors use it to pick the garage they are working in.
func (h *AdminHandler) ListGarages(c echo.Context) error {
	items, err := h.Garages.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetGarage handles GET /v1/garages/:garage_id.
func (h *AdminHandler) GetGarage(c echo.Context) error {
	g, err := h.Garages.GetByID(c.Request().Context(), c.Param("garage_id"))
	if err != nil {
		if err == repository.ErrGarageNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, g)
}

// UpdateGarage handles PUT /v1/garages/:garage_id.  Only the owning
// admin may update.
func (h *AdminHandler) UpdateGarage(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body garageReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.Name)
	if name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	id := c.Param("garage_id")
	if err := h.Garages.Update(c.Request().Context(), id, ownerID, name, strings.TrimSpace(body.City)); err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "garage belongs to another admin"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	updated, err := h.Garages.GetByID(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteGarage handles DELETE /v1/garages/:garage_id.
func (h *AdminHandler) DeleteGarage(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Garages.Delete(c.Request().Context(), c.Param("garage_id"), ownerID); err != nil {
		if err == repository.ErrForbidden {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "garage belongs to another admin"})
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUsers handles GET /v1/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := make([]userPart, 0, len(users))
	for _, u := range users {
		items = append(items, userPart{ID: u.ID, Email: u.Email, Role: u.Role})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
