package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/repository"
)

// InventoryHandler serves the per-garage parts catalog.
type InventoryHandler struct {
	Parts   *repository.PartRepo
	Garages *repository.GarageRepo
}

func NewInventoryHandler(parts *repository.PartRepo, garages *repository.GarageRepo) *InventoryHandler {
	if parts == nil || garages == nil {
		panic("nil repository passed to NewInventoryHandler")
	}
	return &InventoryHandler{Parts: parts, Garages: garages}
}

// partReq carries catalog fields.  Money and percentage fields arrive
// as strings so no precision is lost to float JSON numbers.
type partReq struct {
	Name           string  `json:"name"`
	PartNumber     string  `json:"part_number"`
	CarName        string  `json:"car_name"`
	Model          string  `json:"model"`
	OnHandQuantity *int    `json:"on_hand_quantity"`
	UnitPrice      string  `json:"unit_price"`
	IGST           *string `json:"igst"`
	CGST           *string `json:"cgst"`
	SGST           *string `json:"sgst"`
}

func parseRate(s *string) (*decimal.Decimal, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*s))
	if err != nil || d.IsNegative() {
		return nil, false
	}
	return &d, true
}

func (h *InventoryHandler) applyPartReq(p *model.InventoryPart, body partReq, create bool) (string, bool) {
	if name := strings.TrimSpace(body.Name); name != "" {
		p.Name = name
	} else if create {
		return "name is required", false
	}
	if v := strings.TrimSpace(body.PartNumber); v != "" || create {
		p.PartNumber = v
	}
	if v := strings.TrimSpace(body.CarName); v != "" || create {
		p.CarName = v
	}
	if v := strings.TrimSpace(body.Model); v != "" || create {
		p.Model = v
	}
	if body.OnHandQuantity != nil {
		if *body.OnHandQuantity < 0 {
			return "on_hand_quantity must be non-negative", false
		}
		p.OnHandQuantity = *body.OnHandQuantity
	}
	if strings.TrimSpace(body.UnitPrice) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(body.UnitPrice))
		if err != nil || price.IsNegative() {
			return "unit_price must be a non-negative decimal string", false
		}
		p.UnitPrice = price
	} else if create {
		return "unit_price is required", false
	}
	// An omitted rate keeps its stored value; an explicit empty string
	// clears it.
	var ok bool
	if body.IGST != nil || create {
		if p.IGST, ok = parseRate(body.IGST); !ok {
			return "igst must be a non-negative decimal string", false
		}
	}
	if body.CGST != nil || create {
		if p.CGST, ok = parseRate(body.CGST); !ok {
			return "cgst must be a non-negative decimal string", false
		}
	}
	if body.SGST != nil || create {
		if p.SGST, ok = parseRate(body.SGST); !ok {
			return "sgst must be a non-negative decimal string", false
		}
	}
	return "", true
}

// CreatePart handles POST /v1/garages/:garage_id/parts.
func (h *InventoryHandler) CreatePart(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	var body partReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	p := &model.InventoryPart{GarageID: garageID}
	if msg, ok := h.applyPartReq(p, body, true); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Parts.Create(c.Request().Context(), p); err != nil {
		if err == repository.ErrPartNumberExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "part number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create part"})
	}
	return c.JSON(http.StatusCreated, p)
}

// ListParts handles GET /v1/garages/:garage_id/parts.
func (h *InventoryHandler) ListParts(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	items, err := h.Parts.ListByGarage(c.Request().Context(), garageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetPart handles GET /v1/garages/:garage_id/parts/:id.
func (h *InventoryHandler) GetPart(c echo.Context) error {
	p, err := h.Parts.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrPartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}

// UpdatePart handles PUT /v1/garages/:garage_id/parts/:id.  Setting
// on_hand_quantity here is the restock path.
func (h *InventoryHandler) UpdatePart(c echo.Context) error {
	p, err := h.Parts.GetByID(c.Request().Context(), c.Param("garage_id"), c.Param("id"))
	if err != nil {
		if err == repository.ErrPartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body partReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if msg, ok := h.applyPartReq(p, body, false); !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}
	if err := h.Parts.Update(c.Request().Context(), p); err != nil {
		if err == repository.ErrPartNumberExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "part number already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, p)
}

// DeletePart handles DELETE /v1/garages/:garage_id/parts/:id.
func (h *InventoryHandler) DeletePart(c echo.Context) error {
	if err := h.Parts.Delete(c.Request().Context(), c.Param("garage_id"), c.Param("id")); err != nil {
		if err == repository.ErrPartNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "part not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
