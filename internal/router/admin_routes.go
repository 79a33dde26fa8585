package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/handler"
	"github.com/motormate/garage-backend/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1.
// All routes require a valid JWT and ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Garages ----
	g.POST("/garages", a.CreateGarage)
	g.PUT("/garages/:garage_id", a.UpdateGarage)
	g.PATCH("/garages/:garage_id", a.UpdateGarage)
	g.DELETE("/garages/:garage_id", a.DeleteGarage)

	// ---- Users ----
	g.GET("/users", a.ListUsers)

	// Garage reads are shared with advisors, who need the list to pick
	// the garage they are working in.
	shared := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "ADVISOR"),
	)
	shared.GET("/garages", a.ListGarages)
	shared.GET("/garages/:garage_id", a.GetGarage)
}
