package router // router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/handler"
	"github.com/motormate/garage-backend/internal/middleware"
)

// AdvisorHandlers groups the handlers wired into the advisor surface.
type AdvisorHandlers struct {
	Engineers *handler.EngineerHandler
	JobCards  *handler.JobCardHandler
	Worksheet *handler.WorksheetHandler
	Inventory *handler.InventoryHandler
	Insurance *handler.InsuranceHandler
	Billing   *handler.BillingHandler
}

// RegisterAdvisor registers the day-to-day garage endpoints under /v1.
// Admins can use them too; the role gate accepts both roles.
func RegisterAdvisor(e *echo.Echo, h AdvisorHandlers, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN", "ADVISOR"),
	)

	// ---- Engineers ----
	g.POST("/garages/:garage_id/engineers", h.Engineers.CreateEngineer)
	g.GET("/garages/:garage_id/engineers", h.Engineers.ListEngineers)
	g.GET("/garages/:garage_id/engineers/:id", h.Engineers.GetEngineer)
	g.PUT("/garages/:garage_id/engineers/:id", h.Engineers.UpdateEngineer)
	g.PATCH("/garages/:garage_id/engineers/:id", h.Engineers.UpdateEngineer)
	g.DELETE("/garages/:garage_id/engineers/:id", h.Engineers.DeleteEngineer)

	// ---- Job cards ----
	g.POST("/garages/:garage_id/job-cards", h.JobCards.CreateJobCard)
	g.GET("/garages/:garage_id/job-cards", h.JobCards.ListJobCards)
	g.GET("/job-cards/:id", h.JobCards.GetJobCard)
	g.POST("/job-cards/:id/engineers", h.JobCards.AssignEngineers)
	g.POST("/job-cards/:id/quality-check", h.JobCards.RecordQualityCheck)

	// ---- Worksheet ----
	g.GET("/job-cards/:id/worksheet", h.Worksheet.GetWorksheet)
	g.POST("/job-cards/:id/worksheet", h.Worksheet.SubmitWorksheet)
	g.PATCH("/job-cards/:id/usages/:usage_id", h.Worksheet.UpdateUsage)

	// ---- Inventory ----
	g.POST("/garages/:garage_id/parts", h.Inventory.CreatePart)
	g.GET("/garages/:garage_id/parts", h.Inventory.ListParts)
	g.GET("/garages/:garage_id/parts/:id", h.Inventory.GetPart)
	g.PUT("/garages/:garage_id/parts/:id", h.Inventory.UpdatePart)
	g.PATCH("/garages/:garage_id/parts/:id", h.Inventory.UpdatePart)
	g.DELETE("/garages/:garage_id/parts/:id", h.Inventory.DeletePart)

	// ---- Insurances ----
	g.POST("/garages/:garage_id/insurances", h.Insurance.CreateInsurance)
	g.GET("/garages/:garage_id/insurances", h.Insurance.ListInsurances)
	g.GET("/garages/:garage_id/insurances/:id", h.Insurance.GetInsurance)
	g.PUT("/garages/:garage_id/insurances/:id", h.Insurance.UpdateInsurance)
	g.PATCH("/garages/:garage_id/insurances/:id", h.Insurance.UpdateInsurance)
	g.DELETE("/garages/:garage_id/insurances/:id", h.Insurance.DeleteInsurance)

	// ---- Billing ----
	g.POST("/job-cards/:id/invoice", h.Billing.IssueInvoice)
	g.GET("/job-cards/:id/invoice", h.Billing.GetInvoice)
}
