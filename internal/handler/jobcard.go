package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/repository"
	"github.com/motormate/garage-backend/internal/workflow"
)

// JobCardHandler serves job-card creation, listing and the two stage
// transitions that do not go through the worksheet: assigning
// engineers and recording the quality check.  Every response embeds
// the resolved stage so clients never compute it themselves.
type JobCardHandler struct {
	Jobs      *repository.JobCardRepo
	Garages   *repository.GarageRepo
	Engineers *repository.EngineerRepo
}

func NewJobCardHandler(jobs *repository.JobCardRepo, garages *repository.GarageRepo, engineers *repository.EngineerRepo) *JobCardHandler {
	if jobs == nil || garages == nil || engineers == nil {
		panic("nil repository passed to NewJobCardHandler")
	}
	return &JobCardHandler{Jobs: jobs, Garages: garages, Engineers: engineers}
}

// jobCardView wraps a job card with its resolved stage.
type jobCardView struct {
	*model.JobCard
	Resolved stageView `json:"resolved"`
}

func viewOf(job *model.JobCard) jobCardView {
	return jobCardView{JobCard: job, Resolved: resolveStage(job)}
}

// CreateJobCard handles POST /v1/garages/:garage_id/job-cards.
func (h *JobCardHandler) CreateJobCard(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	var body struct {
		CustomerName   string `json:"customer_name"`
		CustomerPhone  string `json:"customer_phone"`
		VehicleModel   string `json:"vehicle_model"`
		RegistrationNo string `json:"registration_no"`
		Complaint      string `json:"complaint"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	name := strings.TrimSpace(body.CustomerName)
	reg := strings.TrimSpace(body.RegistrationNo)
	if name == "" || reg == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_name and registration_no are required"})
	}
	job := &model.JobCard{
		GarageID:       garageID,
		CustomerName:   name,
		CustomerPhone:  strings.TrimSpace(body.CustomerPhone),
		VehicleModel:   strings.TrimSpace(body.VehicleModel),
		RegistrationNo: reg,
		Complaint:      strings.TrimSpace(body.Complaint),
	}
	if err := h.Jobs.Create(c.Request().Context(), job); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create job card"})
	}
	return c.JSON(http.StatusCreated, viewOf(job))
}

// ListJobCards handles GET /v1/garages/:garage_id/job-cards.
func (h *JobCardHandler) ListJobCards(c echo.Context) error {
	garageID := c.Param("garage_id")
	if _, err := h.Garages.GetByID(c.Request().Context(), garageID); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "garage not found"})
	}
	jobs, err := h.Jobs.ListByGarage(c.Request().Context(), garageID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	items := lo.Map(jobs, func(j *model.JobCard, _ int) jobCardView { return viewOf(j) })
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// GetJobCard handles GET /v1/job-cards/:id.
func (h *JobCardHandler) GetJobCard(c echo.Context) error {
	job, err := h.Jobs.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, viewOf(job))
}

// AssignEngineers handles POST /v1/job-cards/:id/engineers.  The body
// carries the full ordered list of engineer ids; the previous list is
// replaced.  Every id must belong to an active engineer of the job's
// garage.
func (h *JobCardHandler) AssignEngineers(c echo.Context) error {
	job, err := h.Jobs.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body struct {
		EngineerIDs []string `json:"engineer_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ids := lo.Uniq(lo.Filter(body.EngineerIDs, func(id string, _ int) bool {
		return strings.TrimSpace(id) != ""
	}))
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "engineer_ids is required"})
	}

	ctx := c.Request().Context()
	for _, id := range ids {
		eng, err := h.Engineers.GetByID(ctx, job.GarageID, id)
		if err != nil {
			if err == repository.ErrEngineerNotFound {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown engineer", "engineer_id": id})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		if !eng.IsActive {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "engineer is inactive", "engineer_id": id})
		}
	}

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
	if err := h.Jobs.ReplaceEngineersTx(ctx, tx, job.ID, ids); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to assign engineers"})
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
	return c.JSON(http.StatusOK, viewOf(job))
}

// RecordQualityCheck handles POST /v1/job-cards/:id/quality-check.
// Recording a check on a job that has not reached the quality-check
// stage yet is rejected, matching the screen flow: the check sheet
// only opens once labor is recorded.
func (h *JobCardHandler) RecordQualityCheck(c echo.Context) error {
	job, err := h.Jobs.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrJobCardNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "job card not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var body struct {
		BillApproved bool   `json:"bill_approved"`
		Notes        string `json:"notes"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	before := workflow.Resolve(*job)
	if before.Stage == workflow.StageNeedsEngineer || before.Stage == workflow.StageNeedsLabor {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": "job is not ready for quality check",
			"stage": string(before.Stage),
		})
	}

	ctx := c.Request().Context()
	if err := h.Jobs.UpsertQualityCheck(ctx, job.ID, body.BillApproved, strings.TrimSpace(body.Notes)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to record quality check"})
	}

	job, err = h.Jobs.GetByID(ctx, job.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	after := workflow.Resolve(*job)
	publishStageAdvance(job, before, after)
	return c.JSON(http.StatusOK, viewOf(job))
}
