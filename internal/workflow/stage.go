// Package workflow classifies a job card into its current workflow
// stage.  The stage is a pure function of three job fields (engineer
// assignments, labor hours, quality check) and is re-derived on every
// read; it is never persisted, so there is no cached value to keep in
// sync with the underlying record.
package workflow

import "github.com/motormate/garage-backend/internal/model"

// Stage is one of the four ordered steps a job card moves through.
type Stage string

const (
	StageNeedsEngineer     Stage = "NEEDS_ENGINEER"
	StageNeedsLabor        Stage = "NEEDS_LABOR"
	StageNeedsQualityCheck Stage = "NEEDS_QUALITY_CHECK"
	StageReadyToBill       Stage = "READY_TO_BILL"
)

// Resolution describes the classified stage of a job card together
// with the completion percentage shown on the dashboard progress bar
// and the label of the screen the user should visit next.
type Resolution struct {
	Stage      Stage  `json:"stage"`
	Percent    int    `json:"percent"`
	NextAction string `json:"next_action"`
}

// Resolve maps a job card to its stage.  Conditions are evaluated in
// fixed order and the first match wins: "needs labor" implicitly
// requires an engineer, and "needs quality check" implicitly requires
// labor.  The function is total — absent or nil fields are valid
// inputs with defined meaning, never errors.
func Resolve(job model.JobCard) Resolution {
	if !hasEngineer(job) {
		return Resolution{Stage: StageNeedsEngineer, Percent: 25, NextAction: "Assign Engineer"}
	}
	if job.LaborHours == nil {
		return Resolution{Stage: StageNeedsLabor, Percent: 50, NextAction: "Work In Progress"}
	}
	if job.QualityCheck == nil || !job.QualityCheck.BillApproved {
		return Resolution{Stage: StageNeedsQualityCheck, Percent: 75, NextAction: "Quality Check"}
	}
	return Resolution{Stage: StageReadyToBill, Percent: 90, NextAction: "Billing"}
}

// hasEngineer reports whether the job has at least one assignment
// whose first entry carries an engineer identity.  Legacy rows may
// contain an assignment with an empty engineer id; those count as
// unassigned.
func hasEngineer(job model.JobCard) bool {
	if len(job.EngineerAssignments) == 0 {
		return false
	}
	return job.EngineerAssignments[0].EngineerID != ""
}
