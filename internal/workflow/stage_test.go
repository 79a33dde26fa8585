package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/motormate/garage-backend/internal/model"
)

func hours(h float64) *float64 { return &h }

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		job        model.JobCard
		stage      Stage
		percent    int
		nextAction string
	}{
		{
			name:       "empty job needs an engineer",
			job:        model.JobCard{},
			stage:      StageNeedsEngineer,
			percent:    25,
			nextAction: "Assign Engineer",
		},
		{
			name: "assignment without identity still needs an engineer",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: ""}},
			},
			stage:      StageNeedsEngineer,
			percent:    25,
			nextAction: "Assign Engineer",
		},
		{
			name: "engineer present but no labor recorded",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: "e1"}},
			},
			stage:      StageNeedsLabor,
			percent:    50,
			nextAction: "Work In Progress",
		},
		{
			name: "labor recorded but no quality check",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: "e1"}},
				LaborHours:          hours(3),
			},
			stage:      StageNeedsQualityCheck,
			percent:    75,
			nextAction: "Quality Check",
		},
		{
			name: "quality check present but bill not approved",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: "e1"}},
				LaborHours:          hours(3),
				QualityCheck:        &model.QualityCheck{BillApproved: false},
			},
			stage:      StageNeedsQualityCheck,
			percent:    75,
			nextAction: "Quality Check",
		},
		{
			name: "bill approved means ready to bill",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: "e1"}},
				LaborHours:          hours(3),
				QualityCheck:        &model.QualityCheck{BillApproved: true},
			},
			stage:      StageReadyToBill,
			percent:    90,
			nextAction: "Billing",
		},
		{
			name: "zero labor hours count as recorded labor",
			job: model.JobCard{
				EngineerAssignments: []model.EngineerAssignment{{EngineerID: "e1"}},
				LaborHours:          hours(0),
			},
			stage:      StageNeedsQualityCheck,
			percent:    75,
			nextAction: "Quality Check",
		},
		{
			name: "quality check without engineer is still unassigned",
			job: model.JobCard{
				QualityCheck: &model.QualityCheck{BillApproved: true},
			},
			stage:      StageNeedsEngineer,
			percent:    25,
			nextAction: "Assign Engineer",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.job)
			assert.Equal(t, tt.stage, got.Stage)
			assert.Equal(t, tt.percent, got.Percent)
			assert.Equal(t, tt.nextAction, got.NextAction)
		})
	}
}

// Filling fields in workflow order must never move the percentage
// backwards.
func TestResolvePercentMonotonic(t *testing.T) {
	job := model.JobCard{}
	prev := Resolve(job).Percent

	job.EngineerAssignments = []model.EngineerAssignment{{EngineerID: "e1"}}
	cur := Resolve(job).Percent
	assert.GreaterOrEqual(t, cur, prev)
	prev = cur

	job.LaborHours = hours(2.5)
	cur = Resolve(job).Percent
	assert.GreaterOrEqual(t, cur, prev)
	prev = cur

	job.QualityCheck = &model.QualityCheck{BillApproved: true}
	cur = Resolve(job).Percent
	assert.GreaterOrEqual(t, cur, prev)
}
