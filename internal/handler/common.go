package handler // handler defines http handlers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/motormate/garage-backend/internal/model"
	"github.com/motormate/garage-backend/internal/queue"
	queue_publisher "github.com/motormate/garage-backend/internal/service"
	"github.com/motormate/garage-backend/internal/workflow"
)

// getUserID extracts the user_id from echo.Context and converts it to
// uint64.  JWT numeric claims decode as float64.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// stageView is the resolved-stage block embedded in every job card
// response.
type stageView struct {
	Stage      string `json:"stage"`
	Percent    int    `json:"percent"`
	NextAction string `json:"next_action"`
}

func resolveStage(job *model.JobCard) stageView {
	res := workflow.Resolve(*job)
	return stageView{Stage: string(res.Stage), Percent: res.Percent, NextAction: res.NextAction}
}

// publishStageAdvance compares the stage resolved before and after a
// mutation and, when the job moved forward, publishes the event in the
// background.  Publish failures never affect the originating request.
func publishStageAdvance(job *model.JobCard, before, after workflow.Resolution) {
	if after.Stage == before.Stage {
		return
	}
	ev := queue.JobStageAdvancedEvent{
		JobCardID:      job.ID,
		GarageID:       job.GarageID,
		CustomerName:   job.CustomerName,
		RegistrationNo: job.RegistrationNo,
		FromStage:      string(before.Stage),
		ToStage:        string(after.Stage),
		Percent:        after.Percent,
		NextAction:     after.NextAction,
		AdvancedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishJobStageAdvanced(ctx, ev)
	}()
}
