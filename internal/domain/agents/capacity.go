package agents

import (
	"fmt"

	"github.com/okian/venuescout/internal/domain/model"
)

// CapacityAgent compares venue capacity against the requested headcount.
// Fuller venues score lower; an unspecified capacity scores zero rather
// than erroring.
type CapacityAgent struct{}

// Name implements Agent.
func (a *CapacityAgent) Name() string { return "capacity" }

// Analyze scores 100 - round(utilization * 100), clamped at zero.
func (a *CapacityAgent) Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult {
	if venue.MaxCapacity == 0 {
		return model.AgentResult{
			Score:  0,
			Reason: fmt.Sprintf("Venue %s capacity not specified", venue.Name),
		}
	}

	utilization := float64(req.AttendeeCount) / float64(venue.MaxCapacity)
	score := clampScore(maxScore - round(utilization*100))

	return model.AgentResult{
		Score:  score,
		Reason: fmt.Sprintf("Venue capacity %d vs requested %d attendees (%.0f%% utilization)", venue.MaxCapacity, req.AttendeeCount, utilization*100),
	}
}
