package agents

import (
	"fmt"
	"math"

	"github.com/okian/venuescout/internal/domain/model"
)

// CostAgent compares the estimated venue cost over the event duration
// against the budget. Being well under budget yields 100, never more; an
// unspecified budget scores zero rather than erroring.
type CostAgent struct{}

// Name implements Agent.
func (a *CostAgent) Name() string { return "cost" }

// Analyze scores min(100, round(100 * budget / max(estimated_cost, 1))).
func (a *CostAgent) Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult {
	if req.Budget == 0 {
		return model.AgentResult{
			Score:  0,
			Reason: "Event budget not specified",
		}
	}

	estimated := venue.DailyRate * float64(req.DurationDays)
	score := clampScore(round(maxScore * req.Budget / math.Max(estimated, 1)))

	return model.AgentResult{
		Score: score,
		Reason: fmt.Sprintf("Estimated cost $%.2f (%d day(s) at $%.2f/day) vs budget $%.2f",
			estimated, req.DurationDays, venue.DailyRate, req.Budget),
	}
}
