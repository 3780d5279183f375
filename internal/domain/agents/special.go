package agents

import (
	"fmt"

	"github.com/okian/venuescout/internal/domain/model"
)

// SpecialRequirementAgent matches special requirements against the union of
// venue amenities and features.
type SpecialRequirementAgent struct {
	emptyFullCredit bool
}

// Name implements Agent.
func (a *SpecialRequirementAgent) Name() string { return "special" }

// Analyze scores round(100 * |matched| / max(|requirements|, 1)).
func (a *SpecialRequirementAgent) Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult {
	available := make([]string, 0, len(venue.Amenities)+len(venue.Features))
	available = append(available, venue.Amenities...)
	available = append(available, venue.Features...)

	matched := intersect(req.SpecialRequirements, available)
	score := clampScore(round(maxScore * ratio(len(matched), len(req.SpecialRequirements), a.emptyFullCredit)))

	return model.AgentResult{
		Score: score,
		Reason: fmt.Sprintf("Matched %d/%d special requirements %v against venue amenities and features",
			len(matched), len(req.SpecialRequirements), matched),
	}
}
