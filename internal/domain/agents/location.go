package agents

import (
	"fmt"

	"github.com/okian/venuescout/internal/domain/model"
)

// Location scores: exact region match or the neutral fallback. No partial
// credit for nearby regions.
const (
	locationMatchScore    = 100
	locationFallbackScore = 50
)

// LocationAgent checks whether the venue sits in the preferred region by
// exact string equality. An unspecified region or preference never matches.
type LocationAgent struct{}

// Name implements Agent.
func (a *LocationAgent) Name() string { return "location" }

// Analyze returns 100 on an exact region match, 50 otherwise.
func (a *LocationAgent) Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult {
	score := locationFallbackScore
	if venue.Region != "" && req.LocationPreference != "" && venue.Region == req.LocationPreference {
		score = locationMatchScore
	}

	return model.AgentResult{
		Score:  score,
		Reason: fmt.Sprintf("Venue in %s, preferred %s", orUnspecified(venue.Region), orUnspecified(req.LocationPreference)),
	}
}

func orUnspecified(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}
