package agents

import (
	"fmt"

	"github.com/okian/venuescout/internal/domain/model"
)

// Amenity component weights: required amenities dominate preferred ones.
const (
	requiredWeight  = 70
	preferredWeight = 30
)

// AmenityAgent checks how many required and preferred amenities the venue
// offers. Required matches carry 70% of the score, preferred matches 30%.
type AmenityAgent struct {
	emptyFullCredit bool
}

// Name implements Agent.
func (a *AmenityAgent) Name() string { return "amenity" }

// Analyze weighs required and preferred amenity coverage.
func (a *AmenityAgent) Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult {
	matchedRequired := intersect(req.RequiredAmenities, venue.Amenities)
	matchedPreferred := intersect(req.PreferredAmenities, venue.Amenities)

	score := clampScore(round(
		requiredWeight*ratio(len(matchedRequired), len(req.RequiredAmenities), a.emptyFullCredit) +
			preferredWeight*ratio(len(matchedPreferred), len(req.PreferredAmenities), a.emptyFullCredit),
	))

	return model.AgentResult{
		Score: score,
		Reason: fmt.Sprintf("Matched %d/%d required amenities %v and %d/%d preferred amenities %v",
			len(matchedRequired), len(req.RequiredAmenities), matchedRequired,
			len(matchedPreferred), len(req.PreferredAmenities), matchedPreferred),
	}
}
