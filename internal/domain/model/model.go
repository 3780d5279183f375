// Package model contains domain models passed between layers.
package model

import "encoding/json"

// Default values applied to historical events when the corpus omits a field.
const (
	DefaultSatisfaction = 3.0
	DefaultDurationDays = 1
)

// EventRequest describes a new event that needs a venue. Requests are loaded
// from the corpus at startup and treated as read-only afterwards.
type EventRequest struct {
	EventID             string   `json:"event_id"`
	EventName           string   `json:"event_name,omitempty"`
	EventType           string   `json:"event_type,omitempty"`
	EventStyle          string   `json:"event_style,omitempty"`
	AttendeeCount       int      `json:"attendee_count"`
	DurationDays        int      `json:"duration_days"`
	Budget              float64  `json:"budget"`
	RequiredAmenities   []string `json:"required_amenities,omitempty"`
	PreferredAmenities  []string `json:"preferred_amenities,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
	// LocationPreference is empty when the requester has no preference;
	// an empty preference never matches any region.
	LocationPreference string `json:"location_preference,omitempty"`
}

// UnmarshalJSON applies the duration default: absent or non-positive
// duration_days means a one-day event.
func (r *EventRequest) UnmarshalJSON(data []byte) error {
	type alias EventRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	if a.DurationDays <= 0 {
		a.DurationDays = DefaultDurationDays
	}
	*r = EventRequest(a)
	return nil
}

// Venue is read-only reference data keyed by VenueID.
type Venue struct {
	VenueID string `json:"venue_id"`
	Name    string `json:"name"`
	// MaxCapacity of zero means the capacity is unspecified.
	MaxCapacity int      `json:"max_capacity"`
	DailyRate   float64  `json:"daily_rate"`
	Amenities   []string `json:"amenities,omitempty"`
	Features    []string `json:"features,omitempty"`
	Region      string   `json:"region,omitempty"`
}

// HistoricalEvent is one record of the immutable event-history corpus.
type HistoricalEvent struct {
	EventID             string   `json:"event_id"`
	EventName           string   `json:"event_name,omitempty"`
	VenueID             string   `json:"venue_id"`
	EventType           string   `json:"event_type,omitempty"`
	EventStyle          string   `json:"event_style,omitempty"`
	AttendeeCount       int      `json:"attendee_count"`
	Amenities           []string `json:"amenities,omitempty"`
	SpecialRequirements []string `json:"special_requirements,omitempty"`
	OverallSatisfaction float64  `json:"overall_satisfaction"`
	WouldRebook         bool     `json:"would_rebook"`
	PositiveFeedback    []string `json:"positive_feedback,omitempty"`
	NegativeFeedback    []string `json:"negative_feedback,omitempty"`
}

// UnmarshalJSON applies corpus defaults for absent outcome fields:
// overall_satisfaction 3.0 and would_rebook true. Pointer probes
// distinguish "absent" from explicit zero values.
func (h *HistoricalEvent) UnmarshalJSON(data []byte) error {
	type alias HistoricalEvent
	probe := struct {
		*alias
		OverallSatisfaction *float64 `json:"overall_satisfaction"`
		WouldRebook         *bool    `json:"would_rebook"`
	}{alias: (*alias)(h)}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.OverallSatisfaction != nil {
		h.OverallSatisfaction = *probe.OverallSatisfaction
	} else {
		h.OverallSatisfaction = DefaultSatisfaction
	}
	if probe.WouldRebook != nil {
		h.WouldRebook = *probe.WouldRebook
	} else {
		h.WouldRebook = true
	}
	return nil
}

// AgentResult is the outcome of one criterion agent for one (request, venue)
// pair. Scores are integers in [0, 100].
type AgentResult struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// Candidate pairs a retrieved historical event with its raw similarity on
// the 0-100 scale. The outcome-adjusted score used for retrieval ordering is
// internal to the retriever and never surfaced.
type Candidate struct {
	Event      *HistoricalEvent `json:"historical_event"`
	Similarity float64          `json:"similarity_score"`
}

// Analysis carries the full scoring breakdown behind one recommendation.
type Analysis struct {
	Capacity           AgentResult      `json:"capacity_agent"`
	Amenity            AgentResult      `json:"amenity_agent"`
	Location           AgentResult      `json:"location_agent"`
	Cost               AgentResult      `json:"cost_agent"`
	Special            AgentResult      `json:"special_requirement_agent"`
	FeedbackAdjustment float64          `json:"feedback_adjustment"`
	SimilarityScore    float64          `json:"similarity_score"`
	Explanation        string           `json:"explanation"`
	HistoricalEvent    *HistoricalEvent `json:"historical_event"`
}

// Recommendation is one ranked venue suggestion. RankingScore is rounded to
// one decimal place.
type Recommendation struct {
	VenueID      string   `json:"venue_id"`
	VenueName    string   `json:"venue_name"`
	RankingScore float64  `json:"ranking_score"`
	Analysis     Analysis `json:"analysis"`
}

// Result is the response of one recommendation call.
type Result struct {
	RequestID       string           `json:"request_id"`
	EventID         string           `json:"event_id"`
	Recommendations []Recommendation `json:"recommendations"`
}
