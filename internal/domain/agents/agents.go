// Package agents implements the criterion agents that score one facet of
// venue fitness each. Agents are stateless: Analyze is a pure function of
// the request and the candidate venue, and every result carries a reason
// naming the concrete quantities that were compared.
package agents

import (
	"math"

	"github.com/okian/venuescout/internal/domain/model"
)

// Score bounds shared by all agents.
const (
	minScore = 0
	maxScore = 100
)

// Agent scores a venue against one facet of fit for an event request.
type Agent interface {
	// Name identifies the agent in logs, weights config and results.
	Name() string

	// Analyze produces a 0-100 fitness score with a human-readable reason.
	Analyze(req *model.EventRequest, venue *model.Venue) model.AgentResult
}

// Option applies a configuration option to the agent set.
type Option func(*settings)

type settings struct {
	emptyRequirementsFullCredit bool
}

// WithEmptyRequirementsFullCredit controls how the amenity and
// special-requirement agents treat an empty requirement set. The observed
// default scores an empty set as 0 (empty intersection over denominator 1);
// enabling this treats "nothing required" as fully satisfied instead.
func WithEmptyRequirementsFullCredit(enabled bool) Option {
	return func(s *settings) {
		s.emptyRequirementsFullCredit = enabled
	}
}

// All returns the five criterion agents in canonical order: capacity,
// amenity, location, cost, special.
func All(opts ...Option) []Agent {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return []Agent{
		&CapacityAgent{},
		&AmenityAgent{emptyFullCredit: s.emptyRequirementsFullCredit},
		&LocationAgent{},
		&CostAgent{},
		&SpecialRequirementAgent{emptyFullCredit: s.emptyRequirementsFullCredit},
	}
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < minScore {
		return minScore
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

// round converts a float score contribution to the nearest integer.
func round(v float64) int {
	return int(math.Round(v))
}

// intersect returns the members of want that appear in have, preserving the
// order of want for deterministic reasons.
func intersect(want, have []string) []string {
	if len(want) == 0 || len(have) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(have))
	for _, h := range have {
		set[h] = struct{}{}
	}
	var matched []string
	seen := make(map[string]struct{}, len(want))
	for _, w := range want {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			matched = append(matched, w)
		}
	}
	return matched
}

// ratio computes |matched| / max(|want|, 1). When want is empty the
// numerator is necessarily 0, so the ratio is 0 unless full credit for
// empty requirement sets is requested.
func ratio(matched, want int, emptyFullCredit bool) float64 {
	if want == 0 {
		if emptyFullCredit {
			return 1
		}
		return 0
	}
	return float64(matched) / float64(want)
}
