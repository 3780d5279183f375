// Package ranking blends per-criterion agent scores, retrieval similarity
// and the feedback adjustment into one deterministic, explainable ranking.
package ranking

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/okian/venuescout/internal/domain/agents"
	"github.com/okian/venuescout/internal/domain/model"
	"github.com/okian/venuescout/pkg/metrics"
)

// Default blend weights. Agent weights sum to 1.0, as do the hybrid
// weights across agent composite, similarity and feedback.
const (
	defaultCapacityWeight = 0.25
	defaultAmenityWeight  = 0.20
	defaultLocationWeight = 0.15
	defaultCostWeight     = 0.25
	defaultSpecialWeight  = 0.15

	defaultAgentBlendWeight      = 0.45
	defaultSimilarityBlendWeight = 0.45
	defaultFeedbackBlendWeight   = 0.10

	defaultTopN = 3
)

// VenueResolver resolves the venue a historical event took place in.
// Resolution failure is recoverable: the candidate is dropped, never
// surfaced as a partial result.
type VenueResolver interface {
	VenueByID(ctx context.Context, venueID string) (*model.Venue, error)
}

// FeedbackScorer derives the bounded feedback adjustment for an event.
type FeedbackScorer interface {
	Adjustment(ev *model.HistoricalEvent) float64
}

// Option applies a configuration option to the Ranker.
type Option func(*Ranker)

// WithAgentWeights overrides the per-agent composite weights, keyed by
// agent name. Missing or non-positive entries keep their defaults.
func WithAgentWeights(weights map[string]float64) Option {
	return func(r *Ranker) {
		for name, w := range weights {
			if w > 0 {
				r.agentWeights[name] = w
			}
		}
	}
}

// WithHybridWeights overrides the blend of agent composite, similarity and
// feedback. All three must be non-negative and sum to something positive.
func WithHybridWeights(agent, similarity, feedback float64) Option {
	return func(r *Ranker) {
		if agent >= 0 && similarity >= 0 && feedback >= 0 && agent+similarity+feedback > 0 {
			r.agentBlend = agent
			r.similarityBlend = similarity
			r.feedbackBlend = feedback
		}
	}
}

// WithDefaultTopN sets how many recommendations are returned when the
// caller does not ask for a specific count.
func WithDefaultTopN(n int) Option {
	return func(r *Ranker) {
		if n > 0 {
			r.defaultTopN = n
		}
	}
}

// Ranker orchestrates agents, feedback and similarity into ranked
// recommendations. It holds no per-request state; concurrent Rank calls
// are safe.
type Ranker struct {
	resolver VenueResolver
	agents   []agents.Agent
	feedback FeedbackScorer

	agentWeights    map[string]float64
	agentBlend      float64
	similarityBlend float64
	feedbackBlend   float64
	defaultTopN     int
}

// NewRanker creates a ranker with spec-default weights.
func NewRanker(resolver VenueResolver, agentSet []agents.Agent, feedback FeedbackScorer, opts ...Option) *Ranker {
	r := &Ranker{
		resolver: resolver,
		agents:   agentSet,
		feedback: feedback,
		agentWeights: map[string]float64{
			"capacity": defaultCapacityWeight,
			"amenity":  defaultAmenityWeight,
			"location": defaultLocationWeight,
			"cost":     defaultCostWeight,
			"special":  defaultSpecialWeight,
		},
		agentBlend:      defaultAgentBlendWeight,
		similarityBlend: defaultSimilarityBlendWeight,
		feedbackBlend:   defaultFeedbackBlendWeight,
		defaultTopN:     defaultTopN,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank scores every retrieval candidate, sorts descending by hybrid score
// and truncates to topN (the configured default when topN <= 0). Candidates
// whose venue cannot be resolved are dropped silently; if none survive,
// ErrNoCandidates is returned rather than an empty list.
func (r *Ranker) Rank(ctx context.Context, req *model.EventRequest, candidates []model.Candidate, topN int) ([]model.Recommendation, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRankingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if topN <= 0 {
		topN = r.defaultTopN
	}

	recommendations := make([]model.Recommendation, 0, len(candidates))
	for _, cand := range candidates {
		venue, err := r.resolver.VenueByID(ctx, cand.Event.VenueID)
		if err != nil {
			// Historical event referencing an unknown venue: recover by
			// dropping this single candidate.
			metrics.RecordCandidateDropped()
			continue
		}
		recommendations = append(recommendations, r.score(req, venue, cand))
	}

	if len(recommendations) == 0 {
		return nil, ErrNoCandidates
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].RankingScore > recommendations[j].RankingScore
	})

	if topN < len(recommendations) {
		recommendations = recommendations[:topN]
	}
	for _, rec := range recommendations {
		metrics.ObserveRankingScore(rec.RankingScore)
	}
	return recommendations, nil
}

// score runs every agent and the feedback scorer for one candidate and
// computes the hybrid blend.
func (r *Ranker) score(req *model.EventRequest, venue *model.Venue, cand model.Candidate) model.Recommendation {
	agentStart := time.Now()

	analysis := model.Analysis{
		SimilarityScore: cand.Similarity,
		HistoricalEvent: cand.Event,
	}

	var composite float64
	for _, agent := range r.agents {
		result := agent.Analyze(req, venue)
		composite += float64(result.Score) * r.agentWeights[agent.Name()]

		switch agent.Name() {
		case "capacity":
			analysis.Capacity = result
		case "amenity":
			analysis.Amenity = result
		case "location":
			analysis.Location = result
		case "cost":
			analysis.Cost = result
		case "special":
			analysis.Special = result
		}
	}
	metrics.RecordAgentLatency(float64(time.Since(agentStart).Milliseconds()))

	analysis.FeedbackAdjustment = r.feedback.Adjustment(cand.Event)

	hybrid := r.agentBlend*composite +
		r.similarityBlend*cand.Similarity +
		r.feedbackBlend*analysis.FeedbackAdjustment

	return model.Recommendation{
		VenueID:      venue.VenueID,
		VenueName:    venue.Name,
		RankingScore: math.Round(hybrid*10) / 10,
		Analysis:     analysis,
	}
}
