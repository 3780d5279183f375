package retrieval

import (
	"context"
	"math"
	"sort"

	"github.com/okian/venuescout/internal/domain/model"
)

// Retrieval configuration constants.
const (
	defaultTopK = 6

	similarityScale = 100.0
	satisfactionMax = 5.0
	// noRebookMultiplier halves the ranking weight of events whose client
	// would not book the venue again.
	noRebookMultiplier = 0.5
)

// Option applies a configuration option to the Retriever.
type Option func(*Retriever)

// WithTopK sets how many candidates a query returns.
func WithTopK(k int) Option {
	return func(r *Retriever) {
		if k > 0 {
			r.topK = k
		}
	}
}

// Retriever answers similarity queries against a prebuilt index.
type Retriever struct {
	index *Index
	topK  int
}

// NewRetriever creates a retriever over the given index.
func NewRetriever(index *Index, opts ...Option) *Retriever {
	r := &Retriever{
		index: index,
		topK:  defaultTopK,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retrieve returns the top-K most relevant historical events for the
// request. Candidates carry the raw min-max normalized similarity on the
// 0-100 scale; the outcome-adjusted score only decides the ordering and is
// never surfaced. Ties keep corpus order.
func (r *Retriever) Retrieve(_ context.Context, req *model.EventRequest) []model.Candidate {
	if r.index.Size() == 0 {
		return nil
	}

	queryTerms := vectorize(requestTokens(req))
	queryNorm := vectorNorm(queryTerms)

	raw := make([]float64, len(r.index.entries))
	for i, e := range r.index.entries {
		raw[i] = cosine(queryTerms, e.terms, queryNorm, e.norm)
	}

	scaled := rescale(raw)

	type scored struct {
		candidate model.Candidate
		adjusted  float64
	}
	results := make([]scored, len(r.index.entries))
	for i, e := range r.index.entries {
		results[i] = scored{
			candidate: model.Candidate{Event: e.event, Similarity: scaled[i]},
			adjusted:  AdjustedScore(scaled[i], e.event),
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].adjusted > results[j].adjusted
	})

	k := r.topK
	if k > len(results) {
		k = len(results)
	}
	candidates := make([]model.Candidate, k)
	for i := 0; i < k; i++ {
		candidates[i] = results[i].candidate
	}
	return candidates
}

// AdjustedScore applies the outcome penalty to a raw similarity: the score
// is discounted by satisfaction (out of 5) and halved when the client would
// not rebook. Used only for retrieval ordering.
func AdjustedScore(rawSimilarity float64, ev *model.HistoricalEvent) float64 {
	multiplier := 1.0
	if !ev.WouldRebook {
		multiplier = noRebookMultiplier
	}
	return rawSimilarity * multiplier * (ev.OverallSatisfaction / satisfactionMax)
}

// rescale maps raw similarities onto 0-100 with min-max normalization,
// rounded to one decimal. A corpus where every similarity is equal maps to
// 100 across the board when there is any overlap at all, and to 0 when
// there is none.
func rescale(raw []float64) []float64 {
	minV, maxV := raw[0], raw[0]
	for _, v := range raw[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	scaled := make([]float64, len(raw))
	spread := maxV - minV
	for i, v := range raw {
		switch {
		case spread > 0:
			scaled[i] = roundOneDecimal(similarityScale * (v - minV) / spread)
		case maxV > 0:
			scaled[i] = similarityScale
		default:
			scaled[i] = 0
		}
	}
	return scaled
}

func roundOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
