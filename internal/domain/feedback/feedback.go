// Package feedback converts the free-text feedback of a historical event
// into a bounded numeric adjustment for hybrid ranking. It is deterministic
// lexical sentiment analysis; no generative collaborator is involved.
package feedback

import (
	"github.com/jonreiter/govader"

	"github.com/okian/venuescout/internal/domain/model"
)

// Adjustment bounds and per-comment scaling.
const (
	commentScale  = 5.0
	maxAdjustment = 20.0
	minAdjustment = -20.0
)

// Scorer derives a signed adjustment in [-20, 20] from a historical event's
// feedback comments. Construct once and reuse; scoring is stateless.
type Scorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewScorer creates a feedback scorer with the default sentiment lexicon.
func NewScorer() *Scorer {
	return &Scorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Adjustment sums the scaled sentiment polarity of every comment and clamps
// the total. The positive/negative bucket labels are ignored on purpose:
// the sentiment of the text decides the sign, not the bucket it was filed
// under. No feedback yields 0.
func (s *Scorer) Adjustment(event *model.HistoricalEvent) float64 {
	var total float64
	for _, comment := range event.PositiveFeedback {
		total += s.analyzer.PolarityScores(comment).Compound * commentScale
	}
	for _, comment := range event.NegativeFeedback {
		total += s.analyzer.PolarityScores(comment).Compound * commentScale
	}

	if total > maxAdjustment {
		return maxAdjustment
	}
	if total < minAdjustment {
		return minAdjustment
	}
	return total
}
