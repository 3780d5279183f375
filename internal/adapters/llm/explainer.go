// Package llm provides the optional natural-language explanation
// collaborator. It produces human-readable captions for recommendations
// and never influences scores or ranking order; any failure degrades to
// the placeholder string.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/venuescout/internal/domain/model"
)

// Placeholder is surfaced whenever the collaborator is disabled, errors
// out, or times out.
const Placeholder = "explanation unavailable"

// Explainer turns a prompt into free text. Implementations may incur
// unbounded latency or fail per call; callers must treat both as
// recoverable.
type Explainer interface {
	Explain(ctx context.Context, prompt string) (string, error)
}

// BuildPrompt derives the explanation prompt for one recommendation from
// the request and the scoring breakdown. The collaborator only ever sees
// already-computed results.
func BuildPrompt(req *model.EventRequest, rec *model.Recommendation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert event planner. In 2-3 concise sentences, explain why %s suits a %s with %d attendees.\n",
		rec.VenueName, eventLabel(req), req.AttendeeCount)
	fmt.Fprintf(&b, "Scores: capacity %d (%s); amenities %d (%s); location %d (%s); cost %d (%s); special requirements %d (%s).\n",
		rec.Analysis.Capacity.Score, rec.Analysis.Capacity.Reason,
		rec.Analysis.Amenity.Score, rec.Analysis.Amenity.Reason,
		rec.Analysis.Location.Score, rec.Analysis.Location.Reason,
		rec.Analysis.Cost.Score, rec.Analysis.Cost.Reason,
		rec.Analysis.Special.Score, rec.Analysis.Special.Reason)
	if ev := rec.Analysis.HistoricalEvent; ev != nil {
		fmt.Fprintf(&b, "Closest past event: %s (%d attendees, satisfaction %.1f/5, similarity %.1f).\n",
			ev.EventName, ev.AttendeeCount, ev.OverallSatisfaction, rec.Analysis.SimilarityScore)
	}
	b.WriteString("Keep it professional and under 80 words.")
	return b.String()
}

func eventLabel(req *model.EventRequest) string {
	if req.EventType != "" {
		return req.EventType
	}
	return "new event"
}
