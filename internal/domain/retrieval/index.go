// Package retrieval finds the historical events most similar to a new
// event request. The index is built once at startup from the immutable
// history corpus and is read-only afterwards; queries share it freely.
package retrieval

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/okian/venuescout/internal/domain/model"
)

// Attendee-count bucket boundaries used as similarity terms, so events of
// comparable size look alike even when their exact headcounts differ.
const (
	smallEventMax  = 50
	mediumEventMax = 150
	largeEventMax  = 300
)

// termWeight is one dimension of a term-frequency vector. Vectors keep
// their terms sorted so dot products accumulate in a fixed order and
// similarity stays bit-for-bit deterministic.
type termWeight struct {
	term string
	tf   float64
}

type entry struct {
	event *model.HistoricalEvent
	terms []termWeight
	norm  float64
}

// Index holds the pre-tokenized history corpus.
type Index struct {
	entries []entry
}

// NewIndex tokenizes and vectorizes every historical event exactly once.
func NewIndex(events []*model.HistoricalEvent) *Index {
	ix := &Index{entries: make([]entry, 0, len(events))}
	for _, ev := range events {
		terms := vectorize(eventTokens(ev))
		ix.entries = append(ix.entries, entry{
			event: ev,
			terms: terms,
			norm:  vectorNorm(terms),
		})
	}
	return ix
}

// Size returns the number of indexed events.
func (ix *Index) Size() int {
	return len(ix.entries)
}

// eventTokens builds the text representation of a historical event.
func eventTokens(ev *model.HistoricalEvent) []string {
	tokens := tokenize(ev.EventType, ev.EventStyle)
	tokens = append(tokens, sizeBucket(ev.AttendeeCount))
	tokens = append(tokens, tokenize(ev.Amenities...)...)
	tokens = append(tokens, tokenize(ev.SpecialRequirements...)...)
	return tokens
}

// requestTokens builds the equivalent representation of a request. It
// includes the required and special-requirement terms plus the preferred
// amenities, type, style and size bucket.
func requestTokens(req *model.EventRequest) []string {
	tokens := tokenize(req.EventType, req.EventStyle)
	tokens = append(tokens, sizeBucket(req.AttendeeCount))
	tokens = append(tokens, tokenize(req.RequiredAmenities...)...)
	tokens = append(tokens, tokenize(req.PreferredAmenities...)...)
	tokens = append(tokens, tokenize(req.SpecialRequirements...)...)
	return tokens
}

// tokenize lowercases the inputs and splits them on any non-alphanumeric
// rune, so "Wheelchair_Access" and "wheelchair access" meet in the middle.
func tokenize(texts ...string) []string {
	var tokens []string
	for _, text := range texts {
		fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
		})
		tokens = append(tokens, fields...)
	}
	return tokens
}

func sizeBucket(attendees int) string {
	switch {
	case attendees < smallEventMax:
		return fmt.Sprintf("size%d", smallEventMax)
	case attendees < mediumEventMax:
		return fmt.Sprintf("size%d", mediumEventMax)
	case attendees < largeEventMax:
		return fmt.Sprintf("size%d", largeEventMax)
	default:
		return "sizexl"
	}
}

// vectorize counts term frequencies and returns the vector sorted by term.
func vectorize(tokens []string) []termWeight {
	counts := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		counts[tok]++
	}
	terms := make([]termWeight, 0, len(counts))
	for term, tf := range counts {
		terms = append(terms, termWeight{term: term, tf: tf})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].term < terms[j].term })
	return terms
}

func vectorNorm(terms []termWeight) float64 {
	var sum float64
	for _, t := range terms {
		sum += t.tf * t.tf
	}
	return math.Sqrt(sum)
}

// cosine computes the cosine similarity of two sorted vectors with a
// two-pointer merge, accumulating in term order.
func cosine(a, b []termWeight, aNorm, bNorm float64) float64 {
	if aNorm == 0 || bNorm == 0 {
		return 0
	}
	var dot float64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i].term == b[j].term:
			dot += a[i].tf * b[j].tf
			i++
			j++
		case a[i].term < b[j].term:
			i++
		default:
			j++
		}
	}
	return dot / (aNorm * bNorm)
}
