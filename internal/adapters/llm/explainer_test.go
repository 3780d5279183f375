package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/venuescout/internal/adapters/llm"
	"github.com/okian/venuescout/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/sony/gobreaker"
)

func TestOllamaExplainer(t *testing.T) {
	Convey("Given a healthy Ollama endpoint", t, func(c C) {
		var gotPrompt string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Model  string `json:"model"`
				Prompt string `json:"prompt"`
			}
			c.So(json.NewDecoder(r.Body).Decode(&req), ShouldBeNil)
			gotPrompt = req.Prompt
			c.So(r.URL.Path, ShouldEqual, "/api/generate")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"response": "  A fine venue for this event.  ",
				"done":     true,
			})
		}))
		defer server.Close()

		explainer := llm.NewOllamaExplainer(llm.OllamaConfig{BaseURL: server.URL, Model: "phi3:mini"})

		Convey("When asking for an explanation", func() {
			text, err := explainer.Explain(context.Background(), "why this venue?")

			Convey("Then it returns the trimmed completion", func() {
				So(err, ShouldBeNil)
				So(text, ShouldEqual, "A fine venue for this event.")
				So(gotPrompt, ShouldEqual, "why this venue?")
			})
		})
	})

	Convey("Given a failing Ollama endpoint", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		explainer := llm.NewOllamaExplainer(llm.OllamaConfig{BaseURL: server.URL})

		Convey("When calls keep failing", func() {
			ctx := context.Background()
			for i := 0; i < 3; i++ {
				_, err := explainer.Explain(ctx, "prompt")
				So(err, ShouldNotBeNil)
			}

			Convey("Then the circuit opens and rejects further calls fast", func() {
				_, err := explainer.Explain(ctx, "prompt")
				So(err, ShouldNotBeNil)
				So(err, ShouldWrap, gobreaker.ErrOpenState)
			})
		})
	})
}

func TestBuildPrompt(t *testing.T) {
	Convey("Given a recommendation with a full analysis", t, func() {
		req := &model.EventRequest{EventType: "conference", AttendeeCount: 200}
		rec := &model.Recommendation{
			VenueName: "Grand Hall",
			Analysis: model.Analysis{
				Capacity:        model.AgentResult{Score: 50, Reason: "Venue capacity 400 vs requested 200 attendees"},
				Amenity:         model.AgentResult{Score: 100, Reason: "Matched 2/2 required amenities"},
				Location:        model.AgentResult{Score: 100, Reason: "Venue in north, preferred north"},
				Cost:            model.AgentResult{Score: 100, Reason: "Estimated cost $2400.00 vs budget $5000.00"},
				Special:         model.AgentResult{Score: 100, Reason: "Matched 1/1 special requirements"},
				SimilarityScore: 92.5,
				HistoricalEvent: &model.HistoricalEvent{
					EventName:           "Partner Conference 2024",
					AttendeeCount:       210,
					OverallSatisfaction: 4.5,
				},
			},
		}

		Convey("When building the prompt", func() {
			prompt := llm.BuildPrompt(req, rec)

			Convey("Then it names the venue, the event and the computed scores", func() {
				So(prompt, ShouldContainSubstring, "Grand Hall")
				So(prompt, ShouldContainSubstring, "conference")
				So(prompt, ShouldContainSubstring, "200 attendees")
				So(prompt, ShouldContainSubstring, "Partner Conference 2024")
				So(prompt, ShouldContainSubstring, "92.5")
				So(prompt, ShouldContainSubstring, "under 80 words")
			})
		})
	})
}
