package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/venuescout/internal/adapters/corpus"
	"github.com/okian/venuescout/internal/adapters/http/api"
	"github.com/okian/venuescout/internal/domain/model"
	"github.com/okian/venuescout/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

type mockDeps struct {
	result model.Result
	err    error

	gotEventID string
	gotTopN    int
}

func (m *mockDeps) Recommend(_ context.Context, eventID string, topN int) (model.Result, error) {
	m.gotEventID = eventID
	m.gotTopN = topN
	if m.err != nil {
		return model.Result{}, m.err
	}
	return m.result, nil
}

type mockStats struct{}

func (mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"venues": 3, "requests": 2, "events": 4}
}

func newTestMux(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(deps, mockStats{}, 10)
	server.Register(context.Background(), mux)
	return mux
}

func postRecommend(mux *http.ServeMux, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/venues/recommend", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHandleRecommend(t *testing.T) {
	Convey("Given a server with a working recommender", t, func() {
		deps := &mockDeps{
			result: model.Result{
				RequestID: "req-uuid",
				EventID:   "req-conf-2026",
				Recommendations: []model.Recommendation{
					{VenueID: "ven-grand-hall", VenueName: "Grand Hall", RankingScore: 87.5},
				},
			},
		}
		mux := newTestMux(deps)

		Convey("When posting a valid recommendation request", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026","top_n":3}`)

			Convey("Then it returns the ranked recommendations", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result model.Result
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.RequestID, ShouldEqual, "req-uuid")
				So(result.Recommendations, ShouldHaveLength, 1)
				So(result.Recommendations[0].VenueID, ShouldEqual, "ven-grand-hall")
				So(deps.gotEventID, ShouldEqual, "req-conf-2026")
				So(deps.gotTopN, ShouldEqual, 3)
			})
		})

		Convey("When omitting top_n", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026"}`)

			Convey("Then the recommender is asked for the default", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.gotTopN, ShouldEqual, 0)
			})
		})

		Convey("When the body is not JSON", func() {
			rec := postRecommend(mux, `{event_id:`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When event_id is missing", func() {
			rec := postRecommend(mux, `{"top_n":3}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When top_n is negative", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026","top_n":-1}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When top_n exceeds the cap", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026","top_n":11}`)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When using GET instead of POST", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/venues/recommend", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a recommender that cannot find the event", t, func() {
		deps := &mockDeps{err: fmt.Errorf("event request req-nope: %w", corpus.ErrNotFound)}
		mux := newTestMux(deps)

		Convey("When posting a recommendation request", func() {
			rec := postRecommend(mux, `{"event_id":"req-nope"}`)

			Convey("Then it returns 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)

				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "not_found")
			})
		})
	})

	Convey("Given a recommender with no viable candidates", t, func() {
		deps := &mockDeps{err: ranking.ErrNoCandidates}
		mux := newTestMux(deps)

		Convey("When posting a recommendation request", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026"}`)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})

	Convey("Given a recommender that fails unexpectedly", t, func() {
		deps := &mockDeps{err: errors.New("boom")}
		mux := newTestMux(deps)

		Convey("When posting a recommendation request", func() {
			rec := postRecommend(mux, `{"event_id":"req-conf-2026"}`)

			Convey("Then it returns 500 with an error body", func() {
				So(rec.Code, ShouldEqual, http.StatusInternalServerError)

				var resp struct {
					Code string `json:"code"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &resp), ShouldBeNil)
				So(resp.Code, ShouldEqual, "internal_error")
			})
		})
	})
}

func TestHandleStats(t *testing.T) {
	Convey("Given a registered stats handler", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("When getting /stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns the corpus counters", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var stats map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &stats), ShouldBeNil)
				So(stats["venues"], ShouldEqual, float64(3))
			})
		})
	})
}

func TestHandleHealth(t *testing.T) {
	Convey("Given a registered health handler", t, func() {
		mux := newTestMux(&mockDeps{})

		Convey("When getting /healthz", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it serves the metrics registry", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}
