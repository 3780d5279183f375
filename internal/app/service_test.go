package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/okian/venuescout/internal/adapters/corpus"
	"github.com/okian/venuescout/internal/adapters/llm"
	service "github.com/okian/venuescout/internal/app"
	"github.com/okian/venuescout/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

type stubExplainer struct {
	text string
	err  error
}

func (s stubExplainer) Explain(_ context.Context, _ string) (string, error) {
	return s.text, s.err
}

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func startService(t *testing.T, opts ...service.Option) *service.Service {
	t.Helper()
	opts = append([]service.Option{service.WithDataDir("testdata")}, opts...)
	svc := service.New(opts...)
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)
	return svc
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a valid corpus directory", t, func() {
		svc := startService(t)

		Convey("Then stats report the loaded corpus", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldBeTrue)
			So(stats["venues"], ShouldEqual, 3)
			So(stats["event_requests"], ShouldEqual, 2)
			So(stats["historical_events"], ShouldEqual, 4)
			So(stats["explainer_enabled"], ShouldBeFalse)
		})

		Convey("And starting twice is a no-op", func() {
			So(svc.Start(context.Background()), ShouldBeNil)
		})
	})

	Convey("Given a corpus directory that does not exist", t, func() {
		svc := service.New(service.WithDataDir("testdata/nope"))

		Convey("Then start fails", func() {
			So(svc.Start(context.Background()), ShouldNotBeNil)
		})
	})

	Convey("Given a service that was never started", t, func() {
		svc := service.New(service.WithDataDir("testdata"))

		Convey("Then recommend refuses to run", func() {
			_, err := svc.Recommend(context.Background(), "req-conf-2026", 3)
			So(err, ShouldWrap, service.ErrNotStarted)
		})
	})
}

func TestServiceRecommend(t *testing.T) {
	Convey("Given a started service without an explainer", t, func() {
		svc := startService(t)

		Convey("When recommending for a known event request", func() {
			result, err := svc.Recommend(context.Background(), "req-conf-2026", 2)

			Convey("Then it returns a ranked, explained result", func() {
				So(err, ShouldBeNil)
				So(result.EventID, ShouldEqual, "req-conf-2026")

				_, err := uuid.Parse(result.RequestID)
				So(err, ShouldBeNil)

				So(len(result.Recommendations), ShouldBeBetweenOrEqual, 1, 2)
				for i, rec := range result.Recommendations {
					So(rec.VenueID, ShouldNotBeEmpty)
					So(rec.VenueName, ShouldNotBeEmpty)
					So(rec.RankingScore, ShouldBeBetweenOrEqual, 0, 100)
					So(rec.Analysis.Explanation, ShouldEqual, llm.Placeholder)
					if i > 0 {
						So(rec.RankingScore, ShouldBeLessThanOrEqualTo, result.Recommendations[i-1].RankingScore)
					}
				}
			})

			Convey("And the best fit for the conference is the Grand Hall", func() {
				So(err, ShouldBeNil)
				So(result.Recommendations[0].VenueID, ShouldEqual, "ven-grand-hall")
			})
		})

		Convey("When recommending for an unknown event request", func() {
			_, err := svc.Recommend(context.Background(), "req-missing", 3)

			Convey("Then the not-found condition is surfaced", func() {
				So(err, ShouldWrap, corpus.ErrNotFound)
			})
		})

		Convey("When asking for the default count", func() {
			result, err := svc.Recommend(context.Background(), "req-conf-2026", 0)

			So(err, ShouldBeNil)
			So(len(result.Recommendations), ShouldBeLessThanOrEqualTo, 3)
		})

		Convey("When two identical calls are made", func() {
			first, err := svc.Recommend(context.Background(), "req-conf-2026", 3)
			So(err, ShouldBeNil)
			second, err := svc.Recommend(context.Background(), "req-conf-2026", 3)
			So(err, ShouldBeNil)

			Convey("Then the ranking is deterministic and request ids are fresh", func() {
				So(first.RequestID, ShouldNotEqual, second.RequestID)
				So(len(first.Recommendations), ShouldEqual, len(second.Recommendations))
				for i := range first.Recommendations {
					So(first.Recommendations[i].VenueID, ShouldEqual, second.Recommendations[i].VenueID)
					So(first.Recommendations[i].RankingScore, ShouldEqual, second.Recommendations[i].RankingScore)
				}
			})
		})
	})

	Convey("Given a started service with a working explainer", t, func() {
		svc := startService(t, service.WithExplainer(stubExplainer{text: "A strong match for your conference."}))

		Convey("When recommending", func() {
			result, err := svc.Recommend(context.Background(), "req-conf-2026", 2)

			Convey("Then every recommendation carries the explanation", func() {
				So(err, ShouldBeNil)
				for _, rec := range result.Recommendations {
					So(rec.Analysis.Explanation, ShouldEqual, "A strong match for your conference.")
				}
			})
		})
	})

	Convey("Given a started service with a failing explainer", t, func() {
		svc := startService(t, service.WithExplainer(stubExplainer{err: errors.New("down")}))

		Convey("When recommending", func() {
			result, err := svc.Recommend(context.Background(), "req-conf-2026", 2)

			Convey("Then explanations degrade to the placeholder", func() {
				So(err, ShouldBeNil)
				for _, rec := range result.Recommendations {
					So(rec.Analysis.Explanation, ShouldEqual, llm.Placeholder)
				}
			})
		})
	})
}
