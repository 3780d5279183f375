package metrics_test

import (
	"testing"

	"github.com/okian/venuescout/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		reg := prometheus.NewRegistry()

		Convey("When constructed with options", func() {
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(reg),
				metrics.WithNamespace("testns"),
				metrics.WithSubsystem("testsub"),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			)

			Convey("Then it should register its metric families", func() {
				So(m, ShouldNotBeNil)
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording through the package helpers", func() {
			Convey("Then none of them should panic", func() {
				So(func() {
					metrics.RecordRecommendationServed()
					metrics.RecordRecommendationEmpty()
					metrics.RecordCandidateDropped()
					metrics.ObserveRankingScore(72.5)
					metrics.RecordRetrievalLatency(3.2)
					metrics.RecordAgentLatency(0.4)
					metrics.RecordRankingLatency(5.1)
					metrics.RecordExplanationRequest()
					metrics.RecordExplanationFailure()
					metrics.RecordExplanationLatency(812)
					metrics.UpdateCorpusSizes(10, 4, 25)
					metrics.RecordHTTPRequest("recommend", "POST", "200")
					metrics.RecordHTTPRequestDuration("recommend", "POST", "200", 12.5)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should expose the recorded families", func() {
				families, err := metrics.GetRegistry().Gather()
				So(err, ShouldBeNil)
				So(len(families), ShouldBeGreaterThan, 0)
			})
		})
	})
}
