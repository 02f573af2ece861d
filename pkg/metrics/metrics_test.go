package metrics_test

import (
	"testing"

	"github.com/greenbin/bunrigo/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given the metrics manager", t, func() {
		Convey("When creating one on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

			Convey("Then it registers without panicking", func() {
				So(manager, ShouldNotBeNil)
			})

			Convey("And a second manager on another registry is independent", func() {
				other := metrics.NewManager(
					metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
					metrics.WithNamespace("test"),
					metrics.WithSubsystem("suite"),
				)
				So(other, ShouldNotBeNil)
			})
		})

		Convey("When creating one with custom buckets", func() {
			manager := metrics.NewManager(
				metrics.WithPrometheusRegistry(prometheus.NewRegistry()),
				metrics.WithHistogramBuckets([]float64{0.01, 0.1, 1}),
			)
			So(manager, ShouldNotBeNil)
		})
	})
}

func TestPackageHelpers(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		Convey("Then they record without panicking", func() {
			So(func() {
				metrics.RecordSubmission()
				metrics.RecordStudentCreated()
				metrics.RecordAward(10)
				metrics.RecordDuplicateToken()
				metrics.RecordClassification("identify", "unknown")
				metrics.RecordClassification("confirm", "correct")
				metrics.UpdateRecordCount(7)
				metrics.TimeStoreLoad()()
				metrics.TimeStoreSave()()
				metrics.RecordStoreError("save")
				metrics.RecordHTTPRequest("capture", "POST", "200")
				metrics.RecordHTTPRequestDuration("capture", "POST", "200", 0.012)
				metrics.UpdateSystemMemoryUsage(1 << 20)
				metrics.UpdateSystemGoroutineCount(12)
			}, ShouldNotPanic)
		})

		Convey("Then the global registry gathers the business metrics", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)

			names := make(map[string]bool, len(families))
			for _, f := range families {
				names[f.GetName()] = true
			}
			So(names["bunrigo_recycle_awards_granted_total"], ShouldBeTrue)
			So(names["bunrigo_recycle_records"], ShouldBeTrue)
			So(names["bunrigo_recycle_http_requests_total"], ShouldBeTrue)
		})
	})
}
