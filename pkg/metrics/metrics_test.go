package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/Adelson021/rfv/pkg/metrics"
)

func TestManagerCreation(t *testing.T) {
	convey.Convey("Given the metrics manager", t, func() {
		convey.Convey("When creating a manager on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

			convey.Convey("Then it should register without error", func() {
				convey.So(manager, convey.ShouldNotBeNil)
			})

			convey.Convey("Then every metric should carry the service namespace", func() {
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				for _, mf := range families {
					convey.So(strings.HasPrefix(mf.GetName(), "rfv_segmentation_"), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When creating a manager with a custom namespace", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(
				metrics.WithPrometheusRegistry(registry),
				metrics.WithNamespace("custom"),
				metrics.WithSubsystem("pipeline"),
			)
			convey.So(manager, convey.ShouldNotBeNil)

			convey.Convey("Then metric names should use it", func() {
				families, err := registry.Gather()
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(families), convey.ShouldBeGreaterThan, 0)
				for _, mf := range families {
					convey.So(strings.HasPrefix(mf.GetName(), "custom_pipeline_"), convey.ShouldBeTrue)
				}
			})
		})

		convey.Convey("When creating a manager with custom buckets", func() {
			registry := prometheus.NewRegistry()
			manager := metrics.NewManager(
				metrics.WithPrometheusRegistry(registry),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			)

			convey.Convey("Then it should register without error", func() {
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	convey.Convey("Given the global metric helpers", t, func() {
		convey.Convey("When recording pipeline activity", func() {
			convey.Convey("Then none of the helpers should panic", func() {
				convey.So(func() {
					metrics.RecordUpload()
					metrics.RecordUploadFailure("parse")
					metrics.RecordDuplicateUpload()
					metrics.RecordRowsParsed(100)
					metrics.RecordParseDuration(12.5)
					metrics.RecordScoringDuration(3.2)
					metrics.RecordCustomersScored(40)
					metrics.RecordExport("csv")
					metrics.RecordExportDuration(1.5)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating session gauges", func() {
			convey.Convey("Then the gauges should accept values", func() {
				convey.So(func() {
					metrics.UpdateDatasetsLive(2)
					metrics.UpdateCustomersLive(120)
					metrics.UpdateRecallEntries(7)
					metrics.RecordStoreEviction()
					metrics.RecordStoreExpiration()
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When recording HTTP traffic", func() {
			convey.Convey("Then request and error helpers should work", func() {
				convey.So(func() {
					metrics.RecordHTTPRequest("datasets", "POST", "201")
					metrics.RecordHTTPRequestDuration("datasets", "POST", "201", 42)
					metrics.RecordErrorByEndpoint("datasets", "POST", "bad_request")
					metrics.RecordErrorByType("bad_request", "warning")
					metrics.RecordErrorLatency("api", "bad_request", 8)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating system metrics", func() {
			convey.Convey("Then the system helpers should work", func() {
				convey.So(func() {
					metrics.UpdateSystemMemoryUsage(1 << 20)
					metrics.UpdateSystemGoroutineCount(12)
					metrics.RecordSystemGCPauseTime(0.8)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When gathering the backing registry", func() {
			families, err := metrics.GetRegistry().Gather()

			convey.Convey("Then the recorded metrics should be visible", func() {
				convey.So(err, convey.ShouldBeNil)

				names := make(map[string]bool, len(families))
				for _, mf := range families {
					names[mf.GetName()] = true
				}
				convey.So(names["rfv_segmentation_uploads_total"], convey.ShouldBeTrue)
				convey.So(names["rfv_segmentation_exports_total"], convey.ShouldBeTrue)
				convey.So(names["rfv_segmentation_datasets_live"], convey.ShouldBeTrue)
			})
		})
	})
}
