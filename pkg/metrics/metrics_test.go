package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating a manager with custom options", func() {
			registry := prometheus.NewRegistry()
			m := NewManager(
				WithNamespace("test_ns"),
				WithSubsystem("test_sub"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithMetricsEnabled(false),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(m.namespace, ShouldEqual, "test_ns")
				So(m.subsystem, ShouldEqual, "test_sub")
				So(m.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(m.enabled, ShouldBeFalse)
				So(m.constLabels, ShouldResemble, map[string]string{"env": "test"})
			})
		})

		Convey("When passing empty values", func() {
			m := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithConstLabels(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then the defaults should be kept", func() {
				So(m.namespace, ShouldEqual, "prospectboard")
				So(m.subsystem, ShouldEqual, "roster")
				So(m.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
				So(m.constLabels, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerRegistration(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When a counter is incremented", func() {
			m.cacheHits.Inc()
			m.prospectsByLevel.WithLabelValues("AAA").Set(2)

			Convey("Then the registry should expose it", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				names := map[string]bool{}
				for _, f := range families {
					names[f.GetName()] = true
				}
				So(names["prospectboard_roster_cache_hits_total"], ShouldBeTrue)
				So(names["prospectboard_roster_prospects_by_level"], ShouldBeTrue)
			})
		})

		Convey("When a second manager targets the same registry", func() {
			Convey("Then registration should panic on duplicates", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestInit(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Reset(func() { So(Init(), ShouldBeNil) })

		Convey("When Init is called twice", func() {
			So(Init(WithNamespace("first")), ShouldBeNil)
			first := GetRegistry()
			So(Init(WithNamespace("second")), ShouldBeNil)

			Convey("Then each call should get its own registry", func() {
				So(GetRegistry(), ShouldNotEqual, first)
			})
		})

		Convey("When the namespace is not a valid metric name", func() {
			err := Init(WithNamespace("bad-name"))

			Convey("Then Init should report an init error", func() {
				So(errors.Is(err, ErrInit), ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given freshly initialized global metrics", t, func() {
		So(Init(), ShouldBeNil)
		m := current()

		Convey("When recording cache activity", func() {
			RecordCacheHit()
			RecordCacheHit()
			RecordCacheMiss()
			RecordRosterRefresh(12.5)
			RecordRosterRefreshError("decode")
			RecordStaleServe()
			RecordValidationFailure("hitting.avg")

			Convey("Then the counters should reflect it", func() {
				So(testutil.ToFloat64(m.cacheHits), ShouldEqual, 2)
				So(testutil.ToFloat64(m.cacheMisses), ShouldEqual, 1)
				So(testutil.ToFloat64(m.rosterRefreshes), ShouldEqual, 1)
				So(testutil.ToFloat64(m.rosterRefreshErrs.WithLabelValues("decode")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("roster_cache", "decode")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.staleServes), ShouldEqual, 1)
				So(testutil.ToFloat64(m.validationFailures.WithLabelValues("hitting.avg")), ShouldEqual, 1)
			})
		})

		Convey("When updating snapshot gauges", func() {
			produced := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
			UpdateRosterSize(10)
			UpdateRosterLastRefresh(produced)
			UpdateSnapshotAge(90 * time.Second)
			UpdateProspectsByLevel("AA", 2)
			UpdateProspectsByKind("pitcher", 4)

			Convey("Then the gauges should hold the last value", func() {
				So(testutil.ToFloat64(m.rosterSize), ShouldEqual, 10)
				So(testutil.ToFloat64(m.rosterLastRefresh), ShouldEqual, float64(produced.Unix()))
				So(testutil.ToFloat64(m.snapshotAge), ShouldEqual, 90)
				So(testutil.ToFloat64(m.prospectsByLevel.WithLabelValues("AA")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.prospectsByKind.WithLabelValues("pitcher")), ShouldEqual, 4)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			RecordHTTPRequest("/roster", "GET", "200")
			RecordHTTPRequestDuration("/roster", "GET", "200", 3)
			RecordErrorByComponent("http", "bad_request")
			RecordErrorByType("bad_request", "warning")
			RecordErrorByEndpoint("/leaders", "GET", "unknown_metric")
			RecordErrorLatency("http", "bad_request", 1)
			RecordDerivation("summary", 0.4)
			UpdateSystemMemoryUsage(1 << 20)
			UpdateSystemGoroutineCount(12)
			RecordSystemGCPauseTime(0.2)

			Convey("Then the labelled series should exist", func() {
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/roster", "GET", "200")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.errorRateByEndpoint.WithLabelValues("/leaders", "GET", "unknown_metric")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.systemGoroutineCount), ShouldEqual, 12)
				So(testutil.ToFloat64(m.systemMemoryUsage), ShouldEqual, 1<<20)
			})
		})
	})
}

func TestDisabledMetrics(t *testing.T) {
	Convey("Given metrics initialized as disabled", t, func() {
		So(Init(WithMetricsEnabled(false)), ShouldBeNil)
		Reset(func() { So(Init(), ShouldBeNil) })
		m := current()

		Convey("When recording", func() {
			RecordCacheHit()
			UpdateRosterSize(7)

			Convey("Then nothing should be observed", func() {
				So(testutil.ToFloat64(m.cacheHits), ShouldEqual, 0)
				So(testutil.ToFloat64(m.rosterSize), ShouldEqual, 0)
			})
		})
	})
}

func TestMetricsEdgeCases(t *testing.T) {
	Convey("Given metrics edge cases", t, func() {
		Convey("When recording with zero, negative and empty values", func() {
			So(func() {
				UpdateRosterSize(0)
				UpdateRosterSize(-1)
				UpdateSnapshotAge(0)
				RecordRosterRefresh(0)
				RecordHTTPRequest("", "", "200")
				RecordErrorByComponent("", "")
				RecordErrorByType("", "")
				RecordErrorByEndpoint("", "", "")
				RecordErrorLatency("", "", 10.0)
			}, ShouldNotPanic)
		})

		Convey("When using special characters in label values", func() {
			So(func() {
				UpdateProspectsByLevel("A+", 1)
				RecordHTTPRequest("/prospects/{rank}", "GET", "404")
				RecordValidationFailure("pitching.ip")
			}, ShouldNotPanic)
		})
	})
}

func TestMetricsConcurrency(t *testing.T) {
	Convey("Given metrics concurrency", t, func() {
		So(Init(), ShouldBeNil)
		m := current()

		Convey("When recording metrics concurrently", func() {
			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 100; j++ {
						RecordCacheHit()
						UpdateRosterSize(j)
						RecordHTTPRequest("/roster", "GET", "200")
					}
				}()
			}
			wg.Wait()

			Convey("Then every increment should be counted", func() {
				So(testutil.ToFloat64(m.cacheHits), ShouldEqual, 1000)
				So(testutil.ToFloat64(m.httpRequests.WithLabelValues("/roster", "GET", "200")), ShouldEqual, 1000)
			})
		})
	})
}
