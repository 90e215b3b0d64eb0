package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sunugal/releves/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewManager(t *testing.T) {
	Convey("Given metrics manager construction", t, func() {
		Convey("When created on a fresh registry", func() {
			reg := prometheus.NewRegistry()
			m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))
			So(m, ShouldNotBeNil)

			Convey("Then metrics are gatherable", func() {
				families, err := reg.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeNil)
			})
		})

		Convey("When created with custom options", func() {
			reg := prometheus.NewRegistry()
			m := metrics.NewManager(
				metrics.WithPrometheusRegistry(reg),
				metrics.WithNamespace("custom"),
				metrics.WithSubsystem("tests"),
				metrics.WithHistogramBuckets([]float64{1, 10, 100}),
			)
			So(m, ShouldNotBeNil)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("Then record helpers do not panic", func() {
			So(func() {
				metrics.RecordLoginSuccess()
				metrics.RecordLoginFailure()
				metrics.RecordRestore("restored")
				metrics.RecordLogout()
				metrics.UpdateSessionAuthenticated(true)
				metrics.UpdateSessionAuthenticated(false)
				metrics.RecordUpstreamRequest("userConnecter", "ok")
				metrics.RecordUpstreamRequestDuration("userConnecter", 12.5)
				metrics.RecordResultFetch()
				metrics.RecordResultFetchError()
				metrics.RecordStaleDiscard()
				metrics.RecordHTTPRequest("results", "GET", "200")
				metrics.RecordHTTPRequestDuration("results", "GET", "200", 3.0)
				metrics.RecordErrorByEndpoint("results", "GET", "server_error")
				metrics.RecordErrorByType("server_error", "high")
				metrics.RecordErrorLatency("http", "server_error", 5.0)
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry is exposed", func() {
			So(metrics.GetRegistry(), ShouldNotBeNil)
		})
	})
}
