package config_test

import (
	"testing"

	"github.com/sunugal/releves/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.APIBaseURL, convey.ShouldNotBeEmpty)
			convey.So(cfg.APITimeoutMS, convey.ShouldEqual, 30_000)
			convey.So(cfg.CookieName, convey.ShouldEqual, "authToken")
			convey.So(cfg.TopElements, convey.ShouldEqual, 5)
			convey.So(cfg.LabelWidth, convey.ShouldEqual, 15)
		})
	})
}
