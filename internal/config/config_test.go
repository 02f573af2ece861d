package config_test

import (
	"testing"

	config "github.com/greenbin/bunrigo/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNew(t *testing.T) {
	Convey("Given default configuration", t, func() {
		cfg := config.New()

		Convey("Then core defaults match the observed application", func() {
			So(cfg.Addr, ShouldEqual, ":5001")
			So(cfg.DataFile, ShouldEqual, "data.json")
			So(cfg.AwardPoints, ShouldEqual, 10)
			So(cfg.LeaderboardSize, ShouldEqual, 3)
		})

		Convey("And the bin table has a general-waste fallback", func() {
			So(cfg.DefaultBin, ShouldEqual, "general waste")
			So(cfg.Bins["plastic"], ShouldNotBeEmpty)
		})

		Convey("And the stub classifier has a sane latency window", func() {
			So(cfg.StubLatencyMinMS, ShouldBeGreaterThanOrEqualTo, 0)
			So(cfg.StubLatencyMaxMS, ShouldBeGreaterThan, cfg.StubLatencyMinMS)
		})
	})
}
