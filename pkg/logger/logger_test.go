package logger_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/greenbin/bunrigo/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized logger", t, func() {
		var buf bytes.Buffer
		So(logger.Init(logger.WithWriter(&buf)), ShouldBeNil)
		log := logger.Get()
		ctx := context.Background()

		Convey("When logging at info with fields", func() {
			log.Info(ctx, "record saved",
				logger.String("student_id", "12345"),
				logger.Int("score", 10),
			)

			Convey("Then message and fields appear in the output", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "record saved")
				So(out, ShouldContainSubstring, "student_id=12345")
				So(out, ShouldContainSubstring, "score=10")
			})
		})

		Convey("When logging below the current level", func() {
			log.Debug(ctx, "invisible")
			So(buf.String(), ShouldNotContainSubstring, "invisible")

			Convey("And after lowering the level", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				log.Debug(ctx, "now visible")
				So(buf.String(), ShouldContainSubstring, "now visible")
				So(logger.SetLevelString("info"), ShouldBeNil)
			})
		})

		Convey("When logging an error field", func() {
			log.Error(ctx, "save failed", logger.Error(errors.New("disk full")))
			So(buf.String(), ShouldContainSubstring, "disk full")
		})

		Convey("When using a named logger", func() {
			log.Named("store").Info(ctx, "loaded", logger.Int("records", 3))
			So(buf.String(), ShouldContainSubstring, "store.records=3")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level parsing", t, func() {
		Convey("When setting known levels", func() {
			for _, lvl := range []string{"debug", "info", "warn", "warning", "error", "", " INFO "} {
				So(logger.SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("When setting an unknown level", func() {
			err := logger.SetLevelString("loud")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "unknown log level"), ShouldBeTrue)
		})
	})
}
