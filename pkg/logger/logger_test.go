package logger_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/okian/venuescout/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		err := logger.Init()
		So(err, ShouldBeNil)

		Convey("When fetching the global instance", func() {
			l := logger.Get()

			Convey("Then it should log without panicking", func() {
				ctx := context.Background()
				So(func() {
					l.Info(ctx, "info message", logger.String("k", "v"))
					l.Warn(ctx, "warn message", logger.Int("n", 1))
					l.Error(ctx, "error message", logger.Float64("f", 1.5))
					l.Debug(ctx, "debug message", logger.Bool("b", true))
				}, ShouldNotPanic)
			})

			Convey("Then named loggers should be derived from it", func() {
				named := logger.Named("retrieval")
				So(named, ShouldNotBeNil)
				So(func() {
					named.Info(context.Background(), "named message")
				}, ShouldNotPanic)
			})
		})

		Convey("When parsing level strings", func() {
			Convey("Then known levels should be accepted", func() {
				So(logger.SetLevelString("debug"), ShouldBeNil)
				So(logger.SetLevelString("INFO"), ShouldBeNil)
				So(logger.SetLevelString("warning"), ShouldBeNil)
				So(logger.SetLevelString("error"), ShouldBeNil)
				So(logger.SetLevelString(""), ShouldBeNil)
			})

			Convey("Then unknown levels should be rejected", func() {
				So(logger.SetLevelString("verbose"), ShouldNotBeNil)
			})
		})

		Convey("When setting the level directly", func() {
			So(func() { logger.SetLevel(slog.LevelWarn) }, ShouldNotPanic)
			So(logger.SetLevelString("info"), ShouldBeNil)
		})

		Convey("When syncing", func() {
			So(logger.Sync(), ShouldBeNil)
		})
	})
}
