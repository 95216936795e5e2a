package config_test

import (
	"errors"
	"testing"
	"time"

	"git.lost.host/meutraa/beatline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have the documented defaults", func() {
			convey.So(cfg.Lanes, convey.ShouldEqual, 4)
			convey.So(cfg.DefaultBPM, convey.ShouldEqual, 120)
			convey.So(cfg.Windows.Sick, convey.ShouldEqual, 50*time.Millisecond)
			convey.So(cfg.Windows.Good, convey.ShouldEqual, 100*time.Millisecond)
			convey.So(cfg.Windows.Bad, convey.ShouldEqual, 150*time.Millisecond)
			convey.So(cfg.Scores, convey.ShouldResemble, config.Scores{Sick: 1000, Good: 500, Bad: 100, Miss: 0})
			convey.So(cfg.TailTolerance, convey.ShouldEqual, 150*time.Millisecond)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the windows are not strictly increasing", func() {
			cfg.Windows.Good = cfg.Windows.Bad

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the lane count is out of range", func() {
			cfg.Lanes = 0

			convey.Convey("Then validation should fail", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfig_KeyColumn(t *testing.T) {
	convey.Convey("Given the default key maps", t, func() {
		cfg := config.New()

		convey.Convey("Then runes map to lanes for the lane count", func() {
			convey.So(cfg.KeyColumn('d', 4), convey.ShouldEqual, 0)
			convey.So(cfg.KeyColumn('k', 4), convey.ShouldEqual, 3)
			convey.So(cfg.KeyColumn('l', 6), convey.ShouldEqual, 5)
			convey.So(cfg.KeyColumn('q', 4), convey.ShouldEqual, -1)
		})

		convey.Convey("Then evdev codes map to lanes for the lane count", func() {
			convey.So(cfg.CodeColumn(32, 4), convey.ShouldEqual, 0)
			convey.So(cfg.CodeColumn(37, 4), convey.ShouldEqual, 3)
			convey.So(cfg.CodeColumn(30, 4), convey.ShouldEqual, -1)
			convey.So(cfg.CodeColumn(32, 5), convey.ShouldEqual, -1)
		})
	})
}
