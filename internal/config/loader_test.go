package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/beatline/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then the defaults are returned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Lanes, convey.ShouldEqual, 4)
				convey.So(cfg.Windows.Bad, convey.ShouldEqual, 150*time.Millisecond)
			})
		})

		convey.Convey("When loading a partial YAML file", func() {
			path := writeConfig(t, `
lanes: 6
windows:
  sick: 30ms
scores:
  good: 300
`)
			cfg, err := config.Load(path)

			convey.Convey("Then file values override and defaults fill the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Lanes, convey.ShouldEqual, 6)
				convey.So(cfg.Windows.Sick, convey.ShouldEqual, 30*time.Millisecond)
				convey.So(cfg.Windows.Good, convey.ShouldEqual, 100*time.Millisecond)
				convey.So(cfg.Scores.Good, convey.ShouldEqual, 300)
				convey.So(cfg.Scores.Sick, convey.ShouldEqual, 1000)
			})
		})

		convey.Convey("When environment variables are set", func() {
			path := writeConfig(t, "lanes: 6\n")
			_ = os.Setenv("BEATLINE_LANES", "8")
			_ = os.Setenv("BEATLINE_WINDOWS__BAD", "180ms")
			defer clearConfigEnvVars()

			cfg, err := config.Load(path)

			convey.Convey("Then they override the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Lanes, convey.ShouldEqual, 8)
				convey.So(cfg.Windows.Bad, convey.ShouldEqual, 180*time.Millisecond)
			})
		})

		convey.Convey("When the file does not exist", func() {
			cfg, err := config.Load("/non/existent/beatline.yaml")

			convey.Convey("Then a load error is returned", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file holds invalid windows", func() {
			path := writeConfig(t, "windows:\n  sick: 200ms\n")
			cfg, err := config.Load(path)

			convey.Convey("Then a validation error is returned", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "beatline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func clearConfigEnvVars() {
	_ = os.Unsetenv("BEATLINE_LANES")
	_ = os.Unsetenv("BEATLINE_WINDOWS__BAD")
}
