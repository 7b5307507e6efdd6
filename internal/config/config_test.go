package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/prospectboard/internal/config"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.CacheTTL(), convey.ShouldEqual, time.Hour)
			convey.So(cfg.RosterFile, convey.ShouldBeEmpty)
			convey.So(cfg.TopN, convey.ShouldEqual, 5)
			convey.So(cfg.MaxLeadersLimit, convey.ShouldEqual, 100)
			convey.So(cfg.CORSAllowedOrigins, convey.ShouldResemble, []string{"*"})
			convey.So(cfg.AgeBrackets, convey.ShouldResemble, stats.DefaultAgeBrackets())
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the chart levels should parse", func() {
			levels, err := cfg.Levels()
			convey.So(err, convey.ShouldBeNil)
			convey.So(levels, convey.ShouldResemble, []model.Level{model.LevelAAA, model.LevelAA, model.LevelAPlus, model.LevelA})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given an otherwise valid config", t, func() {
		cfg := config.New()

		cases := map[string]func(*config.Config){
			"empty addr":        func(c *config.Config) { c.Addr = "" },
			"zero ttl":          func(c *config.Config) { c.CacheTTLMS = 0 },
			"negative top n":    func(c *config.Config) { c.TopN = -1 },
			"zero leader limit": func(c *config.Config) { c.MaxLeadersLimit = 0 },
			"top n above limit": func(c *config.Config) { c.TopN, c.MaxLeadersLimit = 12, 10 },
			"no chart levels":   func(c *config.Config) { c.ChartLevels = nil },
			"unknown level":     func(c *config.Config) { c.ChartLevels = []string{"AAA", "Low-A"} },
			"inverted bracket":  func(c *config.Config) { c.AgeBrackets = []stats.AgeBracket{{Label: "x", Min: 25, Max: 20}} },
		}

		for name, mutate := range cases {
			convey.Convey("When the config has "+name, func() {
				mutate(cfg)

				convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
					convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When top n equals the leader limit", func() {
			cfg.TopN, cfg.MaxLeadersLimit = 10, 10
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
