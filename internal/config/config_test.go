package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/config"
	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.Source, convey.ShouldEqual, "generate")
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.NeutralRating, convey.ShouldEqual, 60)
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, 5*time.Minute)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then windows parse into presets", func() {
			ws, err := cfg.ParsedWindows()
			convey.So(err, convey.ShouldBeNil)
			convey.So(ws, convey.ShouldResemble, []window.Window{window.Last7, window.Last30, window.Season})
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given invalid configurations", t, func() {
		ctx := context.Background()
		cases := map[string]func(*config.Config){
			"empty addr":          func(c *config.Config) { c.Addr = "" },
			"unknown source":      func(c *config.Config) { c.Source = "ftp" },
			"http without urls":   func(c *config.Config) { c.Source = "http" },
			"file without dir":    func(c *config.Config) { c.Source = "file"; c.DataDir = "" },
			"too many teams":      func(c *config.Config) { c.GeneratorTeams = 31 },
			"bad log format":      func(c *config.Config) { c.LogFormat = "xml" },
			"neutral out of band": func(c *config.Config) { c.NeutralRating = 100 },
			"zero timeout":        func(c *config.Config) { c.FetchTimeoutMS = 0 },
			"bad window":          func(c *config.Config) { c.Windows = []string{"seven"} },
			"no windows":          func(c *config.Config) { c.Windows = nil },
			"bad metric order":    func(c *config.Config) { c.MetricOrder = map[string]string{"pts": "up"} },
			"zero list limit":     func(c *config.Config) { c.MaxListLimit = 0 },
		}
		for name, mutate := range cases {
			cfg := config.New(ctx)
			mutate(cfg)
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			if err == nil {
				t.Errorf("%s: expected a validation error", name)
			}
		}
	})

	convey.Convey("Source problems carry their own sentinels", t, func() {
		cfg := config.New(context.Background())
		cfg.Source = "ftp"
		err := cfg.Validate()
		convey.So(errors.Is(err, config.ErrUnknownSource), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, `"ftp"`)

		cfg = config.New(context.Background())
		cfg.Source = "http"
		cfg.TeamsURL = "http://example.test/teams.json"
		err = cfg.Validate()
		convey.So(errors.Is(err, config.ErrSourceSettings), convey.ShouldBeTrue)
		convey.So(errors.Is(err, config.ErrUnknownSource), convey.ShouldBeFalse)
		convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
	})

	convey.Convey("Metric order overrides parse into ranking orders", t, func() {
		cfg := config.New(context.Background())
		cfg.MetricOrder = map[string]string{"pts": "asc", "tov": "desc"}
		orders, err := cfg.MetricOrders()
		convey.So(err, convey.ShouldBeNil)
		convey.So(orders, convey.ShouldResemble, map[string]ranking.Order{"pts": ranking.Ascending, "tov": ranking.Descending})
	})
}
