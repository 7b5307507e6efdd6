package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/prospectboard/internal/adapters/repository"
	service "github.com/okian/prospectboard/internal/app"
	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	"github.com/okian/prospectboard/internal/domain/types"
	"github.com/okian/prospectboard/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

func startedService(opts ...service.Option) *service.Service {
	svc := service.New(opts...)
	So(svc.Start(context.Background()), ShouldBeNil)
	return svc
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should report default stats before start", func() {
			stats := svc.GetStats()
			So(stats["started"], ShouldEqual, false)
			So(stats["ttl_ms"], ShouldEqual, int64(3_600_000))
			So(stats["max_leaders_limit"], ShouldEqual, 100)
			So(stats["top_n"], ShouldEqual, 5)
		})

		Convey("Then reads should fail until started", func() {
			_, err := svc.Roster(context.Background(), types.RosterFilter{})
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			_, err = svc.Refresh(context.Background())
			So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			So(svc.SnapshotAge(), ShouldEqual, 0)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithTTL(time.Minute),
			service.WithMaxLeadersLimit(10),
			service.WithDeriver(stats.NewDeriver(stats.WithTopN(3))),
			service.WithLogger(logger.Nop()),
		)

		Convey("Then the options should be applied", func() {
			stats := svc.GetStats()
			So(stats["ttl_ms"], ShouldEqual, int64(60_000))
			So(stats["max_leaders_limit"], ShouldEqual, 10)
			So(stats["top_n"], ShouldEqual, 3)
		})
	})
}

func TestService_StartStop(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New()
		defer svc.Stop()

		Convey("When starting the service", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			err := svc.Start(ctx)

			Convey("Then it should start successfully", func() {
				So(err, ShouldBeNil)
				stats := svc.GetStats()
				So(stats["started"], ShouldEqual, true)
				So(stats["source"], ShouldEqual, "embedded")
				So(stats["cache"], ShouldHaveSameTypeAs, repository.CacheStats{})
			})

			Convey("And starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("And stopping should mark it stopped", func() {
				svc.Stop()
				So(svc.GetStats()["started"], ShouldEqual, false)
			})
		})
	})

	Convey("Given a source that cannot load", t, func() {
		failing := repository.SourceFunc(func(context.Context) (model.Roster, error) {
			return nil, repository.ErrSourceUnavailable
		})
		svc := service.New(service.WithSource(failing), service.WithLogger(logger.Nop()))

		Convey("Then startup should fail", func() {
			err := svc.Start(context.Background())
			So(errors.Is(err, repository.ErrSourceUnavailable), ShouldBeTrue)
			So(svc.GetStats()["started"], ShouldEqual, false)
		})
	})
}

func TestService_Roster(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When reading the full roster", func() {
			view, err := svc.Roster(ctx, types.RosterFilter{})
			So(err, ShouldBeNil)

			Convey("Then ranks 1..10 should come back in order", func() {
				So(view.Count, ShouldEqual, 10)
				So(view.ID, ShouldNotBeEmpty)
				for i, p := range view.Prospects {
					So(p.Rank, ShouldEqual, i+1)
				}
			})

			Convey("Then a second read inside the window should return the same snapshot", func() {
				again, err := svc.Roster(ctx, types.RosterFilter{})
				So(err, ShouldBeNil)
				So(again.ID, ShouldEqual, view.ID)
				So(again.Prospects, ShouldResemble, view.Prospects)
			})
		})

		Convey("When filtering by kind and level", func() {
			f, err := types.ParseFilter("pitcher", "mlb")
			So(err, ShouldBeNil)
			view, err := svc.Roster(ctx, f)
			So(err, ShouldBeNil)

			Convey("Then only matching prospects should remain", func() {
				So(view.Count, ShouldEqual, 2)
				for _, p := range view.Prospects {
					So(p.IsPitcher(), ShouldBeTrue)
					So(p.Level, ShouldEqual, model.LevelMLB)
				}
			})
		})

		Convey("When the filter is invalid", func() {
			_, err := types.ParseFilter("catcher", "")
			So(errors.Is(err, types.ErrInvalidFilter), ShouldBeTrue)
			_, err = types.ParseFilter("", "Low-A")
			So(errors.Is(err, types.ErrInvalidFilter), ShouldBeTrue)
		})
	})
}

func TestService_Prospect(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()

		Convey("When looking up an existing rank", func() {
			p, err := svc.Prospect(context.Background(), 8)
			So(err, ShouldBeNil)
			So(p.Name, ShouldEqual, "Drew Thorpe")
			So(p.Pitching.IP.String(), ShouldEqual, "158.1")
		})

		Convey("When looking up a missing rank", func() {
			_, err := svc.Prospect(context.Background(), 42)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestService_Leaders(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService(service.WithMaxLeadersLimit(20))
		defer svc.Stop()
		ctx := context.Background()

		Convey("When ranking by ERA with the default direction", func() {
			view, err := svc.Leaders(ctx, "era", 5, "")
			So(err, ShouldBeNil)

			Convey("Then the lowest ERA should lead", func() {
				So(view.Direction, ShouldEqual, "asc")
				So(len(view.Leaders), ShouldEqual, 4)
				So(view.Leaders[0].Prospect.Name, ShouldEqual, "Drew Thorpe")
				So(view.Leaders[0].Value.Value, ShouldEqual, 2.68)
				So(view.Leaders[3].Position, ShouldEqual, 4)
				for i := 1; i < len(view.Leaders); i++ {
					So(view.Leaders[i-1].Value.Value, ShouldBeLessThanOrEqualTo, view.Leaders[i].Value.Value)
				}
			})
		})

		Convey("When ranking by strikeouts per inning", func() {
			view, err := svc.Leaders(ctx, "k_per_ip", 2, "desc")
			So(err, ShouldBeNil)
			So(view.Leaders[0].Prospect.Name, ShouldEqual, "Drew Thorpe")
			So(view.Leaders[0].Value.Value, ShouldEqual, 1.238)
		})

		Convey("When the direction is overridden", func() {
			view, err := svc.Leaders(ctx, "avg", 1, "asc")
			So(err, ShouldBeNil)
			So(view.Leaders[0].Prospect.Name, ShouldEqual, "Everson Pereira")
		})

		Convey("When the request is invalid", func() {
			_, err := svc.Leaders(ctx, "era", 0, "")
			So(errors.Is(err, service.ErrInvalidLimit), ShouldBeTrue)
			_, err = svc.Leaders(ctx, "era", 21, "")
			So(errors.Is(err, service.ErrLimitExceeded), ShouldBeTrue)
			_, err = svc.Leaders(ctx, "ops", 5, "")
			So(errors.Is(err, stats.ErrUnknownMetric), ShouldBeTrue)
			_, err = svc.Leaders(ctx, "era", 5, "up")
			So(errors.Is(err, stats.ErrUnknownDirection), ShouldBeTrue)
		})
	})
}

func TestService_SummaryAndCharts(t *testing.T) {
	Convey("Given a started service", t, func() {
		svc := startedService()
		defer svc.Stop()
		ctx := context.Background()

		Convey("When summarizing", func() {
			view, err := svc.Summary(ctx)
			So(err, ShouldBeNil)
			So(view.Summary.Total, ShouldEqual, 10)
			So(view.Summary.AverageAge, ShouldEqual, 22.4)
			So(view.Summary.AverageLevel, ShouldEqual, model.LevelAAA)
		})

		Convey("When building charts", func() {
			view, err := svc.Charts(ctx)
			So(err, ShouldBeNil)
			So(len(view.Charts), ShouldEqual, 4)
			So(view.Count, ShouldEqual, 10)
		})
	})
}
