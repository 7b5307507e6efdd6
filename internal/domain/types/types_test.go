package types

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/prospectboard/internal/domain/model"
	"github.com/okian/prospectboard/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRosterFilter(t *testing.T) {
	Convey("Given prospects of different kinds and levels", t, func() {
		h := model.Prospect{Name: "h", Kind: model.KindHitter, Level: model.LevelAA}
		p := model.Prospect{Name: "p", Kind: model.KindPitcher, Level: model.LevelMLB}

		Convey("When the filter is empty", func() {
			f := RosterFilter{}

			Convey("Then every prospect matches", func() {
				So(f.Match(h), ShouldBeTrue)
				So(f.Match(p), ShouldBeTrue)
			})
		})

		Convey("When filtering by kind", func() {
			f := RosterFilter{Kind: model.KindPitcher}
			So(f.Match(h), ShouldBeFalse)
			So(f.Match(p), ShouldBeTrue)
		})

		Convey("When filtering by level", func() {
			f := RosterFilter{Level: model.LevelAA}
			So(f.Match(h), ShouldBeTrue)
			So(f.Match(p), ShouldBeFalse)
		})

		Convey("When filtering by kind and level", func() {
			f := RosterFilter{Kind: model.KindHitter, Level: model.LevelMLB}
			So(f.Match(h), ShouldBeFalse)
			So(f.Match(p), ShouldBeFalse)
		})
	})
}

func TestViewEncoding(t *testing.T) {
	Convey("Given a leaders view", t, func() {
		v := LeadersView{
			SnapshotInfo: SnapshotInfo{ID: "snap-1", ProducedAt: time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), Source: "embedded", Count: 10},
			Metric:       "k_per_ip",
			Direction:    "desc",
			Leaders: []Leader{{
				Position: 1,
				Value:    stats.Rate{},
				Prospect: model.Prospect{Name: "Opener", Kind: model.KindPitcher, Level: model.LevelAA, Age: 21},
			}},
		}

		Convey("When encoding to JSON", func() {
			out, err := json.Marshal(v)
			So(err, ShouldBeNil)

			Convey("Then snapshot fields should be flattened and undefined values null", func() {
				So(string(out), ShouldContainSubstring, `"id":"snap-1"`)
				So(string(out), ShouldContainSubstring, `"produced_at":"2025-04-01T09:00:00Z"`)
				So(string(out), ShouldContainSubstring, `"value":null`)
			})
		})
	})
}

func TestParseFilter(t *testing.T) {
	Convey("Given raw query values", t, func() {
		Convey("When both are empty", func() {
			f, err := ParseFilter("", "")
			So(err, ShouldBeNil)
			So(f.IsZero(), ShouldBeTrue)
		})

		Convey("When both are valid", func() {
			f, err := ParseFilter(" Pitcher", "a+")
			So(err, ShouldBeNil)
			So(f, ShouldResemble, RosterFilter{Kind: model.KindPitcher, Level: model.LevelAPlus})
		})

		Convey("When either is unknown", func() {
			_, err := ParseFilter("catcher", "")
			So(errors.Is(err, ErrInvalidFilter), ShouldBeTrue)
			_, err = ParseFilter("", "Low-A")
			So(errors.Is(err, ErrInvalidFilter), ShouldBeTrue)
		})
	})
}
