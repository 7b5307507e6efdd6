package model_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	model "github.com/okian/prospectboard/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func hitter(name string, rank, age int) model.Prospect {
	return model.Prospect{
		Name: name, Position: "OF", Level: model.LevelAA, Age: age, Rank: rank,
		Kind:    model.KindHitter,
		Hitting: &model.HittingLine{AVG: 0.280, HR: 10, RBI: 40, OBP: 0.350, SLG: 0.450},
	}
}

func pitcher(name string, rank, age int) model.Prospect {
	return model.Prospect{
		Name: name, Position: "RHP", Level: model.LevelAAA, Age: age, Rank: rank,
		Kind:     model.KindPitcher,
		Pitching: &model.PitchingLine{ERA: 3.10, IP: model.InningsPitched{Whole: 100, Outs: 1}, SO: 120, WHIP: 1.15, Wins: 8},
	}
}

func TestInningsPitched(t *testing.T) {
	convey.Convey("Given innings in traditional notation", t, func() {
		convey.Convey("When parsing 112.1", func() {
			ip, err := model.ParseInnings("112.1")

			convey.Convey("Then it should be 112 innings and one out", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(ip.Whole, convey.ShouldEqual, 112)
				convey.So(ip.Outs, convey.ShouldEqual, 1)
				convey.So(ip.TotalOuts(), convey.ShouldEqual, 337)
				convey.So(ip.Innings(), convey.ShouldAlmostEqual, 112.0+1.0/3.0, 1e-9)
				convey.So(ip.String(), convey.ShouldEqual, "112.1")
			})
		})

		convey.Convey("When parsing whole innings", func() {
			ip, err := model.ParseInnings("45")
			convey.So(err, convey.ShouldBeNil)
			convey.So(ip, convey.ShouldResemble, model.InningsPitched{Whole: 45})
		})

		convey.Convey("When parsing invalid fractions", func() {
			for _, bad := range []string{"112.3", "112.33", "-1.0", "", "abc", "1.x"} {
				_, err := model.ParseInnings(bad)
				convey.So(errors.Is(err, model.ErrInningsNotation), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When adding partial innings", func() {
			sum := model.InningsPitched{Whole: 1, Outs: 2}.Add(model.InningsPitched{Whole: 0, Outs: 2})
			convey.So(sum, convey.ShouldResemble, model.InningsPitched{Whole: 2, Outs: 1})
		})

		convey.Convey("When round-tripping through JSON", func() {
			data, err := json.Marshal(model.PitchingLine{IP: model.InningsPitched{Whole: 158, Outs: 1}})
			convey.So(err, convey.ShouldBeNil)
			convey.So(string(data), convey.ShouldContainSubstring, `"ip":158.1`)

			var back model.PitchingLine
			convey.So(json.Unmarshal(data, &back), convey.ShouldBeNil)
			convey.So(back.IP, convey.ShouldResemble, model.InningsPitched{Whole: 158, Outs: 1})
		})

		convey.Convey("When decoding from YAML", func() {
			var line model.PitchingLine
			err := yaml.Unmarshal([]byte("era: 2.68\nip: 144.2\nso: 168\n"), &line)
			convey.So(err, convey.ShouldBeNil)
			convey.So(line.IP, convey.ShouldResemble, model.InningsPitched{Whole: 144, Outs: 2})
		})
	})
}

func TestLevel(t *testing.T) {
	convey.Convey("Given the level ladder", t, func() {
		convey.So(model.Levels(), convey.ShouldResemble, []model.Level{"ROK", "A", "A+", "AA", "AAA", "MLB"})

		ord, ok := model.LevelAAA.Ordinal()
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(ord, convey.ShouldEqual, 4)
		convey.So(model.LevelAt(ord), convey.ShouldEqual, model.LevelAAA)
		convey.So(model.LevelAt(99), convey.ShouldEqual, model.LevelMLB)

		l, ok := model.ParseLevel(" a+ ")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(l, convey.ShouldEqual, model.LevelAPlus)

		_, ok = model.ParseLevel("A +")
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(model.Level("Low-A").Valid(), convey.ShouldBeFalse)
	})
}

func TestRosterSorting(t *testing.T) {
	convey.Convey("Given a roster mixing ranked and unranked prospects", t, func() {
		r := model.Roster{
			hitter("unranked-old", 0, 25),
			pitcher("rank-3", 3, 24),
			hitter("unranked-young", 0, 19),
			hitter("rank-1", 1, 22),
			pitcher("unranked-19-second", 0, 19),
			hitter("rank-2", 2, 30),
		}

		convey.Convey("When sorting", func() {
			sorted := r.Sorted()

			convey.Convey("Then ranked entries come first in rank order", func() {
				names := make([]string, len(sorted))
				for i, p := range sorted {
					names[i] = p.Name
				}
				convey.So(names, convey.ShouldResemble, []string{
					"rank-1", "rank-2", "rank-3",
					"unranked-young", "unranked-19-second", "unranked-old",
				})
				convey.So(sorted.IsSorted(), convey.ShouldBeTrue)
			})

			convey.Convey("And the input is left untouched", func() {
				convey.So(r[0].Name, convey.ShouldEqual, "unranked-old")
				convey.So(r.IsSorted(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When partitioning by kind", func() {
			convey.So(len(r.Hitters()), convey.ShouldEqual, 4)
			convey.So(len(r.Pitchers()), convey.ShouldEqual, 2)
			for _, p := range r {
				convey.So(p.IsHitter() != p.IsPitcher(), convey.ShouldBeTrue)
			}
		})

		convey.Convey("When looking up by rank", func() {
			p, ok := r.ByRank(2)
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(p.Name, convey.ShouldEqual, "rank-2")

			_, ok = r.ByRank(0)
			convey.So(ok, convey.ShouldBeFalse)
			_, ok = r.ByRank(7)
			convey.So(ok, convey.ShouldBeFalse)
		})
	})
}

func TestValidate(t *testing.T) {
	convey.Convey("Given prospect records", t, func() {
		convey.Convey("When the record is well formed", func() {
			convey.So(model.Validate(0, hitter("ok", 1, 20)), convey.ShouldBeNil)
			convey.So(model.Validate(1, pitcher("ok", 2, 20)), convey.ShouldBeNil)
		})

		convey.Convey("When the kind is missing", func() {
			p := hitter("no-kind", 1, 20)
			p.Kind = ""
			err := model.Validate(4, p)

			convey.Convey("Then the error names the index and the field", func() {
				var ve *model.ValidationError
				convey.So(errors.As(err, &ve), convey.ShouldBeTrue)
				convey.So(ve.Index, convey.ShouldEqual, 4)
				convey.So(ve.Field, convey.ShouldEqual, "kind")
				convey.So(errors.Is(err, model.ErrValidation), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "record 4 (no-kind)")
			})
		})

		convey.Convey("When a record carries both lines", func() {
			p := hitter("both", 1, 20)
			p.Pitching = &model.PitchingLine{}
			var ve *model.ValidationError
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "pitching")
		})

		convey.Convey("When a pitcher has no pitching line", func() {
			p := pitcher("empty", 1, 20)
			p.Pitching = nil
			var ve *model.ValidationError
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "pitching")
		})

		convey.Convey("When values are out of range", func() {
			p := hitter("avg", 1, 20)
			p.Hitting.AVG = 1.2
			var ve *model.ValidationError
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "hitting.avg")

			p = hitter("age", 1, 0)
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "age")

			p = hitter("level", 1, 20)
			p.Level = "Low-A"
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "level")
		})

		convey.Convey("When rate values are not finite", func() {
			var ve *model.ValidationError

			p := hitter("nan", 1, 20)
			p.Hitting.AVG = math.NaN()
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "hitting.avg")

			p = hitter("slg", 1, 20)
			p.Hitting.SLG = math.Inf(1)
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "hitting.slg")

			p = pitcher("era", 1, 20)
			p.Pitching.ERA = math.Inf(1)
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "pitching.era")

			p = pitcher("whip", 1, 20)
			p.Pitching.WHIP = math.NaN()
			convey.So(errors.As(model.Validate(0, p), &ve), convey.ShouldBeTrue)
			convey.So(ve.Field, convey.ShouldEqual, "pitching.whip")
		})

		convey.Convey("When ranks collide", func() {
			err := model.ValidateRoster(model.Roster{hitter("a", 1, 20), pitcher("b", 2, 21), hitter("c", 1, 22)})
			var ve *model.ValidationError
			convey.So(errors.As(err, &ve), convey.ShouldBeTrue)
			convey.So(ve.Index, convey.ShouldEqual, 2)
			convey.So(ve.Field, convey.ShouldEqual, "rank")
		})

		convey.Convey("When a record repeats under the same identity", func() {
			err := model.ValidateRoster(model.Roster{hitter("Ben Hess", 4, 22), hitter("  ben  HESS ", 4, 22)})
			convey.So(err, convey.ShouldBeNil)
		})

		convey.Convey("When several records are unranked", func() {
			err := model.ValidateRoster(model.Roster{hitter("a", 0, 20), hitter("b", 0, 21)})
			convey.So(err, convey.ShouldBeNil)
		})
	})
}

func TestIdentity(t *testing.T) {
	convey.Convey("Given prospect names", t, func() {
		convey.So(model.Identity("  George   Lombard Jr. "), convey.ShouldEqual, "george lombard jr.")
		convey.So(model.Identity("DREW THORPE"), convey.ShouldEqual, model.Identity("drew thorpe"))
		convey.So(model.Identity(""), convey.ShouldEqual, "")
	})
}
