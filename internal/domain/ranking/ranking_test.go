package ranking_test

import (
	"testing"

	model "github.com/greenbin/bunrigo/internal/domain/model"
	ranking "github.com/greenbin/bunrigo/internal/domain/ranking"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSortByScore(t *testing.T) {
	Convey("Given a record set in file order", t, func() {
		set := model.RecordSet{
			{StudentID: "22222", Score: 20},
			{StudentID: "11111", Score: 30},
			{StudentID: "33333", Score: 10},
		}

		Convey("When sorting by score", func() {
			sorted := ranking.SortByScore(set)

			Convey("Then entries are in descending score order", func() {
				So(sorted[0].StudentID, ShouldEqual, "11111")
				So(sorted[1].StudentID, ShouldEqual, "22222")
				So(sorted[2].StudentID, ShouldEqual, "33333")
			})

			Convey("And the input set keeps its original order", func() {
				So(set[0].StudentID, ShouldEqual, "22222")
			})
		})

		Convey("When two records tie on score", func() {
			tied := model.RecordSet{
				{StudentID: "55555", Score: 20},
				{StudentID: "44444", Score: 20},
			}
			sorted := ranking.SortByScore(tied)

			Convey("Then the lower student id comes first", func() {
				So(sorted[0].StudentID, ShouldEqual, "44444")
				So(sorted[1].StudentID, ShouldEqual, "55555")
			})
		})
	})
}

func TestTopN(t *testing.T) {
	Convey("Given a record set", t, func() {
		set := model.RecordSet{
			{StudentID: "11111", Score: 30},
			{StudentID: "22222", Score: 20},
			{StudentID: "33333", Score: 10},
			{StudentID: "44444", Score: 40},
		}

		Convey("When requesting the top 3", func() {
			entries := ranking.TopN(set, 3)

			Convey("Then the three highest scores are returned in order", func() {
				So(len(entries), ShouldEqual, 3)
				So(entries[0].StudentID, ShouldEqual, "44444")
				So(entries[1].StudentID, ShouldEqual, "11111")
				So(entries[2].StudentID, ShouldEqual, "22222")
			})

			Convey("And ranks are 1-based and sequential", func() {
				for i, e := range entries {
					So(e.Rank, ShouldEqual, i+1)
				}
			})

			Convey("And scores never increase down the list", func() {
				for i := 0; i < len(entries)-1; i++ {
					So(entries[i].Score, ShouldBeGreaterThanOrEqualTo, entries[i+1].Score)
				}
			})
		})

		Convey("When requesting more than exist", func() {
			entries := ranking.TopN(set, 10)
			So(len(entries), ShouldEqual, 4)
		})

		Convey("When requesting zero or negative", func() {
			So(ranking.TopN(set, 0), ShouldBeEmpty)
			So(ranking.TopN(set, -1), ShouldBeEmpty)
		})

		Convey("When the set is empty", func() {
			So(ranking.TopN(model.RecordSet{}, 3), ShouldBeEmpty)
		})

		Convey("When two present students tie", func() {
			two := model.RecordSet{
				{StudentID: "11111", Score: 30},
				{StudentID: "22222", Score: 20},
			}
			entries := ranking.TopN(two, 2)
			So(entries[0].StudentID, ShouldEqual, "11111")
			So(entries[1].StudentID, ShouldEqual, "22222")
		})
	})
}

func TestRank(t *testing.T) {
	Convey("Given a record set", t, func() {
		set := model.RecordSet{
			{StudentID: "11111", Score: 30},
			{StudentID: "22222", Score: 20},
			{StudentID: "33333", Score: 10},
		}

		Convey("When ranking the top scorer", func() {
			rank, ok := ranking.Rank(set, "11111")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, 1)
		})

		Convey("When ranking the bottom scorer", func() {
			rank, ok := ranking.Rank(set, "33333")
			So(ok, ShouldBeTrue)
			So(rank, ShouldEqual, 3)
		})

		Convey("When ranking an unknown id", func() {
			rank, ok := ranking.Rank(set, "99999")

			Convey("Then it reports last place plus one", func() {
				So(ok, ShouldBeFalse)
				So(rank, ShouldEqual, 4)
			})
		})

		Convey("When ranking against an empty set", func() {
			rank, ok := ranking.Rank(model.RecordSet{}, "12345")
			So(ok, ShouldBeFalse)
			So(rank, ShouldEqual, 1)
		})
	})
}
