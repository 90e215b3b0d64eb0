package grades_test

import (
	"testing"

	"github.com/sunugal/releves/internal/domain/grades"
	"github.com/sunugal/releves/internal/domain/results"
	. "github.com/smartystreets/goconvey/convey"
)

func avg(v float64) *float64 { return &v }

func unit(average *float64, credit float64) results.TeachingUnit {
	return results.TeachingUnit{Average: average, Credit: credit}
}

func TestOverallAverage(t *testing.T) {
	Convey("Given a result set with an authoritative moyenneG", t, func() {
		rs := results.StudentResultSet{
			OverallAverage: "12.50",
			Units: []results.TeachingUnit{
				unit(avg(8), 10), // fallback would be 8.00
			},
		}

		Convey("Then the authoritative value wins over the fallback", func() {
			So(grades.OverallAverage(rs), ShouldEqual, "12.50")
		})
	})

	Convey("Given moyenneG equal to 0.00", t, func() {
		rs := results.StudentResultSet{
			OverallAverage: "0.00",
			Units: []results.TeachingUnit{
				unit(avg(14), 6),
				unit(avg(8), 4),
			},
		}

		Convey("Then the credit-weighted fallback is computed", func() {
			// (14*6 + 8*4) / 10 = 11.60
			So(grades.OverallAverage(rs), ShouldEqual, "11.60")
		})
	})

	Convey("Given an absent moyenneG", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				unit(avg(12), 5),
				unit(avg(10), 5),
			},
		}

		Convey("Then the fallback is formatted to two decimals", func() {
			So(grades.OverallAverage(rs), ShouldEqual, "11.00")
		})
	})

	Convey("Given no graded units", t, func() {
		Convey("When the unit list is empty", func() {
			rs := results.StudentResultSet{}
			So(grades.OverallAverage(rs), ShouldEqual, "0.00")
		})

		Convey("When every unit is ungraded", func() {
			rs := results.StudentResultSet{
				Units: []results.TeachingUnit{
					unit(nil, 6),
					unit(nil, 4),
				},
			}
			So(grades.OverallAverage(rs), ShouldEqual, "0.00")
		})

		Convey("When graded units carry zero credit", func() {
			rs := results.StudentResultSet{
				Units: []results.TeachingUnit{
					unit(avg(15), 0),
				},
			}
			So(grades.OverallAverage(rs), ShouldEqual, "0.00")
		})
	})

	Convey("Given a graded failing unit at zero", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				unit(avg(0), 5),
				unit(avg(16), 5),
			},
		}

		Convey("Then the zero grade still weighs in the denominator", func() {
			So(grades.OverallAverage(rs), ShouldEqual, "8.00")
		})
	})

	Convey("Aggregation is idempotent", t, func() {
		rs := results.StudentResultSet{
			OverallAverage: "0.00",
			Units: []results.TeachingUnit{
				unit(avg(14), 6),
				unit(avg(8), 4),
			},
		}

		first := grades.OverallAverage(rs)
		second := grades.OverallAverage(rs)
		So(first, ShouldEqual, second)
	})
}

func TestCredits(t *testing.T) {
	Convey("Given a mixed unit list", t, func() {
		units := []results.TeachingUnit{
			unit(avg(14), 6), // passing
			unit(avg(8), 4),  // failing
			unit(nil, 3),     // ungraded, excluded from earned
			unit(avg(10), 0), // passing but zero credit
			unit(avg(18), 2), // passing
		}

		Convey("Then earned counts only passing units", func() {
			So(grades.CreditsEarned(units), ShouldEqual, 8)
		})

		Convey("Then possible counts every unit", func() {
			So(grades.CreditsPossible(units), ShouldEqual, 15)
		})

		Convey("Then earned never exceeds possible", func() {
			So(grades.CreditsEarned(units), ShouldBeLessThanOrEqualTo, grades.CreditsPossible(units))
		})
	})

	Convey("Given two units on opposite sides of the threshold", t, func() {
		units := []results.TeachingUnit{
			unit(avg(14), 6),
			unit(avg(8), 4),
		}

		So(grades.CreditsEarned(units), ShouldEqual, 6)
		So(grades.CreditsPossible(units), ShouldEqual, 10)
	})

	Convey("Given an empty unit list", t, func() {
		So(grades.CreditsEarned(nil), ShouldEqual, 0)
		So(grades.CreditsPossible(nil), ShouldEqual, 0)
	})
}

func TestPassed(t *testing.T) {
	Convey("Given formatted averages around the threshold", t, func() {
		Convey("Then exactly 10.00 passes", func() {
			So(grades.Passed("10.00"), ShouldBeTrue)
		})

		Convey("Then 9.99 fails", func() {
			So(grades.Passed("9.99"), ShouldBeFalse)
		})

		Convey("Then garbage fails", func() {
			So(grades.Passed("n/a"), ShouldBeFalse)
			So(grades.Passed(""), ShouldBeFalse)
		})
	})
}

func TestPassThresholdOnUnits(t *testing.T) {
	Convey("Given units at the pass boundary", t, func() {
		units := []results.TeachingUnit{
			unit(avg(10.00), 5),
			unit(avg(9.99), 5),
		}

		Convey("Then only the unit at exactly 10.00 earns its credits", func() {
			So(grades.CreditsEarned(units), ShouldEqual, 5)
		})
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given a result set without a usable overall figure", t, func() {
		rs := results.StudentResultSet{
			OverallAverage: "0.00",
			Absences:       2,
			Units: []results.TeachingUnit{
				unit(avg(14), 6),
				unit(avg(8), 4),
			},
		}

		s := grades.Summarize(rs)

		Convey("Then all aggregates are consistent", func() {
			So(s.OverallAverage, ShouldEqual, "11.60")
			So(s.Passed, ShouldBeTrue)
			So(s.CreditsEarned, ShouldEqual, 6)
			So(s.CreditsPossible, ShouldEqual, 10)
			So(s.Absences, ShouldEqual, 2)
		})

		Convey("Then summarizing twice yields identical output", func() {
			So(grades.Summarize(rs), ShouldResemble, s)
		})
	})
}
