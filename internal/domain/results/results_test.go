package results_test

import (
	"encoding/json"
	"testing"

	"github.com/sunugal/releves/internal/domain/results"
	. "github.com/smartystreets/goconvey/convey"
)

func score(v float64) *float64 { return &v }

func TestValidate(t *testing.T) {
	Convey("Given a well-formed result set", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				{
					Title:   "Mathématiques",
					Average: score(12.5),
					Credit:  6,
					Elements: []results.ConstituentElement{
						{Title: "EC1: Analyse", Average: score(13), CC: score(12), DS: score(14)},
					},
				},
				{Title: "Projet", Average: nil, Credit: 0},
			},
		}

		So(rs.Validate(), ShouldBeNil)
	})

	Convey("Given a unit with negative credit", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				{Title: "Chimie", Credit: -1},
			},
		}

		So(rs.Validate(), ShouldNotBeNil)
	})

	Convey("Given an average outside the grading scale", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				{Title: "Chimie", Average: score(21), Credit: 4},
			},
		}

		So(rs.Validate(), ShouldNotBeNil)
	})

	Convey("Given an element score below zero", t, func() {
		rs := results.StudentResultSet{
			Units: []results.TeachingUnit{
				{
					Title:  "Chimie",
					Credit: 4,
					Elements: []results.ConstituentElement{
						{Title: "EC1", CC: score(-0.5)},
					},
				},
			},
		}

		So(rs.Validate(), ShouldNotBeNil)
	})
}

func TestDecode(t *testing.T) {
	Convey("Given an upstream payload with null and zero averages", t, func() {
		payload := `{
			"nom": "Diop",
			"prenom": "Awa",
			"nomSemestre": "Semestre 1",
			"moyenneG": "0.00",
			"session": "normal",
			"nbAbences": 1,
			"toutues": [
				{"moyenneUE": 0, "credit": 4, "intituleUE": "Chimie", "provisoirs": []},
				{"moyenneUE": null, "credit": 3, "intituleUE": "Projet", "provisoirs": []}
			]
		}`

		var rs results.StudentResultSet
		So(json.Unmarshal([]byte(payload), &rs), ShouldBeNil)

		Convey("Then zero decodes as a present grade", func() {
			So(rs.Units[0].Average, ShouldNotBeNil)
			So(*rs.Units[0].Average, ShouldEqual, 0)
		})

		Convey("Then null decodes as ungraded", func() {
			So(rs.Units[1].Average, ShouldBeNil)
		})

		Convey("Then the decoded set validates", func() {
			So(rs.Validate(), ShouldBeNil)
		})
	})
}
