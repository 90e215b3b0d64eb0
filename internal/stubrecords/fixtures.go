package stubrecords

import (
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
)

// Default stub account.
const (
	defaultEmail    = "awa.diop@esp.sn"
	defaultPassword = "passer123"
	defaultToken    = "stub-token-awa"
)

// Fixtures is the canned dataset the stub serves.
type Fixtures struct {
	User        model.User
	Enrollments []model.Enrollment
	Semesters   []model.Semester
	Sessions    []model.ExamSession
	Window      model.ReclamationWindow
}

// DefaultFixtures returns one plausible student: a second-year software
// engineering enrollment with one graded semester.
func DefaultFixtures() *Fixtures {
	return &Fixtures{
		User: model.User{
			ID:        7,
			Email:     defaultEmail,
			INE:       "N02345620211",
			FirstName: "Awa",
			LastName:  "Diop",
			Phone:     "770000000",
			Activated: true,
		},
		Enrollments: []model.Enrollment{
			{
				ID:    42,
				Date:  "2025-11-02",
				State: "VALIDE",
				Level: model.Level{
					ID:       3,
					Code:     "DIC2",
					Label:    "Deuxième année ingénieur",
					Terminal: false,
					Formation: model.Formation{
						ID:   9,
						Code: "GIT",
						Name: "Génie Informatique et Télécommunications",
					},
				},
				AcademicYear: model.AcademicYear{ID: 5, Name: "2025-2026", Active: true},
				Group:        model.Group{ID: 2, Code: "GIT-A", Label: "Groupe A"},
			},
		},
		Semesters: []model.Semester{
			{ID: 11, Name: "Semestre 1", Active: true},
			{ID: 12, Name: "Semestre 2", Active: false},
		},
		Sessions: []model.ExamSession{
			{ID: 1, Label: "normal"},
			{ID: 2, Label: "rattrapage"},
		},
		Window: model.ReclamationWindow{
			ID:     5,
			Start:  "2026-01-10",
			End:    "2026-01-20",
			Active: true,
		},
	}
}

// ResultSet returns the canned grade sheet for a semester and session. The
// second semester comes back ungraded so the empty path is exercisable.
func (f *Fixtures) ResultSet(semesterID, sessionID string) results.StudentResultSet {
	rs := results.StudentResultSet{
		LastName:      f.User.LastName,
		FirstName:     f.User.FirstName,
		SemesterLabel: "Semestre 1",
		Label:         f.Enrollments[0].Level.Label,
		SessionLabel:  "normal",
	}
	if semesterID != "11" {
		rs.SemesterLabel = "Semestre 2"
		rs.OverallAverage = "0.00"
		return rs
	}
	if sessionID == "2" {
		rs.SessionLabel = "rattrapage"
	}

	rs.OverallAverage = "12.85"
	rs.Units = []results.TeachingUnit{
		{
			Title:   "UE1: Programmation fonctionnelle et logique",
			Average: score(14.25),
			Credit:  6,
			History: results.UnitHistory{NewCode: "GIT21", Title: "Programmation", Type: "FONDAMENTALE"},
			Elements: []results.ConstituentElement{
				{Title: "EC1: Programmation fonctionnelle", CC: score(13), DS: score(15), Average: score(14.5), Coefficient: 2, Credit: 3},
				{Title: "EC2: Programmation logique", CC: score(14), DS: score(14), Average: score(14), Coefficient: 2, Credit: 3},
			},
		},
		{
			Title:   "UE2: Réseaux et protocoles",
			Average: score(11.1),
			Credit:  5,
			History: results.UnitHistory{NewCode: "GIT22", Title: "Réseaux", Type: "FONDAMENTALE"},
			Elements: []results.ConstituentElement{
				{Title: "EC1: Réseaux locaux", CC: score(10), TP: score(13), Average: score(11.1), Coefficient: 3, Credit: 5},
			},
		},
		{
			Title:   "UE3: Mathématiques de l'ingénieur",
			Average: score(8.75),
			Credit:  4,
			Elements: []results.ConstituentElement{
				{Title: "EC1: Probabilités", DS: score(8.75), Average: score(8.75), Coefficient: 2, Credit: 4, Absences: 1},
			},
		},
		{
			// Not graded yet; distinct from a zero average.
			Title:  "UE4: Anglais technique",
			Credit: 2,
		},
	}
	return rs
}

func score(v float64) *float64 { return &v }
