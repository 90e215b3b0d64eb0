// Package results holds the grade result-set value types returned by the
// academic records API for one (enrollment, semester, session) selection.
//
// Averages are pointers on purpose: upstream distinguishes "graded with 0"
// from "not yet graded" by sending 0 vs null, and the aggregation rules
// depend on that distinction.
package results

import "fmt"

// Grading scale bounds.
const (
	MinScore = 0.0
	MaxScore = 20.0
)

// ConstituentElement is one gradable sub-component of a teaching unit.
// The average is supplied by upstream and trusted as-is; it is never
// recomputed from cc/tp/ds here.
type ConstituentElement struct {
	CC          *float64 `json:"cc"` // continuous assessment
	TP          *float64 `json:"tp"` // lab work
	DS          *float64 `json:"ds"` // written exam
	Average     *float64 `json:"moyenne"`
	Coefficient float64  `json:"coefficient"`
	Credit      float64  `json:"credit"`
	Title       string   `json:"intitule"`
	Absences    int      `json:"nbAbence"`
}

// UnitHistory carries the historical metadata of a teaching unit, in
// particular its current code.
type UnitHistory struct {
	ID      int64   `json:"id"`
	NewCode string  `json:"newCode"`
	Title   string  `json:"intitules"`
	Credit  float64 `json:"credit"`
	Type    string  `json:"typeUniteEnseignement"`
}

// TeachingUnit is one gradable unit carrying credits.
type TeachingUnit struct {
	Average  *float64             `json:"moyenneUE"`
	Credit   float64              `json:"credit"`
	Title    string               `json:"intituleUE"`
	Absences int                  `json:"nbAbence"`
	History  UnitHistory          `json:"historiqueUniteEnseignement"`
	Elements []ConstituentElement `json:"provisoirs"`
}

// Code returns the unit's current code from its historical metadata.
func (u TeachingUnit) Code() string {
	return u.History.NewCode
}

// StudentResultSet is the top-level aggregate for one selection.
// OverallAverage carries upstream's authoritative moyenneG; empty or "0.00"
// means "absent, compute the fallback".
type StudentResultSet struct {
	LastName       string         `json:"nom"`
	FirstName      string         `json:"prenom"`
	SemesterLabel  string         `json:"nomSemestre"`
	Label          string         `json:"libelle"`
	OverallAverage string         `json:"moyenneG"`
	SessionLabel   string         `json:"session"`
	Absences       int            `json:"nbAbences"`
	Units          []TeachingUnit `json:"toutues"`
	Repechage      bool           `json:"isrepeche"`
}

// Validate fails fast on result sets that violate the grading model, so
// malformed upstream payloads surface as a fetch error instead of leaking
// nonsense into the aggregation.
func (rs *StudentResultSet) Validate() error {
	for i, u := range rs.Units {
		if u.Credit < 0 {
			return fmt.Errorf("unit %d (%s): negative credit %v", i, u.Title, u.Credit)
		}
		if err := checkScore("average", u.Average); err != nil {
			return fmt.Errorf("unit %d (%s): %w", i, u.Title, err)
		}
		for j, e := range u.Elements {
			for name, v := range map[string]*float64{
				"cc": e.CC, "tp": e.TP, "ds": e.DS, "average": e.Average,
			} {
				if err := checkScore(name, v); err != nil {
					return fmt.Errorf("unit %d element %d (%s): %w", i, j, e.Title, err)
				}
			}
		}
	}
	return nil
}

func checkScore(name string, v *float64) error {
	if v == nil {
		return nil
	}
	if *v < MinScore || *v > MaxScore {
		return fmt.Errorf("%s %v out of range [%v, %v]", name, *v, MinScore, MaxScore)
	}
	return nil
}
