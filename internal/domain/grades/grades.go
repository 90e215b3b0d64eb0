// Package grades computes summary scalars and chart-ready projections from a
// student result set. Everything here is a pure transformation: no hidden
// state, identical output for identical input.
package grades

import (
	"strconv"

	"github.com/sunugal/releves/internal/domain/results"
)

// Aggregation constants.
const (
	// PassThreshold is the inclusive passing bound on the 0-20 scale.
	PassThreshold = 10.0

	// RadarMax is the full mark of every radar axis.
	RadarMax = 20.0
)

// OverallAverage returns the semester average as a 2-decimal string.
// Upstream's authoritative moyenneG wins whenever it parses to a positive
// number; otherwise the credit-weighted mean over graded units is computed.
// "0.00" is returned when no graded credit exists. The preference order is
// fixed: authoritative value first, weighted fallback second.
func OverallAverage(rs results.StudentResultSet) string {
	if v, err := strconv.ParseFloat(rs.OverallAverage, 64); err == nil && v > 0 {
		return rs.OverallAverage
	}

	var weighted, credits float64
	for _, u := range rs.Units {
		if u.Average == nil {
			continue
		}
		weighted += *u.Average * u.Credit
		credits += u.Credit
	}
	if credits == 0 {
		return "0.00"
	}
	return strconv.FormatFloat(weighted/credits, 'f', 2, 64)
}

// CreditsEarned sums the credits of every unit graded at or above the pass
// threshold. Ungraded units earn nothing.
func CreditsEarned(units []results.TeachingUnit) float64 {
	var total float64
	for _, u := range units {
		if u.Average != nil && *u.Average >= PassThreshold {
			total += u.Credit
		}
	}
	return total
}

// CreditsPossible sums the credits of all units regardless of pass/fail.
func CreditsPossible(units []results.TeachingUnit) float64 {
	var total float64
	for _, u := range units {
		total += u.Credit
	}
	return total
}

// Passed reports whether a formatted average meets the pass threshold.
// Unparseable input counts as failing.
func Passed(average string) bool {
	v, err := strconv.ParseFloat(average, 64)
	if err != nil {
		return false
	}
	return v >= PassThreshold
}

// Summary bundles the scalar aggregates of one result set.
type Summary struct {
	OverallAverage  string  `json:"overallAverage"`
	Passed          bool    `json:"passed"`
	CreditsEarned   float64 `json:"creditsEarned"`
	CreditsPossible float64 `json:"creditsPossible"`
	Absences        int     `json:"absences"`
}

// Summarize computes the scalar aggregates for a result set.
func Summarize(rs results.StudentResultSet) Summary {
	avg := OverallAverage(rs)
	return Summary{
		OverallAverage:  avg,
		Passed:          Passed(avg),
		CreditsEarned:   CreditsEarned(rs.Units),
		CreditsPossible: CreditsPossible(rs.Units),
		Absences:        rs.Absences,
	}
}
