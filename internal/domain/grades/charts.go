package grades

import (
	"sort"
	"strings"

	"github.com/sunugal/releves/internal/domain/results"
)

// Default projection configuration constants.
const (
	defaultTopElements = 5
	defaultLabelWidth  = 15
	elementLabelWidth  = 20
	fallbackUnitLabel  = "UE"
	truncationSuffix   = "..."
)

// Option applies a configuration option to the Projector.
type Option func(*Projector)

// WithTopElements caps the ranked element series length.
func WithTopElements(n int) Option {
	return func(p *Projector) {
		if n > 0 {
			p.topElements = n
		}
	}
}

// WithLabelWidth sets the unit label truncation width.
func WithLabelWidth(w int) Option {
	return func(p *Projector) {
		if w > 0 {
			p.labelWidth = w
		}
	}
}

// Projector derives chart-ready series from a unit list. All series source
// from the same unit list; the projector itself holds only display knobs.
type Projector struct {
	topElements int
	labelWidth  int
}

// NewProjector creates a projector with configuration options.
func NewProjector(opts ...Option) *Projector {
	p := &Projector{
		topElements: defaultTopElements,
		labelWidth:  defaultLabelWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RadarPoint is one axis of the per-unit performance radar.
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Max   float64 `json:"max"`
}

// Radar returns one point per unit, ungraded units plotted at zero.
func (p *Projector) Radar(units []results.TeachingUnit) []RadarPoint {
	points := make([]RadarPoint, 0, len(units))
	for _, u := range units {
		var value float64
		if u.Average != nil {
			value = *u.Average
		}
		points = append(points, RadarPoint{
			Label: unitLabel(u.Title, p.labelWidth),
			Value: value,
			Max:   RadarMax,
		})
	}
	return points
}

// PieSlice is one slice of the credit-repartition pie.
type PieSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// CreditSlices returns the two-slice earned vs remaining credit repartition.
func (p *Projector) CreditSlices(units []results.TeachingUnit) []PieSlice {
	earned := CreditsEarned(units)
	possible := CreditsPossible(units)
	return []PieSlice{
		{Label: "Crédits validés", Value: earned},
		{Label: "Crédits non validés", Value: possible - earned},
	}
}

// BarRow is one row of the per-unit average bar series.
type BarRow struct {
	Label   string  `json:"label"`
	Code    string  `json:"code"`
	Average float64 `json:"average"`
	Credit  float64 `json:"credit"`
}

// Bars returns one row per unit carrying a non-zero average.
func (p *Projector) Bars(units []results.TeachingUnit) []BarRow {
	rows := make([]BarRow, 0, len(units))
	for _, u := range units {
		if u.Average == nil || *u.Average <= 0 {
			continue
		}
		rows = append(rows, BarRow{
			Label:   unitLabel(u.Title, p.labelWidth),
			Code:    u.Code(),
			Average: *u.Average,
			Credit:  u.Credit,
		})
	}
	return rows
}

// ElementScore is one entry of the ranked element-composition series.
type ElementScore struct {
	Label   string  `json:"label"`
	CC      float64 `json:"cc"`
	TP      float64 `json:"tp"`
	DS      float64 `json:"ds"`
	Average float64 `json:"average"`
}

// TopElements flattens every graded, titled element across all units, ranks
// them by average descending and keeps the best ones for readability.
func (p *Projector) TopElements(units []results.TeachingUnit) []ElementScore {
	var scores []ElementScore
	for _, u := range units {
		for _, e := range u.Elements {
			if e.Average == nil || e.Title == "" {
				continue
			}
			scores = append(scores, ElementScore{
				Label:   elementLabel(e.Title),
				CC:      scoreOrZero(e.CC),
				TP:      scoreOrZero(e.TP),
				DS:      scoreOrZero(e.DS),
				Average: *e.Average,
			})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Average > scores[j].Average
	})
	if len(scores) > p.topElements {
		scores = scores[:p.topElements]
	}
	return scores
}

func scoreOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// unitLabel truncates a unit title to width runes, substituting a fixed
// label for unnamed units.
func unitLabel(title string, width int) string {
	if title == "" {
		return fallbackUnitLabel
	}
	r := []rune(title)
	if len(r) > width {
		return string(r[:width])
	}
	return title
}

// elementLabel keeps the part after the "CODE: name" separator and bounds
// the result for chart readability.
func elementLabel(title string) string {
	name := title
	if _, after, found := strings.Cut(title, ":"); found {
		if trimmed := strings.TrimSpace(after); trimmed != "" {
			name = trimmed
		}
	}
	r := []rune(name)
	if len(r) > elementLabelWidth {
		return string(r[:elementLabelWidth]) + truncationSuffix
	}
	return name
}
