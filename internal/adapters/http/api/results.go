// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strconv"

	"github.com/sunugal/releves/internal/domain/grades"
	"github.com/sunugal/releves/internal/domain/results"
)

// ResultsHandler handles grade result requests.
type ResultsHandler struct {
	portal    Portal
	projector *grades.Projector
}

// NewResultsHandler creates a new results handler. Zero values fall back to
// the projector defaults.
func NewResultsHandler(portal Portal, topElements, labelWidth int) *ResultsHandler {
	return &ResultsHandler{
		portal: portal,
		projector: grades.NewProjector(
			grades.WithTopElements(topElements),
			grades.WithLabelWidth(labelWidth),
		),
	}
}

// chartsPayload bundles the series the results page renders.
type chartsPayload struct {
	Radar   []grades.RadarPoint   `json:"radar"`
	Credits []grades.PieSlice     `json:"credits"`
	Bars    []grades.BarRow       `json:"bars"`
	Top     []grades.ElementScore `json:"topElements"`
}

type resultsResponse struct {
	Results results.StudentResultSet `json:"results"`
	Summary grades.Summary           `json:"summary"`
	Charts  chartsPayload            `json:"charts"`
}

// HandleResults handles GET /api/results?semester=N&session=N requests. The
// response carries the raw result set plus the derived aggregates and chart
// series, so the page renders from one payload.
func (h *ResultsHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_results"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	semesterID, err := strconv.ParseInt(r.URL.Query().Get("semester"), 10, 64)
	if err != nil || semesterID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	sessionID, err := strconv.ParseInt(r.URL.Query().Get("session"), 10, 64)
	if err != nil || sessionID < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	rs, err := h.portal.Results(r.Context(), semesterID, sessionID)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, Wrap(op, err))
		return
	}

	writeJSON(w, http.StatusOK, resultsResponse{
		Results: rs,
		Summary: grades.Summarize(rs),
		Charts: chartsPayload{
			Radar:   h.projector.Radar(rs.Units),
			Credits: h.projector.CreditSlices(rs.Units),
			Bars:    h.projector.Bars(rs.Units),
			Top:     h.projector.TopElements(rs.Units),
		},
	})
}
