package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
	"github.com/sunugal/releves/pkg/logger"
	"github.com/sunugal/releves/pkg/metrics"
)

// SelectionOptions holds the semester/session chooser data. Defaults point
// at the first entry of each list.
type SelectionOptions struct {
	Semesters       []model.Semester    `json:"semesters"`
	Sessions        []model.ExamSession `json:"sessions"`
	DefaultSemester int64               `json:"defaultSemester"`
	DefaultSession  int64               `json:"defaultSession"`
}

// Selection fetches the available semesters and exam sessions concurrently
// and joins both before anything is selectable. Either failure blocks the
// selection entirely; there is no partial selection.
func (s *Service) Selection(ctx context.Context) (SelectionOptions, error) {
	enrollment, err := s.enrollment()
	if err != nil {
		return SelectionOptions{}, err
	}

	var (
		wg        sync.WaitGroup
		semesters []model.Semester
		sessions  []model.ExamSession
		semErr    error
		sesErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		semesters, semErr = s.api.Semesters(ctx, enrollment.ID)
	}()
	go func() {
		defer wg.Done()
		sessions, sesErr = s.api.ExamSessions(ctx)
	}()
	wg.Wait()

	if semErr != nil {
		return SelectionOptions{}, fmt.Errorf("load semesters: %w", semErr)
	}
	if sesErr != nil {
		return SelectionOptions{}, fmt.Errorf("load sessions: %w", sesErr)
	}
	if len(semesters) == 0 || len(sessions) == 0 {
		return SelectionOptions{}, fmt.Errorf("%w: empty semester or session list", ErrMalformedSelection)
	}

	return SelectionOptions{
		Semesters:       semesters,
		Sessions:        sessions,
		DefaultSemester: semesters[0].ID,
		DefaultSession:  sessions[0].ID,
	}, nil
}

// Results fetches the grade result set for the given selection. Each fetch
// is tagged with a fresh selection key; if another selection starts before
// this one resolves, the late response is discarded instead of overwriting
// the newer one.
func (s *Service) Results(ctx context.Context, semesterID, sessionID int64) (results.StudentResultSet, error) {
	enrollment, err := s.enrollment()
	if err != nil {
		return results.StudentResultSet{}, err
	}
	if semesterID <= 0 || sessionID <= 0 {
		return results.StudentResultSet{}, fmt.Errorf("%w: semester and session are required", ErrMalformedSelection)
	}

	key := uuid.NewString()
	s.mu.Lock()
	s.selectionKey = key
	s.mu.Unlock()

	rs, err := s.api.Results(ctx, enrollment.ID, semesterID, sessionID)

	s.mu.Lock()
	current := s.selectionKey == key
	s.mu.Unlock()
	if !current {
		metrics.RecordStaleDiscard()
		s.logger.Debug(ctx, "discarding stale grade response",
			logger.Int64("semester", semesterID),
			logger.Int64("session", sessionID),
		)
		return results.StudentResultSet{}, ErrStaleSelection
	}

	if err != nil {
		metrics.RecordResultFetchError()
		return results.StudentResultSet{}, err
	}
	metrics.RecordResultFetch()
	return rs, nil
}

// ReclamationWindow fetches the complaint-window authorization for the
// active enrollment and the chosen exam session.
func (s *Service) ReclamationWindow(ctx context.Context, sessionID int64) (model.ReclamationWindow, error) {
	enrollment, err := s.enrollment()
	if err != nil {
		return model.ReclamationWindow{}, err
	}
	if sessionID <= 0 {
		return model.ReclamationWindow{}, fmt.Errorf("%w: session is required", ErrMalformedSelection)
	}
	return s.api.ReclamationWindow(ctx,
		enrollment.AcademicYear.ID,
		enrollment.Level.Formation.ID,
		enrollment.Level.Terminal,
		sessionID,
	)
}
