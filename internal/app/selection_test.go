package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sunugal/releves/internal/adapters/upstream"
	service "github.com/sunugal/releves/internal/app"
	"github.com/sunugal/releves/internal/domain/model"
	"github.com/sunugal/releves/internal/domain/results"
	. "github.com/smartystreets/goconvey/convey"
)

func authenticated(api *stubAPI) *service.Service {
	api.user = student()
	if api.enrollments == nil {
		api.enrollments = []model.Enrollment{enrollment(42)}
	}
	store := &memStore{token: "tok-123"}
	svc := newService(api, store)
	if err := svc.Start(context.Background()); err != nil {
		panic(err)
	}
	return svc
}

func TestSelection(t *testing.T) {
	Convey("Given an authenticated session with semesters and sessions", t, func() {
		api := &stubAPI{
			semesters: []model.Semester{{ID: 11, Name: "Semestre 1"}, {ID: 12, Name: "Semestre 2"}},
			sessions:  []model.ExamSession{{ID: 1, Label: "normal"}, {ID: 2, Label: "rattrapage"}},
		}
		svc := authenticated(api)

		Convey("When loading the selection", func() {
			sel, err := svc.Selection(context.Background())

			Convey("Then both lists are joined and defaults point at the first entries", func() {
				So(err, ShouldBeNil)
				So(sel.Semesters, ShouldHaveLength, 2)
				So(sel.Sessions, ShouldHaveLength, 2)
				So(sel.DefaultSemester, ShouldEqual, 11)
				So(sel.DefaultSession, ShouldEqual, 1)
			})
		})
	})

	Convey("Given the semester fetch fails", t, func() {
		api := &stubAPI{
			semErr:   fmt.Errorf("%w: GET semesters", upstream.ErrFetch),
			sessions: []model.ExamSession{{ID: 1, Label: "normal"}},
		}
		svc := authenticated(api)

		Convey("Then the selection is blocked entirely", func() {
			_, err := svc.Selection(context.Background())
			So(errors.Is(err, upstream.ErrFetch), ShouldBeTrue)
		})
	})

	Convey("Given the upstream returns an empty session list", t, func() {
		api := &stubAPI{
			semesters: []model.Semester{{ID: 11, Name: "Semestre 1"}},
			sessions:  []model.ExamSession{},
		}
		svc := authenticated(api)

		Convey("Then the selection is rejected as malformed", func() {
			_, err := svc.Selection(context.Background())
			So(errors.Is(err, service.ErrMalformedSelection), ShouldBeTrue)
		})
	})

	Convey("Given a user with no enrollments", t, func() {
		api := &stubAPI{enrollments: []model.Enrollment{}}
		svc := authenticated(api)

		Convey("Then the selection reports the missing enrollment", func() {
			_, err := svc.Selection(context.Background())
			So(errors.Is(err, service.ErrNoEnrollment), ShouldBeTrue)
		})
	})
}

func TestResults(t *testing.T) {
	Convey("Given an authenticated session", t, func() {
		api := &stubAPI{}
		api.resultsFn = func(ctx context.Context, enrollmentID, semesterID, sessionID int64) (results.StudentResultSet, error) {
			return results.StudentResultSet{SemesterLabel: fmt.Sprintf("Semestre %d", semesterID)}, nil
		}
		svc := authenticated(api)

		Convey("When fetching results for a selection", func() {
			rs, err := svc.Results(context.Background(), 11, 1)

			Convey("Then the result set comes back", func() {
				So(err, ShouldBeNil)
				So(rs.SemesterLabel, ShouldEqual, "Semestre 11")
			})
		})

		Convey("When the selection identifiers are missing", func() {
			_, err := svc.Results(context.Background(), 0, 1)
			So(errors.Is(err, service.ErrMalformedSelection), ShouldBeTrue)
		})
	})

	Convey("Given a slow fetch superseded by a newer selection", t, func() {
		release := make(chan struct{})
		started := make(chan struct{})
		api := &stubAPI{}
		api.resultsFn = func(ctx context.Context, enrollmentID, semesterID, sessionID int64) (results.StudentResultSet, error) {
			if semesterID == 11 {
				close(started)
				<-release
			}
			return results.StudentResultSet{SemesterLabel: fmt.Sprintf("Semestre %d", semesterID)}, nil
		}
		svc := authenticated(api)

		var (
			wg       sync.WaitGroup
			slowRS   results.StudentResultSet
			slowErr  error
			freshRS  results.StudentResultSet
			freshErr error
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			slowRS, slowErr = svc.Results(context.Background(), 11, 1)
		}()
		<-started
		freshRS, freshErr = svc.Results(context.Background(), 12, 1)
		close(release)
		wg.Wait()

		Convey("Then the late response is discarded and the fresh one wins", func() {
			So(freshErr, ShouldBeNil)
			So(freshRS.SemesterLabel, ShouldEqual, "Semestre 12")
			So(errors.Is(slowErr, service.ErrStaleSelection), ShouldBeTrue)
			So(slowRS.SemesterLabel, ShouldEqual, "")
		})
	})
}

func TestReclamationWindow(t *testing.T) {
	Convey("Given an authenticated session with an open complaint window", t, func() {
		api := &stubAPI{
			window: model.ReclamationWindow{ID: 5, Start: "2026-01-10", End: "2026-01-20", Active: true},
		}
		svc := authenticated(api)

		Convey("When fetching the window for a session", func() {
			w, err := svc.ReclamationWindow(context.Background(), 1)

			Convey("Then the window is returned", func() {
				So(err, ShouldBeNil)
				So(w.Active, ShouldBeTrue)
			})
		})

		Convey("When the session identifier is missing", func() {
			_, err := svc.ReclamationWindow(context.Background(), 0)
			So(errors.Is(err, service.ErrMalformedSelection), ShouldBeTrue)
		})
	})
}
